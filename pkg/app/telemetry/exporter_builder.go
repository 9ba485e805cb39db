package telemetry

import (
	"errors"
	"fmt"

	"github.com/Anaselll/TeachMeApp/pkg/config"
	domain "github.com/Anaselll/TeachMeApp/pkg/domain/telemetry"
	factory "github.com/Anaselll/TeachMeApp/pkg/infra/telemetry"
)

var (
	ErrMissingExporter = errors.New("telemetry exporter name is required")
	ErrInvalidWorkers  = errors.New("telemetry workers must be positive")
)

type ExporterBuilder interface {
	Build(cfg config.TelemetryConfig) (domain.Exporter, error)
}

type exporterBuilder struct {
	locator *factory.ExporterLocator
}

func NewExporterBuilder(locator *factory.ExporterLocator) ExporterBuilder {
	return &exporterBuilder{
		locator: locator,
	}
}

// Build validates the telemetry section and returns the configured exporter.
func (b *exporterBuilder) Build(cfg config.TelemetryConfig) (domain.Exporter, error) {
	if cfg.Exporter == "" {
		return nil, ErrMissingExporter
	}
	if cfg.Workers <= 0 {
		return nil, ErrInvalidWorkers
	}
	exporter, err := b.locator.GetExporter(cfg.Exporter, cfg.Settings)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s exporter: %w", cfg.Exporter, err)
	}
	return exporter, nil
}
