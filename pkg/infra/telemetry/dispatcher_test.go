package telemetry

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Anaselll/TeachMeApp/pkg/domain/telemetry"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingExporter struct {
	mu          sync.Mutex
	name        string
	events      []*telemetry.LifecycleEvent
	err         error
	closed      bool
	validateErr error
}

func (r *recordingExporter) Name() string { return r.name }

func (r *recordingExporter) ValidateConfig(map[string]interface{}) error { return r.validateErr }

func (r *recordingExporter) Handle(_ context.Context, evt *telemetry.LifecycleEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
	return r.err
}

func (r *recordingExporter) WithSettings(map[string]interface{}) (telemetry.Exporter, error) {
	return r, nil
}

func (r *recordingExporter) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestDispatcher_DeliversAndDrainsOnShutdown(t *testing.T) {
	exp := &recordingExporter{name: "recording"}
	d := NewDispatcher(testLogger(), exp)
	d.StartWorkers(2)

	for i := 0; i < 10; i++ {
		d.Dispatch(telemetry.NewLifecycleEvent(telemetry.MessageAppended, uuid.New(), time.Now()))
	}
	d.Shutdown()
	d.Shutdown()

	exp.mu.Lock()
	defer exp.mu.Unlock()
	assert.Len(t, exp.events, 10)
	assert.True(t, exp.closed)
}

func TestDispatcher_ExporterErrorDoesNotStopWorkers(t *testing.T) {
	exp := &recordingExporter{name: "recording", err: errors.New("broker down")}
	d := NewDispatcher(testLogger(), exp)
	d.StartWorkers(1)

	d.Dispatch(telemetry.NewLifecycleEvent(telemetry.SessionCreated, uuid.New(), time.Now()))
	d.Dispatch(telemetry.NewLifecycleEvent(telemetry.SessionActivated, uuid.New(), time.Now()))
	d.Shutdown()

	assert.Len(t, exp.events, 2)
}

func TestDispatcher_DropsAfterShutdown(t *testing.T) {
	exp := &recordingExporter{name: "recording"}
	d := NewDispatcher(testLogger(), exp)
	d.StartWorkers(1)
	d.Shutdown()

	assert.NotPanics(t, func() {
		d.Dispatch(telemetry.NewLifecycleEvent(telemetry.SessionCreated, uuid.New(), time.Now()))
	})
	assert.Empty(t, exp.events)
}

func TestExporterLocator(t *testing.T) {
	exp := &recordingExporter{name: "recording"}
	locator := NewExporterLocator(WithExporter(exp))

	got, err := locator.GetExporter("recording", nil)
	require.NoError(t, err)
	assert.Equal(t, exp, got)

	_, err = locator.GetExporter("unknown", nil)
	assert.ErrorContains(t, err, "unknown exporter")

	exp.validateErr = errors.New("bad settings")
	_, err = locator.GetExporter("recording", nil)
	assert.ErrorContains(t, err, "bad settings")
}
