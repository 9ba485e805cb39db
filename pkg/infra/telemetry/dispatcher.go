package telemetry

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Anaselll/TeachMeApp/pkg/domain/telemetry"
	"github.com/Anaselll/TeachMeApp/pkg/infra/prometheus"
	"github.com/sirupsen/logrus"
)

const (
	queueSize     = 1000
	handleTimeout = 10 * time.Second
)

// Dispatcher hands lifecycle events to an exporter from a pool of workers so
// that request handling never waits on the exporter.
//
//go:generate mockery --name=Dispatcher --dir=. --output=./mocks --filename=dispatcher_mock.go --case=underscore
type Dispatcher interface {
	Dispatch(evt *telemetry.LifecycleEvent)
	StartWorkers(n int)
	Shutdown()
}

type dispatcher struct {
	logger   *logrus.Logger
	exporter telemetry.Exporter
	taskChan chan *telemetry.LifecycleEvent
	wg       sync.WaitGroup
	closed   atomic.Bool
	once     sync.Once
}

func NewDispatcher(logger *logrus.Logger, exporter telemetry.Exporter) Dispatcher {
	return &dispatcher{
		logger:   logger,
		exporter: exporter,
		taskChan: make(chan *telemetry.LifecycleEvent, queueSize),
	}
}

func (d *dispatcher) StartWorkers(n int) {
	d.logger.WithFields(logrus.Fields{
		"workers":  n,
		"exporter": d.exporter.Name(),
	}).Info("starting lifecycle exporter workers")
	for i := 0; i < n; i++ {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			for evt := range d.taskChan {
				d.handle(evt)
			}
		}()
	}
}

func (d *dispatcher) handle(evt *telemetry.LifecycleEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()
	if err := d.exporter.Handle(ctx, evt); err != nil {
		prometheus.TelemetryExports.WithLabelValues("failed").Inc()
		d.logger.WithFields(logrus.Fields{
			"exporter":   d.exporter.Name(),
			"event_type": evt.Type,
			"session_id": evt.SessionID,
		}).WithError(err).Error("exporter failed")
		return
	}
	prometheus.TelemetryExports.WithLabelValues("exported").Inc()
}

func (d *dispatcher) Dispatch(evt *telemetry.LifecycleEvent) {
	if evt == nil || d.closed.Load() {
		return
	}
	defer func() {
		// the channel may close between the check above and the send
		if recover() != nil {
			prometheus.TelemetryExports.WithLabelValues("dropped").Inc()
		}
	}()
	select {
	case d.taskChan <- evt:
	default:
		prometheus.TelemetryExports.WithLabelValues("dropped").Inc()
		d.logger.WithField("event_type", evt.Type).Warn("lifecycle queue is full, dropping event")
	}
}

// Shutdown drains queued events and closes the exporter.
func (d *dispatcher) Shutdown() {
	d.once.Do(func() {
		d.closed.Store(true)
		close(d.taskChan)
		d.wg.Wait()
		d.exporter.Close()
		d.logger.Info("lifecycle exporter workers stopped")
	})
}

type noopDispatcher struct{}

// NewNoopDispatcher is used when lifecycle export is disabled.
func NewNoopDispatcher() Dispatcher {
	return noopDispatcher{}
}

func (noopDispatcher) Dispatch(*telemetry.LifecycleEvent) {}
func (noopDispatcher) StartWorkers(int)                   {}
func (noopDispatcher) Shutdown()                          {}
