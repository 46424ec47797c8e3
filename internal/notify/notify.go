// Package notify delivers the transient notifications produced by pipeline
// and preference mutations.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "dental-jobs/internal/common/errors"
	"dental-jobs/internal/common/logger"
	"dental-jobs/internal/models"
)

// Notifier matches pipeline.Notifier and preferences' notifier.
type Notifier interface {
	Notify(ctx context.Context, n models.Notification)
}

// Sink is an outbound channel. Delivery errors never reach the caller of
// Notify.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, n models.Notification) error
}

// Recorder keeps every notification it receives, in order.
type Recorder struct {
	mu    sync.Mutex
	items []models.Notification
	now   func() time.Time
}

func NewRecorder() *Recorder {
	return &Recorder{now: func() time.Time { return time.Now().UTC() }}
}

func (r *Recorder) Notify(_ context.Context, n models.Notification) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = r.now()
	}
	r.mu.Lock()
	r.items = append(r.items, n)
	r.mu.Unlock()
}

// Notifications returns a copy of what has been recorded so far.
func (r *Recorder) Notifications() []models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Notification, len(r.items))
	copy(out, r.items)
	return out
}

// Fanout forwards to every non-nil notifier in order.
type Fanout []Notifier

func (f Fanout) Notify(ctx context.Context, n models.Notification) {
	for _, nt := range f {
		if nt != nil {
			nt.Notify(ctx, n)
		}
	}
}

// DefaultDeliveryTimeout bounds one background delivery across all sinks.
const DefaultDeliveryTimeout = 5 * time.Second

// Dispatcher pushes notifications to external sinks. Levels restricts
// which notifications are sent; an empty set sends all of them. Delivery
// runs in the background and never blocks Notify.
type Dispatcher struct {
	sinks   []Sink
	levels  map[models.NotificationLevel]bool
	timeout time.Duration
	logger  logger.Logger
	wg      sync.WaitGroup
}

func NewDispatcher(log logger.Logger, levels []models.NotificationLevel, sinks ...Sink) *Dispatcher {
	d := &Dispatcher{
		sinks:   sinks,
		levels:  make(map[models.NotificationLevel]bool, len(levels)),
		timeout: DefaultDeliveryTimeout,
		logger:  log.WithFields(map[string]interface{}{"component": "notify"}),
	}
	for _, l := range levels {
		d.levels[l] = true
	}
	return d
}

// WithTimeout sets the per-notification delivery deadline.
func (d *Dispatcher) WithTimeout(timeout time.Duration) *Dispatcher {
	if timeout > 0 {
		d.timeout = timeout
	}
	return d
}

// Enabled reports whether any sink is configured.
func (d *Dispatcher) Enabled() bool {
	return d != nil && len(d.sinks) > 0
}

// Notify queues n for delivery and returns immediately. The caller's
// deadline and cancellation do not apply to the delivery.
func (d *Dispatcher) Notify(ctx context.Context, n models.Notification) {
	if !d.Enabled() {
		return
	}
	if len(d.levels) > 0 && !d.levels[n.Level] {
		return
	}

	dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer cancel()
		d.deliver(dctx, n)
	}()
}

// Wait blocks until every queued delivery has finished.
func (d *Dispatcher) Wait() {
	if d != nil {
		d.wg.Wait()
	}
}

func (d *Dispatcher) deliver(ctx context.Context, n models.Notification) {
	for _, s := range d.sinks {
		if err := s.Deliver(ctx, n); err != nil {
			stdErr := apperrors.NewNotificationSendFailedError(s.Name(), err)
			d.logger.Warn("notification delivery failed", map[string]interface{}{
				"channel":   s.Name(),
				"operation": n.Operation,
				"errorCode": string(stdErr.Code),
				"error":     stdErr.Details,
			})
		}
	}
}
