package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/park_booking/internal/core/domain"
	"github.com/srgjo27/park_booking/internal/core/ports"
	"github.com/srgjo27/park_booking/internal/platform/monitoring"
	"go.uber.org/zap"
)

// NotificationDispatcher runs booking notifications in the background. A notification never
// reports back to the submission that started it.
type NotificationDispatcher struct {
	notifier ports.Notifier
	timeout  time.Duration
	log      *zap.Logger
	wg       sync.WaitGroup
}

func NewNotificationDispatcher(notifier ports.Notifier, timeout time.Duration, log *zap.Logger) *NotificationDispatcher {
	return &NotificationDispatcher{
		notifier: notifier,
		timeout:  timeout,
		log:      log,
	}
}

func (d *NotificationDispatcher) Dispatch(ctx context.Context, bookingID uuid.UUID, req domain.NotificationRequest) {
	d.wg.Add(1)

	go func() {
		defer d.wg.Done()

		notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
		defer cancel()

		started := time.Now()
		err := d.notifier.NotifyBooking(notifyCtx, req)
		monitoring.ObserveStep(string(domain.StateNotifying), time.Since(started))

		if err != nil {
			monitoring.TrackNotification("failure")
			d.log.Error("booking notification failed",
				zap.String("booking_id", bookingID.String()),
				zap.String("tour_package", req.TourPackage),
				zap.Error(err),
			)
			return
		}

		monitoring.TrackNotification("success")
		d.log.Info("booking notification sent", zap.String("booking_id", bookingID.String()))
	}()
}

// Wait blocks until in-flight notifications finish or ctx is done.
func (d *NotificationDispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
