package ports

import (
	"context"
	"time"

	"github.com/srgjo27/park_booking/internal/core/domain"
)

// ObjectStorage stores images in the shared image bucket. Put returns a durable reference.
type ObjectStorage interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
	SignedURL(ctx context.Context, ref string, ttl time.Duration) (string, error)
}

type Notifier interface {
	NotifyBooking(ctx context.Context, req domain.NotificationRequest) error
}

// Mailer sends one email and returns the provider message id.
type Mailer interface {
	Send(ctx context.Context, email domain.Email) (string, error)
}
