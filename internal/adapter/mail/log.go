package mail

import (
	"context"

	"github.com/google/uuid"
	"github.com/srgjo27/park_booking/internal/core/domain"
	"go.uber.org/zap"
)

// LogMailer records emails instead of sending them. Used when no provider is configured.
type LogMailer struct {
	log *zap.Logger
}

func NewLogMailer(log *zap.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(_ context.Context, email domain.Email) (string, error) {
	id := uuid.NewString()
	m.log.Info("mock email",
		zap.String("id", id),
		zap.String("to", email.To),
		zap.String("subject", email.Subject),
	)
	return id, nil
}
