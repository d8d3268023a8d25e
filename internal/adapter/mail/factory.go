package mail

import (
	"fmt"

	"github.com/srgjo27/park_booking/internal/core/ports"
	"github.com/srgjo27/park_booking/internal/platform/config"
	"go.uber.org/zap"
)

// New picks the mailer named by MAIL_DRIVER. Missing credentials fall back to the log mailer.
func New(cfg config.MailConfig, log *zap.Logger) (ports.Mailer, error) {
	from := Sender{Email: cfg.From, Name: cfg.FromName}

	switch cfg.Driver {
	case "mailjet":
		if cfg.MailjetKey == "" || cfg.MailjetSecret == "" {
			log.Warn("mailjet credentials missing, emails will only be logged")
			return NewLogMailer(log), nil
		}
		return NewMailjetMailer(cfg.MailjetKey, cfg.MailjetSecret, from), nil
	case "smtp":
		if cfg.SMTPHost == "" || cfg.SMTPUser == "" || cfg.SMTPPassword == "" {
			log.Warn("smtp credentials missing, emails will only be logged")
			return NewLogMailer(log), nil
		}
		return NewSMTPMailer(SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
		}, from), nil
	case "log", "":
		return NewLogMailer(log), nil
	}

	return nil, fmt.Errorf("unknown mail driver %q", cfg.Driver)
}
