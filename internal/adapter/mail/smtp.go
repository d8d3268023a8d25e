package mail

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strings"

	"github.com/google/uuid"
	"github.com/srgjo27/park_booking/internal/core/domain"
)

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
}

type SMTPMailer struct {
	cfg  SMTPConfig
	from Sender
}

func NewSMTPMailer(cfg SMTPConfig, from Sender) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, from: from}
}

func (m *SMTPMailer) Send(ctx context.Context, email domain.Email) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	id := uuid.NewString()
	msg := buildMessage(m.from, email, id)

	if err := m.deliver(ctx, email.To, msg); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = errors.Join(ctxErr, err)
		}
		return "", fmt.Errorf("smtp send to %s: %w", email.To, err)
	}

	return id, nil
}

// deliver runs the SMTP exchange of smtp.SendMail on a connection bound to ctx.
func (m *SMTPMailer) deliver(ctx context.Context, to string, msg []byte) error {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(m.cfg.Host, m.cfg.Port))
	if err != nil {
		return err
	}
	// Closing the connection unblocks any pending read or write once ctx is done.
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	c, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		_ = conn.Close()
		return err
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: m.cfg.Host}); err != nil {
			return err
		}
	}
	if m.cfg.Username != "" {
		if ok, _ := c.Extension("AUTH"); ok {
			if err := c.Auth(smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)); err != nil {
				return err
			}
		}
	}

	if err := c.Mail(m.from.Email); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.Quit()
}

func buildMessage(from Sender, email domain.Email, id string) []byte {
	boundary := "----=_BOOKING_EMAIL_" + strings.ReplaceAll(id, "-", "")

	to := email.To
	if email.ToName != "" {
		to = fmt.Sprintf("%s <%s>", encodeHeader(email.ToName), email.To)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s <%s>\r\n", encodeHeader(from.Name), from.Email))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", to))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", encodeHeader(email.Subject)))
	sb.WriteString(fmt.Sprintf("Message-ID: <%s@%s>\r\n", id, domainOf(from.Email)))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n\r\n", boundary))

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString(email.TextBody + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	sb.WriteString(email.HTMLBody + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s--\r\n", boundary))

	return []byte(sb.String())
}

// encodeHeader returns s as an RFC 2047 encoded word when it is not plain ASCII.
func encodeHeader(s string) string {
	return mime.QEncoding.Encode("utf-8", headerSafe(s))
}

func headerSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(strings.TrimSpace(s))
}

func domainOf(address string) string {
	if i := strings.LastIndex(address, "@"); i >= 0 {
		return address[i+1:]
	}
	return "localhost"
}
