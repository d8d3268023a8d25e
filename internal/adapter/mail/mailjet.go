package mail

import (
	"context"
	"errors"
	"fmt"

	"github.com/mailjet/mailjet-apiv3-go"
	"github.com/srgjo27/park_booking/internal/core/domain"
)

type Sender struct {
	Email string
	Name  string
}

// MailjetMailer sends through the Mailjet v3.1 send API.
type MailjetMailer struct {
	client *mailjet.Client
	from   Sender
}

func NewMailjetMailer(apiKey, apiSecret string, from Sender) *MailjetMailer {
	return &MailjetMailer{
		client: mailjet.NewMailjetClient(apiKey, apiSecret),
		from:   from,
	}
}

func (m *MailjetMailer) Send(ctx context.Context, email domain.Email) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	messages := mailjet.MessagesV31{Info: []mailjet.InfoMessagesV31{
		{
			From: &mailjet.RecipientV31{
				Email: m.from.Email,
				Name:  m.from.Name,
			},
			To: &mailjet.RecipientsV31{
				mailjet.RecipientV31{
					Email: email.To,
					Name:  email.ToName,
				},
			},
			Subject:  email.Subject,
			TextPart: email.TextBody,
			HTMLPart: email.HTMLBody,
		},
	}}

	res, err := m.client.SendMailV31(&messages)
	if err != nil {
		return "", fmt.Errorf("mailjet send to %s: %w", email.To, err)
	}

	if len(res.ResultsV31) == 0 {
		return "", errors.New("mailjet returned no results")
	}

	result := res.ResultsV31[0]
	if result.Status != "success" {
		return "", fmt.Errorf("mailjet status %q for %s", result.Status, email.To)
	}

	if len(result.To) > 0 {
		return result.To[0].MessageUUID, nil
	}
	return "", nil
}
