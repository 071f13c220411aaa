package mailer

import (
	"fmt"
	"log"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer sends transactional email. Send returns the provider message id.
type Mailer interface {
	Send(to, subject, htmlBody string) (string, error)
}

type sendgridMailer struct {
	client   *sendgrid.Client
	from     *mail.Email
	fromAddr string
}

// NewSendGridMailer builds a Mailer from SENDGRID_API_KEY and EMAIL_FROM.
func NewSendGridMailer() (Mailer, error) {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("SENDGRID_API_KEY is not set")
	}

	fromAddr := os.Getenv("EMAIL_FROM")
	if fromAddr == "" {
		return nil, fmt.Errorf("EMAIL_FROM is not set")
	}

	return &sendgridMailer{
		client:   sendgrid.NewSendClient(apiKey),
		from:     mail.NewEmail("Questlab Studio", fromAddr),
		fromAddr: fromAddr,
	}, nil
}

func (m *sendgridMailer) Send(to, subject, htmlBody string) (string, error) {
	msg := mail.NewSingleEmail(m.from, subject, mail.NewEmail("", to), "", wrapTemplate(subject, htmlBody))

	resp, err := m.client.Send(msg)
	if err != nil {
		return "", fmt.Errorf("sendgrid send failed: %w", err)
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
	}

	messageID := ""
	if ids, ok := resp.Headers["X-Message-Id"]; ok && len(ids) > 0 {
		messageID = ids[0]
	}
	return messageID, nil
}

// Dispatch sends in the background. Failures are logged, never surfaced:
// notification email must not fail the write that triggered it.
func Dispatch(m Mailer, to, subject, htmlBody string) {
	if m == nil || to == "" {
		return
	}

	go func() {
		if _, err := m.Send(to, subject, htmlBody); err != nil {
			log.Printf("[Mailer]: failed to send %q to %s: %v", subject, to, err)
		}
	}()
}

func wrapTemplate(title, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
			.header { background-color: #1A1A2E; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A1A2E; line-height: 1.6; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #E94560; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>QUESTLAB STUDIO</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				This is an automated notification from the Questlab Studio website.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}
