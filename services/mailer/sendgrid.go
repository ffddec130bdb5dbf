package mailer

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"healthguard/config"
	"healthguard/utils"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// StripHTML derives a plain-text fallback from rich content by removing
// markup tags.
func StripHTML(html string) string {
	return strings.TrimSpace(tagPattern.ReplaceAllString(html, ""))
}

// SendGridMailer sends email through the SendGrid v3 API.
type SendGridMailer struct {
	client   *sendgrid.Client
	from     string
	fromName string
}

// NewSendGridMailer builds a mailer from the application configuration.
func NewSendGridMailer() *SendGridMailer {
	return &SendGridMailer{
		client:   sendgrid.NewSendClient(config.AppConfig.SendGridAPIKey),
		from:     config.AppConfig.EmailFrom,
		fromName: config.AppConfig.EmailFromName,
	}
}

// Send delivers one message. All transport errors are folded into the
// returned Result; authentication failures carry operator remediation
// guidance instead of the raw transport message.
func (m *SendGridMailer) Send(ctx context.Context, msg Email) Result {
	logger := utils.GetLogger()

	text := msg.Text
	if text == "" {
		text = StripHTML(msg.HTML)
	}

	message := mail.NewV3Mail()
	message.SetFrom(mail.NewEmail(m.fromName, m.from))
	message.Subject = msg.Subject

	personalization := mail.NewPersonalization()
	personalization.AddTos(mail.NewEmail(msg.ToName, msg.To))
	message.AddPersonalizations(personalization)

	message.AddContent(mail.NewContent("text/plain", text))
	if msg.HTML != "" {
		message.AddContent(mail.NewContent("text/html", msg.HTML))
	}

	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		logger.Error("Email send failed", zap.String("to", msg.To), zap.Error(err))
		return Result{Success: false, Error: fmt.Sprintf("email delivery failed: %v", err)}
	}

	result := classifyResponse(resp.StatusCode, resp.Headers)
	if !result.Success {
		logger.Error("Email transport rejected message",
			zap.Int("status", resp.StatusCode), zap.String("to", msg.To), zap.String("error", result.Error))
		return result
	}
	logger.Sugar().Infof("Email sent to %s | MessageId: %s", msg.To, result.MessageID)
	return result
}

// classifyResponse maps a SendGrid API response to a Result. Credential
// rejections get remediation guidance rather than the raw status line.
func classifyResponse(statusCode int, headers map[string][]string) Result {
	if statusCode == 401 || statusCode == 403 {
		return Result{
			Success: false,
			Error:   "email auth failed: verify SENDGRID_API_KEY is valid and the sender address is authorized for this account",
		}
	}
	if statusCode < 200 || statusCode >= 300 {
		return Result{Success: false, Error: fmt.Sprintf("email delivery failed: status %d", statusCode)}
	}

	messageID := ""
	if ids, ok := headers["X-Message-Id"]; ok && len(ids) > 0 {
		messageID = ids[0]
	}
	return Result{Success: true, MessageID: messageID}
}
