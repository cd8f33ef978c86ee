package notify

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"go.uber.org/zap"

	"asset-verification-portal/internal/config"
	"asset-verification-portal/internal/logger"
)

// Mailer sends campaign notification emails over SMTP. With no SMTP host
// configured it logs the message instead of sending, which keeps local
// development and campaign launches working without a mail server.
type Mailer struct {
	host     string
	port     int
	user     string
	password string
	from     string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTP.Host,
		port:     cfg.SMTP.Port,
		user:     cfg.SMTP.User,
		password: cfg.SMTP.Password,
		from:     cfg.SMTP.From,
	}
}

// SendVerificationEmail mails an employee their personal verification link.
func (m *Mailer) SendVerificationEmail(to, employeeName, campaignName, link string, deadline *time.Time) error {
	subject := fmt.Sprintf("Action required: verify your IT assets for %s", campaignName)

	deadlineLine := ""
	if deadline != nil {
		deadlineLine = fmt.Sprintf("<p>Please complete your verification by <strong>%s</strong>.</p>",
			deadline.Format("January 2, 2006"))
	}

	body := fmt.Sprintf(`<html><body>
<p>Hi %s,</p>
<p>The IT team is running the <strong>%s</strong> asset verification campaign.
Please confirm the hardware assigned to you using your personal link below.</p>
<p><a href="%s">Verify my assets</a></p>
%s
<p>The link is personal and single-use. If you have any questions, reply to this email.</p>
<p>Thanks,<br>IT Asset Management</p>
</body></html>`, employeeName, campaignName, link, deadlineLine)

	return m.send(to, subject, body)
}

// SendReminderEmail nudges an employee who has not completed verification yet.
func (m *Mailer) SendReminderEmail(to, employeeName, campaignName, link string, deadline *time.Time) error {
	subject := fmt.Sprintf("Reminder: asset verification pending for %s", campaignName)

	deadlineLine := ""
	if deadline != nil {
		deadlineLine = fmt.Sprintf("<p>The deadline is <strong>%s</strong>.</p>",
			deadline.Format("January 2, 2006"))
	}

	body := fmt.Sprintf(`<html><body>
<p>Hi %s,</p>
<p>This is a reminder that your asset verification for <strong>%s</strong> is still pending.</p>
<p><a href="%s">Complete my verification</a></p>
%s
<p>Thanks,<br>IT Asset Management</p>
</body></html>`, employeeName, campaignName, link, deadlineLine)

	return m.send(to, subject, body)
}

func (m *Mailer) send(to, subject, htmlBody string) error {
	if m.host == "" {
		logger.Info("SMTP not configured, skipping email",
			zap.String("to", to),
			zap.String("subject", subject),
		)
		return nil
	}

	headers := []string{
		fmt.Sprintf("From: %s", m.from),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
	}
	msg := strings.Join(headers, "\r\n") + "\r\n\r\n" + htmlBody

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.password, m.host)
	}

	if err := smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	logger.Debug("Email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}
