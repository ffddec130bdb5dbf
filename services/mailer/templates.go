package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// Branded HTML bodies for the three transactional emails the application
// sends. Plaintext credentials appear here transiently and are never
// persisted anywhere.

const reminderBody = `
<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto;background:#0f172a;color:#e2e8f0;border-radius:12px;overflow:hidden;">
  <div style="background:linear-gradient(135deg,#10b981,#059669);padding:24px 32px;">
    <h1 style="margin:0;color:#fff;font-size:24px;">HealthGuard</h1>
    <p style="margin:6px 0 0;color:rgba(255,255,255,0.85);font-size:14px;">Medication Reminder</p>
  </div>
  <div style="padding:32px;">
    <h2 style="color:#34d399;margin-top:0;">{{.Subject}}</h2>
    <p style="white-space:pre-line;line-height:1.7;color:#cbd5e1;">{{.Message}}</p>
    <p style="margin-top:28px;font-size:13px;color:#94a3b8;">This is an automated reminder from your doctor.</p>
  </div>
</div>`

const welcomeBody = `
<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto;background:#0f172a;color:#e2e8f0;border-radius:12px;overflow:hidden;">
  <div style="background:linear-gradient(135deg,#2563eb,#8b5cf6);padding:24px 32px;">
    <h1 style="margin:0;color:#fff;font-size:24px;">HealthGuard</h1>
    <p style="margin:6px 0 0;color:rgba(255,255,255,0.85);font-size:14px;">Your Patient Account is Ready</p>
  </div>
  <div style="padding:32px;">
    <h2 style="color:#60a5fa;margin-top:0;">Welcome, {{.FullName}}!</h2>
    <p style="color:#cbd5e1;line-height:1.7;">Your doctor has registered you on HealthGuard. Below are your login credentials:</p>
    <p style="margin:6px 0;"><strong>Email:</strong> {{.Email}}</p>
    <p style="margin:6px 0;"><strong>Password:</strong> <span style="color:#34d399;font-size:18px;font-weight:bold;letter-spacing:2px;">{{.Password}}</span></p>
    <p style="color:#94a3b8;font-size:13px;">Please log in at <a href="{{.LoginURL}}" style="color:#60a5fa;">{{.LoginURL}}</a> and change your password after first login.</p>
    <p style="font-size:13px;color:#94a3b8;">Do not share these credentials with anyone. This email was sent automatically by your doctor's system.</p>
  </div>
</div>`

const passwordChangedBody = `
<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto;background:#0f172a;color:#e2e8f0;border-radius:12px;overflow:hidden;">
  <div style="background:linear-gradient(135deg,#2563eb,#8b5cf6);padding:24px 32px;">
    <h1 style="margin:0;color:#fff;font-size:24px;">HealthGuard</h1>
    <p style="margin:6px 0 0;color:rgba(255,255,255,0.85);font-size:14px;">Password Changed Successfully</p>
  </div>
  <div style="padding:32px;">
    <h2 style="color:#60a5fa;margin-top:0;">Hello, {{.Name}}</h2>
    <p style="color:#cbd5e1;line-height:1.7;">Your HealthGuard account password has been changed successfully.</p>
    <p style="font-size:13px;color:#fca5a5;">If you did not make this change, contact your doctor immediately.</p>
  </div>
</div>`

var (
	reminderTemplate        = template.Must(template.New("reminder").Parse(reminderBody))
	welcomeTemplate         = template.Must(template.New("welcome").Parse(welcomeBody))
	passwordChangedTemplate = template.Must(template.New("passwordChanged").Parse(passwordChangedBody))
)

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s email: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}

// ReminderHTML renders the reminder email body.
func ReminderHTML(subject, message string) (string, error) {
	return render(reminderTemplate, struct{ Subject, Message string }{subject, message})
}

// WelcomeHTML renders the credential-issuance email body.
func WelcomeHTML(fullName, email, password, loginURL string) (string, error) {
	return render(welcomeTemplate, struct{ FullName, Email, Password, LoginURL string }{fullName, email, password, loginURL})
}

// PasswordChangedHTML renders the password-change notification body.
func PasswordChangedHTML(name string) (string, error) {
	return render(passwordChangedTemplate, struct{ Name string }{name})
}
