package integrations

import (
	"bytes"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"

	"github.com/shootdeck/backend/config"
	"github.com/shootdeck/backend/internal/models"
)

// Mailer sends shoot reminder emails over SMTP. A nil mailer means SMTP is
// not configured.
type Mailer struct {
	dialer      *gomail.Dialer
	fromAddress string
	fromName    string
}

// NewMailer returns nil when no SMTP host is configured.
func NewMailer(cfg config.EmailConfig) *Mailer {
	if cfg.SMTPHost == "" {
		return nil
	}
	return &Mailer{
		dialer:      gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		fromAddress: cfg.FromAddress,
		fromName:    cfg.FromName,
	}
}

var reminderTmpl = template.Must(template.New("reminder").Parse(`<html>
<body style="font-family: sans-serif; color: #222;">
  <h2>Shoot reminder: {{.Title}}</h2>
  {{if .Date}}<p><strong>Date:</strong> {{.Date}}{{if .StartTime}} at {{.StartTime}}{{end}}</p>{{end}}
  {{if .Location}}<p><strong>Location:</strong> {{.Location}}</p>{{end}}
  {{if .Description}}<p>{{.Description}}</p>{{end}}
  <p>See you there!</p>
</body>
</html>`))

type reminderData struct {
	Title       string
	Date        string
	StartTime   string
	Location    string
	Description string
}

// ReminderSubject builds the subject line for a shoot reminder.
func ReminderSubject(shoot *models.Shoot) string {
	return fmt.Sprintf("Reminder: %s", shoot.Title)
}

// SendShootReminder sends one reminder email to a single recipient.
func (m *Mailer) SendShootReminder(to string, shoot *models.Shoot) error {
	data := reminderData{
		Title:       shoot.Title,
		StartTime:   shoot.StartTime,
		Location:    shoot.LocationName,
		Description: shoot.Description,
	}
	if shoot.Date != nil {
		data.Date = shoot.Date.Format("Monday, January 2, 2006")
	}
	var body bytes.Buffer
	if err := reminderTmpl.Execute(&body, data); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.fromAddress, m.fromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", ReminderSubject(shoot))
	msg.SetBody("text/html", body.String())
	return m.dialer.DialAndSend(msg)
}
