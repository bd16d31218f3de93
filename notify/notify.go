package notify

import (
	"log/slog"
	"os"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"

	"smartdues/models"
)

// Dispatcher sends reminders through the external gateways. A channel with
// missing credentials is disabled, not an error: sends just return false.
type Dispatcher struct {
	sendgridKey  string
	fromEmail    string
	twilio       *twilio.RestClient
	smsFrom      string
	whatsappFrom string
}

func NewDispatcher() *Dispatcher {
	d := &Dispatcher{
		sendgridKey:  os.Getenv("SENDGRID_API_KEY"),
		fromEmail:    os.Getenv("NOTIFY_FROM_EMAIL"),
		smsFrom:      os.Getenv("TWILIO_SMS_FROM"),
		whatsappFrom: os.Getenv("TWILIO_WHATSAPP_FROM"),
	}
	if d.fromEmail == "" {
		d.fromEmail = "no-reply@smartdues.test"
	}

	sid := os.Getenv("TWILIO_ACCOUNT_SID")
	token := os.Getenv("TWILIO_AUTH_TOKEN")
	if sid != "" && token != "" {
		d.twilio = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: sid,
			Password: token,
		})
	}
	return d
}

func (d *Dispatcher) SendEmail(to, subject, body string) bool {
	if d.sendgridKey == "" {
		slog.Debug("sendgrid not configured, skipping email")
		return false
	}

	message := mail.NewSingleEmail(
		mail.NewEmail("SmartDues", d.fromEmail), subject,
		mail.NewEmail("", to), body, body)

	client := sendgrid.NewSendClient(d.sendgridKey)
	resp, err := client.Send(message)
	if err != nil {
		slog.Warn("sendgrid send failed", "to", to, "error", err)
		return false
	}
	slog.Info("email sent", "to", to, "status", resp.StatusCode)
	return true
}

func (d *Dispatcher) SendSMS(to, body string) bool {
	if d.twilio == nil || d.smsFrom == "" {
		slog.Debug("twilio sms not configured, skipping sms")
		return false
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(d.smsFrom)
	params.SetBody(body)

	msg, err := d.twilio.Api.CreateMessage(params)
	if err != nil {
		slog.Warn("twilio sms failed", "to", to, "error", err)
		return false
	}
	slog.Info("sms sent", "to", to, "sid", strValue(msg.Sid))
	return true
}

func (d *Dispatcher) SendWhatsApp(to, body string) bool {
	if d.twilio == nil || d.whatsappFrom == "" {
		slog.Debug("twilio whatsapp not configured, skipping whatsapp")
		return false
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo("whatsapp:" + to)
	params.SetFrom(d.whatsappFrom)
	params.SetBody(body)

	msg, err := d.twilio.Api.CreateMessage(params)
	if err != nil {
		slog.Warn("twilio whatsapp failed", "to", to, "error", err)
		return false
	}
	slog.Info("whatsapp sent", "to", to, "sid", strValue(msg.Sid))
	return true
}

func strValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// LogReminder appends to the reminders audit log. A failed write must never
// abort the sweep, so errors are only logged.
func LogReminder(db *gorm.DB, userID, billID uint, sentAt time.Time, channel string) {
	entry := models.ReminderLog{
		UserID:         userID,
		BillID:         billID,
		ReminderSentAt: sentAt,
		Channel:        channel,
	}
	if err := db.Create(&entry).Error; err != nil {
		slog.Warn("failed to write reminder log", "bill_id", billID, "channel", channel, "error", err)
	}
}
