package models

import "time"

// ReminderLog is the audit trail of dispatched reminders. The scheduler
// also consults it so an offset fires at most once per channel per day.
type ReminderLog struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"index" json:"user_id"`
	BillID         uint      `gorm:"index" json:"bill_id"`
	ReminderSentAt time.Time `json:"reminder_sent_at"`
	Channel        string    `gorm:"size:20" json:"channel"` // email, sms, whatsapp
}

func (ReminderLog) TableName() string {
	return "reminders_log"
}
