package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Bill struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	UserID         uint            `gorm:"index;not null" json:"user_id"`
	Title          string          `gorm:"size:255;not null" json:"title"`
	Type           string          `gorm:"size:50" json:"type"` // emi, credit_card, rent, subscription, bill
	Amount         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	DueDate        DateOnly        `gorm:"type:date;not null" json:"due_date"`
	RepeatInterval string          `gorm:"size:20" json:"repeat_interval,omitempty"` // monthly, yearly, none
	ReminderDays   string          `gorm:"size:100" json:"reminder_days,omitempty"`  // e.g. "7,3,1"
	Notes          string          `gorm:"type:text" json:"notes,omitempty"`
	IsPaid         bool            `json:"is_paid"`
	CreatedAt      time.Time       `json:"created_at"`
}
