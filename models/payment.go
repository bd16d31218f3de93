package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is an append-only record. There is no update or delete path.
type Payment struct {
	ID     uint            `gorm:"primaryKey" json:"id"`
	UserID uint            `gorm:"index;not null" json:"user_id"`
	BillID *uint           `gorm:"index" json:"bill_id"`
	Amount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Method string          `gorm:"size:50" json:"method,omitempty"` // manual, razorpay, upi
	PaidOn time.Time       `gorm:"autoCreateTime" json:"paid_on"`
	Notes  string          `gorm:"type:text" json:"notes,omitempty"`

	Bill *Bill `gorm:"constraint:OnDelete:SET NULL" json:"-"`
}
