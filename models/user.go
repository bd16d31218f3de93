package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string    `gorm:"size:255" json:"-"`
	Phone        string    `gorm:"size:20" json:"phone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`

	Bills []Bill `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
