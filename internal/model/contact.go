package model

import "time"

// ContactMessage is one contact-form submission. CreatedAt is assigned by the
// CSV log writer at append time.
type ContactMessage struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;not null;index" json:"email"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `gorm:"not null" json:"timestamp"`
}
