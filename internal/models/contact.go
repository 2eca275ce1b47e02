package models

import "time"

// ContactMessage stores a submission from the public contact form.
type ContactMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	Email     string    `gorm:"size:128;not null" json:"email"`
	Message   string    `gorm:"size:4096;not null" json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
