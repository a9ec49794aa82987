package models

import (
	"time"
)

type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"not null" json:"username"` // Display name, can be modified
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	Password    string    `gorm:"not null" json:"-"` // Hash
	Avatar      string    `gorm:"default:🤖" json:"avatar"`
	Bio         string    `gorm:"size:200" json:"bio"`
	GoogleID    string    `gorm:"index" json:"google_id"`
	GoogleEmail string    `gorm:"index" json:"google_email"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	// No DeletedAt for hard delete
}
