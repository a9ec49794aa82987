package models

import (
	"time"
)

type Bot struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Pid         string    `gorm:"uniqueIndex;size:8;not null" json:"pid"`
	UserID      uint      `gorm:"not null;index" json:"user_id"` // Creator
	User        User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	CategoryID  uint      `gorm:"not null;index;default:1" json:"category_id"`
	Category    Category  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"category"`
	Name        string    `gorm:"not null" json:"name"`
	Tagline     string    `gorm:"size:140" json:"tagline"`
	Description string    `gorm:"type:text" json:"description"` // Markdown
	Greeting    string    `gorm:"type:text" json:"greeting"`    // First message shown on the profile
	Avatar      string    `gorm:"default:🤖" json:"avatar"`
	Unlisted    bool      `gorm:"default:false" json:"unlisted"` // Hidden from listings, direct link only

	// Denormalized counters, kept in step with interactions by the
	// toggle service and reconciled by the trending worker.
	LikesCount     int `gorm:"default:0" json:"likes_count"`
	FavoritesCount int `gorm:"default:0" json:"favorites_count"`
	Views          int `gorm:"default:0" json:"views"`
	TrendScore     int `gorm:"default:0" json:"trend_score"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
