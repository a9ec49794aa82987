package models

import (
	"time"
)

// Interaction links a user to a bot and carries both toggle states.
// At most one row exists per (user, bot) pair, enforced by the composite
// unique index so a racing first-toggle cannot create duplicates.
type Interaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_user_bot" json:"user_id"`
	BotID     uint      `gorm:"not null;index;uniqueIndex:idx_user_bot" json:"bot_id"`
	Bot       Bot       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"bot"`
	Liked     bool      `gorm:"default:false" json:"liked"`
	Favorited bool      `gorm:"default:false" json:"favorited"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
