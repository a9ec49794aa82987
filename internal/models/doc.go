package models

import (
	"time"
)

type DocKind string

const (
	DocKindHelp  DocKind = "help"
	DocKindLegal DocKind = "legal"
)

// Doc is a CMS-style page (help article or legal text) served from the store.
type Doc struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Slug      string    `gorm:"uniqueIndex;size:64;not null" json:"slug"`
	Kind      DocKind   `gorm:"type:varchar(10);not null;index" json:"kind"`
	Title     string    `gorm:"not null" json:"title"`
	Body      string    `gorm:"type:text" json:"body"` // Markdown
	Sort      int       `gorm:"default:0" json:"sort"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
