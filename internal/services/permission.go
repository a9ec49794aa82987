package services

import (
	"botcafe/internal/models"

	"gorm.io/gorm"
)

// Permission levels reported by the status endpoint. They describe what the
// caller may see, not what the toggle path enforces.
const (
	PermissionOwner  = "owner"
	PermissionViewer = "viewer"
	PermissionNone   = "none"
)

type PermissionService struct {
	db *gorm.DB
}

func NewPermissionService(db *gorm.DB) *PermissionService {
	return &PermissionService{db: db}
}

// Check resolves the caller's access level for a bot. Unlisted bots are
// visible to their creator only; anything public is viewable by anyone,
// logged in or not.
func (s *PermissionService) Check(userID, botID uint) string {
	var bot models.Bot
	if err := s.db.First(&bot, botID).Error; err != nil {
		return PermissionNone
	}

	if userID != 0 && bot.UserID == userID {
		return PermissionOwner
	}
	if !bot.Unlisted {
		return PermissionViewer
	}
	return PermissionNone
}
