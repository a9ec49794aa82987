package services

import (
	"errors"
	"time"

	"botcafe/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InteractionKind selects which toggle on the interaction row is flipped.
type InteractionKind string

const (
	KindLike     InteractionKind = "like"
	KindFavorite InteractionKind = "favorite"
)

var (
	ErrBadTarget     = errors.New("missing or invalid bot id")
	ErrUserNotSynced = errors.New("user record not found")
	ErrBotNotFound   = errors.New("bot not found")
)

// ToggleResult reports the state after a toggle: whether the kind is now
// active for the caller, and the bot's updated counter.
type ToggleResult struct {
	Active bool
	Count  int
}

// InteractionStatus is the read-only view of a user's relation to a bot.
type InteractionStatus struct {
	Liked      bool   `json:"liked"`
	Favorited  bool   `json:"favorited"`
	Permission string `json:"permission"`
}

// InteractionService owns the like/favorite toggles and keeps the bot's
// denormalized counters in step with the interaction rows. Both writes
// happen in one transaction, and the counter is clamped at zero.
type InteractionService struct {
	db    *gorm.DB
	perms *PermissionService
}

func NewInteractionService(db *gorm.DB, perms *PermissionService) *InteractionService {
	return &InteractionService{db: db, perms: perms}
}

// Toggle flips the kind's boolean on the (user, bot) interaction row,
// creating the row on first use, and moves the bot's counter to match.
func (s *InteractionService) Toggle(kind InteractionKind, userID, botID uint) (ToggleResult, error) {
	if botID == 0 {
		return ToggleResult{}, ErrBadTarget
	}

	// The session cookie can outlive the user row (account deleted, store
	// reset); treat that as "not synced" rather than an internal error.
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ToggleResult{}, ErrUserNotSynced
		}
		return ToggleResult{}, err
	}

	var result ToggleResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var bot models.Bot
		if err := tx.First(&bot, botID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBotNotFound
			}
			return err
		}

		var interaction models.Interaction
		err := tx.Where("user_id = ? AND bot_id = ?", userID, botID).First(&interaction).Error
		switch {
		case err == nil:
			result.Active = !kindValue(&interaction, kind)
			updates := map[string]interface{}{
				kindColumn(kind): result.Active,
				"updated_at":     time.Now(),
			}
			if err := tx.Model(&interaction).Updates(updates).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// First interaction for this pair. The upsert on the unique
			// (user_id, bot_id) index keeps two racing first-toggles from
			// creating duplicate rows; both land on active=true.
			interaction = models.Interaction{UserID: userID, BotID: botID}
			setKind(&interaction, kind, true)
			result.Active = true
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "user_id"}, {Name: "bot_id"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					kindColumn(kind): true,
					"updated_at":     time.Now(),
				}),
			}).Create(&interaction).Error; err != nil {
				return err
			}
		default:
			return err
		}

		current := kindCount(&bot, kind)
		newCount := current + 1
		if !result.Active {
			newCount = current - 1
		}
		if newCount < 0 {
			newCount = 0
		}
		result.Count = newCount

		return tx.Model(&models.Bot{}).
			Where("id = ?", botID).
			UpdateColumn(kindCountColumn(kind), newCount).
			Error
	})
	if err != nil {
		return ToggleResult{}, err
	}
	return result, nil
}

// Status never fails: on any internal error it reports the defaults
// (no interaction, no permission) so the read path stays available.
func (s *InteractionService) Status(userID, botID uint) InteractionStatus {
	status := InteractionStatus{Permission: PermissionNone}
	if botID == 0 {
		return status
	}

	status.Permission = s.perms.Check(userID, botID)

	if userID == 0 {
		return status
	}

	var interaction models.Interaction
	if err := s.db.Where("user_id = ? AND bot_id = ?", userID, botID).First(&interaction).Error; err == nil {
		status.Liked = interaction.Liked
		status.Favorited = interaction.Favorited
	}
	return status
}

func kindColumn(kind InteractionKind) string {
	if kind == KindFavorite {
		return "favorited"
	}
	return "liked"
}

func kindCountColumn(kind InteractionKind) string {
	if kind == KindFavorite {
		return "favorites_count"
	}
	return "likes_count"
}

func kindValue(interaction *models.Interaction, kind InteractionKind) bool {
	if kind == KindFavorite {
		return interaction.Favorited
	}
	return interaction.Liked
}

func setKind(interaction *models.Interaction, kind InteractionKind, v bool) {
	if kind == KindFavorite {
		interaction.Favorited = v
	} else {
		interaction.Liked = v
	}
}

func kindCount(bot *models.Bot, kind InteractionKind) int {
	if kind == KindFavorite {
		return bot.FavoritesCount
	}
	return bot.LikesCount
}
