package testutil

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"botcafe/internal/models"
)

// TestUser creates a user row for tests.
func TestUser(t *testing.T, gdb *gorm.DB, opts ...func(*models.User)) *models.User {
	t.Helper()

	user := &models.User{
		Username: fmt.Sprintf("tester_%d", time.Now().UnixNano()%100000),
		Email:    fmt.Sprintf("test_%d@example.com", time.Now().UnixNano()),
		Password: "$2a$10$abcdefghijklmnopqrstuvwxyz123456", // bcrypt hash placeholder
		Avatar:   "🙂",
	}

	for _, opt := range opts {
		opt(user)
	}

	if err := gdb.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// WithUsername sets the display name.
func WithUsername(username string) func(*models.User) {
	return func(u *models.User) {
		u.Username = username
	}
}

// WithEmail sets the email.
func WithEmail(email string) func(*models.User) {
	return func(u *models.User) {
		u.Email = email
	}
}

// TestCategory creates a category row for tests.
func TestCategory(t *testing.T, gdb *gorm.DB) *models.Category {
	t.Helper()

	category := &models.Category{
		Name:        fmt.Sprintf("cat_%d", time.Now().UnixNano()%100000),
		Description: "test category",
		Emoji:       "☕",
	}

	if err := gdb.Create(category).Error; err != nil {
		t.Fatalf("Failed to create test category: %v", err)
	}

	return category
}

// TestBot creates a bot row owned by userID.
func TestBot(t *testing.T, gdb *gorm.DB, userID uint, opts ...func(*models.Bot)) *models.Bot {
	t.Helper()

	category := TestCategory(t, gdb)

	bot := &models.Bot{
		Pid:        fmt.Sprintf("%08d", time.Now().UnixNano()%100000000),
		UserID:     userID,
		CategoryID: category.ID,
		Name:       fmt.Sprintf("Test Bot %d", time.Now().UnixNano()%10000),
		Tagline:    "a bot for tests",
		Avatar:     "🤖",
	}

	for _, opt := range opts {
		opt(bot)
	}

	if err := gdb.Create(bot).Error; err != nil {
		t.Fatalf("Failed to create test bot: %v", err)
	}

	return bot
}

// WithUnlisted hides the bot from listings.
func WithUnlisted() func(*models.Bot) {
	return func(b *models.Bot) {
		b.Unlisted = true
	}
}

// WithCounts sets the denormalized counters.
func WithCounts(likes, favorites int) func(*models.Bot) {
	return func(b *models.Bot) {
		b.LikesCount = likes
		b.FavoritesCount = favorites
	}
}

// TestInteraction creates an interaction row with the given toggle states.
func TestInteraction(t *testing.T, gdb *gorm.DB, userID, botID uint, liked, favorited bool) *models.Interaction {
	t.Helper()

	interaction := &models.Interaction{
		UserID:    userID,
		BotID:     botID,
		Liked:     liked,
		Favorited: favorited,
	}

	if err := gdb.Create(interaction).Error; err != nil {
		t.Fatalf("Failed to create test interaction: %v", err)
	}

	return interaction
}
