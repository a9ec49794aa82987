package db

import (
	"log"
	"os"

	"botcafe/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=botcafe port=5432 sslmode=disable TimeZone=UTC"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	// Auto Migrate
	err = DB.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Bot{},
		&models.Interaction{},
		&models.MoodEntry{},
		&models.Doc{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	seedCategories()
	seedDocs()
}

func seedCategories() {
	var count int64
	DB.Model(&models.Category{}).Count(&count)
	if count > 0 {
		log.Println("Categories already seeded, skipping")
		return
	}

	categories := []models.Category{
		{Name: "companions", Description: "Friendly everyday chat partners", Emoji: "☕"},
		{Name: "storytellers", Description: "Roleplay and interactive fiction", Emoji: "📖"},
		{Name: "helpers", Description: "Study aids, coaches and assistants", Emoji: "🛠️"},
		{Name: "wellbeing", Description: "Calm, reflective and supportive bots", Emoji: "🌤️"},
	}

	for _, category := range categories {
		if err := DB.Create(&category).Error; err != nil {
			log.Printf("Failed to create category %s: %v", category.Name, err)
		}
	}
	log.Println("Initial categories created successfully")
}

// seedDocs installs the help and legal pages on first boot. Editing the rows
// afterwards is how the content gets updated; the seed never overwrites.
func seedDocs() {
	var count int64
	DB.Model(&models.Doc{}).Count(&count)
	if count > 0 {
		log.Println("Docs already seeded, skipping")
		return
	}

	docs := []models.Doc{
		{
			Slug:  "getting-started",
			Kind:  models.DocKindHelp,
			Title: "Getting started",
			Sort:  1,
			Body: "## Welcome to BotCafe\n\n" +
				"Browse bots on the front page, open one to read its profile, " +
				"and use the heart and star buttons to like or favorite it. " +
				"Favorites show up on your own profile.\n",
		},
		{
			Slug:  "creating-bots",
			Kind:  models.DocKindHelp,
			Title: "Creating your first bot",
			Sort:  2,
			Body: "## Creating a bot\n\n" +
				"Open the dashboard and hit **New bot**. Name, tagline and a " +
				"greeting are enough to publish; the description supports " +
				"Markdown. You can also import a character card PNG and the " +
				"form will be prefilled from its embedded data.\n",
		},
		{
			Slug:  "mood-journal",
			Kind:  models.DocKindHelp,
			Title: "Using the mood journal",
			Sort:  3,
			Body: "## Mood journal\n\n" +
				"The journal lives in your dashboard. Log how you feel once a " +
				"day on a 1-5 scale, with an optional note. BotCafe shows your " +
				"streak and a 7-day average; entries are private to you.\n",
		},
		{
			Slug:  "terms",
			Kind:  models.DocKindLegal,
			Title: "Terms of service",
			Sort:  1,
			Body: "## Terms of service\n\n" +
				"BotCafe is provided as-is. You are responsible for the bots " +
				"you publish; content that violates the content policy will be " +
				"removed.\n",
		},
		{
			Slug:  "privacy",
			Kind:  models.DocKindLegal,
			Title: "Privacy policy",
			Sort:  2,
			Body: "## Privacy policy\n\n" +
				"We store your account data, the bots you create, your " +
				"like/favorite interactions and your private mood journal. " +
				"Mood entries are never shown to other users.\n",
		},
	}

	for _, doc := range docs {
		if err := DB.Create(&doc).Error; err != nil {
			log.Printf("Failed to create doc %s: %v", doc.Slug, err)
		}
	}
	log.Println("Initial docs created successfully")
}
