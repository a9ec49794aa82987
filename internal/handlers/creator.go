package handlers

import (
	"net/http"

	"botcafe/internal/db"
	"botcafe/internal/models"
	"botcafe/internal/services"
	"botcafe/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type CreatorHandler struct {
	moods *services.MoodService
}

func NewCreatorHandler(moods *services.MoodService) *CreatorHandler {
	return &CreatorHandler{moods: moods}
}

// Profile is the public creator page at /u/:id
func (h *CreatorHandler) Profile(c *gin.Context) {
	var user models.User
	if err := db.DB.First(&user, c.Param("id")).Error; err != nil {
		RenderError(c, http.StatusNotFound, "Creator not found")
		return
	}

	totalLikes := creatorTotalLikes(user.ID)
	tierName, tierIcon := utils.GetCreatorTier(totalLikes)
	daysSince := utils.GetDaysSinceJoined(user.CreatedAt)

	tab := c.DefaultQuery("tab", "bots")

	var bots []models.Bot
	var favoritedBots []models.Bot

	if tab == "favorites" {
		// Bots this user has favorited, through the interaction rows
		var interactions []models.Interaction
		db.DB.Preload("Bot").
			Preload("Bot.Category").
			Preload("Bot.User").
			Where("user_id = ? AND favorited = ?", user.ID, true).
			Order("updated_at DESC").
			Limit(50).
			Find(&interactions)
		for _, interaction := range interactions {
			if !interaction.Bot.Unlisted {
				favoritedBots = append(favoritedBots, interaction.Bot)
			}
		}
	} else {
		db.DB.Preload("Category").
			Preload("User").
			Where("user_id = ? AND unlisted = ?", user.ID, false).
			Order("created_at DESC").
			Limit(50).
			Find(&bots)
	}

	Render(c, http.StatusOK, "creator/public.html", gin.H{
		"Title":         user.Username,
		"Creator":       user,
		"TierName":      tierName,
		"TierIcon":      tierIcon,
		"DaysSince":     daysSince,
		"TotalLikes":    totalLikes,
		"Bots":          bots,
		"FavoritedBots": favoritedBots,
		"ActiveTab":     tab,
	})
}

// Dashboard is the creator's own overview page
func (h *CreatorHandler) Dashboard(c *gin.Context) {
	session := sessions.Default(c)
	userID := session.Get("user_id")

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	var bots []models.Bot
	db.DB.Preload("Category").
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&bots)

	totalLikes, totalFavorites, totalViews := 0, 0, 0
	for _, bot := range bots {
		totalLikes += bot.LikesCount
		totalFavorites += bot.FavoritesCount
		totalViews += bot.Views
	}

	tierName, tierIcon := utils.GetCreatorTier(totalLikes)

	Render(c, http.StatusOK, "dashboard/overview.html", gin.H{
		"Title":          "Dashboard",
		"User":           user,
		"Bots":           bots,
		"BotCount":       len(bots),
		"TotalLikes":     totalLikes,
		"TotalFavorites": totalFavorites,
		"TotalViews":     totalViews,
		"TierName":       tierName,
		"TierIcon":       tierIcon,
		"MoodStats":      h.moods.Stats(user.ID),
	})
}

// ShowSettings renders the account settings page
func (h *CreatorHandler) ShowSettings(c *gin.Context) {
	session := sessions.Default(c)
	userID := session.Get("user_id")

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	Render(c, http.StatusOK, "dashboard/settings.html", gin.H{
		"Title":        "Settings",
		"User":         user,
		"CommonEmojis": utils.GetCommonEmojis(),
	})
}

// UpdateSettings applies account changes from the settings form
func (h *CreatorHandler) UpdateSettings(c *gin.Context) {
	session := sessions.Default(c)
	userID := session.Get("user_id")

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}

	username := c.PostForm("username")
	email := c.PostForm("email")
	avatar := c.PostForm("avatar")
	bio := c.PostForm("bio")
	oldPassword := c.PostForm("old_password")
	newPassword := c.PostForm("new_password")

	updates := make(map[string]interface{})

	if username != "" && username != user.Username {
		updates["username"] = username
	}

	if email != "" && email != user.Email {
		var existingUser models.User
		if err := db.DB.Where("email = ? AND id != ?", email, user.ID).First(&existingUser).Error; err == nil {
			h.renderSettingsError(c, user, "That email is already in use")
			return
		}
		updates["email"] = email
	}

	if avatar != "" {
		updates["avatar"] = avatar
	}

	if bio != user.Bio {
		updates["bio"] = bio
	}

	if oldPassword != "" && newPassword != "" {
		if !utils.CheckPasswordHash(oldPassword, user.Password) {
			h.renderSettingsError(c, user, "Current password is wrong")
			return
		}

		if len(newPassword) < 6 {
			h.renderSettingsError(c, user, "New password needs at least 6 characters")
			return
		}

		hash, err := utils.HashPassword(newPassword)
		if err != nil {
			RenderError(c, http.StatusInternalServerError, "Something went wrong")
			return
		}
		updates["password"] = hash
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&user).Updates(updates).Error; err != nil {
			h.renderSettingsError(c, user, "Could not save the changes")
			return
		}
	}

	c.Redirect(http.StatusFound, "/dashboard/settings?success=1")
}

func (h *CreatorHandler) renderSettingsError(c *gin.Context, user models.User, msg string) {
	Render(c, http.StatusBadRequest, "dashboard/settings.html", gin.H{
		"Error":        msg,
		"User":         user,
		"CommonEmojis": utils.GetCommonEmojis(),
	})
}

// creatorTotalLikes sums the like counters across a creator's bots
func creatorTotalLikes(userID uint) int {
	var total int64
	db.DB.Model(&models.Bot{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(likes_count), 0)").
		Scan(&total)
	return int(total)
}
