package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"botcafe/internal/db"
	"botcafe/internal/middleware"
	"botcafe/internal/models"
	"botcafe/internal/services"
	"botcafe/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const botsPerPage = 30

// maxCardSize caps character card uploads (2 MB)
const maxCardSize = 2 << 20

type BotHandler struct{}

func NewBotHandler() *BotHandler {
	return &BotHandler{}
}

func pageParam(c *gin.Context) int {
	page := 1
	if p := c.Query("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			page = pageNum
		}
	}
	return page
}

func totalPages(total int64) int {
	pages := int(math.Ceil(float64(total) / float64(botsPerPage)))
	if pages == 0 {
		pages = 1
	}
	return pages
}

// ListTrending is the front page, ordered by trend score
func (h *BotHandler) ListTrending(c *gin.Context) {
	page := pageParam(c)

	cacheKey := fmt.Sprintf("bot:trending:page:%d", page)
	if cachedData := utils.GetCache().Get(cacheKey); cachedData != nil {
		if hData, ok := cachedData.(gin.H); ok {
			Render(c, http.StatusOK, "bot/list.html", hData)
			return
		}
	}

	var total int64
	db.DB.Model(&models.Bot{}).Where("unlisted = ?", false).Count(&total)

	var bots []models.Bot
	db.DB.Preload("User").Preload("Category").
		Where("unlisted = ?", false).
		Order("trend_score DESC, created_at DESC").
		Limit(botsPerPage).
		Offset((page - 1) * botsPerPage).
		Find(&bots)

	var categories []models.Category
	db.DB.Order("id ASC").Find(&categories)

	renderData := gin.H{
		"Bots":        bots,
		"Categories":  categories,
		"Active":      "trending",
		"Title":       "Trending bots",
		"CurrentPage": page,
		"TotalPages":  totalPages(total),
	}

	utils.GetCache().Set(cacheKey, renderData, 1*time.Minute)

	Render(c, http.StatusOK, "bot/list.html", renderData)
}

// ListNew lists the newest public bots
func (h *BotHandler) ListNew(c *gin.Context) {
	page := pageParam(c)

	var total int64
	db.DB.Model(&models.Bot{}).Where("unlisted = ?", false).Count(&total)

	var bots []models.Bot
	db.DB.Preload("User").Preload("Category").
		Where("unlisted = ?", false).
		Order("created_at DESC").
		Limit(botsPerPage).
		Offset((page - 1) * botsPerPage).
		Find(&bots)

	var categories []models.Category
	db.DB.Order("id ASC").Find(&categories)

	Render(c, http.StatusOK, "bot/list.html", gin.H{
		"Bots":        bots,
		"Categories":  categories,
		"Active":      "new",
		"Title":       "New bots",
		"CurrentPage": page,
		"TotalPages":  totalPages(total),
	})
}

// ListByCategory lists public bots under /c/:name
func (h *BotHandler) ListByCategory(c *gin.Context) {
	var category models.Category
	if err := db.DB.Where("name = ?", c.Param("name")).First(&category).Error; err != nil {
		RenderError(c, http.StatusNotFound, "Category not found")
		return
	}

	page := pageParam(c)

	var total int64
	db.DB.Model(&models.Bot{}).Where("category_id = ? AND unlisted = ?", category.ID, false).Count(&total)

	var bots []models.Bot
	db.DB.Preload("User").Preload("Category").
		Where("category_id = ? AND unlisted = ?", category.ID, false).
		Order("trend_score DESC, created_at DESC").
		Limit(botsPerPage).
		Offset((page - 1) * botsPerPage).
		Find(&bots)

	var categories []models.Category
	db.DB.Order("id ASC").Find(&categories)

	Render(c, http.StatusOK, "bot/list.html", gin.H{
		"Bots":        bots,
		"Categories":  categories,
		"Active":      category.Name,
		"Category":    category,
		"Title":       category.Name,
		"CurrentPage": page,
		"TotalPages":  totalPages(total),
	})
}

// ListCategories shows all categories
func (h *BotHandler) ListCategories(c *gin.Context) {
	var categories []models.Category
	db.DB.Order("id ASC").Find(&categories)
	Render(c, http.StatusOK, "category/list.html", gin.H{
		"Title":      "Categories",
		"Categories": categories,
	})
}

// Detail renders the bot profile page at /b/:pid
func (h *BotHandler) Detail(c *gin.Context) {
	var bot models.Bot
	if err := db.DB.Preload("User").Preload("Category").
		Where("pid = ?", c.Param("pid")).First(&bot).Error; err != nil {
		RenderError(c, http.StatusNotFound, "Bot not found")
		return
	}

	currentUser, _ := middleware.CurrentUser(c)
	isOwner := currentUser != nil && currentUser.ID == bot.UserID
	if bot.Unlisted && !isOwner {
		RenderError(c, http.StatusNotFound, "Bot not found")
		return
	}

	// Count the visit; the trending worker folds views into the score later
	db.DB.Model(&bot).UpdateColumn("views", gorm.Expr("views + ?", 1))

	cacheKey := fmt.Sprintf("bot:detail:%d", bot.ID)
	var renderData gin.H
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		renderData, _ = cached.(gin.H)
	}
	if renderData == nil {
		renderData = gin.H{
			"Title":           bot.Name,
			"Bot":             bot,
			"DescriptionHTML": utils.RenderMarkdown(bot.Description),
		}
		utils.GetCache().Set(cacheKey, renderData, 1*time.Minute)
	}

	// Per-user bits are never cached
	var userID uint
	if currentUser != nil {
		userID = currentUser.ID
	}
	data := gin.H{
		"IsOwner": isOwner,
		"Status":  interactionStatusFor(userID, bot.ID),
	}
	for k, v := range renderData {
		data[k] = v
	}
	Render(c, http.StatusOK, "bot/detail.html", data)
}

// ShowCreate renders the new-bot form
func (h *BotHandler) ShowCreate(c *gin.Context) {
	var categories []models.Category
	db.DB.Order("id ASC").Find(&categories)
	Render(c, http.StatusOK, "bot/create.html", gin.H{
		"Title":      "New bot",
		"Categories": categories,
		"Emojis":     utils.GetCommonEmojis(),
	})
}

// Create handles the new-bot form post
func (h *BotHandler) Create(c *gin.Context) {
	currentUser, ok := middleware.CurrentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	name := c.PostForm("name")
	if name == "" {
		h.renderCreateError(c, "A bot needs a name")
		return
	}

	categoryID := utils.StringToUint(c.PostForm("category_id"))
	var category models.Category
	if err := db.DB.First(&category, categoryID).Error; err != nil {
		h.renderCreateError(c, "Pick a valid category")
		return
	}

	avatar := c.PostForm("avatar")
	if avatar == "" {
		avatar = utils.GetRandomEmoji()
	}

	bot := models.Bot{
		Pid:         utils.RandStringBytesMaskImpr(8),
		UserID:      currentUser.ID,
		CategoryID:  category.ID,
		Name:        name,
		Tagline:     c.PostForm("tagline"),
		Description: c.PostForm("description"),
		Greeting:    c.PostForm("greeting"),
		Avatar:      avatar,
		Unlisted:    c.PostForm("unlisted") == "on",
	}

	if err := db.DB.Create(&bot).Error; err != nil {
		h.renderCreateError(c, "Could not save the bot, try again")
		return
	}

	c.Redirect(http.StatusFound, "/b/"+bot.Pid)
}

func (h *BotHandler) renderCreateError(c *gin.Context, msg string) {
	var categories []models.Category
	db.DB.Order("id ASC").Find(&categories)
	Render(c, http.StatusBadRequest, "bot/create.html", gin.H{
		"Title":      "New bot",
		"Error":      msg,
		"Categories": categories,
		"Emojis":     utils.GetCommonEmojis(),
	})
}

// ImportCard accepts a character card PNG and prefills the create form from
// the JSON embedded in its tEXt chunk.
func (h *BotHandler) ImportCard(c *gin.Context) {
	file, _, err := c.Request.FormFile("card")
	if err != nil {
		h.renderCreateError(c, "Choose a PNG card to import")
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(io.LimitReader(file, maxCardSize))
	if err != nil {
		h.renderCreateError(c, "Could not read the uploaded file")
		return
	}

	payload, err := utils.ExtractCharCard(raw)
	if err != nil {
		h.renderCreateError(c, "That PNG has no character data in it")
		return
	}

	card, err := parseCharCard(payload)
	if err != nil {
		h.renderCreateError(c, "The card data could not be parsed")
		return
	}

	var categories []models.Category
	db.DB.Order("id ASC").Find(&categories)
	Render(c, http.StatusOK, "bot/create.html", gin.H{
		"Title":      "New bot",
		"Imported":   true,
		"Prefill":    card,
		"Categories": categories,
		"Emojis":     utils.GetCommonEmojis(),
	})
}

// CharCard is the slice of a character card payload BotCafe understands.
type CharCard struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	FirstMes    string `json:"first_mes"`
	Personality string `json:"personality"`
}

// parseCharCard reads card payloads in both layouts: v2 wraps the fields in
// a "data" object, v1 has them at the top level.
func parseCharCard(payload []byte) (*CharCard, error) {
	var v2 struct {
		Spec string   `json:"spec"`
		Data CharCard `json:"data"`
	}
	if err := json.Unmarshal(payload, &v2); err == nil && v2.Data.Name != "" {
		return &v2.Data, nil
	}

	var v1 CharCard
	if err := json.Unmarshal(payload, &v1); err != nil {
		return nil, err
	}
	if v1.Name == "" {
		return nil, fmt.Errorf("card has no name field")
	}
	return &v1, nil
}

// ExportCard serves the bot as a character card PNG: a flat avatar tile
// with the definition embedded in a tEXt chunk.
func (h *BotHandler) ExportCard(c *gin.Context) {
	var bot models.Bot
	if err := db.DB.Where("pid = ?", c.Param("pid")).First(&bot).Error; err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	currentUser, _ := middleware.CurrentUser(c)
	if bot.Unlisted && (currentUser == nil || currentUser.ID != bot.UserID) {
		c.Status(http.StatusNotFound)
		return
	}

	payload, err := json.Marshal(gin.H{
		"spec":         "chara_card_v2",
		"spec_version": "2.0",
		"data": CharCard{
			Name:        bot.Name,
			Description: bot.Description,
			FirstMes:    bot.Greeting,
			Personality: bot.Tagline,
		},
	})
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	tile, err := cardTilePNG()
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	card, err := utils.EmbedCharCard(tile, payload)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.card.png", bot.Pid))
	c.Data(http.StatusOK, "image/png", card)
}

// cardTilePNG renders the flat base image the card data is embedded into
func cardTilePNG() ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, 256, 256))
	fill := color.RGBA{R: 0xfa, G: 0xf6, B: 0xf1, A: 0xff}
	draw.Draw(img, img.Bounds(), &image.Uniform{C: fill}, image.Point{}, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ShowEdit renders the edit form, creator only
func (h *BotHandler) ShowEdit(c *gin.Context) {
	currentUser, _ := middleware.CurrentUser(c)

	var bot models.Bot
	if err := db.DB.Where("pid = ?", c.Param("pid")).First(&bot).Error; err != nil {
		RenderError(c, http.StatusNotFound, "Bot not found")
		return
	}
	if currentUser == nil || bot.UserID != currentUser.ID {
		RenderError(c, http.StatusForbidden, "Only the creator can edit this bot")
		return
	}

	var categories []models.Category
	db.DB.Order("id ASC").Find(&categories)
	Render(c, http.StatusOK, "bot/edit.html", gin.H{
		"Title":      "Edit " + bot.Name,
		"Bot":        bot,
		"Categories": categories,
		"Emojis":     utils.GetCommonEmojis(),
	})
}

// Update handles the edit form post, creator only
func (h *BotHandler) Update(c *gin.Context) {
	currentUser, _ := middleware.CurrentUser(c)

	var bot models.Bot
	if err := db.DB.Where("pid = ?", c.Param("pid")).First(&bot).Error; err != nil {
		RenderError(c, http.StatusNotFound, "Bot not found")
		return
	}
	if currentUser == nil || bot.UserID != currentUser.ID {
		RenderError(c, http.StatusForbidden, "Only the creator can edit this bot")
		return
	}

	name := c.PostForm("name")
	if name == "" {
		RenderError(c, http.StatusBadRequest, "A bot needs a name")
		return
	}

	updates := map[string]interface{}{
		"name":        name,
		"tagline":     c.PostForm("tagline"),
		"description": c.PostForm("description"),
		"greeting":    c.PostForm("greeting"),
		"unlisted":    c.PostForm("unlisted") == "on",
	}
	if avatar := c.PostForm("avatar"); avatar != "" {
		updates["avatar"] = avatar
	}
	if categoryID := utils.StringToUint(c.PostForm("category_id")); categoryID != 0 {
		var category models.Category
		if err := db.DB.First(&category, categoryID).Error; err == nil {
			updates["category_id"] = category.ID
		}
	}

	if err := db.DB.Model(&bot).Updates(updates).Error; err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not save changes")
		return
	}

	utils.GetCache().Delete(fmt.Sprintf("bot:detail:%d", bot.ID))

	c.Redirect(http.StatusFound, "/b/"+bot.Pid)
}

// Delete removes a bot and its interactions, creator only
func (h *BotHandler) Delete(c *gin.Context) {
	currentUser, _ := middleware.CurrentUser(c)

	var bot models.Bot
	if err := db.DB.Where("pid = ?", c.Param("pid")).First(&bot).Error; err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	if currentUser == nil || bot.UserID != currentUser.ID {
		c.Status(http.StatusForbidden)
		return
	}

	if err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bot_id = ?", bot.ID).Delete(&models.Interaction{}).Error; err != nil {
			return err
		}
		return tx.Delete(&bot).Error
	}); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	utils.GetCache().Delete(fmt.Sprintf("bot:detail:%d", bot.ID))

	HtmxRedirect(c, "/dashboard")
}

// interactionStatusFor loads the caller's toggle state for the detail page
func interactionStatusFor(userID, botID uint) services.InteractionStatus {
	perms := services.NewPermissionService(db.DB)
	return services.NewInteractionService(db.DB, perms).Status(userID, botID)
}
