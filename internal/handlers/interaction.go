package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"botcafe/internal/middleware"
	"botcafe/internal/services"
	"botcafe/internal/utils"

	"github.com/gin-gonic/gin"
)

type InteractionHandler struct {
	interactions *services.InteractionService
}

func NewInteractionHandler(interactions *services.InteractionService) *InteractionHandler {
	return &InteractionHandler{interactions: interactions}
}

// Like handles POST /bots/:id/like
func (h *InteractionHandler) Like(c *gin.Context) {
	h.toggle(c, services.KindLike)
}

// Favorite handles POST /bots/:id/favorite
func (h *InteractionHandler) Favorite(c *gin.Context) {
	h.toggle(c, services.KindFavorite)
}

func (h *InteractionHandler) toggle(c *gin.Context, kind services.InteractionKind) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apiError(c, http.StatusUnauthorized, "login required")
		return
	}

	botID, ok := parseBotID(c)
	if !ok {
		apiError(c, http.StatusBadRequest, "missing or invalid bot id")
		return
	}

	result, err := h.interactions.Toggle(kind, user.ID, botID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBadTarget):
			apiError(c, http.StatusBadRequest, "missing or invalid bot id")
		case errors.Is(err, services.ErrUserNotSynced):
			apiError(c, http.StatusNotFound, "account not found, please sign in again")
		case errors.Is(err, services.ErrBotNotFound):
			apiError(c, http.StatusNotFound, "bot not found")
		default:
			apiError(c, http.StatusInternalServerError, "could not update interaction")
		}
		return
	}

	// The detail page caches counters; drop it and let the trending worker
	// recount in the background.
	utils.GetCache().Delete(fmt.Sprintf("bot:detail:%d", botID))
	services.GetTrendingService().ScheduleSync(botID)

	if kind == services.KindFavorite {
		c.JSON(http.StatusOK, gin.H{"favorited": result.Active, "favorites_count": result.Count})
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": result.Active, "likes_count": result.Count})
}

// Status handles GET /bots/:id/status. It degrades to defaults instead of
// erroring so the page can always render its buttons.
func (h *InteractionHandler) Status(c *gin.Context) {
	var userID uint
	if user, ok := middleware.CurrentUser(c); ok {
		userID = user.ID
	}

	botID, _ := parseBotID(c)
	c.JSON(http.StatusOK, h.interactions.Status(userID, botID))
}

func parseBotID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}
