package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"botcafe/internal/middleware"
	"botcafe/internal/services"
	"botcafe/internal/utils"

	"github.com/gin-gonic/gin"
)

type MoodHandler struct {
	moods *services.MoodService
}

func NewMoodHandler(moods *services.MoodService) *MoodHandler {
	return &MoodHandler{moods: moods}
}

// Journal renders the mood journal page with recent entries and stats
func (h *MoodHandler) Journal(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	Render(c, http.StatusOK, "dashboard/mood.html", gin.H{
		"Title":   "Mood journal",
		"Entries": h.moods.Recent(user.ID, 30),
		"Stats":   h.moods.Stats(user.ID),
	})
}

// Create logs today's mood from the journal form
func (h *MoodHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apiError(c, http.StatusUnauthorized, "login required")
		return
	}

	mood := utils.StringToInt(c.PostForm("mood"))
	note := c.PostForm("note")

	entry, err := h.moods.Log(user.ID, mood, note)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMoodOutOfRange):
			apiError(c, http.StatusBadRequest, "mood must be between 1 and 5")
		case errors.Is(err, services.ErrAlreadyLoggedToday):
			apiError(c, http.StatusConflict, "you already logged your mood today")
		default:
			apiError(c, http.StatusInternalServerError, "could not save the entry")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":    entry.ID,
		"mood":  entry.Mood,
		"note":  entry.Note,
		"stats": h.moods.Stats(user.ID),
	})
}

// Delete removes one of the caller's own entries
func (h *MoodHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apiError(c, http.StatusUnauthorized, "login required")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		apiError(c, http.StatusBadRequest, "missing or invalid entry id")
		return
	}

	if err := h.moods.Delete(user.ID, uint(id)); err != nil {
		if errors.Is(err, services.ErrEntryNotFound) {
			apiError(c, http.StatusNotFound, "entry not found")
			return
		}
		apiError(c, http.StatusInternalServerError, "could not delete the entry")
		return
	}

	c.Status(http.StatusOK)
}
