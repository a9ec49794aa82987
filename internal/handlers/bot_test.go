package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"botcafe/internal/db"
	"botcafe/internal/middleware"
	"botcafe/internal/models"
	"botcafe/internal/testutil"
	"botcafe/internal/utils"
)

func newBotRouter(user *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewBotHandler()
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if user != nil {
			c.Set(middleware.CheckUserKey, user)
		}
		c.Next()
	})
	r.GET("/b/:pid/card.png", handler.ExportCard)
	return r
}

func TestExportCardRoundTrip(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, gdb)
	db.DB = gdb

	creator := testutil.TestUser(t, gdb)
	bot := testutil.TestBot(t, gdb, creator.ID)
	require.NoError(t, gdb.Model(bot).Updates(map[string]interface{}{
		"name":     "Night Owl",
		"greeting": "Hoo goes there?",
	}).Error)

	r := newBotRouter(nil)
	req := httptest.NewRequest(http.MethodGet, "/b/"+bot.Pid+"/card.png", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	payload, err := utils.ExtractCharCard(w.Body.Bytes())
	require.NoError(t, err)

	card, err := parseCharCard(payload)
	require.NoError(t, err)
	assert.Equal(t, "Night Owl", card.Name)
	assert.Equal(t, "Hoo goes there?", card.FirstMes)
}

func TestCardTilePNGIsWellFormed(t *testing.T) {
	tile, err := cardTilePNG()
	require.NoError(t, err)

	// The tile walks as a clean chunk sequence with no card yet
	_, err = utils.ExtractCharCard(tile)
	assert.ErrorIs(t, err, utils.ErrNoCharCard)
}

func TestExportCardHidesUnlistedFromOthers(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, gdb)
	db.DB = gdb

	creator := testutil.TestUser(t, gdb)
	bot := testutil.TestBot(t, gdb, creator.ID, testutil.WithUnlisted())

	r := newBotRouter(nil)
	req := httptest.NewRequest(http.MethodGet, "/b/"+bot.Pid+"/card.png", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// The creator still gets it
	r = newBotRouter(creator)
	req = httptest.NewRequest(http.MethodGet, "/b/"+bot.Pid+"/card.png", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
