package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"botcafe/internal/db"
	"botcafe/internal/middleware"
	"botcafe/internal/models"
	"botcafe/internal/services"
	"botcafe/internal/testutil"
	"gorm.io/gorm"
)

// newInteractionRouter wires the interaction endpoints against a test
// database. When user is non-nil it is placed on the context the way
// LoadUser does in production.
func newInteractionRouter(gdb *gorm.DB, user *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)

	perms := services.NewPermissionService(gdb)
	handler := NewInteractionHandler(services.NewInteractionService(gdb, perms))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if user != nil {
			c.Set(middleware.CheckUserKey, user)
		}
		c.Next()
	})
	r.POST("/bots/:id/like", handler.Like)
	r.POST("/bots/:id/favorite", handler.Favorite)
	r.GET("/bots/:id/status", handler.Status)
	return r
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func doJSON(t *testing.T, r *gin.Engine, method, path string) (int, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestLikeEndpointToggles(t *testing.T) {
	// Successful toggles hand the bot to the background recount worker,
	// which may still read db.DB after this test returns. Leave the
	// in-memory handle open; it goes away with the process.
	gdb := testutil.SetupTestDB(t)
	db.DB = gdb

	creator := testutil.TestUser(t, gdb)
	bot := testutil.TestBot(t, gdb, creator.ID)
	user := testutil.TestUser(t, gdb)
	r := newInteractionRouter(gdb, user)

	code, body := doJSON(t, r, http.MethodPost, "/bots/"+itoa(bot.ID)+"/like")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["liked"])
	assert.Equal(t, float64(1), body["likes_count"])

	code, body = doJSON(t, r, http.MethodPost, "/bots/"+itoa(bot.ID)+"/like")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, body["liked"])
	assert.Equal(t, float64(0), body["likes_count"])
}

func TestFavoriteEndpointShape(t *testing.T) {
	// Same as the like test: the recount worker can outlive the test,
	// so the handle stays open.
	gdb := testutil.SetupTestDB(t)
	db.DB = gdb

	creator := testutil.TestUser(t, gdb)
	bot := testutil.TestBot(t, gdb, creator.ID)
	user := testutil.TestUser(t, gdb)
	r := newInteractionRouter(gdb, user)

	code, body := doJSON(t, r, http.MethodPost, "/bots/"+itoa(bot.ID)+"/favorite")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["favorited"])
	assert.Equal(t, float64(1), body["favorites_count"])
	assert.NotContains(t, body, "liked")
}

func TestToggleRequiresLogin(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, gdb)
	db.DB = gdb

	creator := testutil.TestUser(t, gdb)
	bot := testutil.TestBot(t, gdb, creator.ID)
	r := newInteractionRouter(gdb, nil)

	code, body := doJSON(t, r, http.MethodPost, "/bots/"+itoa(bot.ID)+"/like")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "login required", body["message"])

	// Nothing was written
	var count int64
	gdb.Model(&models.Interaction{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestToggleInvalidBotID(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, gdb)
	db.DB = gdb

	user := testutil.TestUser(t, gdb)
	r := newInteractionRouter(gdb, user)

	for _, path := range []string{"/bots/abc/like", "/bots/0/like", "/bots/-3/favorite"} {
		code, body := doJSON(t, r, http.MethodPost, path)
		assert.Equal(t, http.StatusBadRequest, code, path)
		assert.Equal(t, "missing or invalid bot id", body["message"], path)
	}
}

func TestToggleUnknownBot(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, gdb)
	db.DB = gdb

	user := testutil.TestUser(t, gdb)
	r := newInteractionRouter(gdb, user)

	code, body := doJSON(t, r, http.MethodPost, "/bots/99999/like")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "bot not found", body["message"])
}

func TestToggleStaleSessionUser(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, gdb)
	db.DB = gdb

	creator := testutil.TestUser(t, gdb)
	bot := testutil.TestBot(t, gdb, creator.ID)

	// A user struct whose row no longer exists, like a cookie that
	// outlived the account
	ghost := &models.User{ID: 99999, Username: "ghost"}
	r := newInteractionRouter(gdb, ghost)

	code, body := doJSON(t, r, http.MethodPost, "/bots/"+itoa(bot.ID)+"/favorite")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "account not found, please sign in again", body["message"])
}

func TestStatusEndpointNeverErrors(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, gdb)
	db.DB = gdb

	r := newInteractionRouter(gdb, nil)

	// Garbage and unknown ids still answer 200 with the default shape
	for _, path := range []string{"/bots/abc/status", "/bots/0/status", "/bots/99999/status"} {
		code, body := doJSON(t, r, http.MethodGet, path)
		assert.Equal(t, http.StatusOK, code, path)
		assert.Equal(t, false, body["liked"], path)
		assert.Equal(t, false, body["favorited"], path)
		assert.Equal(t, "none", body["permission"], path)
	}
}

func TestStatusEndpointForLoggedInUser(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, gdb)
	db.DB = gdb

	creator := testutil.TestUser(t, gdb)
	bot := testutil.TestBot(t, gdb, creator.ID)
	user := testutil.TestUser(t, gdb)
	testutil.TestInteraction(t, gdb, user.ID, bot.ID, true, true)

	r := newInteractionRouter(gdb, user)

	code, body := doJSON(t, r, http.MethodGet, "/bots/"+itoa(bot.ID)+"/status")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["liked"])
	assert.Equal(t, true, body["favorited"])
	assert.Equal(t, "viewer", body["permission"])
}
