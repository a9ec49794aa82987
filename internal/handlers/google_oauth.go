package handlers

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"botcafe/internal/db"
	"botcafe/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

var googleOauthConfig *oauth2.Config

// InitGoogleOAuth wires the Google OAuth config from the environment
func InitGoogleOAuth() {
	siteURL := os.Getenv("SITE_URL")
	if siteURL == "" {
		siteURL = "http://localhost:8080"
	}

	googleOauthConfig = &oauth2.Config{
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		RedirectURL:  siteURL + "/auth/google/callback",
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
}

func generateStateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// GoogleLogin starts the Google OAuth flow
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	state, err := generateStateToken()
	if err != nil {
		c.String(http.StatusInternalServerError, "could not generate state token")
		return
	}

	// Stored in the session for callback verification
	session := sessions.Default(c)
	session.Set("oauth_state", state)
	session.Save()

	url := googleOauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline)
	c.Redirect(http.StatusTemporaryRedirect, url)
}

// GoogleCallback finishes the OAuth flow: the external identity is mapped to
// a local user row, created on first login.
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	session := sessions.Default(c)
	savedState := session.Get("oauth_state")

	if savedState == nil || c.Query("state") != savedState.(string) {
		Render(c, http.StatusBadRequest, "auth/login.html", gin.H{"Error": "Invalid state parameter"})
		return
	}

	session.Delete("oauth_state")
	session.Save()

	code := c.Query("code")
	if code == "" {
		Render(c, http.StatusBadRequest, "auth/login.html", gin.H{"Error": "No authorization code received"})
		return
	}

	token, err := googleOauthConfig.Exchange(context.Background(), code)
	if err != nil {
		Render(c, http.StatusInternalServerError, "auth/login.html", gin.H{"Error": "Token exchange failed"})
		return
	}

	userInfo, err := h.getGoogleUserInfo(token.AccessToken)
	if err != nil {
		Render(c, http.StatusInternalServerError, "auth/login.html", gin.H{"Error": "Could not fetch account info"})
		return
	}

	if !userInfo.VerifiedEmail {
		Render(c, http.StatusBadRequest, "auth/login.html", gin.H{"Error": "Google account email is not verified"})
		return
	}

	// Match by GoogleID first, then by email for accounts created via signup
	var user models.User
	err = db.DB.Where("google_id = ?", userInfo.ID).Or("email = ?", userInfo.Email).First(&user).Error

	if err != nil {
		// First login, register automatically
		username := userInfo.GivenName
		if username == "" {
			username = strings.Split(userInfo.Email, "@")[0]
		}

		// GoogleID doubles as the initial password; users can change it in settings
		newUser, err := h.createUser(username, userInfo.Email, userInfo.ID)
		if err != nil {
			Render(c, http.StatusInternalServerError, "auth/login.html", gin.H{"Error": "Could not create the account"})
			return
		}

		newUser.GoogleID = userInfo.ID
		newUser.GoogleEmail = userInfo.Email
		db.DB.Save(newUser)

		user = *newUser
	} else if user.GoogleID == "" {
		// Existing account, bind on first OAuth login
		user.GoogleID = userInfo.ID
		user.GoogleEmail = userInfo.Email
		db.DB.Save(&user)
	}

	session.Set("user_id", user.ID)
	session.Save()

	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) getGoogleUserInfo(accessToken string) (*GoogleUserInfo, error) {
	resp, err := http.Get("https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + accessToken)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo request failed: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var userInfo GoogleUserInfo
	if err := json.Unmarshal(body, &userInfo); err != nil {
		return nil, err
	}

	return &userInfo, nil
}

// BindGoogle starts the OAuth flow in bind mode for a logged-in account
func (h *AuthHandler) BindGoogle(c *gin.Context) {
	state, err := generateStateToken()
	if err != nil {
		c.String(http.StatusInternalServerError, "could not generate state token")
		return
	}

	session := sessions.Default(c)
	session.Set("oauth_state", state)
	session.Set("oauth_bind_mode", true)
	session.Save()

	// Bind mode returns to its own callback
	bindConfig := *googleOauthConfig
	bindConfig.RedirectURL = strings.TrimSuffix(googleOauthConfig.RedirectURL, "/callback") + "/bind/callback"

	url := bindConfig.AuthCodeURL(state, oauth2.AccessTypeOffline)
	c.Redirect(http.StatusTemporaryRedirect, url)
}

// GoogleBindCallback attaches a Google identity to the current account
func (h *AuthHandler) GoogleBindCallback(c *gin.Context) {
	session := sessions.Default(c)
	savedState := session.Get("oauth_state")
	bindMode := session.Get("oauth_bind_mode")

	if savedState == nil || c.Query("state") != savedState.(string) {
		c.Redirect(http.StatusFound, "/dashboard/settings?error=invalid_state")
		return
	}

	session.Delete("oauth_state")
	session.Delete("oauth_bind_mode")
	session.Save()

	if bindMode == nil || !bindMode.(bool) {
		c.Redirect(http.StatusFound, "/dashboard/settings?error=invalid_mode")
		return
	}

	userID := session.Get("user_id")
	if userID == nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	var currentUser models.User
	if err := db.DB.First(&currentUser, userID).Error; err != nil {
		c.Redirect(http.StatusFound, "/dashboard/settings?error=user_not_found")
		return
	}

	code := c.Query("code")
	if code == "" {
		c.Redirect(http.StatusFound, "/dashboard/settings?error=no_code")
		return
	}

	// The exchange must carry the same redirect_uri the auth request used
	bindConfig := *googleOauthConfig
	bindConfig.RedirectURL = strings.TrimSuffix(googleOauthConfig.RedirectURL, "/callback") + "/bind/callback"

	token, err := bindConfig.Exchange(context.Background(), code)
	if err != nil {
		c.Redirect(http.StatusFound, "/dashboard/settings?error=token_exchange_failed")
		return
	}

	userInfo, err := h.getGoogleUserInfo(token.AccessToken)
	if err != nil {
		c.Redirect(http.StatusFound, "/dashboard/settings?error=get_userinfo_failed")
		return
	}

	// Refuse if another account already owns this Google identity
	var existingUser models.User
	err = db.DB.Where("google_id = ? AND id != ?", userInfo.ID, currentUser.ID).First(&existingUser).Error
	if err == nil {
		c.Redirect(http.StatusFound, "/dashboard/settings?error=google_already_bound")
		return
	}

	currentUser.GoogleID = userInfo.ID
	currentUser.GoogleEmail = userInfo.Email
	if err := db.DB.Save(&currentUser).Error; err != nil {
		c.Redirect(http.StatusFound, "/dashboard/settings?error=bind_failed")
		return
	}

	c.Redirect(http.StatusFound, "/dashboard/settings?success=google_bound")
}

// UnbindGoogle detaches the Google identity from the current account
func (h *AuthHandler) UnbindGoogle(c *gin.Context) {
	session := sessions.Default(c)
	userID := session.Get("user_id")
	if userID == nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		c.Redirect(http.StatusFound, "/dashboard/settings?error=user_not_found")
		return
	}

	user.GoogleID = ""
	user.GoogleEmail = ""
	if err := db.DB.Save(&user).Error; err != nil {
		c.Redirect(http.StatusFound, "/dashboard/settings?error=unbind_failed")
		return
	}

	c.Redirect(http.StatusFound, "/dashboard/settings?success=google_unbound")
}
