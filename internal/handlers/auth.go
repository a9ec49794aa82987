package handlers

import (
	"net/http"
	"strings"

	"botcafe/internal/db"
	"botcafe/internal/models"
	"botcafe/internal/services"
	"botcafe/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	captchaService *services.CaptchaService
}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{
		captchaService: services.NewCaptchaService(),
	}
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	question, answer := h.captchaService.GenerateMathProblem()
	session := sessions.Default(c)
	session.Set("captcha_answer", answer)
	session.Save()
	Render(c, http.StatusOK, "auth/register.html", gin.H{"Captcha": question})
}

// createUser is shared by signup and the OAuth first-login path
func (h *AuthHandler) createUser(username, email, password string) (*models.User, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username: username,
		Email:    email,
		Password: hash,
		Avatar:   utils.GetRandomEmoji(),
	}

	if err := db.DB.Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (h *AuthHandler) Register(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")
	captchaInput := c.PostForm("captcha")

	session := sessions.Default(c)
	expectedAnswer, ok := session.Get("captcha_answer").(int)
	if !ok || utils.StringToInt(captchaInput) != expectedAnswer {
		h.renderRegisterError(c, "Wrong captcha answer")
		return
	}
	// Clear captcha after use
	session.Delete("captcha_answer")
	session.Save()

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		h.renderRegisterError(c, "That email address doesn't look right")
		return
	}
	username := parts[0]

	if len(password) < 6 {
		h.renderRegisterError(c, "Password needs at least 6 characters")
		return
	}

	user, err := h.createUser(username, email, password)
	if err != nil {
		h.renderRegisterError(c, "That email is already registered")
		return
	}

	session.Set("user_id", user.ID)
	session.Save()

	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) renderRegisterError(c *gin.Context, msg string) {
	question, answer := h.captchaService.GenerateMathProblem()
	session := sessions.Default(c)
	session.Set("captcha_answer", answer)
	session.Save()
	Render(c, http.StatusBadRequest, "auth/register.html", gin.H{"Error": msg, "Captcha": question})
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	Render(c, http.StatusOK, "auth/login.html", nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	var user models.User
	if err := db.DB.Where("email = ?", email).First(&user).Error; err != nil {
		Render(c, http.StatusUnauthorized, "auth/login.html", gin.H{"Error": "Wrong email or password"})
		return
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		Render(c, http.StatusUnauthorized, "auth/login.html", gin.H{"Error": "Wrong email or password"})
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/")
}
