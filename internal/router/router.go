package router

import (
	"botcafe/internal/db"
	"botcafe/internal/handlers"
	"botcafe/internal/middleware"
	"botcafe/internal/services"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Services are wired here so handlers get explicit collaborators
	permService := services.NewPermissionService(db.DB)
	interactionService := services.NewInteractionService(db.DB, permService)
	moodService := services.NewMoodService(db.DB)

	// Handlers
	authHandler := handlers.NewAuthHandler()
	botHandler := handlers.NewBotHandler()
	interactionHandler := handlers.NewInteractionHandler(interactionService)
	creatorHandler := handlers.NewCreatorHandler(moodService)
	moodHandler := handlers.NewMoodHandler(moodService)
	docsHandler := handlers.NewDocsHandler()
	seoHandler := handlers.NewSEOHandler()

	// Public routes
	r.GET("/", botHandler.ListTrending)          // front page, trending bots
	r.GET("/new", botHandler.ListNew)            // newest bots
	r.GET("/b/:pid", botHandler.Detail)          // bot profile page
	r.GET("/b/:pid/card.png", botHandler.ExportCard)
	r.GET("/c/:name", botHandler.ListByCategory) // bots in one category
	r.GET("/categories", botHandler.ListCategories)
	r.GET("/u/:id", creatorHandler.Profile) // public creator page

	r.GET("/help", docsHandler.HelpIndex)
	r.GET("/help/:slug", docsHandler.ShowHelp)
	r.GET("/legal/:slug", docsHandler.ShowLegal)

	r.GET("/signup", authHandler.ShowRegister)
	r.POST("/signup", authHandler.Register)
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)

	// Google OAuth
	r.GET("/auth/google", authHandler.GoogleLogin)
	r.GET("/auth/google/callback", authHandler.GoogleCallback)
	r.GET("/auth/google/bind", middleware.AuthRequired(), authHandler.BindGoogle)
	r.GET("/auth/google/bind/callback", authHandler.GoogleBindCallback)
	r.POST("/auth/google/unbind", middleware.AuthRequired(), authHandler.UnbindGoogle)

	// Bot interaction API. Not behind AuthRequired: the toggles answer 401
	// as JSON instead of redirecting, and status works logged out.
	r.POST("/bots/:id/like", interactionHandler.Like)
	r.POST("/bots/:id/favorite", interactionHandler.Favorite)
	r.GET("/bots/:id/status", interactionHandler.Status)

	// SEO
	r.GET("/robots.txt", seoHandler.RobotsTxt)
	r.GET("/sitemap.xml", seoHandler.SitemapXML)

	// Protected routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/submit", botHandler.ShowCreate)       // new bot form
		authorized.POST("/submit", botHandler.Create)          // publish bot
		authorized.POST("/submit/import", botHandler.ImportCard)
		authorized.GET("/b/:pid/edit", botHandler.ShowEdit)
		authorized.POST("/b/:pid/edit", botHandler.Update)
		authorized.DELETE("/b/:pid", botHandler.Delete)
	}

	// Dashboard routes
	dashboard := r.Group("/dashboard")
	dashboard.Use(middleware.AuthRequired())
	{
		dashboard.GET("", creatorHandler.Dashboard)
		dashboard.GET("/settings", creatorHandler.ShowSettings)
		dashboard.POST("/settings", creatorHandler.UpdateSettings)

		dashboard.GET("/mood", moodHandler.Journal)       // mood journal page
		dashboard.POST("/mood", moodHandler.Create)       // log today's mood
		dashboard.DELETE("/mood/:id", moodHandler.Delete) // remove an entry
	}
}
