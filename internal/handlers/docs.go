package handlers

import (
	"fmt"
	"net/http"
	"time"

	"botcafe/internal/db"
	"botcafe/internal/models"
	"botcafe/internal/utils"

	"github.com/gin-gonic/gin"
)

type DocsHandler struct{}

func NewDocsHandler() *DocsHandler {
	return &DocsHandler{}
}

// HelpIndex lists the help articles at /help
func (h *DocsHandler) HelpIndex(c *gin.Context) {
	var docs []models.Doc
	db.DB.Where("kind = ?", models.DocKindHelp).Order("sort ASC").Find(&docs)

	var legal []models.Doc
	db.DB.Where("kind = ?", models.DocKindLegal).Order("sort ASC").Find(&legal)

	Render(c, http.StatusOK, "docs/index.html", gin.H{
		"Title": "Help",
		"Docs":  docs,
		"Legal": legal,
	})
}

// ShowHelp renders a single help article at /help/:slug
func (h *DocsHandler) ShowHelp(c *gin.Context) {
	h.show(c, models.DocKindHelp)
}

// ShowLegal renders a legal page at /legal/:slug
func (h *DocsHandler) ShowLegal(c *gin.Context) {
	h.show(c, models.DocKindLegal)
}

func (h *DocsHandler) show(c *gin.Context, kind models.DocKind) {
	slug := c.Param("slug")

	// Docs rarely change; cache the rendered body
	cacheKey := fmt.Sprintf("doc:%s:%s", kind, slug)
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if hData, ok := cached.(gin.H); ok {
			Render(c, http.StatusOK, "docs/show.html", hData)
			return
		}
	}

	var doc models.Doc
	if err := db.DB.Where("slug = ? AND kind = ?", slug, kind).First(&doc).Error; err != nil {
		RenderError(c, http.StatusNotFound, "Page not found")
		return
	}

	renderData := gin.H{
		"Title":    doc.Title,
		"Doc":      doc,
		"BodyHTML": utils.RenderMarkdown(doc.Body),
	}
	utils.GetCache().Set(cacheKey, renderData, 10*time.Minute)

	Render(c, http.StatusOK, "docs/show.html", renderData)
}
