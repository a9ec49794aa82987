package handlers

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"botcafe/internal/db"
	"botcafe/internal/models"

	"github.com/gin-gonic/gin"
)

type SEOHandler struct{}

func NewSEOHandler() *SEOHandler {
	return &SEOHandler{}
}

func getSiteURL() string {
	siteURL := os.Getenv("SITE_URL")
	if siteURL == "" {
		siteURL = "https://botcafe.app"
	}
	return siteURL
}

// RobotsTxt serves robots.txt
func (h *SEOHandler) RobotsTxt(c *gin.Context) {
	siteURL := getSiteURL()
	content := fmt.Sprintf(`User-agent: *
Allow: /

# Keep crawlers out of the dashboard and auth pages
Disallow: /dashboard/
Disallow: /login
Disallow: /signup

# API endpoints
Disallow: /bots/

Sitemap: %s/sitemap.xml

Crawl-delay: 1
`, siteURL)

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.String(http.StatusOK, content)
}

// SitemapXML generates sitemap.xml from categories, docs and recent bots
func (h *SEOHandler) SitemapXML(c *gin.Context) {
	siteURL := getSiteURL()
	now := time.Now().Format("2006-01-02")

	xml := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
`

	xml += fmt.Sprintf(`  <url>
    <loc>%s/</loc>
    <lastmod>%s</lastmod>
    <changefreq>daily</changefreq>
    <priority>1.0</priority>
  </url>
`, siteURL, now)

	xml += fmt.Sprintf(`  <url>
    <loc>%s/new</loc>
    <lastmod>%s</lastmod>
    <changefreq>hourly</changefreq>
    <priority>0.9</priority>
  </url>
`, siteURL, now)

	var categories []models.Category
	db.DB.Find(&categories)
	for _, category := range categories {
		xml += fmt.Sprintf(`  <url>
    <loc>%s/c/%s</loc>
    <lastmod>%s</lastmod>
    <changefreq>daily</changefreq>
    <priority>0.7</priority>
  </url>
`, siteURL, category.Name, now)
	}

	var docs []models.Doc
	db.DB.Find(&docs)
	for _, doc := range docs {
		prefix := "help"
		if doc.Kind == models.DocKindLegal {
			prefix = "legal"
		}
		xml += fmt.Sprintf(`  <url>
    <loc>%s/%s/%s</loc>
    <lastmod>%s</lastmod>
    <changefreq>monthly</changefreq>
    <priority>0.5</priority>
  </url>
`, siteURL, prefix, doc.Slug, doc.UpdatedAt.Format("2006-01-02"))
	}

	// Recent public bots, capped so the sitemap stays small
	var bots []models.Bot
	db.DB.Where("unlisted = ?", false).Order("created_at DESC").Limit(500).Find(&bots)
	for _, bot := range bots {
		lastmod := bot.UpdatedAt.Format("2006-01-02")
		daysSinceCreated := time.Since(bot.CreatedAt).Hours() / 24
		priority := 0.6
		changefreq := "weekly"

		if daysSinceCreated < 7 {
			priority = 0.8
			changefreq = "daily"
		} else if daysSinceCreated < 30 {
			priority = 0.7
		}

		xml += fmt.Sprintf(`  <url>
    <loc>%s/b/%s</loc>
    <lastmod>%s</lastmod>
    <changefreq>%s</changefreq>
    <priority>%.1f</priority>
  </url>
`, siteURL, bot.Pid, lastmod, changefreq, priority)
	}

	xml += `</urlset>`

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.String(http.StatusOK, xml)
}
