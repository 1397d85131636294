package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/balludanga/merikahani-backend/db"
	"github.com/balludanga/merikahani-backend/internal/model"
)

const (
	sitemapMaxEntries = 1000
	rssMaxEntries     = 50
)

type SEOPostStore interface {
	GetPublishedWithAuthors(limit int) ([]model.PostWithAuthor, error)
}

type SEOUserStore interface {
	GetAuthorsWithPublishedPosts() ([]model.User, error)
}

// SEOCache holds rendered feeds for a short TTL. A nil cache disables
// caching entirely.
type SEOCache interface {
	Get(key string) (string, bool)
	Set(key, value string, ttl time.Duration) error
}

type SEOHandler struct {
	posts   SEOPostStore
	users   SEOUserStore
	cache   SEOCache
	baseURL string
}

func NewSEOHandler(posts SEOPostStore, users SEOUserStore, cache SEOCache, baseURL string) *SEOHandler {
	return &SEOHandler{
		posts:   posts,
		users:   users,
		cache:   cache,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (h *SEOHandler) Sitemap(c *gin.Context) {
	if h.cache != nil {
		if cached, ok := h.cache.Get(db.SitemapCacheKey); ok {
			c.Data(http.StatusOK, "application/xml", []byte(cached))
			return
		}
	}

	posts, err := h.posts.GetPublishedWithAuthors(sitemapMaxEntries)
	if err != nil {
		slog.Error("error fetching posts for sitemap", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	users, err := h.users.GetAuthorsWithPublishedPosts()
	if err != nil {
		slog.Error("error fetching authors for sitemap", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")

	writeSitemapURL(&b, h.baseURL+"/", time.Now().UTC().Format("2006-01-02"), "daily", "1.0")

	for _, post := range posts {
		writeSitemapURL(&b, h.baseURL+"/post/"+post.Slug, post.UpdatedAt.Format("2006-01-02"), "weekly", "0.8")
	}

	for _, user := range users {
		writeSitemapURL(&b, h.baseURL+"/profile/"+user.Username, "", "weekly", "0.6")
	}

	b.WriteString("</urlset>")

	xml := b.String()
	if h.cache != nil {
		if err := h.cache.Set(db.SitemapCacheKey, xml, db.SEOCacheTTL); err != nil {
			slog.Warn("error caching sitemap", "error", err)
		}
	}

	c.Data(http.StatusOK, "application/xml", []byte(xml))
}

func (h *SEOHandler) RSS(c *gin.Context) {
	if h.cache != nil {
		if cached, ok := h.cache.Get(db.RSSCacheKey); ok {
			c.Data(http.StatusOK, "application/xml", []byte(cached))
			return
		}
	}

	posts, err := h.posts.GetPublishedWithAuthors(rssMaxEntries)
	if err != nil {
		slog.Error("error fetching posts for rss", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">` + "\n")
	b.WriteString("  <channel>\n")
	b.WriteString("    <title>Meri Kahani - कहानी घर घर की</title>\n")
	fmt.Fprintf(&b, "    <link>%s</link>\n", h.baseURL)
	b.WriteString("    <description>Voice-enabled Hindi and English storytelling platform</description>\n")
	b.WriteString("    <language>hi</language>\n")
	fmt.Fprintf(&b, "    <lastBuildDate>%s</lastBuildDate>\n", time.Now().UTC().Format(rssTimeFormat))
	fmt.Fprintf(&b, `    <atom:link href="%s/rss.xml" rel="self" type="application/rss+xml"/>`+"\n", h.baseURL)

	for _, post := range posts {
		description := post.Subtitle.String
		if description == "" {
			description = truncate(post.Content, 200)
		}

		author := post.AuthorUsername
		if post.AuthorFullName.Valid {
			author = post.AuthorFullName.String
		}

		b.WriteString("    <item>\n")
		fmt.Fprintf(&b, "      <title>%s</title>\n", xmlEscape(post.Title))
		fmt.Fprintf(&b, "      <link>%s/post/%s</link>\n", h.baseURL, post.Slug)
		fmt.Fprintf(&b, "      <description>%s</description>\n", xmlEscape(description))
		fmt.Fprintf(&b, "      <author>%s (%s)</author>\n", xmlEscape(post.AuthorEmail), xmlEscape(author))
		fmt.Fprintf(&b, "      <pubDate>%s</pubDate>\n", post.CreatedAt.UTC().Format(rssTimeFormat))
		fmt.Fprintf(&b, "      <guid>%s/post/%s</guid>\n", h.baseURL, post.Slug)
		b.WriteString("    </item>\n")
	}

	b.WriteString("  </channel>\n")
	b.WriteString("</rss>")

	rss := b.String()
	if h.cache != nil {
		if err := h.cache.Set(db.RSSCacheKey, rss, db.SEOCacheTTL); err != nil {
			slog.Warn("error caching rss", "error", err)
		}
	}

	c.Data(http.StatusOK, "application/xml", []byte(rss))
}

const rssTimeFormat = "Mon, 02 Jan 2006 15:04:05 +0000"

func writeSitemapURL(b *strings.Builder, loc, lastmod, changefreq, priority string) {
	b.WriteString("  <url>\n")
	fmt.Fprintf(b, "    <loc>%s</loc>\n", xmlEscape(loc))
	if lastmod != "" {
		fmt.Fprintf(b, "    <lastmod>%s</lastmod>\n", lastmod)
	}
	fmt.Fprintf(b, "    <changefreq>%s</changefreq>\n", changefreq)
	fmt.Fprintf(b, "    <priority>%s</priority>\n", priority)
	b.WriteString("  </url>\n")
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func xmlEscape(s string) string {
	return xmlEscaper.Replace(s)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
