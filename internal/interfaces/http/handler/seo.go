package handler

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/mbsolutions/storefront/internal/application/catalog"
)

// SEOHandler generates sitemap.xml and robots.txt from the live catalog
type SEOHandler struct {
	BaseHandler
	products *catalogapp.ProductService
	baseURL  string
}

// NewSEOHandler creates a new SEOHandler
func NewSEOHandler(products *catalogapp.ProductService, baseURL string) *SEOHandler {
	return &SEOHandler{
		products: products,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// Sitemap renders the sitemap from the current product list
func (h *SEOHandler) Sitemap(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		h.InternalError(c, err)
		return
	}

	urls := []sitemapURL{{
		Loc:        h.baseURL + "/",
		ChangeFreq: "daily",
		Priority:   "1.0",
	}}
	for _, p := range products {
		u := sitemapURL{
			Loc:        fmt.Sprintf("%s/producto/%d", h.baseURL, p.ID),
			ChangeFreq: "weekly",
			Priority:   "0.8",
		}
		if p.UpdatedAt != nil {
			u.LastMod = p.UpdatedAt.Format(time.DateOnly)
		} else if !p.CreatedAt.IsZero() {
			u.LastMod = p.CreatedAt.Format(time.DateOnly)
		}
		urls = append(urls, u)
	}

	out, err := xml.MarshalIndent(sitemapURLSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}, "", "  ")
	if err != nil {
		h.InternalError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/xml; charset=utf-8",
		append([]byte(xml.Header), out...))
}

// Robots renders robots.txt pointing crawlers at the sitemap
func (h *SEOHandler) Robots(c *gin.Context) {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /api/\n\n")
	b.WriteString("Sitemap: " + h.baseURL + "/sitemap.xml\n")
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(b.String()))
}
