// Package web renders the public storefront: the marketing home page and
// the shop listing. It only ever reads the catalog.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"fragranceapi/internal/httpx"
	"fragranceapi/internal/perfume"

	"github.com/rs/zerolog/log"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcMap = template.FuncMap{
	"price": func(v float64) string { return fmt.Sprintf("$%.2f", v) },
}

// FeaturedCollection is a hardcoded home-page highlight.
type FeaturedCollection struct {
	Name  string
	Image string
	Price string
}

var featured = []FeaturedCollection{
	{
		Name:  "L'Essence du Printemps",
		Image: "https://images.unsplash.com/photo-1588405748880-12d1d2a59f75?auto=format&fit=crop&q=80",
		Price: "$285",
	},
	{
		Name:  "Nuit Mystérieuse",
		Image: "https://images.unsplash.com/photo-1590736969955-71cc94901144?auto=format&fit=crop&q=80",
		Price: "$320",
	},
	{
		Name:  "Jardin Secret",
		Image: "https://images.unsplash.com/photo-1594035910387-fea47794261f?auto=format&fit=crop&q=80",
		Price: "$295",
	},
}

type Handler struct {
	catalog *perfume.Service
	home    *template.Template
	shop    *template.Template
}

func NewHandler(catalog *perfume.Service) (*Handler, error) {
	home, err := template.New("layout.html").Funcs(funcMap).
		ParseFS(templateFS, "templates/layout.html", "templates/home.html")
	if err != nil {
		return nil, fmt.Errorf("parse home templates: %w", err)
	}
	shop, err := template.New("layout.html").Funcs(funcMap).
		ParseFS(templateFS, "templates/layout.html", "templates/shop.html")
	if err != nil {
		return nil, fmt.Errorf("parse shop templates: %w", err)
	}
	return &Handler{catalog: catalog, home: home, shop: shop}, nil
}

type homeData struct {
	Title    string
	Featured []FeaturedCollection
}

// Home handles GET /
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, h.home, homeData{
		Title:    "FRAGRANCE — Discover Your Signature Scent",
		Featured: featured,
	})
}

type shopData struct {
	Title      string
	Categories []string
	Selected   string
	Query      string
	Perfumes   []perfume.Perfume
	Error      string
}

// Shop handles GET /shop. The category and q parameters drive the same
// filter the public API exposes; a load failure keeps the displayed set
// empty and shows an error instead.
func (h *Handler) Shop(w http.ResponseWriter, r *http.Request) {
	selected := r.URL.Query().Get("category")
	if selected == "" {
		selected = perfume.CategoryAll
	}
	query := r.URL.Query().Get("q")

	data := shopData{
		Title:      "Our Collection — FRAGRANCE",
		Categories: append([]string{perfume.CategoryAll}, perfume.Categories...),
		Selected:   selected,
		Query:      query,
	}

	perfumes, err := h.catalog.List(r.Context())
	if err != nil {
		log.Error().Err(err).Str("request_id", httpx.RequestIDFrom(r)).Msg("load shop listing")
		data.Error = "Failed to load perfumes. Please try again later."
	} else {
		data.Perfumes = perfume.Filter(perfumes, selected, query)
	}

	h.render(w, r, h.shop, data)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, tmpl *template.Template, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout.html", data); err != nil {
		log.Error().Err(err).Str("request_id", httpx.RequestIDFrom(r)).Msg("render template")
	}
}
