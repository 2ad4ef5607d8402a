package handlers

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"

	"saynope/internal/catalog"
	"saynope/internal/theme"
)

// HeaderPrefersColorScheme is the client hint carrying the browser's color scheme.
const HeaderPrefersColorScheme = "Sec-CH-Prefers-Color-Scheme"

// Session keys for the visitor's selection state.
const (
	sessionQuery          = "query"
	sessionCategory       = "category"
	sessionRandomCategory = "random_category"
	sessionPick           = "pick"
)

// PrefersDark reports whether the browser advertised a dark color scheme.
func PrefersDark(c fiber.Ctx) bool {
	return c.Get(HeaderPrefersColorScheme) == "dark"
}

// currentTheme resolves the visitor's theme and asks the browser for the
// color scheme hint on subsequent requests.
func currentTheme(c fiber.Ctx) theme.Mode {
	c.Set(fiber.HeaderAcceptCH, HeaderPrefersColorScheme)
	c.Vary(HeaderPrefersColorScheme)
	return theme.Resolve(c.Cookies(theme.Key), PrefersDark(c))
}

// selection is the per-visitor UI state kept in the session.
type selection struct {
	Query          string
	Category       string
	RandomCategory string
	Pick           string
}

func loadSelection(c fiber.Ctx, cat *catalog.Catalog) selection {
	sel := selection{Category: catalog.All, RandomCategory: catalog.All}

	sess := session.FromContext(c)
	if sess == nil {
		return sel
	}
	if v, ok := sess.Get(sessionQuery).(string); ok {
		sel.Query = v
	}
	if v, ok := sess.Get(sessionCategory).(string); ok {
		sel.Category = catalog.NormalizeCategory(cat, v)
	}
	if v, ok := sess.Get(sessionRandomCategory).(string); ok {
		sel.RandomCategory = catalog.NormalizeCategory(cat, v)
	}
	if v, ok := sess.Get(sessionPick).(string); ok {
		sel.Pick = v
	}
	return sel
}

func (s selection) save(c fiber.Ctx) {
	sess := session.FromContext(c)
	if sess == nil {
		return
	}
	sess.Set(sessionQuery, s.Query)
	sess.Set(sessionCategory, s.Category)
	sess.Set(sessionRandomCategory, s.RandomCategory)
	sess.Set(sessionPick, s.Pick)
}

func isHTMX(c fiber.Ctx) bool {
	return c.Get("HX-Request") == "true"
}
