package handlers

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"saynope/internal/config"
	"saynope/internal/theme"
)

// themeCookieMaxAge keeps the preference for a year.
const themeCookieMaxAge = 365 * 24 * time.Hour

// ThemeHandler toggles the visitor's light/dark preference.
type ThemeHandler struct {
	cfg *config.Config
}

// NewThemeHandler creates a new theme handler.
func NewThemeHandler(cfg *config.Config) *ThemeHandler {
	return &ThemeHandler{cfg: cfg}
}

// Toggle flips the current theme and persists it in the theme cookie.
func (h *ThemeHandler) Toggle(c fiber.Ctx) error {
	next := currentTheme(c).Toggle()

	c.Cookie(&fiber.Cookie{
		Name:     theme.Key,
		Value:    next.String(),
		Path:     "/",
		MaxAge:   int(themeCookieMaxAge.Seconds()),
		SameSite: "Lax",
		Secure:   h.cfg.TLSEnabled || !h.cfg.IsDev(),
		HTTPOnly: true,
	})

	if isHTMX(c) {
		c.Set("HX-Refresh", "true")
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.Redirect().Back("/")
}
