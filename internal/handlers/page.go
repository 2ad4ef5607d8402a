package handlers

import (
	"fmt"
	"slices"

	"github.com/gofiber/fiber/v3"

	"saynope/internal/catalog"
	"saynope/internal/config"
	"saynope/internal/metrics"
	"saynope/internal/validation"
)

// PageHandler renders the reasons page and its live-search partial.
type PageHandler struct {
	catalog *catalog.Catalog
	cfg     *config.Config
	metrics *metrics.Metrics
	rng     catalog.Rand
}

// NewPageHandler creates a new page handler. A nil rng uses the global source.
func NewPageHandler(c *catalog.Catalog, cfg *config.Config, m *metrics.Metrics, rng catalog.Rand) *PageHandler {
	if rng == nil {
		rng = catalog.GlobalRand
	}
	return &PageHandler{catalog: c, cfg: cfg, metrics: m, rng: rng}
}

type chipView struct {
	Name   string
	Label  string
	Active bool
}

type reasonView struct {
	ID          string
	Text        string
	Category    string
	Highlighted bool
}

// Index renders the home page. The q and category query parameters update
// the visitor's selection.
func (h *PageHandler) Index(c fiber.Ctx) error {
	sel, err := h.applyQuery(c)
	if err != nil {
		return err
	}
	data := h.view(sel)
	data["Theme"] = currentTheme(c).String()
	return c.Render("index", MergeBranding(data, h.cfg))
}

// Reasons renders the card list for live search.
func (h *PageHandler) Reasons(c fiber.Ctx) error {
	sel, err := h.applyQuery(c)
	if err != nil {
		return err
	}
	if !isHTMX(c) {
		return c.Redirect().To("/")
	}
	return c.Render("partials/reasons", h.view(sel), "")
}

// Random picks a reason from the posted category, then shows that category
// with the search cleared and the pick highlighted.
func (h *PageHandler) Random(c fiber.Ctx) error {
	sel := loadSelection(c, h.catalog)
	category := catalog.NormalizeCategory(h.catalog, c.FormValue("category"))
	sel.RandomCategory = category

	pick, ok := h.catalog.PickRandom(category, h.rng)
	h.metrics.RecordPick(category, ok)
	if !ok {
		sel.Pick = ""
		sel.save(c)
		return c.Redirect().To("/")
	}

	sel.Query = ""
	sel.Category = category
	sel.Pick = pick
	sel.save(c)

	index := slices.Index(h.catalog.Filter("", category), pick)
	return c.Redirect().To(fmt.Sprintf("/#%s", reasonID(index)))
}

// applyQuery merges query parameters into the stored selection and records the query.
func (h *PageHandler) applyQuery(c fiber.Ctx) (selection, error) {
	sel := loadSelection(c, h.catalog)

	args := c.Request().URI().QueryArgs()
	changed := false
	if args.Has("q") {
		query := validation.NormalizeQuery(c.Query("q"))
		if ok, msg := validation.ValidateQuery(query); !ok {
			return sel, fiber.NewError(fiber.StatusBadRequest, msg)
		}
		sel.Query = query
		changed = true
	}
	if args.Has("category") {
		sel.Category = catalog.NormalizeCategory(h.catalog, c.Query("category"))
		changed = true
	}
	if changed {
		sel.save(c)
	}

	h.metrics.RecordQuery(sel.Category, sel.Query != "")
	return sel, nil
}

// view builds the template data for a selection.
func (h *PageHandler) view(sel selection) fiber.Map {
	counts := h.catalog.Counts()

	chips := make([]chipView, 0, len(counts.Order)+1)
	chips = append(chips, chipView{
		Name:   catalog.All,
		Label:  fmt.Sprintf("%s (%d)", catalog.All, counts.Total),
		Active: sel.Category == catalog.All,
	})
	for _, name := range counts.Order {
		chips = append(chips, chipView{
			Name:   name,
			Label:  fmt.Sprintf("%s (%d)", name, counts.PerCategory[name]),
			Active: sel.Category == name,
		})
	}

	filtered := h.catalog.Filter(sel.Query, sel.Category)
	reasons := make([]reasonView, 0, len(filtered))
	for i, text := range filtered {
		category := sel.Category
		if category == catalog.All {
			category, _ = h.catalog.CategoryOf(text)
		}
		reasons = append(reasons, reasonView{
			ID:          reasonID(i),
			Text:        text,
			Category:    category,
			Highlighted: sel.Pick != "" && text == sel.Pick,
		})
	}

	return fiber.Map{
		"Query":          sel.Query,
		"Category":       sel.Category,
		"RandomCategory": sel.RandomCategory,
		"Pick":           sel.Pick,
		"Chips":          chips,
		"Reasons":        reasons,
		"Summary":        catalog.Summary(len(filtered), sel.Category, sel.Query),
	}
}

func reasonID(index int) string {
	return fmt.Sprintf("reason-%d", index)
}
