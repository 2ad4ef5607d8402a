package api

import (
	"github.com/gofiber/fiber/v3"

	"saynope/internal/catalog"
	"saynope/internal/metrics"
	"saynope/internal/models"
	"saynope/internal/validation"
)

// ReasonHandler serves catalog queries via JSON API.
type ReasonHandler struct {
	catalog *catalog.Catalog
	metrics *metrics.Metrics
	rng     catalog.Rand
}

// NewReasonHandler creates a new API reason handler. A nil rng uses the global source.
func NewReasonHandler(c *catalog.Catalog, m *metrics.Metrics, rng catalog.Rand) *ReasonHandler {
	if rng == nil {
		rng = catalog.GlobalRand
	}
	return &ReasonHandler{catalog: c, metrics: m, rng: rng}
}

// List returns the reasons matching q within category.
func (h *ReasonHandler) List(c fiber.Ctx) error {
	category := catalog.NormalizeCategory(h.catalog, c.Query("category"))
	query := validation.NormalizeQuery(c.Query("q"))
	if ok, msg := validation.ValidateQuery(query); !ok {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	reasons := h.catalog.Filter(query, category)
	h.metrics.RecordQuery(category, query != "")

	return jsonSuccess(c, models.ReasonsResponse{
		Category: category,
		Query:    query,
		Count:    len(reasons),
		Reasons:  reasons,
	})
}

// Random returns one reason picked uniformly from category.
func (h *ReasonHandler) Random(c fiber.Ctx) error {
	category := catalog.NormalizeCategory(h.catalog, c.Query("category"))

	reason, ok := h.catalog.PickRandom(category, h.rng)
	h.metrics.RecordPick(category, ok)
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "no reasons available")
	}

	if category == catalog.All {
		// Report where the pick came from.
		if owner, found := h.catalog.CategoryOf(reason); found {
			return jsonSuccess(c, models.RandomResponse{Category: owner, Reason: reason})
		}
	}
	return jsonSuccess(c, models.RandomResponse{Category: category, Reason: reason})
}

// Counts returns the total and per-category counts in catalog order.
func (h *ReasonHandler) Counts(c fiber.Ctx) error {
	counts := h.catalog.Counts()

	resp := models.CountsResponse{
		Total:      counts.Total,
		Categories: make([]models.CategoryCount, 0, len(counts.Order)),
	}
	for _, name := range counts.Order {
		resp.Categories = append(resp.Categories, models.CategoryCount{
			Name:  name,
			Count: counts.PerCategory[name],
		})
	}
	return jsonSuccess(c, resp)
}

// Categories returns the category names in catalog order.
func (h *ReasonHandler) Categories(c fiber.Ctx) error {
	return jsonSuccess(c, h.catalog.Categories())
}
