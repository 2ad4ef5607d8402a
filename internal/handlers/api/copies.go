package api

import (
	"context"
	"encoding/json"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"saynope/internal/catalog"
	"saynope/internal/metrics"
	"saynope/internal/models"
	"saynope/internal/validation"
)

const (
	defaultPopularLimit = 10
	maxPopularLimit     = 50
)

// PopularStore lists the most copied reasons.
type PopularStore interface {
	GetTopCopied(ctx context.Context, limit int) ([]models.CopyCount, error)
}

// CopyHandler records clipboard copies made from the page.
type CopyHandler struct {
	catalog *catalog.Catalog
	metrics *metrics.Metrics
	store   PopularStore
}

// NewCopyHandler creates a new API copy handler. A nil store disables Popular.
func NewCopyHandler(c *catalog.Catalog, m *metrics.Metrics, store PopularStore) *CopyHandler {
	return &CopyHandler{catalog: c, metrics: m, store: store}
}

// Create accepts a copy event. Recording happens in the background so the
// response does not wait on storage.
func (h *CopyHandler) Create(c fiber.Ctx) error {
	var body models.CopyRequest
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if valid, msg := validation.ValidateReason(body.Reason); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	owner, ok := h.catalog.CategoryOf(body.Reason)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "unknown reason")
	}
	if body.Category != "" && body.Category != owner {
		log.Debug().Str("claimed", body.Category).Str("owner", owner).Msg("copy category mismatch")
	}

	h.metrics.RecordCopy(owner, body.Reason)

	return jsonStatus(c, fiber.StatusAccepted, models.RandomResponse{Category: owner, Reason: body.Reason})
}

// Popular returns the most copied reasons.
func (h *CopyHandler) Popular(c fiber.Ctx) error {
	if h.store == nil {
		return jsonError(c, fiber.StatusNotFound, "copy history is not enabled")
	}

	limit := fiber.Query[int](c, "limit", defaultPopularLimit)
	if limit <= 0 {
		limit = defaultPopularLimit
	}
	if limit > maxPopularLimit {
		limit = maxPopularLimit
	}

	counts, err := h.store.GetTopCopied(c.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch popular reasons")
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch popular reasons")
	}
	if counts == nil {
		counts = []models.CopyCount{}
	}
	return jsonSuccess(c, counts)
}
