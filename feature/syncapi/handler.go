package syncapi

import (
	"strconv"

	"github.com/doughepi/grain/core/logger"
	"github.com/doughepi/grain/core/remote"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for syncs and their results.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/sync/directory", h.HandleSyncDirectory)
	app.Get("/documents", h.HandleListDocuments)
	app.Get("/history", h.HandleListHistory)
}

// HandleSyncDirectory runs a sync pass over a local directory.
// @Summary Sync Directory
// @Description Sync the matching files of a directory to the ingestion service. Identical concurrent requests share one pass.
// @Tags sync
// @Accept json
// @Produce json
// @Param request body SyncDirectoryRequest true "Directory to sync"
// @Success 200 {object} SyncResponse "Pass result"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 403 {object} map[string]string "Path not allowed"
// @Failure 502 {object} map[string]string "Pass aborted"
// @Router /sync/directory [post]
func (h *Handler) HandleSyncDirectory(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req SyncDirectoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	resp, err := h.service.SyncDirectory(c.UserContext(), req)
	if err != nil {
		l.Error("Directory sync failed", zap.String("path", req.Path), zap.Error(err))
		return writeError(c, err)
	}

	l.Info("Directory sync finished", zap.String("pass_id", resp.PassID), zap.Bool("shared", resp.Shared))
	return c.JSON(resp)
}

// HandleListDocuments returns the remote documents overview.
// @Summary List Documents
// @Description List documents known to the ingestion service, optionally restricted to ids.
// @Tags documents
// @Produce json
// @Param id query []string false "Document IDs" collectionFormat(multi)
// @Param offset query int false "Offset"
// @Param limit query int false "Limit"
// @Success 200 {object} remote.OverviewPage "Documents"
// @Failure 502 {object} map[string]string "Remote error"
// @Router /documents [get]
func (h *Handler) HandleListDocuments(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var ids []string
	for _, v := range c.Context().QueryArgs().PeekMulti("id") {
		ids = append(ids, string(v))
	}

	page, err := h.service.Documents(c.UserContext(), ids, c.QueryInt("offset"), c.QueryInt("limit"))
	if err != nil {
		l.Error("Documents overview failed", zap.Error(err))
		return writeError(c, err)
	}
	return c.JSON(page)
}

// HandleListHistory returns recorded passes.
// @Summary List History
// @Description List the most recent sync passes.
// @Tags history
// @Produce json
// @Param limit query int false "Maximum number of records" default(20)
// @Success 200 {array} history.PassRecord "Pass records"
// @Failure 503 {object} map[string]string "History unavailable"
// @Router /history [get]
func (h *Handler) HandleListHistory(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "0"))
	if err != nil || limit < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "limit must be a non-negative integer"})
	}

	records, err := h.service.History(c.UserContext(), limit)
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("History query failed", zap.Error(err))
		return writeError(c, err)
	}
	return c.JSON(records)
}

func writeError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	var apiErr *remote.APIError
	switch {
	case errors.Is(err, ErrInvalidRequest):
		status = fiber.StatusBadRequest
	case errors.Is(err, ErrForbiddenPath):
		status = fiber.StatusForbidden
	case errors.Is(err, ErrHistoryUnavailable):
		status = fiber.StatusServiceUnavailable
	case errors.As(err, &apiErr):
		status = fiber.StatusBadGateway
	}

	body := fiber.Map{"error": err.Error()}
	if hints := errors.GetAllHints(err); len(hints) > 0 {
		body["hint"] = hints[0]
	}
	return c.Status(status).JSON(body)
}
