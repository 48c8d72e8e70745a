package inventory

import (
	"errors"

	"catalog-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for inventory sync.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the inventory routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/inventory")
	group.Post("/sync", h.HandleSync)
	group.Get("/sync/last", h.HandleLastSync)
	group.Get("/reports", h.HandleListReports)
	group.Get("/reports/+", h.HandleGetReport)
}

// HandleSync runs a sync pass and returns its summary.
// @Summary Trigger Inventory Sync
// @Description Reconciles catalog stock and visibility with the stock database. Concurrent triggers share the running pass.
// @Tags inventory
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} Summary "Completed run"
// @Failure 502 {object} Summary "Run aborted"
// @Router /inventory/sync [post]
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)
	l.Info("Manual sync triggered")

	summary, shared := h.service.Run(c.Context())
	if shared {
		l.Info("Joined sync already in progress")
	}

	status := fiber.StatusOK
	if summary.Failed {
		status = fiber.StatusBadGateway
	}
	return c.Status(status).JSON(summary)
}

// HandleLastSync returns the summary of the most recent run.
// @Summary Last Sync Summary
// @Description Returns the summary of the most recent sync run since the server started.
// @Tags inventory
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} Summary
// @Failure 404 {object} map[string]string "No run yet"
// @Router /inventory/sync/last [get]
func (h *Handler) HandleLastSync(c *fiber.Ctx) error {
	summary, ok := h.service.Last()
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no sync has run yet"})
	}
	return c.JSON(summary)
}

// HandleListReports lists archived sync reports.
// @Summary List Sync Reports
// @Description Lists archived sync report keys, newest first.
// @Tags inventory
// @Security ApiKeyAuth
// @Produce json
// @Param limit query int false "Maximum number of reports" default(20)
// @Success 200 {array} ReportInfo
// @Failure 503 {object} map[string]string "Archive disabled"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /inventory/reports [get]
func (h *Handler) HandleListReports(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)
	limit := c.QueryInt("limit", 20)

	reports, err := h.service.Reports(c.Context(), limit)
	if errors.Is(err, ErrArchiveDisabled) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Failed to list reports", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if reports == nil {
		reports = []ReportInfo{}
	}
	return c.JSON(reports)
}

// HandleGetReport returns one archived sync summary.
// @Summary Get Sync Report
// @Description Returns an archived sync summary by its object key.
// @Tags inventory
// @Security ApiKeyAuth
// @Produce json
// @Param key path string true "Report key, e.g. reports/2026/01/02/030405.json"
// @Success 200 {object} Summary
// @Failure 404 {object} map[string]string "Report not found"
// @Failure 503 {object} map[string]string "Archive disabled"
// @Router /inventory/reports/{key} [get]
func (h *Handler) HandleGetReport(c *fiber.Ctx) error {
	key := c.Params("+")

	summary, err := h.service.Report(c.Context(), key)
	switch {
	case errors.Is(err, ErrArchiveDisabled):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrReportNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		logger.WithRayID(h.logger, c).Error("Failed to load report", zap.String("key", key), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(summary)
}
