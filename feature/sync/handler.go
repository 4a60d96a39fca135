package sync

import (
	"hood-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler exposes sync runs over HTTP.
type Handler struct {
	service *Service
}

// NewHandler creates a handler for the given service.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the sync endpoints on the router.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sync")
	group.Post("/", h.HandleRunSync)
}

// HandleRunSync triggers one synchronization run and reports its statistics.
// Runs are synchronous and exclusive; a concurrent trigger waits for the
// current run before starting its own.
func (h *Handler) HandleRunSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Sync run requested")

	dryRun := c.QueryBool("dry_run")

	stats, err := h.service.RunSync(c.Context(), dryRun)
	if err != nil {
		l.Error("Sync run failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(stats)
}
