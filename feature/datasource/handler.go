package datasource

import (
	"errors"

	"source-manager/core/logger"
	"source-manager/feature/datasource/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for data sources.
type Handler struct {
	manager *Manager
}

// NewHandler creates a new HTTP handler.
func NewHandler(manager *Manager) *Handler {
	return &Handler{manager: manager}
}

// PathRequest carries a candidate data source path.
type PathRequest struct {
	Path string `json:"path"`
	// Force adds the candidate despite advisory issues.
	Force bool `json:"force"`
}

// StatusRequest carries a new data source status.
type StatusRequest struct {
	Status string `json:"status"`
}

// RegisterRoutes registers the data source routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/datasources")
	group.Get("/", h.HandleList)
	group.Get("/active", h.HandlePresentActive)
	group.Post("/scan", h.HandleScan)
	group.Post("/validate", h.HandleValidate)
	group.Post("/", h.HandleAdd)
	group.Put("/:name/status", h.HandleUpdateStatus)
	group.Delete("/unavailable", h.HandleDeleteUnavailable)
}

// HandleList returns every known data source.
// @Summary List Data Sources
// @Description Returns every data source in the registry, in insertion order.
// @Tags datasources
// @Produce json
// @Success 200 {array} models.DataSource "Data Sources"
// @Router /datasources [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	return c.JSON(h.manager.DataSources())
}

// HandlePresentActive returns the active data sources.
// @Summary List Active Data Sources
// @Description Returns the active data sources, scanning attached volumes first when nothing is known yet.
// @Tags datasources
// @Produce json
// @Success 200 {array} models.DataSource "Active Data Sources"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /datasources/active [get]
func (h *Handler) HandlePresentActive(c *fiber.Ctx) error {
	l := logger.WithRayID(h.manager.logger, c)

	active, err := h.manager.PresentActive(c.Context())
	if err != nil {
		l.Error("Listing active data sources failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if active == nil {
		active = []models.DataSource{}
	}
	return c.JSON(active)
}

// HandleScan runs a reconciliation pass.
// @Summary Scan Data Sources
// @Description Reconciles the registry with attached volumes and the persisted active set.
// @Tags datasources
// @Produce json
// @Success 200 {object} reconcile.Plan "Scan Plan"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /datasources/scan [post]
func (h *Handler) HandleScan(c *fiber.Ctx) error {
	l := logger.WithRayID(h.manager.logger, c)
	l.Info("Triggering data source scan")

	plan, err := h.manager.ScanDataSources(c.Context())
	if err != nil {
		l.Error("Data source scan failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(plan)
}

// HandleValidate validates a candidate path.
// @Summary Validate Data Source
// @Description Classifies a path and reports duplicate or unknown data sources.
// @Tags datasources
// @Accept json
// @Produce json
// @Param request body PathRequest true "Candidate Path"
// @Success 200 {object} models.ValidationReport "Validation Report"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /datasources/validate [post]
func (h *Handler) HandleValidate(c *fiber.Ctx) error {
	var req PathRequest
	if err := c.BodyParser(&req); err != nil || req.Path == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "path is required",
		})
	}
	return c.JSON(h.manager.Validate(c.Context(), req.Path))
}

// HandleAdd validates a path and adds it as a data source.
// @Summary Add Data Source
// @Description Validates a path and writes it into its volume's document. Advisory issues block the add unless force is set.
// @Tags datasources
// @Accept json
// @Produce json
// @Param request body PathRequest true "Candidate Path"
// @Success 201 {object} models.DataSource "Added Data Source"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 409 {object} models.ValidationReport "Advisory Issues"
// @Failure 422 {object} models.ValidationReport "Unknown Data Source Type"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /datasources [post]
func (h *Handler) HandleAdd(c *fiber.Ctx) error {
	l := logger.WithRayID(h.manager.logger, c)

	var req PathRequest
	if err := c.BodyParser(&req); err != nil || req.Path == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "path is required",
		})
	}

	report := h.manager.Validate(c.Context(), req.Path)
	if report.Candidate == nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(report)
	}
	if len(report.Issues) > 0 && !req.Force {
		return c.Status(fiber.StatusConflict).JSON(report)
	}

	if err := h.manager.AddDataSource(c.Context(), *report.Candidate); err != nil {
		l.Error("Adding data source failed", zap.String("path", req.Path), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(report.Candidate)
}

// HandleUpdateStatus changes the status of a data source.
// @Summary Update Data Source Status
// @Description Sets a data source to active, inactive or unavailable and saves the active set.
// @Tags datasources
// @Accept json
// @Produce json
// @Param name path string true "Data Source Name"
// @Param request body StatusRequest true "New Status"
// @Success 200 {object} models.DataSource "Updated Data Source"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /datasources/{name}/status [put]
func (h *Handler) HandleUpdateStatus(c *fiber.Ctx) error {
	l := logger.WithRayID(h.manager.logger, c)
	name := c.Params("name")

	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	status, err := models.ParseStatus(req.Status)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err := h.manager.UpdateStatus(c.Context(), name, status); err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, models.ErrNoRootFolder):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Updating data source status failed", zap.String("name", name), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	ds, _ := h.manager.Get(name)
	return c.JSON(ds)
}

// HandleDeleteUnavailable removes every unavailable data source.
// @Summary Delete Unavailable Data Sources
// @Description Removes data sources whose device is missing and saves the active set.
// @Tags datasources
// @Produce json
// @Success 200 {object} map[string]int "Removed Count"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /datasources/unavailable [delete]
func (h *Handler) HandleDeleteUnavailable(c *fiber.Ctx) error {
	l := logger.WithRayID(h.manager.logger, c)

	removed, err := h.manager.DeleteUnavailable(c.Context())
	if err != nil {
		l.Error("Deleting unavailable data sources failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"removed": removed})
}
