package integrity

import (
	"tag-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/structure", h.HandleStructureCheck)
	group.Get("/schema", h.HandleSchemaCheck)
	group.Get("/tags/:project", h.HandleTagCheck)
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Performs the structure, schema and tag checks (every project). A failing check is reported in place, the others still run.
// @Tags integrity
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	ctx := c.Context()
	report := make(map[string]any)

	if missing, err := h.service.CheckStructure(ctx); err != nil {
		report["structure"] = fiber.Map{"status": "error", "error": err.Error()}
	} else {
		report["structure"] = fiber.Map{"status": "ok", "missing": missing}
	}

	if schema, err := h.service.CheckSchema(); err != nil {
		report["schema"] = fiber.Map{"status": "error", "error": err.Error()}
	} else {
		report["schema"] = schema
	}

	if projects, err := h.service.CheckProjects(ctx); err != nil {
		report["tags"] = fiber.Map{"status": "error", "error": err.Error()}
	} else {
		report["tags"] = projects
	}

	return c.JSON(report)
}

// HandleStructureCheck checks and optionally fixes the storage folders.
// @Summary Check Storage Structure
// @Description Checks that the imports/ and exports/ folders exist in the bucket. Optionally creates them.
// @Tags integrity
// @Produce json
// @Param fix query boolean false "Create missing folders"
// @Success 200 {object} map[string]interface{} "Structure Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/structure [get]
func (h *Handler) HandleStructureCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.QueryBool("fix")

	missing, err := h.service.CheckStructure(c.Context())
	if err != nil {
		l.Error("Structure check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if len(missing) > 0 {
		l.Warn("Missing folders detected", zap.Strings("missing", missing))

		if fix {
			if err := h.service.FixStructure(c.Context(), missing); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error":   "Failed to fix structure",
					"details": err.Error(),
					"missing": missing,
				})
			}
			return c.JSON(fiber.Map{
				"status": "fixed",
				"fixed":  missing,
			})
		}
	}

	return c.JSON(fiber.Map{
		"status":  "checked",
		"missing": missing,
	})
}

// HandleSchemaCheck compares the tag model with the database.
// @Summary Check Database Schema
// @Description Verifies that the tags table has every column of the tag model.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.SchemaReport "Schema Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/schema [get]
func (h *Handler) HandleSchemaCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckSchema()
	if err != nil {
		l.Error("Schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandleTagCheck inspects the tags of a project.
// @Summary Check Project Tags
// @Description Reports address collisions, tags without addresses and tags that would fail an import.
// @Tags integrity
// @Produce json
// @Param project path string true "Project name"
// @Success 200 {object} checks.TagReport "Tag Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/tags/{project} [get]
func (h *Handler) HandleTagCheck(c *fiber.Ctx) error {
	project := c.Params("project")
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckProject(c.Context(), project)
	if err != nil {
		l.Error("Tag check failed", zap.String("project", project), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}
