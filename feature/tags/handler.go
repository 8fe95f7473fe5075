package tags

import (
	"bytes"
	"errors"

	"tag-manager/core/logger"
	"tag-manager/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for tags.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the tag routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/imports", h.HandleListImportFiles)

	group := app.Group("/tags")
	group.Get("/", h.HandleListProjects)
	group.Get("/:project", h.HandleListTags)
	group.Post("/:project/import", h.HandleImport)
	group.Get("/:project/export", h.HandleExport)
	group.Post("/:project/export", h.HandleExportToStorage)
}

// HandleListProjects returns the projects that have tags.
// @Summary List Projects
// @Description List the projects that have tags.
// @Tags tags
// @Produce json
// @Success 200 {object} map[string]interface{} "Projects"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /tags [get]
func (h *Handler) HandleListProjects(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	projects, err := h.service.ListProjects(c.Context())
	if err != nil {
		l.Error("Project listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"projects": projects})
}

// HandleListTags returns the tags of a project.
// @Summary List Tags
// @Description List all tags of a project in import order.
// @Tags tags
// @Produce json
// @Param project path string true "Project name"
// @Success 200 {object} map[string]interface{} "Tags"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /tags/{project} [get]
func (h *Handler) HandleListTags(c *fiber.Ctx) error {
	project := c.Params("project")
	l := logger.WithRayID(h.service.logger, c)

	list, err := h.service.ListTags(c.Context(), project)
	if err != nil {
		l.Error("Tag listing failed", zap.String("project", project), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"project": project,
		"count":   len(list),
		"tags":    list,
	})
}

// HandleImport imports tags into a project. Imports over HTTP always run silently.
// @Summary Import Tags
// @Description Merge an import file into a project's tags. The file is read from the storage object named by `object`, a multipart `file` field or the raw body (with `format`).
// @Tags tags
// @Accept json,mpfd,plain
// @Produce json
// @Param project path string true "Project name"
// @Param object query string false "Storage object (e.g. 'plant.csv' or 'imports/plant.csv')"
// @Param format query string false "Body format: csv, json or yaml"
// @Param mode query string false "Import mode, only 'silent' is supported"
// @Param controller query int false "0-based controller index"
// @Param controller_count query int false "Number of controllers"
// @Param rules query string false "Automatic import rules, e.g. 'DB10.* | *.X0'"
// @Param compare_addresses query bool false "Skip records whose address belongs to another tag"
// @Param delete_unused query bool false "Flag tags missing from the import as deleted"
// @Param apply_deletes query bool false "Remove flagged tags"
// @Param dry_run query bool false "Plan only"
// @Success 200 {object} ImportResult "Import Result"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /tags/{project}/import [post]
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	project := c.Params("project")
	l := logger.WithRayID(h.service.logger, c).With(zap.String("project", project))

	opts, err := h.importOptions(c)
	if err != nil {
		return badRequest(c, err)
	}

	var result *ImportResult
	switch {
	case c.Query("object") != "":
		result, err = h.service.ImportFromStorage(c.Context(), project, c.Query("object"), opts)

	case isMultipart(c):
		fh, ferr := c.FormFile("file")
		if ferr != nil {
			return badRequest(c, ferr)
		}
		format, ferr := FormatOf(fh.Filename)
		if ferr != nil {
			return badRequest(c, ferr)
		}
		f, ferr := fh.Open()
		if ferr != nil {
			return badRequest(c, ferr)
		}
		defer f.Close()
		result, err = h.service.ImportReader(c.Context(), project, fh.Filename, f, format, opts)

	default:
		format, ferr := ParseFormat(c.Query("format"))
		if ferr != nil {
			return badRequest(c, ferr)
		}
		result, err = h.service.ImportReader(c.Context(), project, "request body", bytes.NewReader(c.Body()), format, opts)
	}

	if err != nil {
		if isClientError(err) {
			l.Warn("Tag import rejected", zap.Error(err))
			return badRequest(c, err)
		}
		l.Error("Tag import failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(result)
}

// HandleListImportFiles lists the import files in storage.
// @Summary List Import Files
// @Description List the CSV, JSON and YAML files under the imports/ prefix of the bucket.
// @Tags tags
// @Produce json
// @Success 200 {array} ImportFile "Import Files"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /imports [get]
func (h *Handler) HandleListImportFiles(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	files, err := h.service.ListImportFiles(c.Context())
	if err != nil {
		l.Error("Import file listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if files == nil {
		files = []ImportFile{}
	}
	return c.JSON(files)
}

// HandleExport downloads the tags of a project as an import file.
// @Summary Export Tags
// @Description Download the tags of a project as CSV, JSON or YAML. The file imports back into the same tags.
// @Tags tags
// @Produce plain,json
// @Param project path string true "Project name"
// @Param format query string false "Export format: csv (default), json or yaml"
// @Success 200 {string} string "Export File"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /tags/{project}/export [get]
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	project := c.Params("project")
	l := logger.WithRayID(h.service.logger, c)

	format, err := ParseFormat(c.Query("format", string(FormatCSV)))
	if err != nil {
		return badRequest(c, err)
	}

	var buf bytes.Buffer
	if _, err := h.service.Export(c.Context(), project, &buf, format); err != nil {
		l.Error("Tag export failed", zap.String("project", project), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Set(fiber.HeaderContentType, format.ContentType())
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+exportFilename(project, format))
	return c.Send(buf.Bytes())
}

// HandleExportToStorage writes the tags of a project to the storage bucket.
// @Summary Export Tags to Storage
// @Description Write the tags of a project to exports/<project>.<format> in the bucket.
// @Tags tags
// @Produce json
// @Param project path string true "Project name"
// @Param format query string false "Export format: csv (default), json or yaml"
// @Success 200 {object} ExportResult "Export Result"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /tags/{project}/export [post]
func (h *Handler) HandleExportToStorage(c *fiber.Ctx) error {
	project := c.Params("project")
	l := logger.WithRayID(h.service.logger, c)

	format, err := ParseFormat(c.Query("format", string(FormatCSV)))
	if err != nil {
		return badRequest(c, err)
	}

	result, err := h.service.ExportToStorage(c.Context(), project, format)
	if err != nil {
		l.Error("Tag export to storage failed", zap.String("project", project), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(result)
}

// importOptions builds the options of an HTTP import from the defaults and the query.
func (h *Handler) importOptions(c *fiber.Ctx) (ImportOptions, error) {
	opts, err := h.service.DefaultOptions()
	if err != nil {
		return ImportOptions{}, err
	}

	mode, err := reconcile.ParseMode(c.Query("mode", string(reconcile.ModeSilent)))
	if err != nil {
		return ImportOptions{}, err
	}
	if mode != reconcile.ModeSilent {
		return ImportOptions{}, errors.New("interactive imports are only available from the command line, use mode=silent")
	}
	opts.Mode = mode
	// No dialog can answer over HTTP.
	opts.Settings.UseVerificationDialog = false

	s := &opts.Settings
	s.ControllerIndex = c.QueryInt("controller", s.ControllerIndex)
	s.ControllerCount = c.QueryInt("controller_count", s.ControllerCount)
	s.AutomaticImportRules = c.Query("rules", s.AutomaticImportRules)
	s.CompareAddresses = c.QueryBool("compare_addresses", s.CompareAddresses)
	s.DeleteUnused = c.QueryBool("delete_unused", s.DeleteUnused)
	s.ReportUntouched = c.QueryBool("report_untouched", s.ReportUntouched)
	opts.ApplyDeletes = c.QueryBool("apply_deletes", opts.ApplyDeletes)
	opts.DryRun = c.QueryBool("dry_run", false)

	return opts, s.Validate()
}

func isMultipart(c *fiber.Ctx) bool {
	return bytes.HasPrefix(c.Request().Header.ContentType(), []byte(fiber.MIMEMultipartForm))
}

func isClientError(err error) bool {
	return errors.Is(err, ErrUnsupportedFormat) ||
		errors.Is(err, ErrParse) ||
		errors.Is(err, reconcile.ErrInvalidSettings) ||
		errors.Is(err, reconcile.ErrNameCollision) ||
		errors.Is(err, reconcile.ErrInvalidChoice)
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": err.Error(),
	})
}
