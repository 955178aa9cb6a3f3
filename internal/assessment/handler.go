package assessment

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"carbonconstruct/calculator-backend/internal/compliance"
	"carbonconstruct/calculator-backend/internal/export"
	"carbonconstruct/calculator-backend/internal/lca"
)

// Handler handles HTTP requests for assessment operations.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new assessment handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers assessment routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	assessments := router.Group("/assessments")
	{
		assessments.POST("", h.runAssessment)
		assessments.GET("", h.listAssessments)
		assessments.GET("/:id", h.getAssessment)
		assessments.GET("/:id/export", h.exportAssessment)
	}

	mats := router.Group("/materials")
	{
		mats.GET("", h.listMaterials)
		mats.GET("/:id", h.getMaterial)
	}

	router.GET("/frameworks", h.listFrameworks)
}

// runAssessment handles POST /api/v1/assessments
func (h *Handler) runAssessment(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a, err := h.service.Run(c.Request.Context(), &req)
	if err != nil {
		h.writeEngineError(c, err)
		return
	}

	c.JSON(http.StatusCreated, a)
}

// writeEngineError maps typed engine errors to status codes and surfaces
// the error kind plus the offending identifier; carbon miscalculation is a
// trust-critical domain and callers need to know exactly what was wrong.
func (h *Handler) writeEngineError(c *gin.Context, err error) {
	var notFound *lca.MaterialNotFoundError
	if errors.As(err, &notFound) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": err.Error(), "kind": "material_not_found", "material_id": notFound.MaterialID,
		})
		return
	}
	var badQty *lca.InvalidQuantityError
	if errors.As(err, &badQty) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": err.Error(), "kind": "invalid_quantity", "material_id": badQty.MaterialID,
		})
		return
	}
	var badMeta *lca.InvalidMetadataError
	if errors.As(err, &badMeta) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": err.Error(), "kind": "invalid_metadata",
		})
		return
	}
	var badType *compliance.UnsupportedProjectTypeError
	if errors.As(err, &badType) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": err.Error(), "kind": "unsupported_project_type",
			"framework": string(badType.Framework), "project_type": string(badType.ProjectType),
		})
		return
	}
	var badFw *compliance.UnknownFrameworkError
	if errors.As(err, &badFw) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": err.Error(), "kind": "unknown_framework", "framework": string(badFw.Framework),
		})
		return
	}

	h.logger.Error("Assessment failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// getAssessment handles GET /api/v1/assessments/:id
func (h *Handler) getAssessment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assessment id"})
		return
	}

	a, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.writeLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, a)
}

// writeLookupError maps a missing assessment to 404; anything else is a
// storage failure and must not masquerade as "not found".
func (h *Handler) writeLookupError(c *gin.Context, err error) {
	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	h.logger.Error("Failed to get assessment", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// listAssessments handles GET /api/v1/assessments
func (h *Handler) listAssessments(c *gin.Context) {
	filters := &ListFilters{
		Limit:  h.getIntParam(c, "limit", 20),
		Offset: h.getIntParam(c, "offset", 0),
	}
	if pt := c.Query("project_type"); pt != "" {
		projectType := compliance.ProjectType(pt)
		filters.ProjectType = &projectType
	}

	assessments, total, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		h.logger.Error("Failed to list assessments", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"assessments": assessments,
		"total":       total,
		"limit":       filters.Limit,
		"offset":      filters.Offset,
	})
}

// exportAssessment handles GET /api/v1/assessments/:id/export?format=csv|xlsx|pdf
func (h *Handler) exportAssessment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assessment id"})
		return
	}

	a, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.writeLookupError(c, err)
		return
	}

	doc := BuildDocument(a, h.service.Material)
	format := c.DefaultQuery("format", "csv")

	var buf bytes.Buffer
	var contentType, filename string
	switch format {
	case "csv":
		contentType = "text/csv"
		filename = fmt.Sprintf("assessment-%s.csv", a.ID)
		err = export.WriteCSV(&buf, doc)
	case "xlsx":
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		filename = fmt.Sprintf("assessment-%s.xlsx", a.ID)
		err = export.WriteExcel(&buf, doc)
	case "pdf":
		contentType = "application/pdf"
		filename = fmt.Sprintf("assessment-%s.pdf", a.ID)
		err = export.WritePDF(&buf, doc)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unsupported export format: %s", format)})
		return
	}
	if err != nil {
		h.logger.Error("Failed to export assessment", zap.String("format", format), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// listMaterials handles GET /api/v1/materials
func (h *Handler) listMaterials(c *gin.Context) {
	records := h.service.Materials()
	c.JSON(http.StatusOK, gin.H{
		"materials": records,
		"total":     len(records),
	})
}

// getMaterial handles GET /api/v1/materials/:id
func (h *Handler) getMaterial(c *gin.Context) {
	rec, ok := h.service.Material(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("material not found: %s", c.Param("id"))})
		return
	}
	c.JSON(http.StatusOK, rec)
}

// listFrameworks handles GET /api/v1/frameworks
func (h *Handler) listFrameworks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"frameworks": h.service.Frameworks()})
}

func (h *Handler) getIntParam(c *gin.Context, name string, fallback int) int {
	if raw := c.Query(name); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return fallback
}
