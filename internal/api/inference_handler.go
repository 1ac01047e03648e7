package api

import (
	"net/http"
	"strconv"

	"heredity/app"
	"heredity/domain/core"
	"heredity/domain/family"
	"heredity/internal"
	"heredity/internal/errors"
	"heredity/internal/report"

	"github.com/gin-gonic/gin"
)

// InferenceRequest is the body of POST /api/v1/inference
type InferenceRequest struct {
	Source string          `json:"source"`
	People []family.Person `json:"people"`
}

// InferenceHandler serves inference runs over JSON
type InferenceHandler struct {
	service *app.InferenceService
	logger  *internal.Logger
}

// NewInferenceHandler creates a new inference handler
func NewInferenceHandler(service *app.InferenceService, logger *internal.Logger) *InferenceHandler {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &InferenceHandler{service: service, logger: logger.With("api")}
}

// NewRouter builds the gin engine with every API route under /api/v1
func NewRouter(handler *InferenceHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	v1 := router.Group("/api/v1")
	v1.POST("/inference", handler.CreateInference)
	v1.GET("/runs", handler.ListRuns)
	v1.GET("/runs/:id", handler.GetRun)
	v1.GET("/runs/:id/report", handler.GetRunReport)

	return router
}

// CreateInference runs inference over the family in the request body
func (h *InferenceHandler) CreateInference(c *gin.Context) {
	var req InferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, errors.InvalidInput("invalid request body: "+err.Error()))
		return
	}

	source := req.Source
	if source == "" {
		source = "api"
	}

	run, err := h.service.Infer(c.Request.Context(), source, family.NewFamily(req.People...))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, run)
}

// GetRun returns a stored run
func (h *InferenceHandler) GetRun(c *gin.Context) {
	id, err := core.ParseRunID(c.Param("id"))
	if err != nil {
		h.fail(c, errors.InvalidInput(err.Error()))
		return
	}

	run, err := h.service.GetRun(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, run)
}

// GetRunReport renders a stored run as text (default) or markdown
func (h *InferenceHandler) GetRunReport(c *gin.Context) {
	id, err := core.ParseRunID(c.Param("id"))
	if err != nil {
		h.fail(c, errors.InvalidInput(err.Error()))
		return
	}

	run, err := h.service.GetRun(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	switch c.DefaultQuery("format", "text") {
	case "markdown":
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", report.Markdown(run))
	case "text":
		c.Header("Content-Type", "text/plain; charset=utf-8")
		c.Status(http.StatusOK)
		if err := report.WriteText(c.Writer, run.Result()); err != nil {
			h.logger.Error("failed to write report for run %s: %v", id, err)
		}
	default:
		h.fail(c, errors.InvalidInput("format must be text or markdown"))
	}
}

// ListRuns returns the most recent runs, newest first
func (h *InferenceHandler) ListRuns(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 {
		h.fail(c, errors.InvalidInput("limit must be a positive integer"))
		return
	}

	items, err := h.service.ListRuns(c.Request.Context(), limit)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"runs": items})
}

func (h *InferenceHandler) fail(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{
		"error": err.Error(),
		"code":  errors.GetCode(err),
	})
}
