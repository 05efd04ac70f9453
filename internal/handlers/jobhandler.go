package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobhunt/internal/dtos"
	"github.com/justsurfingit/jobhunt/internal/models"
	"github.com/justsurfingit/jobhunt/internal/services"
)

// JobHandler exposes the pipeline over HTTP.
type JobHandler struct {
	Pipeline       *services.PipelineService
	DefaultProfile string
}

// NewJobHandler creates the handler with dependencies
func NewJobHandler(p *services.PipelineService, defaultProfile string) *JobHandler {
	return &JobHandler{Pipeline: p, DefaultProfile: defaultProfile}
}

// HealthCheck is the GET /health endpoint
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ExtractJobs is the POST /jobs/extract endpoint. It lists the suitable jobs
// on a page without writing letters or spreadsheet rows.
func (h *JobHandler) ExtractJobs(c *gin.Context) {
	var req dtos.RunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	jobs := h.Pipeline.Extract(c.Request.Context(), req.Link, h.profile(req))
	if jobs == nil {
		jobs = []models.Job{}
	}
	c.JSON(http.StatusOK, dtos.ExtractResponse{Success: true, Jobs: jobs})
}

// CreateRun is the POST /runs endpoint and runs the whole workflow for one page.
func (h *JobHandler) CreateRun(c *gin.Context) {
	var req dtos.RunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	result, err := h.Pipeline.Run(c.Request.Context(), req.Link, h.profile(req))
	if err != nil {
		c.JSON(http.StatusBadGateway, dtos.RunResponse{Success: false, Result: result, Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, dtos.RunResponse{Success: true, Result: result})
}

func (h *JobHandler) profile(req dtos.RunRequest) string {
	if p := strings.TrimSpace(req.UserProfile); p != "" {
		return p
	}
	return h.DefaultProfile
}

// RegisterRoutes mounts the job routes under group.
func (h *JobHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/health", HealthCheck)
	group.POST("/jobs/extract", h.ExtractJobs)
	group.POST("/runs", h.CreateRun)
}
