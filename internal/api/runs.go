package api

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
)

// GetStatus reports the configured countries and whether the database
// is reachable.
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	dbOK := true
	if err := h.store.DB().Ping(); err != nil {
		dbOK = false
	}
	c.JSON(http.StatusOK, gin.H{
		"countries": h.cfg.Business.Countries,
		"database":  dbOK,
	})
}

// ListRuns lists persisted runs for a country, newest first.
// GET /api/runs?country=DE
func (h *Handler) ListRuns(c *gin.Context) {
	country := c.Query("country")
	if country == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "country query parameter is required"})
		return
	}
	runs, err := h.store.ListRuns(country)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

type startRunRequest struct {
	Country   string `json:"country" binding:"required"`
	Reference string `json:"reference"`
}

// StartRun executes a scoring run synchronously and returns its id.
// POST /api/runs
func (h *Handler) StartRun(c *gin.Context) {
	var req startRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reference := time.Now().UTC().Truncate(24 * time.Hour)
	if req.Reference != "" {
		parsed, err := time.ParseInLocation("2006-01-02", req.Reference, time.UTC)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "reference must be YYYY-MM-DD"})
			return
		}
		reference = parsed
	}

	summary, err := h.svc.RunCountry(req.Country, reference, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetRun loads one run's metadata.
// GET /api/runs/:id
func (h *Handler) GetRun(c *gin.Context) {
	run, err := h.store.GetRun(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if run == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}
	c.JSON(http.StatusOK, run)
}

// GetSummary returns the segment cross-tab of a run.
// GET /api/runs/:id/summary
func (h *Handler) GetSummary(c *gin.Context) {
	run, err := h.store.GetRun(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if run == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}
	rows, err := h.store.GetSummary(run.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"run":     run,
		"summary": rows,
	})
}

// DownloadExport streams a run's workbook.
// GET /api/runs/:id/export?kind=segmente|analytik
func (h *Handler) DownloadExport(c *gin.Context) {
	kind := c.DefaultQuery("kind", "segmente")
	path, err := h.svc.ExportPath(c.Param("id"), kind)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "export not found"})
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}
