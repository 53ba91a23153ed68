// Package api exposes the scoring engine over HTTP.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/maralthesage/RFM-Pipeline/internal/config"
	"github.com/maralthesage/RFM-Pipeline/internal/service"
	"github.com/maralthesage/RFM-Pipeline/internal/store"
)

// Handler bundles the API dependencies.
type Handler struct {
	cfg   *config.AppConfig
	store *store.Store
	svc   *service.Service
}

// NewHandler creates the API handler.
func NewHandler(cfg *config.AppConfig, st *store.Store, svc *service.Service) *Handler {
	return &Handler{cfg: cfg, store: st, svc: svc}
}

// RegisterRoutes registers all API routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/status", h.GetStatus)

	router.GET("/runs", h.ListRuns)
	router.POST("/runs", h.StartRun)
	router.GET("/runs/:id", h.GetRun)
	router.GET("/runs/:id/summary", h.GetSummary)
	router.GET("/runs/:id/export", h.DownloadExport)
}
