package handler

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/Danielmituku/solar-challenge-week0/internal/service"
	"github.com/Danielmituku/solar-challenge-week0/pkg/response"
)

// AdminHandler handles operator requests
type AdminHandler struct {
	dashboardService *service.DashboardService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(dashboardService *service.DashboardService) *AdminHandler {
	return &AdminHandler{
		dashboardService: dashboardService,
	}
}

// Reload handles POST /api/v1/admin/reload
func (h *AdminHandler) Reload(c *gin.Context) {
	meta, err := h.dashboardService.Reload(c.Request.Context())
	if err != nil {
		log.Printf("[admin] reload failed: %v", err)
		response.InternalError(c, "reload failed, previous dataset kept: "+err.Error())
		return
	}
	response.Success(c, meta)
}
