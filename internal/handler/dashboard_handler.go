package handler

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/Danielmituku/solar-challenge-week0/internal/models"
	"github.com/Danielmituku/solar-challenge-week0/internal/service"
	"github.com/Danielmituku/solar-challenge-week0/pkg/response"
)

// DashboardHandler handles HTTP requests for the dashboard views
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// ObservationsResponse is the body of GET /api/v1/observations
type ObservationsResponse struct {
	Total    int                      `json:"total"`
	Returned int                      `json:"returned"`
	Rows     []models.ObservationJSON `json:"rows"`
}

// bindQuery parses the common selection parameters
func bindQuery(c *gin.Context) (models.ObservationQuery, models.QueryParams, bool) {
	var params models.QueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid query parameters: "+err.Error())
		return models.ObservationQuery{}, params, false
	}

	_, countriesGiven := c.GetQueryArray("country")
	q, err := service.BuildQuery(params, countriesGiven)
	if err != nil {
		writeError(c, err)
		return q, params, false
	}
	return q, params, true
}

// writeError maps service errors to HTTP responses
func writeError(c *gin.Context, err error) {
	switch errors.Cause(err) {
	case service.ErrNoCountrySelected, service.ErrInvalidDateRange, service.ErrInvalidQuery:
		response.BadRequest(c, err.Error())
	case service.ErrNotLoaded:
		response.ServiceUnavailable(c, err.Error())
	default:
		log.Printf("[handler] %s %s: %+v", c.Request.Method, c.Request.URL.Path, err)
		response.InternalError(c, err.Error())
	}
}

// GetMeta handles GET /api/v1/meta
func (h *DashboardHandler) GetMeta(c *gin.Context) {
	meta, err := h.dashboardService.Meta()
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, meta)
}

// GetObservations handles GET /api/v1/observations
func (h *DashboardHandler) GetObservations(c *gin.Context) {
	q, _, ok := bindQuery(c)
	if !ok {
		return
	}

	rows, total, err := h.dashboardService.Observations(q)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, ObservationsResponse{
		Total:    total,
		Returned: len(rows),
		Rows:     models.ToJSON(rows),
	})
}

// GetOverview handles GET /api/v1/overview
func (h *DashboardHandler) GetOverview(c *gin.Context) {
	q, _, ok := bindQuery(c)
	if !ok {
		return
	}

	ov, err := h.dashboardService.Overview(q)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, ov)
}

// GetSummary handles GET /api/v1/summary
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	q, _, ok := bindQuery(c)
	if !ok {
		return
	}

	summary, err := h.dashboardService.Summary(q)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, summary)
}

// GetDailySeries handles GET /api/v1/timeseries/daily
func (h *DashboardHandler) GetDailySeries(c *gin.Context) {
	q, _, ok := bindQuery(c)
	if !ok {
		return
	}

	series, err := h.dashboardService.Daily(q)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, series)
}

// GetDistribution handles GET /api/v1/distribution
func (h *DashboardHandler) GetDistribution(c *gin.Context) {
	q, _, ok := bindQuery(c)
	if !ok {
		return
	}

	dists, err := h.dashboardService.Distribution(q)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, dists)
}

// NotFound handles unknown routes
func NotFound(c *gin.Context) {
	response.NotFound(c, "route not found: "+c.Request.URL.Path)
}
