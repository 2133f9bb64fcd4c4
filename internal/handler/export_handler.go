package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Danielmituku/solar-challenge-week0/internal/dataset"
	"github.com/Danielmituku/solar-challenge-week0/internal/export"
	"github.com/Danielmituku/solar-challenge-week0/internal/models"
	"github.com/Danielmituku/solar-challenge-week0/internal/service"
	"github.com/Danielmituku/solar-challenge-week0/pkg/response"
)

const (
	contentTypeCSV     = "text/csv; charset=utf-8"
	contentTypeParquet = "application/vnd.apache.parquet"
	contentTypeXLSX    = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ExportHandler serves file downloads of the current selection
type ExportHandler struct {
	dashboardService *service.DashboardService
}

// NewExportHandler creates a new export handler
func NewExportHandler(dashboardService *service.DashboardService) *ExportHandler {
	return &ExportHandler{
		dashboardService: dashboardService,
	}
}

// ExportObservations handles GET /api/v1/export/observations?format=csv|parquet
func (h *ExportHandler) ExportObservations(c *gin.Context) {
	q, params, ok := bindQuery(c)
	if !ok {
		return
	}

	format := strings.ToLower(params.Format)
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "parquet" {
		response.BadRequest(c, fmt.Sprintf("unsupported format %q (csv, parquet)", params.Format))
		return
	}

	table, err := h.dashboardService.Select(q)
	if err != nil {
		writeError(c, err)
		return
	}
	rows := table.Records()

	var buf bytes.Buffer
	contentType := contentTypeCSV
	switch format {
	case "parquet":
		contentType = contentTypeParquet
		err = export.WriteObservationsParquet(&buf, rows)
	default:
		err = export.WriteObservationsCSV(&buf, rows)
	}
	if err != nil {
		writeError(c, err)
		return
	}

	attach(c, "solar_observations."+format, contentType, buf.Bytes())
}

// ExportSummary handles GET /api/v1/export/summary?format=csv|xlsx
func (h *ExportHandler) ExportSummary(c *gin.Context) {
	q, params, ok := bindQuery(c)
	if !ok {
		return
	}

	format := strings.ToLower(params.Format)
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "xlsx" {
		response.BadRequest(c, fmt.Sprintf("unsupported format %q (csv, xlsx)", params.Format))
		return
	}

	table, err := h.dashboardService.Select(q)
	if err != nil {
		writeError(c, err)
		return
	}
	summary := dataset.Summarize(table)

	var buf bytes.Buffer
	contentType := contentTypeCSV
	switch format {
	case "xlsx":
		contentType = contentTypeXLSX
		err = export.WriteSummaryXLSX(&buf, summary, dataset.DailyMean(table, models.MetricGHI))
	default:
		err = export.WriteSummaryCSV(&buf, summary)
	}
	if err != nil {
		writeError(c, err)
		return
	}

	attach(c, "solar_summary."+format, contentType, buf.Bytes())
}

func attach(c *gin.Context, filename, contentType string, body []byte) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, body)
}
