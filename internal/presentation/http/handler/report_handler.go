package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pascallapointe/HairBill-sub000/internal/application/service"
	"github.com/pascallapointe/HairBill-sub000/internal/domain/entity"
	"github.com/pascallapointe/HairBill-sub000/internal/domain/enum"
	"github.com/pascallapointe/HairBill-sub000/internal/presentation/http/dto/response"
)

// reportDateLayout is the format for custom range bounds
const reportDateLayout = "2006-01-02"

// ReportHandler handles report-related HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Get builds a report for the requested window. The window comes either
// from period + year (+ start_month, + quarter) or, for a custom period,
// from start_date and end_date.
func (h *ReportHandler) Get(c *gin.Context) {
	period := enum.ReportPeriod(c.DefaultQuery("period", string(enum.ReportPeriodAnnual)))
	if !period.Valid() {
		response.BadRequest(c, "Unknown report period")
		return
	}

	var rng entity.ReportRange

	if period == enum.ReportPeriodCustom {
		start, err := time.ParseInLocation(reportDateLayout, c.Query("start_date"), time.Local)
		if err != nil {
			response.BadRequest(c, "start_date must be formatted as YYYY-MM-DD")
			return
		}
		end, err := time.ParseInLocation(reportDateLayout, c.Query("end_date"), time.Local)
		if err != nil {
			response.BadRequest(c, "end_date must be formatted as YYYY-MM-DD")
			return
		}
		if end.Before(start) {
			response.BadRequest(c, "end_date must not precede start_date")
			return
		}
		rng = h.reportService.RangeByDates(start, end)
	} else {
		year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(time.Now().Year())))
		if err != nil {
			response.BadRequest(c, "year must be a number")
			return
		}

		var startMonth *int
		if raw := c.Query("start_month"); raw != "" {
			sm, err := strconv.Atoi(raw)
			if err != nil {
				response.BadRequest(c, "start_month must be a number")
				return
			}
			startMonth = &sm
		}

		var quarter *int
		if period == enum.ReportPeriodQuarterly {
			q, err := strconv.Atoi(c.DefaultQuery("quarter", "1"))
			if err != nil {
				response.BadRequest(c, "quarter must be a number")
				return
			}
			quarter = &q
		}

		rng, err = h.reportService.RangeByFormat(year, startMonth, period == enum.ReportPeriodMonthly, quarter)
		if err != nil {
			response.Error(c, err)
			return
		}
	}

	report, err := h.reportService.GetReport(c.Request.Context(), rng)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Report generated successfully", gin.H{"report": report})
}
