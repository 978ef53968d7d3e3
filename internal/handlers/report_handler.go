package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/halarumdigital/agente-financeiro/internal/errors"
	"github.com/halarumdigital/agente-financeiro/internal/models"
	"github.com/halarumdigital/agente-financeiro/internal/services"
)

// ReportHandler serves the read-only reporting endpoints. The /reports
// routes require an explicit date range; only the dashboard falls back
// to the current month.
type ReportHandler struct {
	reports services.ReportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reports services.ReportServicer) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// reportRangeQuery binds the mandatory report window. These query
// parameters are camelCase, matching the rest of the report surface.
type reportRangeQuery struct {
	StartDate string `form:"startDate" binding:"required"`
	EndDate   string `form:"endDate" binding:"required"`
}

type byPeriodQuery struct {
	reportRangeQuery
	GroupBy string `form:"groupBy" binding:"omitempty,group_by"`
}

func (q reportRangeQuery) parse() (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", q.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid startDate, expected YYYY-MM-DD")
	}
	end, err := time.Parse("2006-01-02", q.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid endDate, expected YYYY-MM-DD")
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "endDate before startDate")
	}
	return start, end, nil
}

func (h *ReportHandler) dateRange(c *gin.Context) (time.Time, time.Time, error) {
	var q reportRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return time.Time{}, time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "startDate e endDate são obrigatórios")
	}
	return q.parse()
}

// ByCategory returns totals grouped by category.
// @Summary     Report by category
// @Tags        reports
// @Produce     json
// @Param       startDate query string true "Start date (YYYY-MM-DD)"
// @Param       endDate query string true "End date (YYYY-MM-DD)"
// @Param       type query string false "Category type" Enums(income, expense)
// @Success     200 {object} map[string]interface{}
// @Failure     400 {object} ErrorResponse
// @Router      /reports/by-category [get]
func (h *ReportHandler) ByCategory(c *gin.Context) {
	start, end, err := h.dateRange(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var typeFilter *models.CategoryType
	if raw := c.Query("type"); raw != "" {
		t := models.CategoryType(raw)
		if t != models.CategoryTypeIncome && t != models.CategoryTypeExpense {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid type"))
			return
		}
		typeFilter = &t
	}

	report, err := h.reports.ByCategory(start, end, typeFilter)
	if err != nil {
		respondWithError(c, err)
		return
	}
	respondOK(c, report)
}

// ByPeriod returns a dense income/expense time series.
// @Summary     Report by period
// @Tags        reports
// @Produce     json
// @Param       startDate query string true "Start date (YYYY-MM-DD)"
// @Param       endDate query string true "End date (YYYY-MM-DD)"
// @Param       groupBy query string false "Bucket size" Enums(day, week, month, year) default(day)
// @Success     200 {object} map[string]interface{}
// @Failure     400 {object} ErrorResponse
// @Router      /reports/by-period [get]
func (h *ReportHandler) ByPeriod(c *gin.Context) {
	var q byPeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "startDate e endDate são obrigatórios e groupBy deve ser day, week, month ou year"))
		return
	}
	start, end, err := q.parse()
	if err != nil {
		respondWithError(c, err)
		return
	}

	series, err := h.reports.ByPeriod(start, end, q.GroupBy)
	if err != nil {
		respondWithError(c, err)
		return
	}
	respondOK(c, series)
}

// Transactions returns the transactions of a date range, paginated.
// @Summary     Report transactions
// @Tags        reports
// @Produce     json
// @Param       startDate query string true "Start date (YYYY-MM-DD)"
// @Param       endDate query string true "End date (YYYY-MM-DD)"
// @Param       page query int false "Page number" default(1)
// @Param       page_size query int false "Page size" default(20)
// @Param       type query string false "Transaction type" Enums(income, expense)
// @Param       category_id query int false "Category ID"
// @Success     200 {object} map[string]interface{}
// @Failure     400 {object} ErrorResponse
// @Router      /reports/transactions [get]
func (h *ReportHandler) Transactions(c *gin.Context) {
	start, end, err := h.dateRange(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	page, err := parsePageRequest(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	filter, err := parseTransactionFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	// The range parameters win over any filter dates.
	filter.FromDate = nil
	filter.ToDate = nil

	result, err := h.reports.Transactions(start, end, filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	respondOK(c, result)
}

// Summary returns income, expense and balance for a date range.
// @Summary     Period summary
// @Tags        reports
// @Produce     json
// @Param       startDate query string true "Start date (YYYY-MM-DD)"
// @Param       endDate query string true "End date (YYYY-MM-DD)"
// @Success     200 {object} map[string]interface{}
// @Failure     400 {object} ErrorResponse
// @Router      /reports/summary [get]
func (h *ReportHandler) Summary(c *gin.Context) {
	start, end, err := h.dateRange(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.reports.Summary(start, end)
	if err != nil {
		respondWithError(c, err)
		return
	}
	respondOK(c, summary)
}

// Dashboard returns the default dashboard payload for the current month.
// @Summary     Dashboard
// @Tags        reports
// @Produce     json
// @Param       startDate query string false "Start date (YYYY-MM-DD), defaults to first day of month"
// @Param       endDate query string false "End date (YYYY-MM-DD), defaults to last day of month"
// @Success     200 {object} map[string]interface{}
// @Failure     400 {object} ErrorResponse
// @Router      /dashboard [get]
func (h *ReportHandler) Dashboard(c *gin.Context) {
	defaultStart, defaultEnd := monthRange(time.Now())
	start, err := parseDateQuery(c, "startDate", defaultStart)
	if err != nil {
		respondWithError(c, err)
		return
	}
	end, err := parseDateQuery(c, "endDate", defaultEnd)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if end.Before(start) {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "endDate before startDate"))
		return
	}

	dashboard, err := h.reports.GetDashboard(start, end)
	if err != nil {
		respondWithError(c, err)
		return
	}
	respondOK(c, dashboard)
}
