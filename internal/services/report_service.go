package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "github.com/halarumdigital/agente-financeiro/internal/errors"
	"github.com/halarumdigital/agente-financeiro/internal/models"
	"github.com/halarumdigital/agente-financeiro/internal/pagination"
)

type reportService struct {
	db           *gorm.DB
	transactions TransactionServicer
}

// NewReportService creates a new report service instance.
func NewReportService(db *gorm.DB, transactions TransactionServicer) ReportServicer {
	return &reportService{db: db, transactions: transactions}
}

func (s *reportService) ByCategory(start, end time.Time, typeFilter *models.CategoryType) (*CategoryReport, error) {
	query := s.db.Model(&models.Transaction{}).
		Select("categories.id as category_id, categories.name as category, categories.type as type, categories.color as color, categories.icon as icon, SUM(transactions.amount) as total, COUNT(transactions.id) as count").
		Joins("JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.date BETWEEN ? AND ?", DateOnly(start), DateOnly(end))
	if typeFilter != nil {
		query = query.Where("categories.type = ?", *typeFilter)
	}

	var rows []CategoryTotal
	err := query.Group("categories.id, categories.name, categories.type, categories.color, categories.icon").
		Order("total DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	report := CategoryReport{Categories: rows}
	for _, row := range rows {
		switch row.Type {
		case models.CategoryTypeIncome:
			report.Totals.Income = report.Totals.Income.Add(row.Total)
		case models.CategoryTypeExpense:
			report.Totals.Expense = report.Totals.Expense.Add(row.Total)
		}
	}
	report.Totals.Balance = report.Totals.Income.Sub(report.Totals.Expense)

	// Percentages are relative to the total of each row's own type.
	for i := range report.Categories {
		var base decimal.Decimal
		switch report.Categories[i].Type {
		case models.CategoryTypeIncome:
			base = report.Totals.Income
		case models.CategoryTypeExpense:
			base = report.Totals.Expense
		}
		if base.IsPositive() {
			pct, _ := report.Categories[i].Total.Div(base).Mul(decimal.NewFromInt(100)).Round(2).Float64()
			report.Categories[i].Percentage = pct
		}
	}
	return &report, nil
}

// periodKey buckets a date into its day, ISO week, month or year label.
func periodKey(date time.Time, groupBy string) string {
	switch groupBy {
	case "week":
		year, week := date.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	case "month":
		return date.Format("2006-01")
	case "year":
		return date.Format("2006")
	default:
		return date.Format("2006-01-02")
	}
}

// ByPeriod returns a dense time series: every period between start and end
// is present, zero-valued when it has no transactions. The per-date sums
// come from the database and the bucketing happens here, which keeps the
// query portable across postgres and sqlite.
func (s *reportService) ByPeriod(start, end time.Time, groupBy string) ([]PeriodTotal, error) {
	switch groupBy {
	case "day", "week", "month", "year":
	case "":
		groupBy = "day"
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Agrupamento deve ser day, week, month ou year")
	}

	start = DateOnly(start)
	end = DateOnly(end)
	if end.Before(start) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Data final anterior à data inicial")
	}

	var rows []struct {
		Date  time.Time
		Type  models.TransactionType
		Total decimal.Decimal
	}
	err := s.db.Model(&models.Transaction{}).
		Select("date, type, SUM(amount) as total").
		Where("date BETWEEN ? AND ?", start, end).
		Group("date, type").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	totals := make(map[string]*PeriodTotal)
	var order []string
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		key := periodKey(day, groupBy)
		if _, ok := totals[key]; !ok {
			totals[key] = &PeriodTotal{Period: key}
			order = append(order, key)
		}
	}

	for _, row := range rows {
		bucket, ok := totals[periodKey(row.Date, groupBy)]
		if !ok {
			continue
		}
		switch row.Type {
		case models.TransactionTypeIncome:
			bucket.Income = bucket.Income.Add(row.Total)
		case models.TransactionTypeExpense:
			bucket.Expense = bucket.Expense.Add(row.Total)
		}
	}

	series := make([]PeriodTotal, 0, len(order))
	for _, key := range order {
		bucket := totals[key]
		bucket.Balance = bucket.Income.Sub(bucket.Expense)
		series = append(series, *bucket)
	}
	return series, nil
}

func (s *reportService) Transactions(start, end time.Time, filter TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	filter.FromDate = &start
	filter.ToDate = &end
	return s.transactions.GetTransactions(page, filter)
}

func (s *reportService) Summary(start, end time.Time) (*PeriodSummary, error) {
	return s.transactions.GetDateRangeSummary(start, end)
}

func (s *reportService) GetDashboard(start, end time.Time) (*Dashboard, error) {
	summary, err := s.transactions.GetDateRangeSummary(start, end)
	if err != nil {
		return nil, err
	}
	recent, err := s.transactions.GetRecentTransactions(5)
	if err != nil {
		return nil, err
	}
	expenseType := models.CategoryTypeExpense
	byCategory, err := s.ByCategory(start, end, &expenseType)
	if err != nil {
		return nil, err
	}

	dashboard := Dashboard{
		Summary:            *summary,
		RecentTransactions: recent,
		ExpensesByCategory: byCategory.Categories,
	}
	dashboard.Period.StartDate = DateOnly(start).Format("2006-01-02")
	dashboard.Period.EndDate = DateOnly(end).Format("2006-01-02")
	return &dashboard, nil
}
