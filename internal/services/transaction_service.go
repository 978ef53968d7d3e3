package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "github.com/halarumdigital/agente-financeiro/internal/errors"
	"github.com/halarumdigital/agente-financeiro/internal/logger"
	"github.com/halarumdigital/agente-financeiro/internal/models"
	"github.com/halarumdigital/agente-financeiro/internal/pagination"
)

type transactionService struct {
	db         *gorm.DB
	categories CategoryServicer
}

// NewTransactionService creates a new transaction service instance.
func NewTransactionService(db *gorm.DB, categories CategoryServicer) TransactionServicer {
	return &transactionService{db: db, categories: categories}
}

// DateOnly truncates t to midnight UTC. Transactions and bill stamps store
// calendar dates, not instants; normalizing at the write path keeps date
// equality and BETWEEN comparisons exact on both postgres and sqlite.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *transactionService) CreateTransaction(input CreateTransactionInput) (*models.Transaction, error) {
	log := logger.Get()

	if input.Type != models.TransactionTypeIncome && input.Type != models.TransactionTypeExpense {
		return nil, apperrors.ErrInvalidTransactionType
	}
	if !input.Amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Valor deve ser maior que zero")
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Descrição é obrigatória")
	}

	category, err := s.categories.GetCategoryByID(input.CategoryID)
	if err != nil {
		return nil, err
	}
	if category.Type != models.CategoryType(input.Type) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Categoria não corresponde ao tipo da transação")
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	source := input.Source
	if source == "" {
		source = models.TransactionSourceManual
	}

	transaction := models.Transaction{
		Type:              input.Type,
		Amount:            input.Amount,
		Description:       strings.TrimSpace(input.Description),
		CategoryID:        input.CategoryID,
		Date:              DateOnly(date),
		Notes:             input.Notes,
		Source:            source,
		TelegramMessageID: input.TelegramMessageID,
	}
	if err := s.db.Create(&transaction).Error; err != nil {
		log.Errorw("failed to create transaction", "description", input.Description, "error", err)
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	transaction.Category = category

	log.Infow("transaction created",
		"transaction_id", transaction.ID,
		"type", transaction.Type,
		"amount", transaction.Amount,
		"category", category.Name,
		"source", transaction.Source,
	)
	return &transaction, nil
}

func (s *transactionService) applyFilter(query *gorm.DB, filter TransactionFilter) *gorm.DB {
	if filter.FromDate != nil {
		query = query.Where("date >= ?", DateOnly(*filter.FromDate))
	}
	if filter.ToDate != nil {
		query = query.Where("date <= ?", DateOnly(*filter.ToDate))
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	return query
}

func (s *transactionService) GetTransactions(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()
	query := s.applyFilter(s.db.Model(&models.Transaction{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	err := query.Preload("Category").
		Order("date DESC, id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&transactions).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	response := pagination.NewPageResponse(transactions, page.Page, page.PageSize, total)
	return &response, nil
}

func (s *transactionService) GetTransactionByID(transactionID uint) (*models.Transaction, error) {
	var transaction models.Transaction
	err := s.db.Preload("Category").First(&transaction, transactionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

func (s *transactionService) GetRecentTransactions(limit int) ([]models.Transaction, error) {
	if limit <= 0 {
		limit = 10
	}
	var transactions []models.Transaction
	err := s.db.Preload("Category").
		Order("date DESC, id DESC").
		Limit(limit).
		Find(&transactions).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

func (s *transactionService) GetMonthSummary(year int, month time.Month) (*PeriodSummary, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return s.GetDateRangeSummary(start, end)
}

func (s *transactionService) GetDateRangeSummary(start, end time.Time) (*PeriodSummary, error) {
	sumByType := func(transactionType models.TransactionType) (decimal.Decimal, error) {
		var raw struct {
			Total decimal.Decimal
		}
		err := s.db.Model(&models.Transaction{}).
			Select("COALESCE(SUM(amount), 0) as total").
			Where("type = ? AND date BETWEEN ? AND ?", transactionType, DateOnly(start), DateOnly(end)).
			Scan(&raw).Error
		if err != nil {
			return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return raw.Total, nil
	}

	income, err := sumByType(models.TransactionTypeIncome)
	if err != nil {
		return nil, err
	}
	expense, err := sumByType(models.TransactionTypeExpense)
	if err != nil {
		return nil, err
	}

	return &PeriodSummary{
		Income:  income,
		Expense: expense,
		Balance: income.Sub(expense),
	}, nil
}
