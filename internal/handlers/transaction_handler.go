package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/halarumdigital/agente-financeiro/internal/errors"
	"github.com/halarumdigital/agente-financeiro/internal/models"
	"github.com/halarumdigital/agente-financeiro/internal/pagination"
	"github.com/halarumdigital/agente-financeiro/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactions services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactions services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

// CreateTransactionRequest is the payload for creating a transaction.
type CreateTransactionRequest struct {
	Type        models.TransactionType `json:"type" binding:"required,transaction_type"`
	Amount      decimal.Decimal        `json:"amount" binding:"required"`
	Description string                 `json:"description" binding:"required"`
	CategoryID  uint                   `json:"category_id" binding:"required"`
	Date        string                 `json:"date"`
	Notes       string                 `json:"notes"`
}

// ListTransactions returns a paginated transaction list.
// @Summary     List transactions
// @Description List transactions with optional date, type and category filters
// @Tags        transactions
// @Produce     json
// @Param       page query int false "Page number" default(1)
// @Param       page_size query int false "Page size" default(20)
// @Param       startDate query string false "Start date (YYYY-MM-DD)"
// @Param       endDate query string false "End date (YYYY-MM-DD)"
// @Param       type query string false "Transaction type" Enums(income, expense)
// @Param       category_id query int false "Category ID"
// @Success     200 {object} map[string]interface{}
// @Failure     400 {object} ErrorResponse
// @Router      /transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
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

	result, err := h.transactions.GetTransactions(page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}
	respondOK(c, result)
}

// CreateTransaction creates a new transaction.
// @Summary     Create a transaction
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} map[string]interface{}
// @Failure     400 {object} ErrorResponse
// @Failure     404 {object} ErrorResponse
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input := services.CreateTransactionInput{
		Type:        req.Type,
		Amount:      req.Amount,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Notes:       req.Notes,
		Source:      models.TransactionSourceManual,
	}
	if req.Date != "" {
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid date, expected YYYY-MM-DD"))
			return
		}
		input.Date = date
	}

	transaction, err := h.transactions.CreateTransaction(input)
	if err != nil {
		respondWithError(c, err)
		return
	}
	respondCreated(c, transaction)
}

// GetTransaction returns a single transaction by ID.
// @Summary     Get a transaction
// @Tags        transactions
// @Produce     json
// @Param       id path int true "Transaction ID"
// @Success     200 {object} map[string]interface{}
// @Failure     404 {object} ErrorResponse
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactions.GetTransactionByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	respondOK(c, transaction)
}

// GetRecentTransactions returns the most recent transactions.
// @Summary     Recent transactions
// @Tags        transactions
// @Produce     json
// @Param       limit query int false "Number of transactions" default(10)
// @Success     200 {object} map[string]interface{}
// @Router      /transactions/recent [get]
func (h *TransactionHandler) GetRecentTransactions(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid limit"))
			return
		}
		limit = parsed
	}

	transactions, err := h.transactions.GetRecentTransactions(limit)
	if err != nil {
		respondWithError(c, err)
		return
	}
	respondOK(c, transactions)
}

// GetMonthSummary returns income, expense and balance for a month.
// @Summary     Month summary
// @Tags        transactions
// @Produce     json
// @Param       year query int false "Year, defaults to current"
// @Param       month query int false "Month (1-12), defaults to current"
// @Success     200 {object} map[string]interface{}
// @Failure     400 {object} ErrorResponse
// @Router      /transactions/summary [get]
func (h *TransactionHandler) GetMonthSummary(c *gin.Context) {
	now := time.Now()
	year := now.Year()
	month := now.Month()

	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 2000 || parsed > 2100 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid year"))
			return
		}
		year = parsed
	}
	if raw := c.Query("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 12 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid month"))
			return
		}
		month = time.Month(parsed)
	}

	summary, err := h.transactions.GetMonthSummary(year, month)
	if err != nil {
		respondWithError(c, err)
		return
	}
	respondOK(c, summary)
}

func parsePageRequest(c *gin.Context) (pagination.PageRequest, error) {
	var page pagination.PageRequest
	if raw := c.DefaultQuery("page", "1"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return page, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid page")
		}
		page.Page = parsed
	}
	if raw := c.DefaultQuery("page_size", "20"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return page, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid page_size")
		}
		page.PageSize = parsed
	}
	return page, nil
}

func parseTransactionFilter(c *gin.Context) (services.TransactionFilter, error) {
	var filter services.TransactionFilter

	if raw := c.Query("startDate"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid startDate, expected YYYY-MM-DD")
		}
		filter.FromDate = &parsed
	}
	if raw := c.Query("endDate"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid endDate, expected YYYY-MM-DD")
		}
		filter.ToDate = &parsed
	}
	if raw := c.Query("type"); raw != "" {
		t := models.TransactionType(raw)
		if t != models.TransactionTypeIncome && t != models.TransactionTypeExpense {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid type")
		}
		filter.Type = &t
	}
	if raw := c.Query("category_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid category_id")
		}
		id := uint(parsed)
		filter.CategoryID = &id
	}
	return filter, nil
}
