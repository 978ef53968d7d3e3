package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/halarumdigital/agente-financeiro/internal/errors"
	"github.com/halarumdigital/agente-financeiro/internal/services"
)

// BillHandler handles recurring-bill requests.
type BillHandler struct {
	bills services.BillServicer
}

// NewBillHandler creates a new BillHandler.
func NewBillHandler(bills services.BillServicer) *BillHandler {
	return &BillHandler{bills: bills}
}

// CreateBillRequest is the payload for creating a bill.
type CreateBillRequest struct {
	Name               string          `json:"name" binding:"required"`
	Description        string          `json:"description"`
	Amount             decimal.Decimal `json:"amount" binding:"required"`
	DueDay             int             `json:"due_day" binding:"required,min=1,max=31"`
	CategoryID         *uint           `json:"category_id"`
	IsRecurring        *bool           `json:"is_recurring"`
	ReminderDaysBefore int             `json:"reminder_days_before" binding:"omitempty,min=0,max=15"`
}

// UpdateBillRequest is the payload for updating a bill. Absent fields are
// left unchanged.
type UpdateBillRequest struct {
	Name               *string          `json:"name"`
	Description        *string          `json:"description"`
	Amount             *decimal.Decimal `json:"amount"`
	DueDay             *int             `json:"due_day" binding:"omitempty,min=1,max=31"`
	CategoryID         *uint            `json:"category_id"`
	IsRecurring        *bool            `json:"is_recurring"`
	ReminderDaysBefore *int             `json:"reminder_days_before" binding:"omitempty,min=0,max=15"`
}

// ListBills returns all active bills with the monthly total.
// @Summary     List bills
// @Tags        bills
// @Produce     json
// @Success     200 {object} map[string]interface{}
// @Failure     500 {object} ErrorResponse
// @Router      /bills [get]
func (h *BillHandler) ListBills(c *gin.Context) {
	bills, err := h.bills.GetBills()
	if err != nil {
		respondWithError(c, err)
		return
	}
	total, err := h.bills.GetMonthlyBillsTotal()
	if err != nil {
		respondWithError(c, err)
		return
	}
	respondOK(c, gin.H{"bills": bills, "monthly_total": total})
}

// CreateBill creates a new bill.
// @Summary     Create a bill
// @Tags        bills
// @Accept      json
// @Produce     json
// @Param       request body CreateBillRequest true "Bill details"
// @Success     201 {object} map[string]interface{}
// @Failure     400 {object} ErrorResponse
// @Router      /bills [post]
func (h *BillHandler) CreateBill(c *gin.Context) {
	var req CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input := services.CreateBillInput{
		Name:               req.Name,
		Description:        req.Description,
		Amount:             req.Amount,
		DueDay:             req.DueDay,
		CategoryID:         req.CategoryID,
		IsRecurring:        true,
		ReminderDaysBefore: req.ReminderDaysBefore,
	}
	if req.IsRecurring != nil {
		input.IsRecurring = *req.IsRecurring
	}

	bill, err := h.bills.CreateBill(input)
	if err != nil {
		respondWithError(c, err)
		return
	}
	respondCreated(c, bill)
}

// GetBill returns a single bill by ID.
// @Summary     Get a bill
// @Tags        bills
// @Produce     json
// @Param       id path int true "Bill ID"
// @Success     200 {object} map[string]interface{}
// @Failure     404 {object} ErrorResponse
// @Router      /bills/{id} [get]
func (h *BillHandler) GetBill(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	bill, err := h.bills.GetBillByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	respondOK(c, bill)
}

// UpdateBill updates a bill's fields.
// @Summary     Update a bill
// @Tags        bills
// @Accept      json
// @Produce     json
// @Param       id path int true "Bill ID"
// @Param       request body UpdateBillRequest true "Fields to update"
// @Success     200 {object} map[string]interface{}
// @Failure     400 {object} ErrorResponse
// @Failure     404 {object} ErrorResponse
// @Router      /bills/{id} [put]
func (h *BillHandler) UpdateBill(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	bill, err := h.bills.UpdateBill(id, services.UpdateBillInput{
		Name:               req.Name,
		Description:        req.Description,
		Amount:             req.Amount,
		DueDay:             req.DueDay,
		CategoryID:         req.CategoryID,
		IsRecurring:        req.IsRecurring,
		ReminderDaysBefore: req.ReminderDaysBefore,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	respondOK(c, bill)
}

// DeleteBill deactivates a bill.
// @Summary     Delete a bill
// @Tags        bills
// @Produce     json
// @Param       id path int true "Bill ID"
// @Success     200 {object} map[string]interface{}
// @Failure     404 {object} ErrorResponse
// @Router      /bills/{id} [delete]
func (h *BillHandler) DeleteBill(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	if err := h.bills.DeleteBill(id); err != nil {
		respondWithError(c, err)
		return
	}
	respondOK(c, gin.H{"deleted": true})
}

// PayBill marks a bill as paid for the current month.
// @Summary     Mark a bill as paid
// @Tags        bills
// @Produce     json
// @Param       id path int true "Bill ID"
// @Success     200 {object} map[string]interface{}
// @Failure     404 {object} ErrorResponse
// @Router      /bills/{id}/pay [post]
func (h *BillHandler) PayBill(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	if err := h.bills.MarkPaid(id, time.Now()); err != nil {
		respondWithError(c, err)
		return
	}

	bill, err := h.bills.GetBillByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	respondOK(c, bill)
}

// GetUpcomingBills returns bills due within the next N days.
// @Summary     Upcoming bills
// @Tags        bills
// @Produce     json
// @Param       days query int false "Lookahead window in days" default(7)
// @Success     200 {object} map[string]interface{}
// @Failure     400 {object} ErrorResponse
// @Router      /bills/upcoming [get]
func (h *BillHandler) GetUpcomingBills(c *gin.Context) {
	days := 7
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 31 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid days"))
			return
		}
		days = parsed
	}

	bills, err := h.bills.GetUpcomingBills(days)
	if err != nil {
		respondWithError(c, err)
		return
	}
	respondOK(c, bills)
}
