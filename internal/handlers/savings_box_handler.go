package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/halarumdigital/agente-financeiro/internal/errors"
	"github.com/halarumdigital/agente-financeiro/internal/models"
	"github.com/halarumdigital/agente-financeiro/internal/services"
)

// SavingsBoxHandler handles savings-box requests.
type SavingsBoxHandler struct {
	boxes services.SavingsBoxServicer
}

// NewSavingsBoxHandler creates a new SavingsBoxHandler.
func NewSavingsBoxHandler(boxes services.SavingsBoxServicer) *SavingsBoxHandler {
	return &SavingsBoxHandler{boxes: boxes}
}

// CreateSavingsBoxRequest is the payload for creating a savings box.
type CreateSavingsBoxRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	GoalAmount  decimal.Decimal `json:"goal_amount"`
	Icon        string          `json:"icon"`
	Color       string          `json:"color" binding:"omitempty,hex_color"`
}

// MoveMoneyRequest is the payload for a deposit or withdrawal.
type MoveMoneyRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
}

// ListSavingsBoxes returns all active savings boxes with the total saved.
// @Summary     List savings boxes
// @Tags        savings-boxes
// @Produce     json
// @Success     200 {object} map[string]interface{}
// @Failure     500 {object} ErrorResponse
// @Router      /savings-boxes [get]
func (h *SavingsBoxHandler) ListSavingsBoxes(c *gin.Context) {
	boxes, err := h.boxes.GetSavingsBoxes()
	if err != nil {
		respondWithError(c, err)
		return
	}
	total, err := h.boxes.GetTotalSaved()
	if err != nil {
		respondWithError(c, err)
		return
	}
	respondOK(c, gin.H{"boxes": boxes, "total_saved": total})
}

// CreateSavingsBox creates a new savings box.
// @Summary     Create a savings box
// @Tags        savings-boxes
// @Accept      json
// @Produce     json
// @Param       request body CreateSavingsBoxRequest true "Savings box details"
// @Success     201 {object} map[string]interface{}
// @Failure     400 {object} ErrorResponse
// @Failure     409 {object} ErrorResponse
// @Router      /savings-boxes [post]
func (h *SavingsBoxHandler) CreateSavingsBox(c *gin.Context) {
	var req CreateSavingsBoxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	box, err := h.boxes.CreateSavingsBox(req.Name, req.Description, req.GoalAmount, req.Icon, req.Color)
	if err != nil {
		respondWithError(c, err)
		return
	}
	respondCreated(c, box)
}

// GetSavingsBox returns a savings box with its recent movements.
// @Summary     Get a savings box
// @Tags        savings-boxes
// @Produce     json
// @Param       id path int true "Savings box ID"
// @Param       limit query int false "Number of movements" default(20)
// @Success     200 {object} map[string]interface{}
// @Failure     404 {object} ErrorResponse
// @Router      /savings-boxes/{id} [get]
func (h *SavingsBoxHandler) GetSavingsBox(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid limit"))
			return
		}
		limit = parsed
	}

	box, err := h.boxes.GetSavingsBoxByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	movements, err := h.boxes.GetBoxTransactions(id, limit)
	if err != nil {
		respondWithError(c, err)
		return
	}
	respondOK(c, gin.H{"box": box, "transactions": movements})
}

// Deposit adds money to a savings box.
// @Summary     Deposit into a savings box
// @Tags        savings-boxes
// @Accept      json
// @Produce     json
// @Param       id path int true "Savings box ID"
// @Param       request body MoveMoneyRequest true "Deposit details"
// @Success     200 {object} map[string]interface{}
// @Failure     400 {object} ErrorResponse
// @Failure     404 {object} ErrorResponse
// @Router      /savings-boxes/{id}/deposit [post]
func (h *SavingsBoxHandler) Deposit(c *gin.Context) {
	h.moveMoney(c, h.boxes.Deposit)
}

// Withdraw removes money from a savings box.
// @Summary     Withdraw from a savings box
// @Tags        savings-boxes
// @Accept      json
// @Produce     json
// @Param       id path int true "Savings box ID"
// @Param       request body MoveMoneyRequest true "Withdrawal details"
// @Success     200 {object} map[string]interface{}
// @Failure     400 {object} ErrorResponse
// @Failure     404 {object} ErrorResponse
// @Failure     422 {object} ErrorResponse
// @Router      /savings-boxes/{id}/withdraw [post]
func (h *SavingsBoxHandler) Withdraw(c *gin.Context) {
	h.moveMoney(c, h.boxes.Withdraw)
}

func (h *SavingsBoxHandler) moveMoney(c *gin.Context, op func(uint, decimal.Decimal, string) (*models.SavingsBox, error)) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req MoveMoneyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	box, err := op(id, req.Amount, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}
	respondOK(c, box)
}

// DeleteSavingsBox deactivates a savings box.
// @Summary     Delete a savings box
// @Tags        savings-boxes
// @Produce     json
// @Param       id path int true "Savings box ID"
// @Success     200 {object} map[string]interface{}
// @Failure     404 {object} ErrorResponse
// @Router      /savings-boxes/{id} [delete]
func (h *SavingsBoxHandler) DeleteSavingsBox(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	if err := h.boxes.DeleteSavingsBox(id); err != nil {
		respondWithError(c, err)
		return
	}
	respondOK(c, gin.H{"deleted": true})
}
