package handlers

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/halarumdigital/agente-financeiro/internal/errors"
	"github.com/halarumdigital/agente-financeiro/internal/models"
	"github.com/halarumdigital/agente-financeiro/internal/services"
)

// CategoryHandler handles category-related requests.
type CategoryHandler struct {
	categories services.CategoryServicer
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categories services.CategoryServicer) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// CreateCategoryRequest is the payload for creating a category.
type CreateCategoryRequest struct {
	Name  string              `json:"name" binding:"required"`
	Type  models.CategoryType `json:"type" binding:"required,category_type"`
	Icon  string              `json:"icon"`
	Color string              `json:"color" binding:"omitempty,hex_color"`
}

// UpdateCategoryRequest is the payload for updating a category.
type UpdateCategoryRequest struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color" binding:"omitempty,hex_color"`
}

// ListCategories returns all active categories.
// @Summary     List categories
// @Description List active categories, optionally filtered by type
// @Tags        categories
// @Produce     json
// @Param       type query string false "Category type" Enums(income, expense, investment)
// @Success     200 {object} map[string]interface{}
// @Failure     500 {object} ErrorResponse
// @Router      /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	if t := c.Query("type"); t != "" {
		categories, err := h.categories.GetCategoriesByType(models.CategoryType(t))
		if err != nil {
			respondWithError(c, err)
			return
		}
		respondOK(c, categories)
		return
	}

	categories, err := h.categories.GetCategories()
	if err != nil {
		respondWithError(c, err)
		return
	}
	respondOK(c, categories)
}

// GetCategory returns a single category by ID.
// @Summary     Get a category
// @Tags        categories
// @Produce     json
// @Param       id path int true "Category ID"
// @Success     200 {object} map[string]interface{}
// @Failure     400 {object} ErrorResponse
// @Failure     404 {object} ErrorResponse
// @Router      /categories/{id} [get]
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	category, err := h.categories.GetCategoryByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	respondOK(c, category)
}

// CreateCategory creates a new category.
// @Summary     Create a category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       request body CreateCategoryRequest true "Category details"
// @Success     201 {object} map[string]interface{}
// @Failure     400 {object} ErrorResponse
// @Failure     409 {object} ErrorResponse
// @Router      /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category, err := h.categories.CreateCategory(req.Name, req.Type, req.Icon, req.Color)
	if err != nil {
		respondWithError(c, err)
		return
	}
	respondCreated(c, category)
}

// UpdateCategory updates a category's name, icon or color.
// @Summary     Update a category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       id path int true "Category ID"
// @Param       request body UpdateCategoryRequest true "Fields to update"
// @Success     200 {object} map[string]interface{}
// @Failure     400 {object} ErrorResponse
// @Failure     404 {object} ErrorResponse
// @Router      /categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category, err := h.categories.UpdateCategory(id, req.Name, req.Icon, req.Color)
	if err != nil {
		respondWithError(c, err)
		return
	}
	respondOK(c, category)
}

// DeleteCategory deactivates a category.
// @Summary     Delete a category
// @Tags        categories
// @Produce     json
// @Param       id path int true "Category ID"
// @Success     200 {object} map[string]interface{}
// @Failure     404 {object} ErrorResponse
// @Router      /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.categories.DeleteCategory(id); err != nil {
		respondWithError(c, err)
		return
	}
	respondOK(c, gin.H{"deleted": true})
}
