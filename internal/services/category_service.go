package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "github.com/halarumdigital/agente-financeiro/internal/errors"
	"github.com/halarumdigital/agente-financeiro/internal/logger"
	"github.com/halarumdigital/agente-financeiro/internal/models"
)

type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new category service instance.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

func (s *categoryService) CreateCategory(name string, categoryType models.CategoryType, icon, color string) (*models.Category, error) {
	log := logger.Get()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Nome da categoria é obrigatório")
	}

	var existing models.Category
	err := s.db.Where("LOWER(name) = LOWER(?) AND type = ?", name, categoryType).First(&existing).Error
	if err == nil {
		return nil, apperrors.ErrDuplicateCategory
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	category := models.Category{
		Name:     name,
		Type:     categoryType,
		Icon:     icon,
		Color:    color,
		IsActive: true,
	}
	if err := s.db.Create(&category).Error; err != nil {
		log.Errorw("failed to create category", "name", name, "error", err)
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	log.Infow("category created", "category_id", category.ID, "name", category.Name, "type", category.Type)
	return &category, nil
}

func (s *categoryService) GetCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Where("is_active = ?", true).Order("type ASC, name ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

func (s *categoryService) GetCategoriesByType(categoryType models.CategoryType) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.Where("is_active = ? AND type = ?", true, categoryType).Order("name ASC").Find(&categories).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

func (s *categoryService) GetCategoryByID(categoryID uint) (*models.Category, error) {
	var category models.Category
	err := s.db.First(&category, categoryID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

func (s *categoryService) GetCategoryByName(name string, categoryType models.CategoryType) (*models.Category, error) {
	var category models.Category
	err := s.db.Where("LOWER(name) = LOWER(?) AND type = ? AND is_active = ?", strings.TrimSpace(name), categoryType, true).
		First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// FindBestMatch resolves free text coming from the AI parser or the bot to a
// real category. Matching is case-insensitive and runs in order: exact name,
// substring in either direction, the "Outros" fallback, then the first
// category of the type.
func (s *categoryService) FindBestMatch(name string, categoryType models.CategoryType) (*models.Category, error) {
	categories, err := s.GetCategoriesByType(categoryType)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, apperrors.ErrCategoryNotFound
	}

	needle := strings.ToLower(strings.TrimSpace(name))

	if needle != "" {
		for i := range categories {
			if strings.ToLower(categories[i].Name) == needle {
				return &categories[i], nil
			}
		}
		for i := range categories {
			haystack := strings.ToLower(categories[i].Name)
			if strings.Contains(haystack, needle) || strings.Contains(needle, haystack) {
				return &categories[i], nil
			}
		}
	}

	for i := range categories {
		if strings.EqualFold(categories[i].Name, models.FallbackCategoryName) {
			return &categories[i], nil
		}
	}
	return &categories[0], nil
}

func (s *categoryService) ActiveNamesByType(categoryType models.CategoryType) ([]string, error) {
	categories, err := s.GetCategoriesByType(categoryType)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	return names, nil
}

func (s *categoryService) UpdateCategory(categoryID uint, name, icon, color string) (*models.Category, error) {
	category, err := s.GetCategoryByID(categoryID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if name = strings.TrimSpace(name); name != "" {
		updates["name"] = name
	}
	if icon != "" {
		updates["icon"] = icon
	}
	if color != "" {
		updates["color"] = color
	}
	if len(updates) == 0 {
		return category, nil
	}

	if err := s.db.Model(category).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// DeleteCategory deactivates the category. Rows are kept so historical
// transactions keep their category reference.
func (s *categoryService) DeleteCategory(categoryID uint) error {
	category, err := s.GetCategoryByID(categoryID)
	if err != nil {
		return err
	}

	if err := s.db.Model(category).Update("is_active", false).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	logger.Get().Infow("category deactivated", "category_id", categoryID)
	return nil
}
