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
)

type savingsBoxService struct {
	db *gorm.DB
}

// NewSavingsBoxService creates a new savings box service instance.
func NewSavingsBoxService(db *gorm.DB) SavingsBoxServicer {
	return &savingsBoxService{db: db}
}

func (s *savingsBoxService) CreateSavingsBox(name, description string, goalAmount decimal.Decimal, icon, color string) (*models.SavingsBox, error) {
	log := logger.Get()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Nome da caixinha é obrigatório")
	}
	if goalAmount.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Meta não pode ser negativa")
	}

	var existing models.SavingsBox
	err := s.db.Where("LOWER(name) = LOWER(?) AND is_active = ?", name, true).First(&existing).Error
	if err == nil {
		return nil, apperrors.ErrDuplicateBox
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	box := models.SavingsBox{
		Name:          name,
		Description:   description,
		GoalAmount:    goalAmount,
		CurrentAmount: decimal.Zero,
		IsActive:      true,
	}
	if icon != "" {
		box.Icon = icon
	}
	if color != "" {
		box.Color = color
	}
	if err := s.db.Create(&box).Error; err != nil {
		log.Errorw("failed to create savings box", "name", name, "error", err)
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	log.Infow("savings box created", "box_id", box.ID, "name", box.Name)
	return &box, nil
}

func (s *savingsBoxService) GetSavingsBoxes() ([]models.SavingsBox, error) {
	var boxes []models.SavingsBox
	if err := s.db.Where("is_active = ?", true).Order("name ASC").Find(&boxes).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return boxes, nil
}

func (s *savingsBoxService) GetTotalSaved() (decimal.Decimal, error) {
	var raw struct {
		Total decimal.Decimal
	}
	err := s.db.Model(&models.SavingsBox{}).
		Select("COALESCE(SUM(current_amount), 0) as total").
		Where("is_active = ?", true).
		Scan(&raw).Error
	if err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return raw.Total, nil
}

func (s *savingsBoxService) GetSavingsBoxByID(boxID uint) (*models.SavingsBox, error) {
	var box models.SavingsBox
	err := s.db.Where("is_active = ?", true).First(&box, boxID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSavingsBoxNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &box, nil
}

func (s *savingsBoxService) GetSavingsBoxByName(name string) (*models.SavingsBox, error) {
	var box models.SavingsBox
	err := s.db.Where("LOWER(name) = LOWER(?) AND is_active = ?", strings.TrimSpace(name), true).
		First(&box).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSavingsBoxNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &box, nil
}

func (s *savingsBoxService) GetBoxTransactions(boxID uint, limit int) ([]models.SavingsBoxTransaction, error) {
	if _, err := s.GetSavingsBoxByID(boxID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	var entries []models.SavingsBoxTransaction
	err := s.db.Where("savings_box_id = ?", boxID).
		Order("date DESC, id DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entries, nil
}

// Deposit adds amount to the box balance. The balance bump and the ledger
// row commit atomically; the UPDATE is expressed against the current stored
// value so concurrent deposits never lose increments.
func (s *savingsBoxService) Deposit(boxID uint, amount decimal.Decimal, description string) (*models.SavingsBox, error) {
	if !amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Valor deve ser maior que zero")
	}
	if _, err := s.GetSavingsBoxByID(boxID); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.SavingsBox{}).
			Where("id = ? AND is_active = ?", boxID, true).
			Update("current_amount", gorm.Expr("current_amount + ?", amount))
		if result.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrSavingsBoxNotFound
		}

		entry := models.SavingsBoxTransaction{
			SavingsBoxID: boxID,
			Type:         models.SavingsBoxDeposit,
			Amount:       amount,
			Description:  description,
			Date:         DateOnly(time.Now()),
		}
		if err := tx.Create(&entry).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Infow("savings box deposit", "box_id", boxID, "amount", amount)
	return s.GetSavingsBoxByID(boxID)
}

// Withdraw removes amount from the box balance. The guard on the stored
// balance lives in the UPDATE itself, so two concurrent withdrawals can
// never drive the balance negative; the loser sees insufficient funds.
func (s *savingsBoxService) Withdraw(boxID uint, amount decimal.Decimal, description string) (*models.SavingsBox, error) {
	if !amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Valor deve ser maior que zero")
	}
	if _, err := s.GetSavingsBoxByID(boxID); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.SavingsBox{}).
			Where("id = ? AND is_active = ? AND current_amount >= ?", boxID, true, amount).
			Update("current_amount", gorm.Expr("current_amount - ?", amount))
		if result.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrInsufficientFunds
		}

		entry := models.SavingsBoxTransaction{
			SavingsBoxID: boxID,
			Type:         models.SavingsBoxWithdraw,
			Amount:       amount,
			Description:  description,
			Date:         DateOnly(time.Now()),
		}
		if err := tx.Create(&entry).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Infow("savings box withdrawal", "box_id", boxID, "amount", amount)
	return s.GetSavingsBoxByID(boxID)
}

// DeleteSavingsBox deactivates the box. The ledger stays intact.
func (s *savingsBoxService) DeleteSavingsBox(boxID uint) error {
	box, err := s.GetSavingsBoxByID(boxID)
	if err != nil {
		return err
	}

	if err := s.db.Model(box).Update("is_active", false).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	logger.Get().Infow("savings box deactivated", "box_id", boxID)
	return nil
}
