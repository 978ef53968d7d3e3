package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "github.com/halarumdigital/agente-financeiro/internal/errors"
	"github.com/halarumdigital/agente-financeiro/internal/logger"
	"github.com/halarumdigital/agente-financeiro/internal/models"
)

// BillPaymentCategoryName is the expense category bills are booked against
// when the bill itself carries no category.
const BillPaymentCategoryName = "Contas"

// maxReminderDays matches the reminder_days_before schema constraint.
const maxReminderDays = 15

type billService struct {
	db           *gorm.DB
	categories   CategoryServicer
	transactions TransactionServicer
}

// NewBillService creates a new bill service instance.
func NewBillService(db *gorm.DB, categories CategoryServicer, transactions TransactionServicer) BillServicer {
	return &billService{db: db, categories: categories, transactions: transactions}
}

func lastDayOfMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DaysUntilDue returns how many days remain until a bill with the given due
// day is next due, counted from today. Due days past the end of a month
// settle on that month's last day, so a day-31 bill still comes due in
// February.
func DaysUntilDue(dueDay int, today time.Time) int {
	currentLast := lastDayOfMonth(today)

	due := dueDay
	if due > currentLast {
		due = currentLast
	}
	if due >= today.Day() {
		return due - today.Day()
	}

	firstOfNext := time.Date(today.Year(), today.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	nextDue := dueDay
	if nextLast := lastDayOfMonth(firstOfNext); nextDue > nextLast {
		nextDue = nextLast
	}
	return currentLast - today.Day() + nextDue
}

// PaidThisMonth reports whether the bill was already paid in today's month.
func PaidThisMonth(bill *models.Bill, today time.Time) bool {
	if bill.LastPaidDate == nil {
		return false
	}
	return bill.LastPaidDate.Year() == today.Year() && bill.LastPaidDate.Month() == today.Month()
}

func (s *billService) CreateBill(input CreateBillInput) (*models.Bill, error) {
	log := logger.Get()

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Nome da conta é obrigatório")
	}
	if input.DueDay < 1 || input.DueDay > 31 {
		return nil, apperrors.ErrInvalidDueDay
	}
	if !input.Amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Valor deve ser maior que zero")
	}
	if input.CategoryID != nil {
		if _, err := s.categories.GetCategoryByID(*input.CategoryID); err != nil {
			return nil, err
		}
	}

	reminderDays := input.ReminderDaysBefore
	if reminderDays <= 0 {
		reminderDays = 1
	}
	if reminderDays > maxReminderDays {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Antecedência do lembrete deve ser de no máximo 15 dias")
	}

	bill := models.Bill{
		Name:               name,
		Description:        input.Description,
		Amount:             input.Amount,
		DueDay:             input.DueDay,
		CategoryID:         input.CategoryID,
		IsRecurring:        input.IsRecurring,
		ReminderDaysBefore: reminderDays,
		IsActive:           true,
	}
	if err := s.db.Create(&bill).Error; err != nil {
		log.Errorw("failed to create bill", "name", name, "error", err)
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	log.Infow("bill created", "bill_id", bill.ID, "name", bill.Name, "due_day", bill.DueDay)
	return &bill, nil
}

func (s *billService) GetBills() ([]models.Bill, error) {
	var bills []models.Bill
	err := s.db.Preload("Category").
		Where("is_active = ?", true).
		Order("due_day ASC, name ASC").
		Find(&bills).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return bills, nil
}

func (s *billService) GetMonthlyBillsTotal() (decimal.Decimal, error) {
	var raw struct {
		Total decimal.Decimal
	}
	err := s.db.Model(&models.Bill{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("is_active = ?", true).
		Scan(&raw).Error
	if err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return raw.Total, nil
}

func (s *billService) GetBillByID(billID uint) (*models.Bill, error) {
	var bill models.Bill
	err := s.db.Preload("Category").Where("is_active = ?", true).First(&bill, billID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBillNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &bill, nil
}

// GetBillByName matches by exact name first, then by substring, both
// case-insensitive. Bot commands refer to bills by fragments like "luz".
func (s *billService) GetBillByName(name string) (*models.Bill, error) {
	bills, err := s.GetBills()
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return nil, apperrors.ErrBillNotFound
	}

	for i := range bills {
		if strings.ToLower(bills[i].Name) == needle {
			return &bills[i], nil
		}
	}
	for i := range bills {
		if strings.Contains(strings.ToLower(bills[i].Name), needle) {
			return &bills[i], nil
		}
	}
	return nil, apperrors.ErrBillNotFound
}

func (s *billService) GetUpcomingBills(days int) ([]models.Bill, error) {
	if days <= 0 {
		days = 7
	}
	bills, err := s.GetBills()
	if err != nil {
		return nil, err
	}

	today := DateOnly(time.Now())
	upcoming := make([]models.Bill, 0, len(bills))
	for _, bill := range bills {
		if PaidThisMonth(&bill, today) {
			continue
		}
		if DaysUntilDue(bill.DueDay, today) <= days {
			upcoming = append(upcoming, bill)
		}
	}
	return upcoming, nil
}

func (s *billService) UpdateBill(billID uint, input UpdateBillInput) (*models.Bill, error) {
	bill, err := s.GetBillByID(billID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		if name := strings.TrimSpace(*input.Name); name != "" {
			updates["name"] = name
		}
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Amount != nil {
		if !input.Amount.IsPositive() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Valor deve ser maior que zero")
		}
		updates["amount"] = *input.Amount
	}
	if input.DueDay != nil {
		if *input.DueDay < 1 || *input.DueDay > 31 {
			return nil, apperrors.ErrInvalidDueDay
		}
		updates["due_day"] = *input.DueDay
	}
	if input.CategoryID != nil {
		if _, err := s.categories.GetCategoryByID(*input.CategoryID); err != nil {
			return nil, err
		}
		updates["category_id"] = *input.CategoryID
	}
	if input.IsRecurring != nil {
		updates["is_recurring"] = *input.IsRecurring
	}
	if input.ReminderDaysBefore != nil {
		if *input.ReminderDaysBefore < 0 || *input.ReminderDaysBefore > maxReminderDays {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Antecedência do lembrete deve ficar entre 0 e 15 dias")
		}
		updates["reminder_days_before"] = *input.ReminderDaysBefore
	}
	if len(updates) == 0 {
		return bill, nil
	}

	if err := s.db.Model(bill).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.GetBillByID(billID)
}

func (s *billService) DeleteBill(billID uint) error {
	bill, err := s.GetBillByID(billID)
	if err != nil {
		return err
	}

	if err := s.db.Model(bill).Update("is_active", false).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	logger.Get().Infow("bill deactivated", "bill_id", billID)
	return nil
}

func (s *billService) MarkPaid(billID uint, date time.Time) error {
	bill, err := s.GetBillByID(billID)
	if err != nil {
		return err
	}

	paid := DateOnly(date)
	if err := s.db.Model(bill).Update("last_paid_date", paid).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	logger.Get().Infow("bill marked paid", "bill_id", billID, "date", paid.Format("2006-01-02"))
	return nil
}

// PayBill stamps the payment date and books the matching expense in one
// database transaction. The expense lands on the bill's category when set,
// otherwise on the shared bill payment category.
func (s *billService) PayBill(billID uint, date time.Time) (*models.Transaction, error) {
	bill, err := s.GetBillByID(billID)
	if err != nil {
		return nil, err
	}

	categoryID, err := s.paymentCategoryID(bill)
	if err != nil {
		return nil, err
	}

	paid := DateOnly(date)
	var transaction models.Transaction
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(bill).Update("last_paid_date", paid).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		transaction = models.Transaction{
			Type:        models.TransactionTypeExpense,
			Amount:      bill.Amount,
			Description: fmt.Sprintf("Pagamento: %s", bill.Name),
			CategoryID:  categoryID,
			Date:        paid,
			Source:      models.TransactionSourceBillPayment,
		}
		if err := tx.Create(&transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Infow("bill paid", "bill_id", billID, "transaction_id", transaction.ID, "amount", bill.Amount)
	return &transaction, nil
}

func (s *billService) paymentCategoryID(bill *models.Bill) (uint, error) {
	if bill.CategoryID != nil {
		return *bill.CategoryID, nil
	}
	if category, err := s.categories.GetCategoryByName(BillPaymentCategoryName, models.CategoryTypeExpense); err == nil {
		return category.ID, nil
	}
	category, err := s.categories.FindBestMatch(bill.Name, models.CategoryTypeExpense)
	if err != nil {
		return 0, err
	}
	return category.ID, nil
}

// RemindersDue returns the active bills whose reminder should fire today.
// A bill qualifies when it comes due in exactly reminder_days_before days
// or today, was not reminded today already, and was not paid this month.
func (s *billService) RemindersDue(today time.Time) ([]models.Bill, error) {
	bills, err := s.GetBills()
	if err != nil {
		return nil, err
	}

	today = DateOnly(today)
	due := make([]models.Bill, 0, len(bills))
	for _, bill := range bills {
		if PaidThisMonth(&bill, today) {
			continue
		}
		if bill.LastReminderDate != nil && DateOnly(*bill.LastReminderDate).Equal(today) {
			continue
		}
		days := DaysUntilDue(bill.DueDay, today)
		if days == bill.ReminderDaysBefore || days == 0 {
			due = append(due, bill)
		}
	}
	return due, nil
}

func (s *billService) MarkReminderSent(billID uint, date time.Time) error {
	err := s.db.Model(&models.Bill{}).
		Where("id = ?", billID).
		Update("last_reminder_date", DateOnly(date)).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// SnoozeReminder rewinds the reminder stamp by one day so the next scan
// picks the bill up again.
func (s *billService) SnoozeReminder(billID uint, today time.Time) error {
	bill, err := s.GetBillByID(billID)
	if err != nil {
		return err
	}

	rewound := DateOnly(today).AddDate(0, 0, -1)
	if err := s.db.Model(bill).Update("last_reminder_date", rewound).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	logger.Get().Infow("bill reminder snoozed", "bill_id", billID)
	return nil
}
