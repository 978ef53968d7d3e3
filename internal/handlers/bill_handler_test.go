package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/halarumdigital/agente-financeiro/internal/errors"
	"github.com/halarumdigital/agente-financeiro/internal/models"
	"github.com/halarumdigital/agente-financeiro/internal/services"
)

// --- mock bill service ---

type mockBillService struct {
	createBillFn       func(input services.CreateBillInput) (*models.Bill, error)
	getBillsFn         func() ([]models.Bill, error)
	getBillByIDFn      func(billID uint) (*models.Bill, error)
	getUpcomingBillsFn func(days int) ([]models.Bill, error)
	updateBillFn       func(billID uint, input services.UpdateBillInput) (*models.Bill, error)
	markPaidFn         func(billID uint, date time.Time) error
}

func (m *mockBillService) CreateBill(input services.CreateBillInput) (*models.Bill, error) {
	if m.createBillFn != nil {
		return m.createBillFn(input)
	}
	return &models.Bill{}, nil
}

func (m *mockBillService) GetBills() ([]models.Bill, error) {
	if m.getBillsFn != nil {
		return m.getBillsFn()
	}
	return []models.Bill{}, nil
}

func (m *mockBillService) GetMonthlyBillsTotal() (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (m *mockBillService) GetBillByID(billID uint) (*models.Bill, error) {
	if m.getBillByIDFn != nil {
		return m.getBillByIDFn(billID)
	}
	return &models.Bill{}, nil
}

func (m *mockBillService) GetBillByName(string) (*models.Bill, error) {
	return &models.Bill{}, nil
}

func (m *mockBillService) GetUpcomingBills(days int) ([]models.Bill, error) {
	if m.getUpcomingBillsFn != nil {
		return m.getUpcomingBillsFn(days)
	}
	return []models.Bill{}, nil
}

func (m *mockBillService) UpdateBill(billID uint, input services.UpdateBillInput) (*models.Bill, error) {
	if m.updateBillFn != nil {
		return m.updateBillFn(billID, input)
	}
	return &models.Bill{}, nil
}

func (m *mockBillService) DeleteBill(uint) error { return nil }

func (m *mockBillService) MarkPaid(billID uint, date time.Time) error {
	if m.markPaidFn != nil {
		return m.markPaidFn(billID, date)
	}
	return nil
}

func (m *mockBillService) PayBill(uint, time.Time) (*models.Transaction, error) {
	return &models.Transaction{}, nil
}

func (m *mockBillService) RemindersDue(time.Time) ([]models.Bill, error) { return nil, nil }

func (m *mockBillService) MarkReminderSent(uint, time.Time) error { return nil }

func (m *mockBillService) SnoozeReminder(uint, time.Time) error { return nil }

var _ services.BillServicer = (*mockBillService)(nil)

func setupBillRouter(handler *BillHandler) *gin.Engine {
	r := gin.New()
	r.GET("/bills", handler.ListBills)
	r.POST("/bills", handler.CreateBill)
	r.GET("/bills/upcoming", handler.GetUpcomingBills)
	r.GET("/bills/:id", handler.GetBill)
	r.PUT("/bills/:id", handler.UpdateBill)
	r.DELETE("/bills/:id", handler.DeleteBill)
	r.POST("/bills/:id/pay", handler.PayBill)
	return r
}

func TestBillHandler_CreateBill(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		billSvc := &mockBillService{
			createBillFn: func(input services.CreateBillInput) (*models.Bill, error) {
				return &models.Bill{Name: input.Name, DueDay: input.DueDay, IsRecurring: input.IsRecurring}, nil
			},
		}
		r := setupBillRouter(NewBillHandler(billSvc))

		rec := doRequest(r, "POST", "/bills", `{"name":"Luz","amount":"150.00","due_day":10}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		data := parseJSON(t, rec)["data"].(map[string]interface{})
		if data["name"] != "Luz" {
			t.Errorf("expected Luz, got %v", data["name"])
		}
		if data["is_recurring"] != true {
			t.Errorf("expected recurring by default, got %v", data["is_recurring"])
		}
	})

	t.Run("returns 400 on due day above 31", func(t *testing.T) {
		r := setupBillRouter(NewBillHandler(&mockBillService{}))

		rec := doRequest(r, "POST", "/bills", `{"name":"Luz","amount":"150.00","due_day":32}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on missing amount", func(t *testing.T) {
		r := setupBillRouter(NewBillHandler(&mockBillService{}))

		rec := doRequest(r, "POST", "/bills", `{"name":"Luz","due_day":10}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestBillHandler_PayBill(t *testing.T) {
	t.Run("stamps payment and returns the bill", func(t *testing.T) {
		var paid uint
		billSvc := &mockBillService{
			markPaidFn: func(billID uint, _ time.Time) error {
				paid = billID
				return nil
			},
			getBillByIDFn: func(billID uint) (*models.Bill, error) {
				now := time.Now()
				return &models.Bill{Name: "Luz", DueDay: 10, LastPaidDate: &now}, nil
			},
		}
		r := setupBillRouter(NewBillHandler(billSvc))

		rec := doRequest(r, "POST", "/bills/3/pay", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if paid != 3 {
			t.Errorf("expected bill 3 paid, got %d", paid)
		}
		data := parseJSON(t, rec)["data"].(map[string]interface{})
		if data["last_paid_date"] == nil {
			t.Error("expected last_paid_date to be set")
		}
	})

	t.Run("returns 404 when bill missing", func(t *testing.T) {
		billSvc := &mockBillService{
			markPaidFn: func(uint, time.Time) error {
				return apperrors.ErrBillNotFound
			},
		}
		r := setupBillRouter(NewBillHandler(billSvc))

		rec := doRequest(r, "POST", "/bills/99/pay", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "BILL_NOT_FOUND")
	})
}

func TestBillHandler_GetUpcomingBills(t *testing.T) {
	t.Run("defaults to seven days", func(t *testing.T) {
		var gotDays int
		billSvc := &mockBillService{
			getUpcomingBillsFn: func(days int) ([]models.Bill, error) {
				gotDays = days
				return []models.Bill{{Name: "Internet", DueDay: 15}}, nil
			},
		}
		r := setupBillRouter(NewBillHandler(billSvc))

		rec := doRequest(r, "GET", "/bills/upcoming", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotDays != 7 {
			t.Errorf("expected 7 day window, got %d", gotDays)
		}
	})

	t.Run("rejects out of range window", func(t *testing.T) {
		r := setupBillRouter(NewBillHandler(&mockBillService{}))

		rec := doRequest(r, "GET", "/bills/upcoming?days=90", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestBillHandler_UpdateBill(t *testing.T) {
	t.Run("passes only provided fields", func(t *testing.T) {
		var gotInput services.UpdateBillInput
		billSvc := &mockBillService{
			updateBillFn: func(_ uint, input services.UpdateBillInput) (*models.Bill, error) {
				gotInput = input
				return &models.Bill{Name: "Luz", DueDay: 12}, nil
			},
		}
		r := setupBillRouter(NewBillHandler(billSvc))

		rec := doRequest(r, "PUT", "/bills/3", `{"due_day":12}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotInput.DueDay == nil || *gotInput.DueDay != 12 {
			t.Errorf("expected due day 12, got %v", gotInput.DueDay)
		}
		if gotInput.Name != nil {
			t.Errorf("expected name untouched, got %v", *gotInput.Name)
		}
	})
}
