package scheduler

import (
	"errors"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"

	"github.com/halarumdigital/agente-financeiro/internal/services"
	"github.com/halarumdigital/agente-financeiro/internal/testutil"
)

type fakeSender struct {
	sent    []tgbotapi.MessageConfig
	sendErr error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if f.sendErr != nil {
		return tgbotapi.Message{}, f.sendErr
	}
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{MessageID: len(f.sent)}, nil
}

func (f *fakeSender) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeSender) GetFileDirectURL(fileID string) (string, error) {
	return "", nil
}

func newTestReminder(t *testing.T, sender *fakeSender, hours []int) (*Reminder, services.BillServicer) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	categories := services.NewCategoryService(db)
	transactions := services.NewTransactionService(db, categories)
	bills := services.NewBillService(db, categories, transactions)

	return New(bills, sender, 4242, hours), bills
}

func TestTickRespectsHourGate(t *testing.T) {
	sender := &fakeSender{}
	reminder, bills := newTestReminder(t, sender, []int{9, 18})

	// Due tomorrow relative to the fake clock.
	_, err := bills.CreateBill(services.CreateBillInput{
		Name: "Luz", Amount: decimal.NewFromInt(180), DueDay: 11, ReminderDaysBefore: 1,
	})
	testutil.AssertNoError(t, err)

	reminder.now = func() time.Time { return time.Date(2026, time.June, 10, 14, 0, 0, 0, time.UTC) }
	reminder.Tick()
	if len(sender.sent) != 0 {
		t.Fatalf("expected no sends outside reminder hours, got %d", len(sender.sent))
	}

	reminder.now = func() time.Time { return time.Date(2026, time.June, 10, 9, 5, 0, 0, time.UTC) }
	reminder.Tick()
	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 reminder at 9h, got %d", len(sender.sent))
	}
}

func TestCheckAndSendMarksReminded(t *testing.T) {
	sender := &fakeSender{}
	reminder, bills := newTestReminder(t, sender, []int{9})

	_, err := bills.CreateBill(services.CreateBillInput{
		Name: "Internet", Amount: decimal.NewFromInt(120), DueDay: 11, ReminderDaysBefore: 1,
	})
	testutil.AssertNoError(t, err)

	now := time.Date(2026, time.June, 10, 9, 0, 0, 0, time.UTC)
	reminder.CheckAndSend(now)
	reminder.CheckAndSend(now)

	// The second pass within the same day must not re-send.
	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 reminder, got %d", len(sender.sent))
	}

	msg := sender.sent[0]
	if msg.ChatID != 4242 {
		t.Errorf("expected chat 4242, got %d", msg.ChatID)
	}
	if msg.ReplyMarkup == nil {
		t.Error("expected inline keyboard on reminder")
	}
}

func TestCheckAndSendRetriesAfterSendFailure(t *testing.T) {
	sender := &fakeSender{sendErr: errors.New("telegram down")}
	reminder, bills := newTestReminder(t, sender, []int{9})

	_, err := bills.CreateBill(services.CreateBillInput{
		Name: "Luz", Amount: decimal.NewFromInt(180), DueDay: 11, ReminderDaysBefore: 1,
	})
	testutil.AssertNoError(t, err)

	now := time.Date(2026, time.June, 10, 9, 0, 0, 0, time.UTC)
	reminder.CheckAndSend(now)

	// Send failed, so the bill must still be due on the next pass.
	sender.sendErr = nil
	reminder.CheckAndSend(now)
	if len(sender.sent) != 1 {
		t.Fatalf("expected reminder to retry after failed send, got %d sends", len(sender.sent))
	}
}

func TestCheckAndSendDueToday(t *testing.T) {
	sender := &fakeSender{}
	reminder, bills := newTestReminder(t, sender, []int{9})

	_, err := bills.CreateBill(services.CreateBillInput{
		Name: "Aluguel", Amount: decimal.NewFromInt(1500), DueDay: 10, ReminderDaysBefore: 1,
	})
	testutil.AssertNoError(t, err)

	reminder.CheckAndSend(time.Date(2026, time.June, 10, 9, 0, 0, 0, time.UTC))

	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 reminder, got %d", len(sender.sent))
	}
	if text := sender.sent[0].Text; !strings.Contains(text, "hoje") {
		t.Errorf("expected due-today wording, got %q", text)
	}
}

func TestCheckAndSendRendersDayCount(t *testing.T) {
	sender := &fakeSender{}
	reminder, bills := newTestReminder(t, sender, []int{9})

	// Three days of notice: due on the 13th, reminded on the 10th.
	_, err := bills.CreateBill(services.CreateBillInput{
		Name: "Seguro", Amount: decimal.NewFromInt(320), DueDay: 13, ReminderDaysBefore: 3,
	})
	testutil.AssertNoError(t, err)

	reminder.CheckAndSend(time.Date(2026, time.June, 10, 9, 0, 0, 0, time.UTC))

	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 reminder, got %d", len(sender.sent))
	}
	text := sender.sent[0].Text
	if !strings.Contains(text, "3 dias") {
		t.Errorf("expected day count in reminder, got %q", text)
	}
	if strings.Contains(text, "amanhã") {
		t.Errorf("tomorrow wording must not appear for a 3-day notice, got %q", text)
	}
}
