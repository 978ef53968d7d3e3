// Package scheduler runs the hourly bill reminder sweep.
package scheduler

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/halarumdigital/agente-financeiro/internal/bot"
	"github.com/halarumdigital/agente-financeiro/internal/logger"
	"github.com/halarumdigital/agente-financeiro/internal/services"
)

// Reminder scans bills once an hour and pings the configured chat when a
// bill is about to come due. Sends happen only during the configured hours
// so reminders land at humane times of day.
type Reminder struct {
	bills  services.BillServicer
	sender bot.Sender
	chatID int64
	hours  map[int]bool
	now    func() time.Time
}

// New creates a reminder scheduler. hours lists the local hours of day
// (0-23) during which reminders may be sent.
func New(bills services.BillServicer, sender bot.Sender, chatID int64, hours []int) *Reminder {
	allowed := make(map[int]bool, len(hours))
	for _, h := range hours {
		allowed[h] = true
	}
	return &Reminder{
		bills:  bills,
		sender: sender,
		chatID: chatID,
		hours:  allowed,
		now:    time.Now,
	}
}

// Run ticks hourly until the context is cancelled.
func (r *Reminder) Run(ctx context.Context) {
	log := logger.Get()
	log.Infow("bill reminder scheduler started", "chat_id", r.chatID)

	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	// One pass at startup so a restart inside a reminder hour still fires.
	r.Tick()

	for {
		select {
		case <-ctx.Done():
			log.Infow("bill reminder scheduler stopped")
			return
		case <-ticker.C:
			r.Tick()
		}
	}
}

// Tick runs one scheduler pass: a no-op outside the configured hours.
func (r *Reminder) Tick() {
	now := r.now()
	if !r.hours[now.Hour()] {
		return
	}
	r.CheckAndSend(now)
}

// CheckAndSend sends reminders for every bill due for one, marking each as
// reminded. A failed send skips the mark so the next pass retries; one bad
// bill never blocks the rest.
func (r *Reminder) CheckAndSend(now time.Time) {
	log := logger.Get()

	due, err := r.bills.RemindersDue(now)
	if err != nil {
		log.Errorw("failed to scan bills for reminders", "error", err)
		return
	}

	for _, b := range due {
		days := services.DaysUntilDue(b.DueDay, now)
		text := fmt.Sprintf("🔔 *Lembrete de conta*\n\n*%s*: %s\n%s (dia %d).", b.Name, bot.FormatMoney(b.Amount), dueLabel(days), b.DueDay)

		msg := tgbotapi.NewMessage(r.chatID, text)
		msg.ParseMode = tgbotapi.ModeMarkdown
		msg.ReplyMarkup = bot.BillReminderKeyboard(b.ID)

		if _, err := r.sender.Send(msg); err != nil {
			log.Errorw("failed to send bill reminder", "bill_id", b.ID, "error", err)
			continue
		}
		if err := r.bills.MarkReminderSent(b.ID, now); err != nil {
			log.Errorw("failed to mark reminder as sent", "bill_id", b.ID, "error", err)
			continue
		}
		log.Infow("bill reminder sent", "bill_id", b.ID, "name", b.Name, "days_until_due", days)
	}
}

func dueLabel(days int) string {
	switch days {
	case 0:
		return "Vence *hoje*"
	case 1:
		return "Vence *amanhã*"
	default:
		return fmt.Sprintf("Vence em *%d dias*", days)
	}
}
