package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/halarumdigital/agente-financeiro/internal/logger"
)

func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	switch {
	case query.Data == callbackConfirmTx:
		b.confirmPendingTransaction(query)
	case query.Data == callbackEditTx:
		b.editPendingTransaction(query)
	case query.Data == callbackCancelTx:
		b.cancelPendingTransaction(query)
	case strings.HasPrefix(query.Data, callbackBillPaid):
		b.handleBillPaidCallback(query)
	case strings.HasPrefix(query.Data, callbackBillSnooze):
		b.handleBillSnoozeCallback(query)
	case strings.HasPrefix(query.Data, callbackMenuPrefix):
		b.handleMenuCallback(query)
	default:
		b.answerCallback(query.ID, "")
	}
}

func (b *Bot) confirmPendingTransaction(query *tgbotapi.CallbackQuery) {
	chatID := query.Message.Chat.ID

	pending, ok := b.pendingTx.Take(chatID)
	if !ok {
		b.answerCallback(query.ID, "Nada pendente para confirmar.")
		b.editMessage(chatID, query.Message.MessageID, "Essa confirmação expirou. Me mande a transação de novo.")
		return
	}

	transaction, err := b.svc.Transactions.CreateTransaction(pending.Input)
	if err != nil {
		logger.Get().Errorw("failed to create confirmed transaction", "chat_id", chatID, "error", err)
		b.answerCallback(query.ID, "Erro ao salvar.")
		b.editMessage(chatID, query.Message.MessageID, "Não consegui salvar a transação. Me mande de novo, por favor.")
		return
	}

	b.answerCallback(query.ID, "Salvo!")
	b.editMessage(chatID, query.Message.MessageID, fmt.Sprintf("✅ Registrado: %s em *%s* (%s)",
		FormatMoney(transaction.Amount), pending.CategoryName, FormatDate(transaction.Date)))
}

func (b *Bot) cancelPendingTransaction(query *tgbotapi.CallbackQuery) {
	chatID := query.Message.Chat.ID

	if _, ok := b.pendingTx.Take(chatID); !ok {
		b.answerCallback(query.ID, "Nada pendente para cancelar.")
		b.editMessage(chatID, query.Message.MessageID, "Essa confirmação já tinha expirado.")
		return
	}

	b.answerCallback(query.ID, "Cancelado.")
	b.editMessage(chatID, query.Message.MessageID, "❌ Transação cancelada.")
}

// editPendingTransaction drops the pending entry and asks for a corrected
// message. There is no field-by-field edit flow; resending is simpler.
func (b *Bot) editPendingTransaction(query *tgbotapi.CallbackQuery) {
	chatID := query.Message.Chat.ID

	b.pendingTx.Delete(chatID)
	b.answerCallback(query.ID, "")
	b.editMessage(chatID, query.Message.MessageID, "✏️ Lançamento cancelado.\n\nEnvie a mensagem novamente com os dados corretos.")
}

// handleMenuCallback routes the /start menu buttons to the same senders
// the slash commands use.
func (b *Bot) handleMenuCallback(query *tgbotapi.CallbackQuery) {
	chatID := query.Message.Chat.ID
	b.answerCallback(query.ID, "")

	switch query.Data {
	case callbackMenuBalance:
		b.sendMonthBalance(chatID)
	case callbackMenuOverview:
		b.sendOverview(chatID)
	case callbackMenuRecent:
		b.sendRecentTransactions(chatID)
	case callbackMenuCategories:
		b.sendCategoryList(chatID)
	case callbackMenuBoxes:
		b.sendSavingsBoxList(chatID)
	case callbackMenuBills:
		b.sendBillList(chatID)
	}
}

func (b *Bot) handleBillPaidCallback(query *tgbotapi.CallbackQuery) {
	chatID := query.Message.Chat.ID

	billID, ok := parseBillCallback(query.Data, callbackBillPaid)
	if !ok {
		b.answerCallback(query.ID, "")
		return
	}

	transaction, err := b.svc.Bills.PayBill(billID, time.Now())
	if err != nil {
		logger.Get().Errorw("failed to pay bill from callback", "bill_id", billID, "error", err)
		b.answerCallback(query.ID, "Erro ao registrar o pagamento.")
		return
	}

	b.answerCallback(query.ID, "Pagamento registrado!")
	b.editMessage(chatID, query.Message.MessageID, fmt.Sprintf("✅ Conta paga! Lancei uma despesa de %s.",
		FormatMoney(transaction.Amount)))
}

func (b *Bot) handleBillSnoozeCallback(query *tgbotapi.CallbackQuery) {
	chatID := query.Message.Chat.ID

	billID, ok := parseBillCallback(query.Data, callbackBillSnooze)
	if !ok {
		b.answerCallback(query.ID, "")
		return
	}

	if err := b.svc.Bills.SnoozeReminder(billID, time.Now()); err != nil {
		logger.Get().Errorw("failed to snooze bill", "bill_id", billID, "error", err)
		b.answerCallback(query.ID, "Erro ao adiar o lembrete.")
		return
	}

	b.answerCallback(query.ID, "Lembro você amanhã!")
	b.editMessage(chatID, query.Message.MessageID, "⏰ Combinado, lembro você amanhã.")
}

func (b *Bot) answerCallback(callbackID, text string) {
	if _, err := b.sender.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		logger.Get().Errorw("failed to answer callback", "error", err)
	}
}

func (b *Bot) editMessage(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.sender.Send(edit); err != nil {
		logger.Get().Errorw("failed to edit message", "chat_id", chatID, "error", err)
	}
}
