package bot

import (
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/halarumdigital/agente-financeiro/internal/errors"
	"github.com/halarumdigital/agente-financeiro/internal/models"
	"github.com/halarumdigital/agente-financeiro/internal/services"
)

func (b *Bot) handleBillPaid(chatID int64, command Command) {
	bill, err := b.svc.Bills.GetBillByName(command.Name)
	if err != nil {
		if errors.Is(err, apperrors.ErrBillNotFound) {
			b.reply(chatID, fmt.Sprintf("Não encontrei a conta *%s*. Veja as suas com: _contas_", command.Name))
			return
		}
		b.reply(chatID, "Tive um problema ao buscar a conta. Tente de novo.")
		return
	}

	transaction, err := b.svc.Bills.PayBill(bill.ID, time.Now())
	if err != nil {
		b.reply(chatID, "Não consegui registrar o pagamento. Tente de novo.")
		return
	}

	b.reply(chatID, fmt.Sprintf("✅ Conta *%s* marcada como paga!\nLancei uma despesa de %s.",
		bill.Name, FormatMoney(transaction.Amount)))
}

func (b *Bot) handleBillCreate(chatID int64, command Command) {
	// Bill names created through the chat are stored upper-cased.
	name := strings.ToUpper(command.Name)

	input := services.CreateBillInput{
		Name:               name,
		Amount:             command.Amount,
		DueDay:             command.DueDay,
		IsRecurring:        true,
		ReminderDaysBefore: 1,
	}
	if category, err := b.svc.Categories.GetCategoryByName(services.BillPaymentCategoryName, models.CategoryTypeExpense); err == nil {
		input.CategoryID = &category.ID
	}

	bill, err := b.svc.Bills.CreateBill(input)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.StatusCode < 500 {
			b.reply(chatID, appErr.Message)
			return
		}
		b.reply(chatID, "Não consegui cadastrar a conta. Tente de novo.")
		return
	}

	b.reply(chatID, fmt.Sprintf("✅ *Conta cadastrada!*\n\n📝 *%s*\n💰 Valor: %s\n📅 Vencimento: dia %d\n🔔 Lembrete: 1 dia antes e no dia",
		bill.Name, FormatMoney(bill.Amount), bill.DueDay))
}

func (b *Bot) handleBillDelete(chatID int64, command Command) {
	bill, err := b.svc.Bills.GetBillByName(command.Name)
	if err != nil {
		if errors.Is(err, apperrors.ErrBillNotFound) {
			b.reply(chatID, fmt.Sprintf("Não encontrei a conta *%s*.", command.Name))
			return
		}
		b.reply(chatID, "Tive um problema ao buscar a conta. Tente de novo.")
		return
	}

	if err := b.svc.Bills.DeleteBill(bill.ID); err != nil {
		b.reply(chatID, "Não consegui excluir a conta. Tente de novo.")
		return
	}
	b.reply(chatID, fmt.Sprintf("✅ Conta *%s* excluída.", bill.Name))
}

func (b *Bot) sendBillList(chatID int64) {
	bills, err := b.svc.Bills.GetBills()
	if err != nil {
		b.reply(chatID, "Tive um problema ao buscar suas contas. Tente de novo.")
		return
	}
	if len(bills) == 0 {
		b.reply(chatID, "Você ainda não cadastrou contas fixas.")
		return
	}

	today := time.Now()
	var sb strings.Builder
	sb.WriteString("📑 *Suas contas:*\n\n")
	for _, bill := range bills {
		status := fmt.Sprintf("vence dia %d", bill.DueDay)
		if services.PaidThisMonth(&bill, today) {
			status = "paga este mês ✅"
		} else if days := services.DaysUntilDue(bill.DueDay, today); days == 0 {
			status = "vence *hoje* ⚠️"
		} else if days == 1 {
			status = "vence *amanhã*"
		}
		sb.WriteString(fmt.Sprintf("• *%s*: %s (%s)\n", bill.Name, FormatMoney(bill.Amount), status))
	}

	total, err := b.svc.Bills.GetMonthlyBillsTotal()
	if err == nil {
		sb.WriteString(fmt.Sprintf("\n*Total mensal:* %s", FormatMoney(total)))
	}
	b.reply(chatID, sb.String())
}
