package bot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	apperrors "github.com/halarumdigital/agente-financeiro/internal/errors"
)

func (b *Bot) handleSavingsDeposit(chatID int64, command Command) {
	box, err := b.svc.SavingsBoxes.GetSavingsBoxByName(command.Name)
	if err != nil {
		b.replySavingsError(chatID, command.Name, err)
		return
	}

	updated, err := b.svc.SavingsBoxes.Deposit(box.ID, command.Amount, "Depósito via Telegram")
	if err != nil {
		b.replySavingsError(chatID, command.Name, err)
		return
	}

	b.reply(chatID, fmt.Sprintf("🐷 Guardei %s na caixinha *%s*.\nSaldo atual: %s",
		FormatMoney(command.Amount), updated.Name, FormatMoney(updated.CurrentAmount)))
}

func (b *Bot) handleSavingsWithdraw(chatID int64, command Command) {
	box, err := b.svc.SavingsBoxes.GetSavingsBoxByName(command.Name)
	if err != nil {
		b.replySavingsError(chatID, command.Name, err)
		return
	}

	updated, err := b.svc.SavingsBoxes.Withdraw(box.ID, command.Amount, "Retirada via Telegram")
	if err != nil {
		b.replySavingsError(chatID, command.Name, err)
		return
	}

	b.reply(chatID, fmt.Sprintf("💵 Retirei %s da caixinha *%s*.\nSaldo atual: %s",
		FormatMoney(command.Amount), updated.Name, FormatMoney(updated.CurrentAmount)))
}

func (b *Bot) handleSavingsCreate(chatID int64, command Command) {
	// Box names created through the chat are stored upper-cased, VIAGEM style.
	name := strings.ToUpper(command.Name)
	box, err := b.svc.SavingsBoxes.CreateSavingsBox(name, "", command.Goal, "", "")
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateBox) {
			b.reply(chatID, fmt.Sprintf("Já existe uma caixinha chamada *%s*.", name))
			return
		}
		b.replySavingsError(chatID, name, err)
		return
	}

	msg := fmt.Sprintf("🎉 Caixinha *%s* criada!", box.Name)
	if box.GoalAmount.IsPositive() {
		msg += fmt.Sprintf("\n🎯 Meta: %s", FormatMoney(box.GoalAmount))
	}
	msg += fmt.Sprintf("\nGuarde dinheiro com:\n_guardar 50 na caixinha %s_", strings.ToLower(box.Name))
	b.reply(chatID, msg)
}

func (b *Bot) handleSavingsBalance(chatID int64, command Command) {
	box, err := b.svc.SavingsBoxes.GetSavingsBoxByName(command.Name)
	if err != nil {
		b.replySavingsError(chatID, command.Name, err)
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🐷 *Caixinha %s*\n\n💰 Saldo: %s", box.Name, FormatMoney(box.CurrentAmount)))
	if box.GoalAmount.IsPositive() {
		pct := box.CurrentAmount.Div(box.GoalAmount).Mul(decimal.NewFromInt(100)).Round(0)
		sb.WriteString(fmt.Sprintf("\n🎯 Meta: %s (%s%%)", FormatMoney(box.GoalAmount), pct))
		remaining := box.GoalAmount.Sub(box.CurrentAmount)
		if remaining.IsPositive() {
			sb.WriteString(fmt.Sprintf("\nFaltam: %s", FormatMoney(remaining)))
		} else {
			sb.WriteString("\n\n🎉 *Meta atingida!*")
		}
	}
	b.reply(chatID, sb.String())
}

func (b *Bot) sendSavingsBoxList(chatID int64) {
	boxes, err := b.svc.SavingsBoxes.GetSavingsBoxes()
	if err != nil {
		b.replySavingsError(chatID, "", err)
		return
	}
	if len(boxes) == 0 {
		b.reply(chatID, "Você ainda não tem caixinhas. Crie uma com: _criar caixinha viagem_")
		return
	}

	var sb strings.Builder
	sb.WriteString("🐷 *Suas caixinhas:*\n\n")
	total := decimal.Zero
	for _, box := range boxes {
		sb.WriteString(fmt.Sprintf("• *%s*: %s", box.Name, FormatMoney(box.CurrentAmount)))
		if box.GoalAmount.IsPositive() {
			pct := box.CurrentAmount.Div(box.GoalAmount).Mul(decimal.NewFromInt(100)).Round(0)
			sb.WriteString(fmt.Sprintf(" (%s%% de %s)", pct, FormatMoney(box.GoalAmount)))
		}
		sb.WriteString("\n")
		total = total.Add(box.CurrentAmount)
	}
	sb.WriteString(fmt.Sprintf("\n*Total guardado:* %s", FormatMoney(total)))
	b.reply(chatID, sb.String())
}

func (b *Bot) replySavingsError(chatID int64, name string, err error) {
	switch {
	case errors.Is(err, apperrors.ErrSavingsBoxNotFound):
		b.reply(chatID, fmt.Sprintf("Não encontrei a caixinha *%s*. Veja as suas com: _caixinhas_", name))
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		b.reply(chatID, "Saldo insuficiente na caixinha. 😕")
	default:
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.StatusCode < 500 {
			b.reply(chatID, appErr.Message)
			return
		}
		b.reply(chatID, "Tive um problema ao acessar as caixinhas. Tente de novo.")
	}
}
