package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/halarumdigital/agente-financeiro/internal/models"
)

const helpText = `🤖 *Agente Financeiro*

Me conte seus gastos e ganhos em linguagem natural:
• _gastei 50 reais no mercado_
• _recebi 3000 de salário_
• 🎤 áudio de até 1 minuto
• 🧾 foto de um recibo

*Caixinhas:*
• _criar caixinha viagem_ (ou _criar caixinha carro meta 50000_)
• _guardar 100 na caixinha viagem_
• _retirar 50 da caixinha viagem_
• _saldo caixinha viagem_
• _caixinhas_ para ver todas

*Contas fixas:*
• _criar conta internet 99 vence dia 10_
• _excluir conta internet_
• _contas_ para ver vencimentos
• _paguei luz_ para marcar como paga

*Comandos:*
/saldo - resumo do mês
/resumo - visão geral completa
/ultimas - últimas transações
/categorias - categorias disponíveis
/caixinhas - suas caixinhas
/contas - suas contas fixas
/ajuda - esta mensagem`

func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	switch message.Command() {
	case "start":
		b.sendWelcome(message.Chat.ID)
	case "ajuda", "help":
		b.reply(message.Chat.ID, helpText)
	case "saldo":
		b.sendMonthBalance(message.Chat.ID)
	case "resumo":
		b.sendOverview(message.Chat.ID)
	case "ultimas":
		b.sendRecentTransactions(message.Chat.ID)
	case "categorias":
		b.sendCategoryList(message.Chat.ID)
	case "caixinhas":
		b.sendSavingsBoxList(message.Chat.ID)
	case "contas":
		b.sendBillList(message.Chat.ID)
	default:
		b.reply(message.Chat.ID, "Comando desconhecido. Use /ajuda para ver o que sei fazer.")
	}
}

func (b *Bot) sendWelcome(chatID int64) {
	b.replyWithKeyboard(chatID, "Olá! 👋 Sou seu assistente financeiro.\n\n"+helpText, mainMenuKeyboard())
}

func (b *Bot) sendMonthBalance(chatID int64) {
	now := time.Now()
	summary, err := b.svc.Transactions.GetMonthSummary(now.Year(), now.Month())
	if err != nil {
		b.reply(chatID, "Não consegui calcular o saldo agora. Tente de novo.")
		return
	}

	b.reply(chatID, fmt.Sprintf("📊 *%s*\n\n💰 Receitas: %s\n💸 Despesas: %s\n🧮 Saldo: %s",
		monthLabel(now),
		FormatMoney(summary.Income),
		FormatMoney(summary.Expense),
		FormatMoney(summary.Balance)))
}

func (b *Bot) sendOverview(chatID int64) {
	now := time.Now()
	summary, err := b.svc.Transactions.GetMonthSummary(now.Year(), now.Month())
	if err != nil {
		b.reply(chatID, "Não consegui montar o resumo agora. Tente de novo.")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📊 *Resumo de %s*\n\n", monthLabel(now)))
	sb.WriteString(fmt.Sprintf("💰 Receitas: %s\n💸 Despesas: %s\n🧮 Saldo: %s\n", FormatMoney(summary.Income), FormatMoney(summary.Expense), FormatMoney(summary.Balance)))

	if saved, err := b.svc.SavingsBoxes.GetTotalSaved(); err == nil && saved.IsPositive() {
		sb.WriteString(fmt.Sprintf("🐷 Guardado em caixinhas: %s\n", FormatMoney(saved)))
	}

	if upcoming, err := b.svc.Bills.GetUpcomingBills(7); err == nil && len(upcoming) > 0 {
		sb.WriteString("\n⚠️ *Contas nos próximos 7 dias:*\n")
		for _, bill := range upcoming {
			sb.WriteString(fmt.Sprintf("• %s: %s (dia %d)\n", bill.Name, FormatMoney(bill.Amount), bill.DueDay))
		}
	}
	b.reply(chatID, sb.String())
}

func (b *Bot) sendRecentTransactions(chatID int64) {
	transactions, err := b.svc.Transactions.GetRecentTransactions(10)
	if err != nil {
		b.reply(chatID, "Não consegui buscar as transações agora. Tente de novo.")
		return
	}
	if len(transactions) == 0 {
		b.reply(chatID, "Nenhuma transação registrada ainda. Me conte um gasto!")
		return
	}

	var sb strings.Builder
	sb.WriteString("🧾 *Últimas transações:*\n\n")
	for _, tx := range transactions {
		icon := "💸"
		if tx.Type == models.TransactionTypeIncome {
			icon = "💰"
		}
		category := ""
		if tx.Category != nil {
			category = " · " + tx.Category.Name
		}
		sb.WriteString(fmt.Sprintf("%s %s - %s%s (%s)\n", icon, FormatMoney(tx.Amount), tx.Description, category, FormatDate(tx.Date)))
	}
	b.reply(chatID, sb.String())
}

func (b *Bot) sendCategoryList(chatID int64) {
	categories, err := b.svc.Categories.GetCategories()
	if err != nil {
		b.reply(chatID, "Não consegui buscar as categorias agora. Tente de novo.")
		return
	}

	var expense, income []string
	for _, category := range categories {
		switch category.Type {
		case models.CategoryTypeExpense:
			expense = append(expense, category.Name)
		case models.CategoryTypeIncome:
			income = append(income, category.Name)
		}
	}

	b.reply(chatID, fmt.Sprintf("🏷 *Categorias*\n\n💸 Despesas: %s\n💰 Receitas: %s",
		strings.Join(expense, ", "), strings.Join(income, ", ")))
}

var monthNames = [...]string{"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro"}

func monthLabel(t time.Time) string {
	return fmt.Sprintf("%s de %d", monthNames[t.Month()-1], t.Year())
}
