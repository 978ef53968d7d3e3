package bot

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/halarumdigital/agente-financeiro/internal/ai"
	"github.com/halarumdigital/agente-financeiro/internal/logger"
	"github.com/halarumdigital/agente-financeiro/internal/models"
	"github.com/halarumdigital/agente-financeiro/internal/services"
)

func (b *Bot) activeCategories() (ai.Categories, error) {
	expense, err := b.svc.Categories.ActiveNamesByType(models.CategoryTypeExpense)
	if err != nil {
		return ai.Categories{}, err
	}
	income, err := b.svc.Categories.ActiveNamesByType(models.CategoryTypeIncome)
	if err != nil {
		return ai.Categories{}, err
	}
	return ai.Categories{Expense: expense, Income: income}, nil
}

func (b *Bot) handleTransactionText(ctx context.Context, message *tgbotapi.Message) {
	categories, err := b.activeCategories()
	if err != nil {
		logger.Get().Errorw("failed to load categories", "error", err)
		b.reply(message.Chat.ID, "Tive um problema ao carregar as categorias. Tente de novo em instantes.")
		return
	}

	parsed, err := b.oracle.ParseText(ctx, message.Text, categories)
	if err != nil {
		b.replyParseFailure(message.Chat.ID, err)
		return
	}

	b.stagePending(message.Chat.ID, message.MessageID, parsed)
}

func (b *Bot) replyParseFailure(chatID int64, err error) {
	switch {
	case errors.Is(err, ai.ErrNoTransaction):
		b.reply(chatID, "Não encontrei uma transação nessa mensagem. Tente algo como: _gastei 50 reais no mercado_.")
	case errors.Is(err, ai.ErrLowConfidence):
		b.reply(chatID, "Não tenho certeza do que entendi. 😅 Pode repetir com o valor e o que foi?")
	default:
		logger.Get().Errorw("ai parse failed", "error", err)
		b.reply(chatID, "Não consegui processar agora. Tente novamente em instantes.")
	}
}

// stagePending resolves the category, stores the parsed transaction keyed by
// chat, and asks for confirmation. Nothing hits the database until the user
// taps Confirmar.
func (b *Bot) stagePending(chatID int64, messageID int, parsed *ai.ParsedTransaction) {
	transactionType := models.TransactionType(parsed.Type)
	category, err := b.svc.Categories.FindBestMatch(parsed.Category, models.CategoryType(parsed.Type))
	if err != nil {
		logger.Get().Errorw("failed to resolve category", "suggestion", parsed.Category, "error", err)
		b.reply(chatID, "Não encontrei nenhuma categoria cadastrada para esse tipo de transação.")
		return
	}

	pending := PendingTransaction{
		Input: services.CreateTransactionInput{
			Type:              transactionType,
			Amount:            parsed.Amount,
			Description:       parsed.Description,
			CategoryID:        category.ID,
			Date:              parsed.Date,
			Source:            models.TransactionSourceTelegram,
			TelegramMessageID: &messageID,
		},
		CategoryName: category.Name,
	}
	b.pendingTx.Put(chatID, pending)

	label := "💸 Despesa"
	if transactionType == models.TransactionTypeIncome {
		label = "💰 Receita"
	}
	text := fmt.Sprintf("%s\n\n*Valor:* %s\n*Descrição:* %s\n*Categoria:* %s\n*Data:* %s\n\nConfirma?",
		label,
		FormatMoney(parsed.Amount),
		parsed.Description,
		category.Name,
		FormatDate(parsed.Date),
	)

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = confirmKeyboard()
	if _, err := b.sender.Send(msg); err != nil {
		logger.Get().Errorw("failed to send confirmation", "chat_id", chatID, "error", err)
	}
}
