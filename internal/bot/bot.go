// Package bot implements the Telegram front end: natural language, voice
// and receipt capture, savings box and bill commands, and the confirm or
// cancel flow before anything is written.
package bot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/halarumdigital/agente-financeiro/internal/ai"
	"github.com/halarumdigital/agente-financeiro/internal/logger"
	"github.com/halarumdigital/agente-financeiro/internal/services"
)

// Sender is the slice of the Telegram API the handlers use. It is satisfied
// by *tgbotapi.BotAPI and by fakes in tests.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
}

// PendingTransaction is a parsed transaction waiting for the user to
// confirm or cancel it.
type PendingTransaction struct {
	Input        services.CreateTransactionInput
	CategoryName string
}

// Services bundles the business services the bot depends on.
type Services struct {
	Categories   services.CategoryServicer
	Transactions services.TransactionServicer
	SavingsBoxes services.SavingsBoxServicer
	Bills        services.BillServicer
	Reports      services.ReportServicer
}

// Bot routes Telegram updates to handlers.
type Bot struct {
	api           *tgbotapi.BotAPI
	sender        Sender
	oracle        ai.Oracle
	svc           Services
	allowedChatID int64
	pendingTx     *PendingStore[PendingTransaction]
	fetchFile     func(url string) ([]byte, error)
}

// New creates a bot over an authorized Telegram API client. allowedChatID
// restricts the bot to a single chat; zero disables the restriction.
func New(api *tgbotapi.BotAPI, oracle ai.Oracle, svc Services, allowedChatID int64, pendingTTL time.Duration) *Bot {
	pending := NewPendingStore[PendingTransaction](pendingTTL)
	pending.StartJanitor(time.Minute)

	return &Bot{
		api:           api,
		sender:        api,
		oracle:        oracle,
		svc:           svc,
		allowedChatID: allowedChatID,
		pendingTx:     pending,
		fetchFile:     fetchFile,
	}
}

func fetchFile(url string) ([]byte, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download telegram file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("telegram file download: status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// Run long-polls Telegram until the context is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	log := logger.Get()
	log.Infow("telegram bot started", "username", b.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.pendingTx.Close()
			log.Infow("telegram bot stopped")
			return nil
		case update := <-updates:
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	log := logger.Get()

	defer func() {
		if r := recover(); r != nil {
			log.Errorw("panic while handling update", "panic", r)
		}
	}()

	if update.CallbackQuery != nil {
		if !b.allowed(update.CallbackQuery.Message.Chat.ID) {
			return
		}
		b.handleCallback(ctx, update.CallbackQuery)
		return
	}

	message := update.Message
	if message == nil || !b.allowed(message.Chat.ID) {
		return
	}

	switch {
	case message.IsCommand():
		b.handleCommand(ctx, message)
	case message.Voice != nil:
		b.handleVoice(ctx, message)
	case len(message.Photo) > 0:
		b.handlePhoto(ctx, message)
	case message.Text != "":
		b.handleText(ctx, message)
	}
}

func (b *Bot) allowed(chatID int64) bool {
	return b.allowedChatID == 0 || chatID == b.allowedChatID
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.sender.Send(msg); err != nil {
		logger.Get().Errorw("failed to send telegram message", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) replyWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = keyboard
	if _, err := b.sender.Send(msg); err != nil {
		logger.Get().Errorw("failed to send telegram message", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) handleText(ctx context.Context, message *tgbotapi.Message) {
	command := Classify(message.Text)

	switch command.Intent {
	case IntentSavingsDeposit:
		b.handleSavingsDeposit(message.Chat.ID, command)
	case IntentSavingsWithdraw:
		b.handleSavingsWithdraw(message.Chat.ID, command)
	case IntentSavingsCreate:
		b.handleSavingsCreate(message.Chat.ID, command)
	case IntentSavingsBalance:
		b.handleSavingsBalance(message.Chat.ID, command)
	case IntentSavingsList:
		b.sendSavingsBoxList(message.Chat.ID)
	case IntentBillCreate:
		b.handleBillCreate(message.Chat.ID, command)
	case IntentBillDelete:
		b.handleBillDelete(message.Chat.ID, command)
	case IntentBillPaid:
		b.handleBillPaid(message.Chat.ID, command)
	case IntentBillList:
		b.sendBillList(message.Chat.ID)
	case IntentTransaction:
		b.handleTransactionText(ctx, message)
	default:
		b.reply(message.Chat.ID, "Não entendi. 🤔 Me conte um gasto ou ganho, por exemplo: _gastei 50 reais no mercado_. Use /ajuda para ver tudo que sei fazer.")
	}
}
