package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/halarumdigital/agente-financeiro/internal/logger"
)

// maxVoiceSeconds bounds transcription cost per message.
const maxVoiceSeconds = 60

func (b *Bot) handleVoice(ctx context.Context, message *tgbotapi.Message) {
	log := logger.Get()

	if message.Voice.Duration > maxVoiceSeconds {
		b.reply(message.Chat.ID, "Áudio muito longo. 😅 Me mande um áudio de até 1 minuto.")
		return
	}

	url, err := b.sender.GetFileDirectURL(message.Voice.FileID)
	if err != nil {
		log.Errorw("failed to resolve voice file", "error", err)
		b.reply(message.Chat.ID, "Não consegui baixar o áudio. Tente de novo.")
		return
	}
	audio, err := b.fetchFile(url)
	if err != nil {
		log.Errorw("failed to download voice file", "error", err)
		b.reply(message.Chat.ID, "Não consegui baixar o áudio. Tente de novo.")
		return
	}

	text, err := b.oracle.Transcribe(ctx, audio, "voice.ogg")
	if err != nil {
		log.Errorw("transcription failed", "error", err)
		b.reply(message.Chat.ID, "Não consegui entender o áudio. Tente de novo.")
		return
	}
	log.Infow("voice transcribed", "chat_id", message.Chat.ID, "text", text)

	// From here the voice note is just text.
	transcribed := *message
	transcribed.Text = text
	transcribed.Voice = nil
	b.handleText(ctx, &transcribed)
}

func (b *Bot) handlePhoto(ctx context.Context, message *tgbotapi.Message) {
	log := logger.Get()

	// Telegram sends multiple resolutions; the last is the largest.
	photo := message.Photo[len(message.Photo)-1]

	url, err := b.sender.GetFileDirectURL(photo.FileID)
	if err != nil {
		log.Errorw("failed to resolve photo file", "error", err)
		b.reply(message.Chat.ID, "Não consegui baixar a foto. Tente de novo.")
		return
	}
	image, err := b.fetchFile(url)
	if err != nil {
		log.Errorw("failed to download photo", "error", err)
		b.reply(message.Chat.ID, "Não consegui baixar a foto. Tente de novo.")
		return
	}

	categories, err := b.activeCategories()
	if err != nil {
		log.Errorw("failed to load categories", "error", err)
		b.reply(message.Chat.ID, "Tive um problema ao carregar as categorias. Tente de novo em instantes.")
		return
	}

	b.reply(message.Chat.ID, "🧾 Lendo o recibo...")
	parsed, err := b.oracle.ParseReceipt(ctx, image, categories)
	if err != nil {
		b.replyParseFailure(message.Chat.ID, err)
		return
	}

	b.stagePending(message.Chat.ID, message.MessageID, parsed)
}
