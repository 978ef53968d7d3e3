package bot

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Callback data prefixes. Bill callbacks carry the bill ID so they stay
// valid even after the pending stores expire.
const (
	callbackConfirmTx  = "confirm_tx"
	callbackEditTx     = "edit_tx"
	callbackCancelTx   = "cancel_tx"
	callbackBillPaid   = "bill_paid:"
	callbackBillSnooze = "bill_snooze:"
)

// Main menu callback data, one entry per /start button.
const (
	callbackMenuPrefix     = "menu_"
	callbackMenuBalance    = "menu_saldo"
	callbackMenuOverview   = "menu_resumo"
	callbackMenuRecent     = "menu_ultimas"
	callbackMenuCategories = "menu_categorias"
	callbackMenuBoxes      = "menu_caixinhas"
	callbackMenuBills      = "menu_contas"
)

func confirmKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Confirmar", callbackConfirmTx),
			tgbotapi.NewInlineKeyboardButtonData("✏️ Editar", callbackEditTx),
			tgbotapi.NewInlineKeyboardButtonData("❌ Cancelar", callbackCancelTx),
		),
	)
}

func mainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💰 Saldo", callbackMenuBalance),
			tgbotapi.NewInlineKeyboardButtonData("📊 Resumo", callbackMenuOverview),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🧾 Últimas", callbackMenuRecent),
			tgbotapi.NewInlineKeyboardButtonData("🏷 Categorias", callbackMenuCategories),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🐷 Caixinhas", callbackMenuBoxes),
			tgbotapi.NewInlineKeyboardButtonData("🔔 Contas", callbackMenuBills),
		),
	)
}

// BillReminderKeyboard is attached to scheduler reminders; the callbacks
// land back in the bot's update loop.
func BillReminderKeyboard(billID uint) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Já paguei", fmt.Sprintf("%s%d", callbackBillPaid, billID)),
			tgbotapi.NewInlineKeyboardButtonData("⏰ Lembrar amanhã", fmt.Sprintf("%s%d", callbackBillSnooze, billID)),
		),
	)
}

// parseBillCallback extracts the bill ID from prefixed callback data.
func parseBillCallback(data, prefix string) (uint, bool) {
	raw := strings.TrimPrefix(data, prefix)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
