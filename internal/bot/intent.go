package bot

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/halarumdigital/agente-financeiro/internal/ai"
)

// Intent is the closed set of things a free-text message can ask for.
type Intent int

const (
	IntentUnknown Intent = iota
	IntentTransaction
	IntentSavingsDeposit
	IntentSavingsWithdraw
	IntentSavingsCreate
	IntentSavingsBalance
	IntentSavingsList
	IntentBillCreate
	IntentBillDelete
	IntentBillPaid
	IntentBillList
)

// Command is a classified message. Amount, Name, Goal and DueDay are filled
// only for the intents that carry them.
type Command struct {
	Intent Intent
	Amount decimal.Decimal
	Name   string
	Goal   decimal.Decimal
	DueDay int
}

var (
	depositRe    = regexp.MustCompile(`(?i)^(?:guardar|depositar|colocar)\s+(?:r\$\s*)?([\d.,]+)\s+na\s+caixinha\s+(.+)$`)
	withdrawRe   = regexp.MustCompile(`(?i)^(?:retirar|sacar|tirar)\s+(?:r\$\s*)?([\d.,]+)\s+da\s+caixinha\s+(.+)$`)
	createRe     = regexp.MustCompile(`(?i)^criar\s+caixinha\s+(\w+)(?:\s+meta\s+(?:r\$\s*)?([\d.,]+))?$`)
	boxBalanceRe = regexp.MustCompile(`(?i)^(?:saldo\s+)?(?:da\s+)?caixinha\s+(\w+)$`)
	boxListRe    = regexp.MustCompile(`(?i)^(?:minhas\s+)?caixinhas$`)
	billCreateRe = regexp.MustCompile(`(?i)^(?:criar|nova|adicionar)\s+conta\s+(.+?)\s+(?:r\$\s*)?([\d.,]+)\s+(?:vence\s+)?(?:dia\s+)?(\d{1,2})$`)
	billDeleteRe = regexp.MustCompile(`(?i)^(?:excluir|remover|deletar)\s+(?:a\s+)?conta\s+(.+)$`)
	billPaidRe   = regexp.MustCompile(`(?i)^(?:j[áa]\s+)?paguei\s+(?:a\s+|o\s+)?(?:conta\s+(?:de\s+|da\s+|do\s+)?)?(.+)$`)
	billListRe   = regexp.MustCompile(`(?i)^(?:minhas\s+)?contas$`)
)

// Classify maps a free-text message onto an intent. Explicit savings box and
// bill phrasings win over the transaction heuristic, so "guardar 50 na
// caixinha viagem" never reaches the AI parser.
func Classify(text string) Command {
	text = strings.TrimSpace(text)

	if m := depositRe.FindStringSubmatch(text); m != nil {
		if amount, ok := parseMoney(m[1]); ok {
			return Command{Intent: IntentSavingsDeposit, Amount: amount, Name: strings.TrimSpace(m[2])}
		}
	}
	if m := withdrawRe.FindStringSubmatch(text); m != nil {
		if amount, ok := parseMoney(m[1]); ok {
			return Command{Intent: IntentSavingsWithdraw, Amount: amount, Name: strings.TrimSpace(m[2])}
		}
	}
	if m := createRe.FindStringSubmatch(text); m != nil {
		command := Command{Intent: IntentSavingsCreate, Name: strings.TrimSpace(m[1])}
		if m[2] != "" {
			if goal, ok := parseMoney(m[2]); ok {
				command.Goal = goal
			}
		}
		return command
	}
	if boxListRe.MatchString(text) {
		return Command{Intent: IntentSavingsList}
	}
	if m := boxBalanceRe.FindStringSubmatch(text); m != nil {
		return Command{Intent: IntentSavingsBalance, Name: strings.TrimSpace(m[1])}
	}
	if billListRe.MatchString(text) {
		return Command{Intent: IntentBillList}
	}
	if m := billCreateRe.FindStringSubmatch(text); m != nil {
		if amount, ok := parseMoney(m[2]); ok {
			if day, err := strconv.Atoi(m[3]); err == nil {
				return Command{Intent: IntentBillCreate, Name: strings.TrimSpace(m[1]), Amount: amount, DueDay: day}
			}
		}
	}
	if m := billDeleteRe.FindStringSubmatch(text); m != nil {
		return Command{Intent: IntentBillDelete, Name: strings.TrimSpace(m[1])}
	}
	// "paguei luz" names a bill; "paguei 100 de luz" is a transaction.
	if m := billPaidRe.FindStringSubmatch(text); m != nil && !strings.ContainsAny(m[1], "0123456789") {
		return Command{Intent: IntentBillPaid, Name: strings.TrimSpace(m[1])}
	}
	if ai.LooksLikeTransaction(text) {
		return Command{Intent: IntentTransaction}
	}
	return Command{Intent: IntentUnknown}
}

// parseMoney reads Brazilian-formatted amounts: "1.234,56", "50", "25,90".
func parseMoney(text string) (decimal.Decimal, bool) {
	text = strings.TrimSpace(text)
	if strings.Contains(text, ",") {
		text = strings.ReplaceAll(text, ".", "")
		text = strings.ReplaceAll(text, ",", ".")
	}
	value, err := decimal.NewFromString(text)
	if err != nil || !value.IsPositive() {
		return decimal.Zero, false
	}
	return value, true
}
