package ai

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

// transactionKeywords gate which messages are worth an API call. A message
// must carry one of these plus a digit to be treated as a candidate.
var transactionKeywords = []string{
	"gastei", "paguei", "comprei", "gasto",
	"recebi", "ganhei", "salário", "salario",
	"reais", "r$", "pila", "conto",
}

// LooksLikeTransaction is a cheap pre-filter applied before calling the
// model, so chit-chat never burns API quota.
func LooksLikeTransaction(text string) bool {
	lower := strings.ToLower(text)

	hasKeyword := false
	for _, keyword := range transactionKeywords {
		if strings.Contains(lower, keyword) {
			hasKeyword = true
			break
		}
	}
	if !hasKeyword {
		return false
	}

	for _, r := range lower {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// rawParsed mirrors the JSON the model is asked to produce. Amount stays
// raw because models occasionally quote it or use a comma decimal.
type rawParsed struct {
	Type        string          `json:"type"`
	Amount      json.RawMessage `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	Confidence  float64         `json:"confidence"`
}

func stripFences(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	}
	return strings.TrimSpace(content)
}

func parseAmount(raw json.RawMessage) (decimal.Decimal, error) {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" {
		return decimal.Zero, fmt.Errorf("amount missing")
	}

	text = strings.Trim(text, `"`)
	text = strings.TrimPrefix(strings.TrimSpace(text), "R$")
	text = strings.TrimSpace(text)

	// Brazilian formatting: 1.234,56 uses dot for thousands and comma
	// for cents.
	if strings.Contains(text, ",") {
		text = strings.ReplaceAll(text, ".", "")
		text = strings.ReplaceAll(text, ",", ".")
	}

	value, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	return value, nil
}

// ParseDate understands the date forms the model and users produce:
// ISO dates, Brazilian DD/MM/YYYY, and the relative words hoje, ontem
// and amanhã. Anything else falls back to now.
func ParseDate(text string, now time.Time) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	switch strings.ToLower(strings.TrimSpace(text)) {
	case "", "hoje":
		return today
	case "ontem":
		return today.AddDate(0, 0, -1)
	case "amanhã", "amanha":
		return today.AddDate(0, 0, 1)
	}

	for _, layout := range []string{"2006-01-02", "02/01/2006", "02/01/06"} {
		if parsed, err := time.Parse(layout, strings.TrimSpace(text)); err == nil {
			return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
		}
	}
	return today
}

// DecodeParsed turns a raw model reply into a validated ParsedTransaction.
// It tolerates markdown fences, quoted or comma-decimal amounts and missing
// dates, and rejects replies that are not transactions or carry too little
// confidence.
func DecodeParsed(content string, now time.Time) (*ParsedTransaction, error) {
	content = stripFences(content)
	if content == "" || content == "null" {
		return nil, ErrNoTransaction
	}

	var raw rawParsed
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("unparseable model reply: %w", err)
	}

	if raw.Type != "income" && raw.Type != "expense" {
		return nil, ErrNoTransaction
	}

	amount, err := parseAmount(raw.Amount)
	if err != nil {
		return nil, ErrNoTransaction
	}
	if !amount.IsPositive() {
		return nil, ErrNoTransaction
	}

	if raw.Confidence < MinConfidence {
		return nil, ErrLowConfidence
	}

	return &ParsedTransaction{
		Type:        raw.Type,
		Amount:      amount,
		Category:    strings.TrimSpace(raw.Category),
		Description: strings.TrimSpace(raw.Description),
		Date:        ParseDate(raw.Date, now),
		Confidence:  raw.Confidence,
	}, nil
}
