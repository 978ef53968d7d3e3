// Package ai talks to the OpenAI API to turn free text, voice notes and
// receipt photos into structured transactions.
package ai

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// MinConfidence is the floor below which a parse is treated as a miss.
const MinConfidence = 0.5

var (
	// ErrNoTransaction means the input carries no recognizable transaction.
	ErrNoTransaction = errors.New("nenhuma transação reconhecida")
	// ErrLowConfidence means the model parsed something but was not sure
	// enough to act on it.
	ErrLowConfidence = errors.New("confiança insuficiente na interpretação")
)

// ParsedTransaction is the structured result of an AI parse. Category holds
// the model's free-text suggestion; resolving it to a stored category is the
// caller's job.
type ParsedTransaction struct {
	Type        string
	Amount      decimal.Decimal
	Category    string
	Description string
	Date        time.Time
	Confidence  float64
}

// Categories carries the active category names fed into prompts so the
// model prefers existing categories.
type Categories struct {
	Expense []string
	Income  []string
}

// Oracle is the narrow surface the bot depends on. Production uses the
// OpenAI client; tests substitute a fake.
type Oracle interface {
	ParseText(ctx context.Context, text string, categories Categories) (*ParsedTransaction, error)
	ParseReceipt(ctx context.Context, imageJPEG []byte, categories Categories) (*ParsedTransaction, error)
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}
