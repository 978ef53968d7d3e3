package bot

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "R$ 0,00"},
		{"5", "R$ 5,00"},
		{"45.5", "R$ 45,50"},
		{"1234.56", "R$ 1.234,56"},
		{"1234567.89", "R$ 1.234.567,89"},
		{"-99.9", "-R$ 99,90"},
	}

	for _, tt := range tests {
		value, err := decimal.NewFromString(tt.in)
		if err != nil {
			t.Fatalf("bad input %q: %v", tt.in, err)
		}
		if got := FormatMoney(value); got != tt.want {
			t.Errorf("FormatMoney(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	date := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)
	if got := FormatDate(date); got != "05/03/2026" {
		t.Errorf("FormatDate = %q, want 05/03/2026", got)
	}
}
