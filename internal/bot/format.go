package bot

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatMoney renders a value as Brazilian currency: R$ 1.234,56.
func FormatMoney(value decimal.Decimal) string {
	fixed := value.StringFixed(2)

	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	parts := strings.SplitN(fixed, ".", 2)
	whole, cents := parts[0], parts[1]

	var grouped strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(digit)
	}

	out := "R$ " + grouped.String() + "," + cents
	if negative {
		out = "-" + out
	}
	return out
}

// FormatDate renders a calendar date the Brazilian way: 02/01/2006.
func FormatDate(date time.Time) string {
	return date.Format("02/01/2006")
}
