package report

import (
	"strings"

	"github.com/shopspring/decimal"
)

// formatMoney renders two decimal places with locale-neutral comma grouping,
// e.g. 1234567.5 -> "1,234,567.50".
func formatMoney(value decimal.Decimal) string {
	fixed := value.StringFixed(2)
	negative := strings.HasPrefix(fixed, "-")
	if negative {
		fixed = fixed[1:]
	}

	parts := strings.SplitN(fixed, ".", 2)
	intPart := parts[0]

	var b strings.Builder
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(intPart[i])
	}
	out := b.String() + "." + parts[1]
	if negative {
		out = "-" + out
	}
	return out
}
