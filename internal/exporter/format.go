package exporter

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ahmedokasha74/thread-trend-dashboard/pkg/contracts/domain"
)

// FormatMoney renders whole dollars with thousands separators, e.g. $1,234.
// Halves round to even.
func FormatMoney(d decimal.Decimal) string {
	whole := d.RoundBank(0)
	if whole.IsNegative() {
		return "-$" + groupThousands(whole.Neg().String())
	}
	return "$" + groupThousands(whole.String())
}

// FormatCount renders an integer with thousands separators.
func FormatCount(n int64) string {
	if n < 0 {
		return "-" + groupThousands(strconv.FormatInt(-n, 10))
	}
	return groupThousands(strconv.FormatInt(n, 10))
}

// FormatDecimal formats a value with exactly 2 decimal places
func FormatDecimal(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatPercent renders a ratio as 328.57% or n/a when undefined.
func FormatPercent(r domain.Ratio) string {
	return r.String()
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
