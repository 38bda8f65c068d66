package exporter

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ahmedokasha74/thread-trend-dashboard/pkg/contracts/domain"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "zero", input: "0", expected: "$0"},
		{name: "small", input: "300", expected: "$300"},
		{name: "thousands", input: "1234", expected: "$1,234"},
		{name: "millions", input: "1234567.4", expected: "$1,234,567"},
		{name: "rounds up", input: "999.6", expected: "$1,000"},
		{name: "half to even", input: "2.5", expected: "$2"},
		{name: "exact group", input: "100000", expected: "$100,000"},
		{name: "negative", input: "-1500", expected: "-$1,500"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatMoney(decimal.RequireFromString(tt.input)))
		})
	}
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "0", FormatCount(0))
	assert.Equal(t, "999", FormatCount(999))
	assert.Equal(t, "1,000", FormatCount(1000))
	assert.Equal(t, "12,345,678", FormatCount(12345678))
	assert.Equal(t, "-4,321", FormatCount(-4321))
}

func TestFormatDecimal(t *testing.T) {
	assert.Equal(t, "13.40", FormatDecimal(decimal.RequireFromString("13.4")))
	assert.Equal(t, "116.67", FormatDecimal(decimal.RequireFromString("116.6666666666666667")))
	assert.Equal(t, "0.00", FormatDecimal(decimal.Zero))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "n/a", FormatPercent(domain.UndefinedRatio))
	assert.Equal(t, "328.57%", FormatPercent(domain.NewRatio(decimal.RequireFromString("328.5714285714285714"))))
	assert.Equal(t, "-50.00%", FormatPercent(domain.NewRatio(decimal.NewFromInt(-50))))
}
