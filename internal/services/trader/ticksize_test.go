package trader

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundToTick(t *testing.T) {
	tests := []struct {
		price    string
		expected string
	}{
		{price: "95123456", expected: "95123000"},
		{price: "1234567", expected: "1234500"},
		{price: "654321", expected: "654300"},
		{price: "123456", expected: "123450"},
		{price: "12345.67", expected: "12340"},
		{price: "1234.5", expected: "1234"},
		{price: "500", expected: "500"},
		{price: "123.456", expected: "123.4"},
		{price: "12.3456", expected: "12.34"},
		{price: "1.23456", expected: "1.234"},
		{price: "0.123456", expected: "0.1234"},
	}

	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			got := RoundToTick(decimal.RequireFromString(tt.price))
			assert.True(t, decimal.RequireFromString(tt.expected).Equal(got), "expected %s, got %s", tt.expected, got)
		})
	}
}

func TestRoundVolume(t *testing.T) {
	got := RoundVolume(decimal.RequireFromString("0.123456789123"))
	assert.Equal(t, "0.12345678", got.String())
}
