package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPosition_ProfitRate(t *testing.T) {
	tests := []struct {
		name      string
		avg       decimal.Decimal
		lastClose decimal.Decimal
		expected  decimal.Decimal
		err       error
	}{
		{
			name:      "below take profit",
			avg:       decimal.NewFromInt(100),
			lastClose: decimal.NewFromInt(108),
			expected:  decimal.NewFromInt(8),
		},
		{
			name:      "above take profit",
			avg:       decimal.NewFromInt(100),
			lastClose: decimal.NewFromInt(115),
			expected:  decimal.NewFromInt(15),
		},
		{
			name:      "loss",
			avg:       decimal.NewFromInt(200),
			lastClose: decimal.NewFromInt(150),
			expected:  decimal.NewFromInt(-25),
		},
		{
			name:      "zero entry price",
			avg:       decimal.Zero,
			lastClose: decimal.NewFromInt(150),
			err:       ErrZeroEntryPrice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Position{Currency: "BTC", Quantity: decimal.NewFromInt(1), AvgEntryPrice: tt.avg}
			rate, err := p.ProfitRate(tt.lastClose)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(rate), "expected %s, got %s", tt.expected, rate)
		})
	}
}

func TestPosition_Held(t *testing.T) {
	assert.True(t, Position{Quantity: decimal.RequireFromString("0.0001")}.Held())
	assert.False(t, Position{Quantity: decimal.Zero}.Held())
}

func TestCandle_Pivot(t *testing.T) {
	c := Candle{High: decimal.NewFromInt(120), Low: decimal.NewFromInt(100), Close: decimal.NewFromInt(110)}
	assert.True(t, decimal.NewFromInt(110).Equal(c.Pivot()))
}
