package trader

import "github.com/shopspring/decimal"

const volumePrecision = 8

type tickBand struct {
	floor decimal.Decimal
	tick  decimal.Decimal
}

// KRW market price units, highest band first.
var krwTickBands = []tickBand{
	{decimal.NewFromInt(2000000), decimal.NewFromInt(1000)},
	{decimal.NewFromInt(1000000), decimal.NewFromInt(500)},
	{decimal.NewFromInt(500000), decimal.NewFromInt(100)},
	{decimal.NewFromInt(100000), decimal.NewFromInt(50)},
	{decimal.NewFromInt(10000), decimal.NewFromInt(10)},
	{decimal.NewFromInt(1000), decimal.NewFromInt(1)},
	{decimal.NewFromInt(100), decimal.RequireFromString("0.1")},
	{decimal.NewFromInt(10), decimal.RequireFromString("0.01")},
	{decimal.NewFromInt(1), decimal.RequireFromString("0.001")},
	{decimal.RequireFromString("0.1"), decimal.RequireFromString("0.0001")},
	{decimal.RequireFromString("0.01"), decimal.RequireFromString("0.00001")},
	{decimal.RequireFromString("0.001"), decimal.RequireFromString("0.000001")},
	{decimal.RequireFromString("0.0001"), decimal.RequireFromString("0.0000001")},
}

var minTick = decimal.RequireFromString("0.00000001")

// TickSize returns the minimum price increment for a KRW market price.
func TickSize(price decimal.Decimal) decimal.Decimal {
	for _, band := range krwTickBands {
		if price.GreaterThanOrEqual(band.floor) {
			return band.tick
		}
	}
	return minTick
}

// RoundToTick floors price to a multiple of its tick size.
func RoundToTick(price decimal.Decimal) decimal.Decimal {
	tick := TickSize(price)
	return price.Div(tick).Floor().Mul(tick)
}

// RoundVolume truncates quantity to the exchange volume precision.
func RoundVolume(quantity decimal.Decimal) decimal.Decimal {
	return quantity.Truncate(volumePrecision)
}
