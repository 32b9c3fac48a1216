package pricer

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/vadiminshakov/marti-upbit/internal/domain"
)

// Pricer returns the current market price.
type Pricer interface {
	GetPrice(ctx context.Context, market domain.Market) (decimal.Decimal, error)
}
