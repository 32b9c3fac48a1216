package pricer

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadiminshakov/marti-upbit/internal/clients"
	"github.com/vadiminshakov/marti-upbit/internal/domain"
)

func TestUpbitPricer_GetPrice(t *testing.T) {
	t.Run("returns last trade price", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "KRW-BTC", r.URL.Query().Get("markets"))
			fmt.Fprint(w, `[{"market":"KRW-BTC","trade_price":95000000.0,"timestamp":1}]`)
		}))
		defer srv.Close()

		p := NewUpbitPricer(clients.NewUpbitClient("", "", clients.WithBaseURL(srv.URL)))
		price, err := p.GetPrice(t.Context(), domain.NewMarket("KRW", "BTC"))
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(95000000).Equal(price))
	})

	t.Run("empty ticker is absent price", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `[]`)
		}))
		defer srv.Close()

		p := NewUpbitPricer(clients.NewUpbitClient("", "", clients.WithBaseURL(srv.URL)))
		price, err := p.GetPrice(t.Context(), domain.NewMarket("KRW", "BTC"))
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidData)
		assert.True(t, price.IsZero())
	})
}
