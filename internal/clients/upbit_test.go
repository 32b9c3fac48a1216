package clients

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadiminshakov/marti-upbit/internal/domain"
)

const (
	testAccessKey = "access"
	testSecretKey = "secret"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...UpbitOption) *UpbitClient {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	opts = append([]UpbitOption{WithBaseURL(srv.URL), WithRateLimit(1000)}, opts...)
	return NewUpbitClient(testAccessKey, testSecretKey, opts...)
}

func parseClaims(t *testing.T, header string) jwt.MapClaims {
	// called from handler goroutines, so assert instead of require
	if !assert.True(t, strings.HasPrefix(header, "Bearer "), "expected bearer token, got %q", header) {
		return jwt.MapClaims{}
	}

	token, err := jwt.Parse(strings.TrimPrefix(header, "Bearer "), func(token *jwt.Token) (interface{}, error) {
		return []byte(testSecretKey), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if !assert.NoError(t, err) {
		return jwt.MapClaims{}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	return claims
}

func TestUpbitClient_DayCandles(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/candles/days", r.URL.Path)
		assert.Equal(t, "KRW-BTC", r.URL.Query().Get("market"))
		assert.Equal(t, "2", r.URL.Query().Get("count"))
		assert.Empty(t, r.Header.Get("Authorization"), "public endpoint must not be signed")

		fmt.Fprint(w, `[
			{"market":"KRW-BTC","candle_date_time_utc":"2024-03-02T00:00:00","opening_price":100,"high_price":120,"low_price":90,"trade_price":110,"timestamp":2,"candle_acc_trade_volume":1.5},
			{"market":"KRW-BTC","candle_date_time_utc":"2024-03-01T00:00:00","opening_price":95,"high_price":105,"low_price":94,"trade_price":100,"timestamp":1,"candle_acc_trade_volume":2}
		]`)
	})

	candles, err := client.DayCandles(t.Context(), "KRW-BTC", 2)
	require.NoError(t, err)
	require.Len(t, candles, 2)
	assert.True(t, decimal.NewFromInt(110).Equal(candles[0].TradePrice))
	assert.True(t, decimal.RequireFromString("1.5").Equal(candles[0].CandleAccTradeVolume))
}

func TestUpbitClient_DayCandles_InvalidCount(t *testing.T) {
	client := NewUpbitClient("", "")

	_, err := client.DayCandles(t.Context(), "KRW-BTC", 0)
	assert.Error(t, err)

	_, err = client.DayCandles(t.Context(), "KRW-BTC", 201)
	assert.Error(t, err)
}

func TestUpbitClient_PrivateRequestIsSigned(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/open", r.URL.Path)

		claims := parseClaims(t, r.Header.Get("Authorization"))
		assert.Equal(t, testAccessKey, claims["access_key"])
		assert.NotEmpty(t, claims["nonce"])
		assert.Equal(t, queryHash(r.URL.RawQuery), claims["query_hash"])
		assert.Equal(t, "SHA512", claims["query_hash_alg"])

		fmt.Fprint(w, `[{"uuid":"u-1","side":"bid","ord_type":"limit","price":"500","state":"wait","market":"KRW-ETH","created_at":"2024-03-01T09:01:00+09:00","volume":"2","remaining_volume":"2"}]`)
	})

	orders, err := client.OpenOrders(t.Context(), "wait")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "u-1", orders[0].UUID)
	assert.True(t, decimal.NewFromInt(500).Equal(orders[0].Price.Decimal))
}

func TestUpbitClient_OpenOrdersPagination(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		count := openOrdersPageLimit
		if r.URL.Query().Get("page") == "2" {
			count = 3
		}
		orders := make([]map[string]string, count)
		for i := range orders {
			orders[i] = map[string]string{"uuid": fmt.Sprintf("p%s-%d", r.URL.Query().Get("page"), i), "state": "wait", "market": "KRW-BTC"}
		}
		assert.NoError(t, json.NewEncoder(w).Encode(orders))
	})

	orders, err := client.OpenOrders(t.Context(), "wait")
	require.NoError(t, err)
	assert.Len(t, orders, openOrdersPageLimit+3)
	assert.Equal(t, 2, calls)
}

func TestUpbitClient_Accounts(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		claims := parseClaims(t, r.Header.Get("Authorization"))
		_, hasHash := claims["query_hash"]
		assert.False(t, hasHash, "request without parameters carries no query hash")

		fmt.Fprint(w, `[{"currency":"KRW","balance":"1000000.0","locked":"0.0","avg_buy_price":"0","avg_buy_price_modified":false,"unit_currency":"KRW"},
			{"currency":"BTC","balance":"0.5","locked":"0.1","avg_buy_price":"50000000","avg_buy_price_modified":false,"unit_currency":"KRW"}]`)
	})

	accounts, err := client.Accounts(t.Context())
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "BTC", accounts[1].Currency)
	assert.True(t, decimal.RequireFromString("0.5").Equal(accounts[1].Balance))
}

func TestUpbitClient_CreateLimitOrder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		var payload map[string]string
		assert.NoError(t, json.Unmarshal(body, &payload))
		assert.Equal(t, map[string]string{
			"market":   "KRW-ETH",
			"side":     "bid",
			"volume":   "2",
			"price":    "500",
			"ord_type": "limit",
		}, payload)

		claims := parseClaims(t, r.Header.Get("Authorization"))
		assert.Equal(t, queryHash("market=KRW-ETH&side=bid&volume=2&price=500&ord_type=limit"), claims["query_hash"])

		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"uuid":"new-1","side":"bid","ord_type":"limit","price":"500","state":"wait","market":"KRW-ETH","volume":"2","remaining_volume":"2"}`)
	})

	order, err := client.CreateLimitOrder(t.Context(), UpbitOrderRequest{Market: "KRW-ETH", Side: "bid", Volume: "2", Price: "500"})
	require.NoError(t, err)
	assert.Equal(t, "new-1", order.UUID)
}

func TestUpbitClient_ErrorKinds(t *testing.T) {
	t.Run("api error body", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"error":{"name":"invalid_access_key","message":"wrong key"}}`)
		})

		_, err := client.Accounts(t.Context())
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrOther)
		assert.Contains(t, err.Error(), "invalid_access_key")
	})

	t.Run("malformed payload", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `[{"market":"KRW-BTC","trade_price":"not-a-number"}]`)
		})

		_, err := client.Tickers(t.Context(), "KRW-BTC")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidData)
	})

	t.Run("timeout", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			fmt.Fprint(w, `[]`)
		}, WithHTTPTimeout(20*time.Millisecond))

		_, err := client.Markets(t.Context())
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrTimeout)
	})

	t.Run("gateway timeout status", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusGatewayTimeout)
		})

		_, err := client.Markets(t.Context())
		assert.ErrorIs(t, err, domain.ErrTimeout)
	})

	t.Run("missing credentials", func(t *testing.T) {
		client := NewUpbitClient("", "", WithRateLimit(1000))

		_, err := client.Accounts(t.Context())
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrOther)
		assert.Contains(t, err.Error(), "credentials")
	})
}
