package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/vadiminshakov/marti-upbit/internal/domain"
)

const (
	UpbitBaseURL = "https://api.upbit.com/v1"

	defaultHTTPTimeout       = 10 * time.Second
	defaultRequestsPerSecond = 8
	maxCandlesPerRequest     = 200
	openOrdersPageLimit      = 100
)

// UpbitMarket listed market.
type UpbitMarket struct {
	Market        string `json:"market"`
	KoreanName    string `json:"korean_name"`
	EnglishName   string `json:"english_name"`
	MarketWarning string `json:"market_warning,omitempty"`
}

// UpbitTicker current market snapshot.
type UpbitTicker struct {
	Market     string          `json:"market"`
	TradePrice decimal.Decimal `json:"trade_price"`
	Timestamp  int64           `json:"timestamp"`
}

// UpbitCandle daily candle, prices in quote currency.
type UpbitCandle struct {
	Market               string          `json:"market"`
	CandleDateTimeUTC    string          `json:"candle_date_time_utc"`
	OpeningPrice         decimal.Decimal `json:"opening_price"`
	HighPrice            decimal.Decimal `json:"high_price"`
	LowPrice             decimal.Decimal `json:"low_price"`
	TradePrice           decimal.Decimal `json:"trade_price"`
	Timestamp            int64           `json:"timestamp"`
	CandleAccTradeVolume decimal.Decimal `json:"candle_acc_trade_volume"`
}

// UpbitAccount balance of a single currency.
type UpbitAccount struct {
	Currency            string          `json:"currency"`
	Balance             decimal.Decimal `json:"balance"`
	Locked              decimal.Decimal `json:"locked"`
	AvgBuyPrice         decimal.Decimal `json:"avg_buy_price"`
	AvgBuyPriceModified bool            `json:"avg_buy_price_modified"`
	UnitCurrency        string          `json:"unit_currency"`
}

// UpbitOrder order as returned by order endpoints.
type UpbitOrder struct {
	UUID            string              `json:"uuid"`
	Side            string              `json:"side"`
	OrdType         string              `json:"ord_type"`
	Price           decimal.NullDecimal `json:"price"`
	State           string              `json:"state"`
	Market          string              `json:"market"`
	CreatedAt       time.Time           `json:"created_at"`
	Volume          decimal.NullDecimal `json:"volume"`
	RemainingVolume decimal.NullDecimal `json:"remaining_volume"`
}

// UpbitOrderRequest limit order parameters, already aligned to exchange precision.
type UpbitOrderRequest struct {
	Market string
	Side   string
	Volume string
	Price  string
}

type upbitErrorBody struct {
	Error struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	} `json:"error"`
}

type param struct {
	key   string
	value string
}

// UpbitClient REST client for the Upbit exchange.
type UpbitClient struct {
	baseURL    string
	auth       *upbitAuthenticator
	httpClient *http.Client
	limiter    *rate.Limiter
}

// UpbitOption configures UpbitClient.
type UpbitOption func(*UpbitClient)

// WithBaseURL overrides the API endpoint.
func WithBaseURL(baseURL string) UpbitOption {
	return func(c *UpbitClient) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPTimeout sets the per-request timeout.
func WithHTTPTimeout(d time.Duration) UpbitOption {
	return func(c *UpbitClient) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithRateLimit limits outgoing requests per second.
func WithRateLimit(requestsPerSecond float64) UpbitOption {
	return func(c *UpbitClient) {
		if requestsPerSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
		}
	}
}

// NewUpbitClient creates a client. Empty keys give a client limited to public endpoints.
func NewUpbitClient(accessKey, secretKey string, opts ...UpbitOption) *UpbitClient {
	c := &UpbitClient{
		baseURL:    UpbitBaseURL,
		auth:       newUpbitAuthenticator(accessKey, secretKey),
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		limiter:    rate.NewLimiter(rate.Limit(defaultRequestsPerSecond), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Tickers returns current prices for the given market codes.
func (c *UpbitClient) Tickers(ctx context.Context, markets ...string) ([]UpbitTicker, error) {
	var tickers []UpbitTicker
	err := c.do(ctx, http.MethodGet, "/ticker", []param{{"markets", strings.Join(markets, ",")}}, false, &tickers)
	return tickers, err
}

// DayCandles returns up to count daily candles, newest first as the exchange sends them.
func (c *UpbitClient) DayCandles(ctx context.Context, market string, count int) ([]UpbitCandle, error) {
	if count < 1 || count > maxCandlesPerRequest {
		return nil, errors.Errorf("candle count must be between 1 and %d, got %d", maxCandlesPerRequest, count)
	}

	var candles []UpbitCandle
	err := c.do(ctx, http.MethodGet, "/candles/days", []param{
		{"market", market},
		{"count", strconv.Itoa(count)},
	}, false, &candles)
	return candles, err
}

// Markets lists every market on the exchange.
func (c *UpbitClient) Markets(ctx context.Context) ([]UpbitMarket, error) {
	var markets []UpbitMarket
	err := c.do(ctx, http.MethodGet, "/market/all", []param{{"isDetails", "false"}}, false, &markets)
	return markets, err
}

// Accounts returns all balances of the account.
func (c *UpbitClient) Accounts(ctx context.Context) ([]UpbitAccount, error) {
	var accounts []UpbitAccount
	err := c.do(ctx, http.MethodGet, "/accounts", nil, true, &accounts)
	return accounts, err
}

// OpenOrders pages through open orders in the given state (wait or watch).
func (c *UpbitClient) OpenOrders(ctx context.Context, state string) ([]UpbitOrder, error) {
	var all []UpbitOrder
	for page := 1; ; page++ {
		var orders []UpbitOrder
		err := c.do(ctx, http.MethodGet, "/orders/open", []param{
			{"state", state},
			{"page", strconv.Itoa(page)},
			{"limit", strconv.Itoa(openOrdersPageLimit)},
		}, true, &orders)
		if err != nil {
			return nil, err
		}
		all = append(all, orders...)
		if len(orders) < openOrdersPageLimit {
			return all, nil
		}
	}
}

// CancelOrder cancels an order by its uuid.
func (c *UpbitClient) CancelOrder(ctx context.Context, id string) (UpbitOrder, error) {
	var order UpbitOrder
	err := c.do(ctx, http.MethodDelete, "/order", []param{{"uuid", id}}, true, &order)
	return order, err
}

// CreateLimitOrder places a limit order.
func (c *UpbitClient) CreateLimitOrder(ctx context.Context, req UpbitOrderRequest) (UpbitOrder, error) {
	var order UpbitOrder
	err := c.do(ctx, http.MethodPost, "/orders", []param{
		{"market", req.Market},
		{"side", req.Side},
		{"volume", req.Volume},
		{"price", req.Price},
		{"ord_type", "limit"},
	}, true, &order)
	return order, err
}

func (c *UpbitClient) do(ctx context.Context, method, path string, params []param, private bool, out any) error {
	op := method + " " + path

	if err := c.limiter.Wait(ctx); err != nil {
		return classifyTransportError(op, err)
	}

	query := encodeParams(params)
	endpoint := c.baseURL + path

	var body io.Reader
	if method == http.MethodPost {
		payload := make(map[string]string, len(params))
		for _, p := range params {
			payload[p.key] = p.value
		}
		data, err := json.Marshal(payload)
		if err != nil {
			return domain.NewExchangeError(domain.KindOther, op, errors.Wrap(err, "failed to marshal request"))
		}
		body = bytes.NewReader(data)
	} else if query != "" {
		endpoint += "?" + query
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return domain.NewExchangeError(domain.KindOther, op, errors.Wrap(err, "failed to create HTTP request"))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}

	if private {
		if c.auth == nil {
			return domain.NewExchangeError(domain.KindOther, op, errors.New("upbit credentials are not configured"))
		}
		if err := c.auth.AddAuthHeaders(req, query); err != nil {
			return domain.NewExchangeError(domain.KindOther, op, err)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransportError(op, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return classifyTransportError(op, errors.Wrap(err, "failed to read response body"))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(op, resp.StatusCode, respBody)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return domain.NewExchangeError(domain.KindInvalidData, op, errors.Wrap(err, "failed to unmarshal response"))
	}

	return nil
}

// encodeParams keeps parameter order; the same string is hashed into the JWT.
func encodeParams(params []param) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, url.QueryEscape(p.key)+"="+url.QueryEscape(p.value))
	}
	return strings.Join(parts, "&")
}

func classifyTransportError(op string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return domain.NewExchangeError(domain.KindTimeout, op, err)
	}
	return domain.NewExchangeError(domain.KindOther, op, err)
}

func statusError(op string, status int, body []byte) error {
	kind := domain.KindOther
	if status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout {
		kind = domain.KindTimeout
	}

	var errBody upbitErrorBody
	if err := json.Unmarshal(body, &errBody); err == nil && errBody.Error.Name != "" {
		return domain.NewExchangeError(kind, op, fmt.Errorf("upbit API returned status %d: %s: %s",
			status, errBody.Error.Name, errBody.Error.Message))
	}

	return domain.NewExchangeError(kind, op, fmt.Errorf("upbit API returned status %d: %s", status, string(body)))
}
