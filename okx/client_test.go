package okx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"okxflow/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	opts = append([]Option{WithBaseURL(srv.URL), WithClock(fixedClock)}, opts...)
	return NewClient(opts...)
}

func TestClientGetTicker(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"0","msg":"","data":[{"instId":"BTC-USDT","last":"50000.5","vol24h":"1000"}]}`))
	})

	ticker, err := client.GetTicker(context.Background(), "BTC-USDT")
	if err != nil {
		t.Fatalf("GetTicker failed: %v", err)
	}
	if ticker.InstrumentID != "BTC-USDT" {
		t.Errorf("unexpected instrument: %s", ticker.InstrumentID)
	}
	if ticker.Last == nil || !ticker.Last.Equal(decimal.RequireFromString("50000.5")) {
		t.Errorf("unexpected last price: %v", ticker.Last)
	}
}

func TestClientGetOrderDetailsTyped(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"0","msg":"","data":[{"ordId":"123","px":"50000.5","sz":"1.0","side":"buy","state":"live"}]}`))
	})

	order, err := client.GetOrderDetails(context.Background(), "BTC-USDT", "123", "")
	if err != nil {
		t.Fatalf("GetOrderDetails failed: %v", err)
	}
	if order.OrderID != "123" {
		t.Errorf("unexpected order id: %s", order.OrderID)
	}
	if order.Price == nil || !order.Price.Equal(decimal.RequireFromString("50000.5")) {
		t.Errorf("unexpected price: %v", order.Price)
	}
	if order.Size == nil || !order.Size.Equal(decimal.NewFromInt(1)) {
		t.Errorf("unexpected size: %v", order.Size)
	}
	if order.Side != models.SideBuy || order.State != models.OrderStateLive {
		t.Errorf("unexpected enums: side=%s state=%s", order.Side, order.State)
	}
}

func TestClientPlaceOrderNestedRejection(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"0","msg":"","data":[{"ordId":"","sCode":"51008","sMsg":"insufficient balance"}]}`))
	})

	price := decimal.RequireFromString("50000.5")
	_, err := client.PlaceOrder(context.Background(), PlaceOrderParams{
		InstrumentID: "BTC-USDT",
		TradeMode:    models.TradeModeCash,
		Side:         models.SideBuy,
		OrderType:    models.OrderTypeLimit,
		Size:         decimal.NewFromInt(1),
		Price:        &price,
	})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Kind != KindRequest || apiErr.Code != "51008" {
		t.Errorf("unexpected rejection: kind=%s code=%s", apiErr.Kind, apiErr.Code)
	}
}

func TestClientGetCandlesticks(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"0","msg":"","data":[["1704067200000","42000","42500","41900","42400","120","5049000"]]}`))
	})

	candles, err := client.GetCandlesticks(context.Background(), CandlesQuery{InstrumentID: "BTC-USDT", Bar: "1m"})
	if err != nil {
		t.Fatalf("GetCandlesticks failed: %v", err)
	}
	if len(candles) != 1 {
		t.Fatalf("expected 1 candle, got %d", len(candles))
	}
	c := candles[0]
	if c.Timestamp.UnixMilli() != 1704067200000 {
		t.Errorf("unexpected timestamp: %v", c.Timestamp)
	}
	if c.Open == nil || !c.Open.Equal(decimal.NewFromInt(42000)) {
		t.Errorf("unexpected open: %v", c.Open)
	}
	if c.Close == nil || !c.Close.Equal(decimal.NewFromInt(42400)) {
		t.Errorf("unexpected close: %v", c.Close)
	}
}

func TestClientGetAccountBalance(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"0","msg":"","data":[{"totalEq":"91.5","uTime":"1704067200000","details":[{"ccy":"BTC","eq":"0.002","availBal":"0.002"}]}]}`))
	})

	balances, err := client.GetAccountBalance(context.Background())
	if err != nil {
		t.Fatalf("GetAccountBalance failed: %v", err)
	}
	if len(balances) != 1 || len(balances[0].Details) != 1 {
		t.Fatalf("unexpected shape: %v", balances)
	}
	detail := balances[0].Details[0]
	if detail.Currency != "BTC" {
		t.Errorf("unexpected currency: %s", detail.Currency)
	}
	if detail.Equity == nil || !detail.Equity.Equal(decimal.RequireFromString("0.002")) {
		t.Errorf("unexpected equity: %v", detail.Equity)
	}
}

func TestClientMappingErrorSurfaces(t *testing.T) {
	// A record without its identity field cannot map to an Order.
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"0","msg":"","data":[{"px":"50000.5"}]}`))
	})

	_, err := client.GetOrderDetails(context.Background(), "BTC-USDT", "123", "")
	var mapErr *models.MappingError
	if !errors.As(err, &mapErr) {
		t.Fatalf("expected *MappingError, got %v", err)
	}
	if mapErr.Field != "ordId" {
		t.Errorf("unexpected field: %s", mapErr.Field)
	}
}

func TestClientRawAPIAccessible(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"0","msg":"","data":[{"px":"50000.5"}]}`))
	})

	// The same malformed record that fails typed mapping is reachable
	// untouched through the embedded raw client.
	records, err := client.API.GetOrderDetails(context.Background(), "BTC-USDT", "123", "")
	if err != nil {
		t.Fatalf("raw GetOrderDetails failed: %v", err)
	}
	if v, _ := records[0].Str("px"); v != "50000.5" {
		t.Errorf("unexpected raw value: %s", v)
	}
}
