package okx

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"okxflow/models"
)

func TestAccountBalanceRequest(t *testing.T) {
	req := NewAccountBalanceRequest(nil)
	if req.Method != "GET" || req.RequestPath() != "/api/v5/account/balance" {
		t.Fatalf("unexpected request: %s %s", req.Method, req.RequestPath())
	}

	req = NewAccountBalanceRequest([]string{"BTC", "ETH"})
	if got := req.RequestPath(); got != "/api/v5/account/balance?ccy=BTC%2CETH" {
		t.Fatalf("unexpected request path: %s", got)
	}
}

func TestPositionsRequestLimitsIDs(t *testing.T) {
	ids := make([]string, 21)
	for i := range ids {
		ids[i] = "1"
	}
	if _, err := NewPositionsRequest("", "", ids); !IsKind(err, KindInvalidParameter) {
		t.Fatalf("expected invalid parameter error, got %v", err)
	}

	req, err := NewPositionsRequest(models.InstrumentTypeSwap, "BTC-USDT-SWAP", nil)
	if err != nil {
		t.Fatalf("NewPositionsRequest failed: %v", err)
	}
	if got := req.RequestPath(); got != "/api/v5/account/positions?instId=BTC-USDT-SWAP&instType=SWAP" {
		t.Fatalf("unexpected request path: %s", got)
	}
}

func TestCandlesRequest(t *testing.T) {
	req, err := NewCandlesRequest(CandlesQuery{InstrumentID: "BTC-USDT", Bar: "1m", Limit: 5})
	if err != nil {
		t.Fatalf("NewCandlesRequest failed: %v", err)
	}
	if got := req.RequestPath(); got != "/api/v5/market/candles?bar=1m&instId=BTC-USDT&limit=5" {
		t.Fatalf("unexpected request path: %s", got)
	}

	cases := []struct {
		name  string
		query CandlesQuery
	}{
		{"missing instrument", CandlesQuery{Bar: "1m"}},
		{"unknown bar", CandlesQuery{InstrumentID: "BTC-USDT", Bar: "2m"}},
		{"limit too large", CandlesQuery{InstrumentID: "BTC-USDT", Limit: 101}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewCandlesRequest(tc.query); !IsKind(err, KindInvalidParameter) {
				t.Fatalf("expected invalid parameter error, got %v", err)
			}
		})
	}
}

func TestOrderBookRequestDepth(t *testing.T) {
	req, err := NewOrderBookRequest("BTC-USDT", 0)
	if err != nil {
		t.Fatalf("NewOrderBookRequest failed: %v", err)
	}
	if got := req.RequestPath(); got != "/api/v5/market/books?instId=BTC-USDT" {
		t.Fatalf("unexpected request path: %s", got)
	}

	if _, err := NewOrderBookRequest("BTC-USDT", 401); !IsKind(err, KindInvalidParameter) {
		t.Fatalf("expected invalid parameter error, got %v", err)
	}
}

func TestIndexTickersRequestNeedsOneFilter(t *testing.T) {
	if _, err := NewIndexTickersRequest("", ""); !IsKind(err, KindInvalidParameter) {
		t.Fatalf("expected invalid parameter error, got %v", err)
	}

	req, err := NewIndexTickersRequest("USDT", "")
	if err != nil {
		t.Fatalf("NewIndexTickersRequest failed: %v", err)
	}
	if got := req.RequestPath(); got != "/api/v5/market/index-tickers?quoteCcy=USDT" {
		t.Fatalf("unexpected request path: %s", got)
	}
}

func TestPlaceOrderRequestCanonicalBody(t *testing.T) {
	price := decimal.RequireFromString("50000.5")
	req, err := NewPlaceOrderRequest(PlaceOrderParams{
		InstrumentID: "BTC-USDT",
		TradeMode:    models.TradeModeCash,
		Side:         models.SideBuy,
		OrderType:    models.OrderTypeLimit,
		Size:         decimal.NewFromInt(1),
		Price:        &price,
	})
	if err != nil {
		t.Fatalf("NewPlaceOrderRequest failed: %v", err)
	}

	// Body keys are sorted: these exact bytes enter the signed prehash.
	want := `{"instId":"BTC-USDT","ordType":"limit","px":"50000.5","side":"buy","sz":"1","tdMode":"cash"}`
	if string(req.Body) != want {
		t.Fatalf("unexpected body:\n got %s\nwant %s", req.Body, want)
	}
	if req.Method != "POST" || req.Path != "/api/v5/trade/order" {
		t.Fatalf("unexpected request: %s %s", req.Method, req.Path)
	}
}

func TestPlaceOrderRequestValidation(t *testing.T) {
	price := decimal.RequireFromString("50000.5")
	valid := PlaceOrderParams{
		InstrumentID: "BTC-USDT",
		TradeMode:    models.TradeModeCash,
		Side:         models.SideBuy,
		OrderType:    models.OrderTypeLimit,
		Size:         decimal.NewFromInt(1),
		Price:        &price,
	}

	cases := []struct {
		name   string
		mutate func(*PlaceOrderParams)
	}{
		{"missing instrument", func(p *PlaceOrderParams) { p.InstrumentID = "" }},
		{"bad side", func(p *PlaceOrderParams) { p.Side = "hold" }},
		{"bad trade mode", func(p *PlaceOrderParams) { p.TradeMode = "margin" }},
		{"bad order type", func(p *PlaceOrderParams) { p.OrderType = "stop" }},
		{"zero size", func(p *PlaceOrderParams) { p.Size = decimal.Zero }},
		{"limit without price", func(p *PlaceOrderParams) { p.Price = nil }},
		{"negative price", func(p *PlaceOrderParams) {
			neg := decimal.NewFromInt(-1)
			p.Price = &neg
		}},
		{"client order id too long", func(p *PlaceOrderParams) { p.ClientOrderID = strings.Repeat("a", 33) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := valid
			tc.mutate(&params)
			if _, err := NewPlaceOrderRequest(params); !IsKind(err, KindInvalidParameter) {
				t.Fatalf("expected invalid parameter error, got %v", err)
			}
		})
	}
}

func TestPlaceOrderRequestMarketNeedsNoPrice(t *testing.T) {
	req, err := NewPlaceOrderRequest(PlaceOrderParams{
		InstrumentID: "BTC-USDT",
		TradeMode:    models.TradeModeCash,
		Side:         models.SideSell,
		OrderType:    models.OrderTypeMarket,
		Size:         decimal.RequireFromString("0.5"),
	})
	if err != nil {
		t.Fatalf("NewPlaceOrderRequest failed: %v", err)
	}
	if strings.Contains(string(req.Body), "px") {
		t.Fatalf("market order body carries a price: %s", req.Body)
	}
}

func TestCancelOrderRequestNeedsAnID(t *testing.T) {
	if _, err := NewCancelOrderRequest("BTC-USDT", "", ""); !IsKind(err, KindInvalidParameter) {
		t.Fatalf("expected invalid parameter error, got %v", err)
	}

	req, err := NewCancelOrderRequest("BTC-USDT", "123", "")
	if err != nil {
		t.Fatalf("NewCancelOrderRequest failed: %v", err)
	}
	want := `{"instId":"BTC-USDT","ordId":"123"}`
	if string(req.Body) != want {
		t.Fatalf("unexpected body: %s", req.Body)
	}
}

func TestOrderDetailsRequest(t *testing.T) {
	req, err := NewOrderDetailsRequest("BTC-USDT", "", "client-1")
	if err != nil {
		t.Fatalf("NewOrderDetailsRequest failed: %v", err)
	}
	if got := req.RequestPath(); got != "/api/v5/trade/order?clOrdId=client-1&instId=BTC-USDT" {
		t.Fatalf("unexpected request path: %s", got)
	}
}

func TestNewClientOrderID(t *testing.T) {
	id := NewClientOrderID()
	if len(id) != 32 {
		t.Fatalf("unexpected id length %d: %s", len(id), id)
	}
	if strings.Contains(id, "-") {
		t.Fatalf("id contains hyphens: %s", id)
	}
	if id == NewClientOrderID() {
		t.Fatal("consecutive ids collided")
	}
}
