package okx

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"okxflow/models"
)

// All endpoints share the versioned prefix.
const apiPrefix = "/api/v5"

const (
	pathAccountBalance      = apiPrefix + "/account/balance"
	pathAccountPositionRisk = apiPrefix + "/account/account-position-risk"
	pathAccountPositions    = apiPrefix + "/account/positions"
	pathAccountBills        = apiPrefix + "/account/bills"

	pathMarketTickers          = apiPrefix + "/market/tickers"
	pathMarketTicker           = apiPrefix + "/market/ticker"
	pathMarketIndexTickers     = apiPrefix + "/market/index-tickers"
	pathMarketBooks            = apiPrefix + "/market/books"
	pathMarketCandles          = apiPrefix + "/market/candles"
	pathMarketHistoryCandles   = apiPrefix + "/market/history-candles"
	pathMarketIndexCandles     = apiPrefix + "/market/index-candles"
	pathMarketMarkPriceCandles = apiPrefix + "/market/mark-price-candles"
	pathMarketTrades           = apiPrefix + "/market/trades"
	pathMarketPlatformVolume   = apiPrefix + "/market/platform-24-volume"
	pathMarketOracle           = apiPrefix + "/market/oracle"

	pathTradeOrder         = apiPrefix + "/trade/order"
	pathTradeCancelOrder   = apiPrefix + "/trade/cancel-order"
	pathTradeOrdersPending = apiPrefix + "/trade/orders-pending"
)

const maxOrderBookDepth = 400

// Request is one fully built logical operation, independent of transport.
// Body, when present, is canonical JSON with stable key ordering: the exact
// bytes are part of the signed prehash.
type Request struct {
	Method string
	Path   string
	Query  QueryParams
	Body   []byte
}

// RequestPath returns the path including the encoded query string, exactly
// as it is sent and signed.
func (r *Request) RequestPath() string {
	if len(r.Query) == 0 {
		return r.Path
	}
	return r.Path + "?" + r.Query.Encode()
}

func getRequest(path string, query QueryParams) *Request {
	return &Request{Method: "GET", Path: path, Query: query}
}

// postRequest marshals params into the canonical JSON body. Map marshalling
// sorts keys, which keeps the body bytes deterministic for signing.
func postRequest(path string, params map[string]string) (*Request, error) {
	body, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}
	return &Request{Method: "POST", Path: path, Body: body}, nil
}

func invalidParam(field, reason string) error {
	return &ValidationError{Kind: KindInvalidParameter, Field: field, Reason: reason}
}

// NewClientOrderID generates a fresh client order id: 32 hex characters,
// inside the exchange's alphanumeric limit.
func NewClientOrderID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// NewAccountBalanceRequest builds the account balance operation. Currencies
// are optional; multiple currencies are comma-joined.
func NewAccountBalanceRequest(currencies []string) *Request {
	q := QueryParams{}
	q.Set("ccy", strings.Join(currencies, ","))
	return getRequest(pathAccountBalance, q)
}

// NewAccountPositionRiskRequest builds the account and position risk
// operation.
func NewAccountPositionRiskRequest(instType models.InstrumentType) *Request {
	q := QueryParams{}
	q.Set("instType", string(instType))
	return getRequest(pathAccountPositionRisk, q)
}

// NewPositionsRequest builds the positions operation. All filters are
// optional; at most 20 position ids may be requested at once.
func NewPositionsRequest(instType models.InstrumentType, instrumentID string, positionIDs []string) (*Request, error) {
	if len(positionIDs) > 20 {
		return nil, invalidParam("posId", "must not exceed 20 ids")
	}
	q := QueryParams{}
	q.Set("instType", string(instType))
	q.Set("instId", instrumentID)
	q.Set("posId", strings.Join(positionIDs, ","))
	return getRequest(pathAccountPositions, q), nil
}

// BillsQuery filters the account bills operation.
type BillsQuery struct {
	InstrumentType models.InstrumentType
	Currency       string
	MarginMode     models.TradeMode
	ContractType   string
	BillType       int
	BillSubType    int
	After          string
	Before         string
	Limit          int
}

// NewBillsRequest builds the account bills operation.
func NewBillsRequest(query BillsQuery) (*Request, error) {
	if query.Limit < 0 || query.Limit > 100 {
		return nil, invalidParam("limit", "must be between 0 and 100")
	}
	q := QueryParams{}
	q.Set("instType", string(query.InstrumentType))
	q.Set("ccy", query.Currency)
	q.Set("mgnMode", string(query.MarginMode))
	q.Set("ctType", query.ContractType)
	if query.BillType > 0 {
		q.Set("type", strconv.Itoa(query.BillType))
	}
	if query.BillSubType > 0 {
		q.Set("subType", strconv.Itoa(query.BillSubType))
	}
	q.Set("after", query.After)
	q.Set("before", query.Before)
	if query.Limit > 0 {
		q.Set("limit", strconv.Itoa(query.Limit))
	}
	return getRequest(pathAccountBills, q), nil
}

// NewTickersRequest builds the all-tickers operation. The instrument type
// defaults to SPOT; underlying only applies to derivatives.
func NewTickersRequest(instType models.InstrumentType, underlying string) *Request {
	if instType == "" {
		instType = models.InstrumentTypeSpot
	}
	q := QueryParams{}
	q.Set("instType", string(instType))
	q.Set("uly", underlying)
	return getRequest(pathMarketTickers, q)
}

// NewTickerRequest builds the single-ticker operation.
func NewTickerRequest(instrumentID string) (*Request, error) {
	if instrumentID == "" {
		return nil, invalidParam("instId", "is required")
	}
	q := QueryParams{}
	q.Set("instId", instrumentID)
	return getRequest(pathMarketTicker, q), nil
}

// NewIndexTickersRequest builds the index tickers operation. At least one of
// the quote currency and the instrument id must be given.
func NewIndexTickersRequest(quoteCurrency, instrumentID string) (*Request, error) {
	if quoteCurrency == "" && instrumentID == "" {
		return nil, invalidParam("quoteCcy/instId", "one of them is required")
	}
	q := QueryParams{}
	q.Set("quoteCcy", quoteCurrency)
	q.Set("instId", instrumentID)
	return getRequest(pathMarketIndexTickers, q), nil
}

// NewOrderBookRequest builds the order book operation. Depth 0 requests the
// exchange default; otherwise depth is the number of levels per side.
func NewOrderBookRequest(instrumentID string, depth int) (*Request, error) {
	if instrumentID == "" {
		return nil, invalidParam("instId", "is required")
	}
	if depth < 0 || depth > maxOrderBookDepth {
		return nil, invalidParam("sz", "must be between 0 and 400")
	}
	q := QueryParams{}
	q.Set("instId", instrumentID)
	if depth > 0 {
		q.Set("sz", strconv.Itoa(depth))
	}
	return getRequest(pathMarketBooks, q), nil
}

// CandlesQuery filters the candlestick operations. After and Before are
// millisecond timestamps for pagination.
type CandlesQuery struct {
	InstrumentID string
	Bar          string
	After        string
	Before       string
	Limit        int
}

func (c CandlesQuery) build(path string) (*Request, error) {
	if c.InstrumentID == "" {
		return nil, invalidParam("instId", "is required")
	}
	if c.Bar != "" {
		if _, ok := candleSizes[c.Bar]; !ok {
			return nil, invalidParam("bar", "is not a supported candle size")
		}
	}
	if c.Limit < 0 || c.Limit > 100 {
		return nil, invalidParam("limit", "must be between 0 and 100")
	}
	q := QueryParams{}
	q.Set("instId", c.InstrumentID)
	q.Set("bar", c.Bar)
	q.Set("after", c.After)
	q.Set("before", c.Before)
	if c.Limit > 0 {
		q.Set("limit", strconv.Itoa(c.Limit))
	}
	return getRequest(path, q), nil
}

// NewCandlesRequest builds the recent candlesticks operation.
func NewCandlesRequest(query CandlesQuery) (*Request, error) {
	return query.build(pathMarketCandles)
}

// NewCandlesHistoryRequest builds the historical candlesticks operation.
func NewCandlesHistoryRequest(query CandlesQuery) (*Request, error) {
	return query.build(pathMarketHistoryCandles)
}

// NewIndexCandlesRequest builds the index candlesticks operation.
func NewIndexCandlesRequest(query CandlesQuery) (*Request, error) {
	return query.build(pathMarketIndexCandles)
}

// NewMarkPriceCandlesRequest builds the mark price candlesticks operation.
func NewMarkPriceCandlesRequest(query CandlesQuery) (*Request, error) {
	return query.build(pathMarketMarkPriceCandles)
}

// NewTradesRequest builds the recent trades operation.
func NewTradesRequest(instrumentID string, limit int) (*Request, error) {
	if instrumentID == "" {
		return nil, invalidParam("instId", "is required")
	}
	if limit < 0 || limit > 100 {
		return nil, invalidParam("limit", "must be between 0 and 100")
	}
	q := QueryParams{}
	q.Set("instId", instrumentID)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return getRequest(pathMarketTrades, q), nil
}

// NewPlatformVolumeRequest builds the platform 24h volume operation.
func NewPlatformVolumeRequest() *Request {
	return getRequest(pathMarketPlatformVolume, nil)
}

// NewOracleRequest builds the open oracle operation.
func NewOracleRequest() *Request {
	return getRequest(pathMarketOracle, nil)
}

// PlaceOrderParams describes one order to place.
type PlaceOrderParams struct {
	InstrumentID  string
	TradeMode     models.TradeMode
	Side          models.Side
	OrderType     models.OrderType
	Size          decimal.Decimal
	Price         *decimal.Decimal
	ClientOrderID string
	Currency      string
}

// NewPlaceOrderRequest builds the place order operation.
func NewPlaceOrderRequest(params PlaceOrderParams) (*Request, error) {
	if params.InstrumentID == "" {
		return nil, invalidParam("instId", "is required")
	}
	if params.Side != models.SideBuy && params.Side != models.SideSell {
		return nil, invalidParam("side", "must be buy or sell")
	}
	switch params.TradeMode {
	case models.TradeModeCash, models.TradeModeCross, models.TradeModeIsolated:
	default:
		return nil, invalidParam("tdMode", "must be cash, cross or isolated")
	}
	switch params.OrderType {
	case models.OrderTypeMarket, models.OrderTypeLimit, models.OrderTypePostOnly, models.OrderTypeFok, models.OrderTypeIoc:
	default:
		return nil, invalidParam("ordType", "is not a supported order type")
	}
	if !params.Size.IsPositive() {
		return nil, invalidParam("sz", "must be greater than 0")
	}
	needsPrice := params.OrderType != models.OrderTypeMarket
	if needsPrice && params.Price == nil {
		return nil, invalidParam("px", "is required for non-market orders")
	}
	if params.Price != nil && !params.Price.IsPositive() {
		return nil, invalidParam("px", "must be greater than 0")
	}
	if len(params.ClientOrderID) > 32 {
		return nil, invalidParam("clOrdId", "must not exceed 32 characters")
	}

	body := map[string]string{
		"instId":  params.InstrumentID,
		"tdMode":  string(params.TradeMode),
		"side":    string(params.Side),
		"ordType": string(params.OrderType),
		"sz":      params.Size.String(),
	}
	if params.Price != nil {
		body["px"] = params.Price.String()
	}
	if params.ClientOrderID != "" {
		body["clOrdId"] = params.ClientOrderID
	}
	if params.Currency != "" {
		body["ccy"] = params.Currency
	}
	return postRequest(pathTradeOrder, body)
}

// NewCancelOrderRequest builds the cancel order operation. One of the order
// id and the client order id is required.
func NewCancelOrderRequest(instrumentID, orderID, clientOrderID string) (*Request, error) {
	if instrumentID == "" {
		return nil, invalidParam("instId", "is required")
	}
	if orderID == "" && clientOrderID == "" {
		return nil, invalidParam("ordId/clOrdId", "one of them is required")
	}
	body := map[string]string{"instId": instrumentID}
	if orderID != "" {
		body["ordId"] = orderID
	}
	if clientOrderID != "" {
		body["clOrdId"] = clientOrderID
	}
	return postRequest(pathTradeCancelOrder, body)
}

// NewOrderDetailsRequest builds the order details operation. One of the
// order id and the client order id is required.
func NewOrderDetailsRequest(instrumentID, orderID, clientOrderID string) (*Request, error) {
	if instrumentID == "" {
		return nil, invalidParam("instId", "is required")
	}
	if orderID == "" && clientOrderID == "" {
		return nil, invalidParam("ordId/clOrdId", "one of them is required")
	}
	q := QueryParams{}
	q.Set("instId", instrumentID)
	q.Set("ordId", orderID)
	q.Set("clOrdId", clientOrderID)
	return getRequest(pathTradeOrder, q), nil
}

// NewPendingOrdersRequest builds the pending orders operation. All filters
// are optional.
func NewPendingOrdersRequest(instType models.InstrumentType, instrumentID string, limit int) (*Request, error) {
	if limit < 0 || limit > 100 {
		return nil, invalidParam("limit", "must be between 0 and 100")
	}
	q := QueryParams{}
	q.Set("instType", string(instType))
	q.Set("instId", instrumentID)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return getRequest(pathTradeOrdersPending, q), nil
}
