package okx

import (
	"context"

	"okxflow/models"
)

// Client is the typed client. It delegates every call to the embedded raw
// API and maps each returned record into its domain type; it adds no retry
// or business logic. The raw API stays reachable for callers that want the
// unmapped records.
type Client struct {
	*API
}

// NewClient creates a typed client.
func NewClient(opts ...Option) *Client {
	return &Client{API: NewAPI(opts...)}
}

// GetAccountBalance retrieves the account balance snapshots.
func (c *Client) GetAccountBalance(ctx context.Context, currencies ...string) ([]*models.AccountBalance, error) {
	recs, err := c.API.GetAccountBalance(ctx, currencies...)
	if err != nil {
		return nil, err
	}
	out := make([]*models.AccountBalance, 0, len(recs))
	for _, rec := range recs {
		ab, err := models.AccountBalanceFromRecord(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, ab)
	}
	return out, nil
}

// GetPositions retrieves open positions.
func (c *Client) GetPositions(ctx context.Context, instType models.InstrumentType, instrumentID string, positionIDs []string) ([]*models.Position, error) {
	recs, err := c.API.GetPositions(ctx, instType, instrumentID, positionIDs)
	if err != nil {
		return nil, err
	}
	out := make([]*models.Position, 0, len(recs))
	for _, rec := range recs {
		p, err := models.PositionFromRecord(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// GetTickers retrieves the 24h summary for all instruments of a type.
func (c *Client) GetTickers(ctx context.Context, instType models.InstrumentType, underlying string) ([]*models.Ticker, error) {
	recs, err := c.API.GetTickers(ctx, instType, underlying)
	if err != nil {
		return nil, err
	}
	return mapTickers(recs)
}

// GetTicker retrieves the 24h summary for one instrument.
func (c *Client) GetTicker(ctx context.Context, instrumentID string) (*models.Ticker, error) {
	recs, err := c.API.GetTicker(ctx, instrumentID)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, &models.MappingError{Type: "Ticker", Field: "data", Reason: "is empty"}
	}
	return models.TickerFromRecord(recs[0])
}

// GetCandlesticks retrieves recent candlesticks.
func (c *Client) GetCandlesticks(ctx context.Context, query CandlesQuery) ([]*models.Candle, error) {
	rows, err := c.API.GetCandlesticks(ctx, query)
	if err != nil {
		return nil, err
	}
	return mapCandles(rows)
}

// GetCandlesticksHistory retrieves historical candlesticks.
func (c *Client) GetCandlesticksHistory(ctx context.Context, query CandlesQuery) ([]*models.Candle, error) {
	rows, err := c.API.GetCandlesticksHistory(ctx, query)
	if err != nil {
		return nil, err
	}
	return mapCandles(rows)
}

// GetIndexCandlesticks retrieves index candlesticks.
func (c *Client) GetIndexCandlesticks(ctx context.Context, query CandlesQuery) ([]*models.Candle, error) {
	rows, err := c.API.GetIndexCandlesticks(ctx, query)
	if err != nil {
		return nil, err
	}
	return mapCandles(rows)
}

// GetMarkPriceCandlesticks retrieves mark price candlesticks.
func (c *Client) GetMarkPriceCandlesticks(ctx context.Context, query CandlesQuery) ([]*models.Candle, error) {
	rows, err := c.API.GetMarkPriceCandlesticks(ctx, query)
	if err != nil {
		return nil, err
	}
	return mapCandles(rows)
}

// GetTrades retrieves the recent transactions of an instrument.
func (c *Client) GetTrades(ctx context.Context, instrumentID string, limit int) ([]*models.Trade, error) {
	recs, err := c.API.GetTrades(ctx, instrumentID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]*models.Trade, 0, len(recs))
	for _, rec := range recs {
		t, err := models.TradeFromRecord(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// PlaceOrder submits one order and returns its acknowledgement. A per-order
// rejection nested inside a successful envelope surfaces as an APIError.
func (c *Client) PlaceOrder(ctx context.Context, params PlaceOrderParams) (*models.Order, error) {
	recs, err := c.API.PlaceOrder(ctx, params)
	if err != nil {
		return nil, err
	}
	return firstOrder(recs)
}

// CancelOrder cancels one order and returns its acknowledgement.
func (c *Client) CancelOrder(ctx context.Context, instrumentID, orderID, clientOrderID string) (*models.Order, error) {
	recs, err := c.API.CancelOrder(ctx, instrumentID, orderID, clientOrderID)
	if err != nil {
		return nil, err
	}
	return firstOrder(recs)
}

// GetOrderDetails retrieves one order.
func (c *Client) GetOrderDetails(ctx context.Context, instrumentID, orderID, clientOrderID string) (*models.Order, error) {
	recs, err := c.API.GetOrderDetails(ctx, instrumentID, orderID, clientOrderID)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, &models.MappingError{Type: "Order", Field: "data", Reason: "is empty"}
	}
	return models.OrderFromRecord(recs[0])
}

// GetPendingOrders retrieves orders that are still open.
func (c *Client) GetPendingOrders(ctx context.Context, instType models.InstrumentType, instrumentID string, limit int) ([]*models.Order, error) {
	recs, err := c.API.GetPendingOrders(ctx, instType, instrumentID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]*models.Order, 0, len(recs))
	for _, rec := range recs {
		o, err := models.OrderFromRecord(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

func mapTickers(recs []models.Record) ([]*models.Ticker, error) {
	out := make([]*models.Ticker, 0, len(recs))
	for _, rec := range recs {
		t, err := models.TickerFromRecord(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func mapCandles(rows [][]string) ([]*models.Candle, error) {
	out := make([]*models.Candle, 0, len(rows))
	for _, row := range rows {
		c, err := models.CandleFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// firstOrder maps the first acknowledgement record of a trade call. The
// exchange nests per-order result codes inside the envelope; a non-zero
// sCode is a rejection even when the outer envelope succeeded.
func firstOrder(recs []models.Record) (*models.Order, error) {
	if len(recs) == 0 {
		return nil, &models.MappingError{Type: "Order", Field: "data", Reason: "is empty"}
	}
	rec := recs[0]
	if sCode, ok := rec.Str("sCode"); ok && sCode != CodeOK {
		msg, _ := rec.Str("sMsg")
		return nil, &APIError{Kind: classify(sCode, 0), Code: sCode, Message: msg}
	}
	return models.OrderFromRecord(rec)
}
