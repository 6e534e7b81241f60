package okx

import (
	"context"

	"okxflow/models"
)

// WebsocketClient layers typed streams over WebsocketAPI.
type WebsocketClient struct {
	*WebsocketAPI
}

// NewWebsocketClient creates a typed WebSocket client.
func NewWebsocketClient(opts ...WsOption) *WebsocketClient {
	return &WebsocketClient{WebsocketAPI: NewWebsocketAPI(opts...)}
}

// TradeStream yields mapped trades from one trade channel subscription.
type TradeStream struct {
	sub     *Subscription
	pending []*models.Trade
}

// Trades subscribes to the trade channel and returns a typed stream.
func (c *WebsocketClient) Trades(ctx context.Context, instrumentID string) (*TradeStream, error) {
	sub, err := c.WebsocketAPI.Trades(ctx, instrumentID)
	if err != nil {
		return nil, err
	}
	return &TradeStream{sub: sub}, nil
}

// Next blocks for the next trade. Records that fail to map are returned as
// mapping errors rather than dropped.
func (s *TradeStream) Next() (*models.Trade, error) {
	for len(s.pending) == 0 {
		records, err := s.sub.ReadRecords()
		if err != nil {
			return nil, err
		}
		for _, rec := range records {
			trade, err := models.TradeFromRecord(rec)
			if err != nil {
				return nil, err
			}
			s.pending = append(s.pending, trade)
		}
	}
	trade := s.pending[0]
	s.pending = s.pending[1:]
	return trade, nil
}

// Close releases the underlying subscription.
func (s *TradeStream) Close() error {
	return s.sub.Close()
}
