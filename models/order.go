package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the typed projection of one order record. OrderID is the identity
// field; everything else is reported by the exchange as available. Numeric
// fields are nil when the exchange did not report them.
type Order struct {
	OrderID       string
	ClientOrderID string
	InstrumentID  string
	Side          Side
	Type          OrderType
	State         OrderState
	TradeMode     TradeMode
	Currency      string
	Price         *decimal.Decimal
	Size          *decimal.Decimal
	AveragePrice  *decimal.Decimal
	FilledSize    *decimal.Decimal
	Fee           *decimal.Decimal
	CreatedAt     *time.Time
	UpdatedAt     *time.Time
}

// OrderFromRecord maps one raw order record into an Order. The record must
// carry an order id; all other fields are optional.
func OrderFromRecord(rec Record) (*Order, error) {
	id, err := rec.identity("Order", "ordId")
	if err != nil {
		return nil, err
	}

	o := &Order{
		OrderID:      id,
		Price:        rec.optDecimal("px"),
		Size:         rec.optDecimal("sz"),
		AveragePrice: rec.optDecimal("avgPx"),
		FilledSize:   rec.optDecimal("accFillSz"),
		Fee:          rec.optDecimal("fee"),
		CreatedAt:    rec.optTime("cTime"),
		UpdatedAt:    rec.optTime("uTime"),
	}
	o.ClientOrderID, _ = rec.Str("clOrdId")
	o.InstrumentID, _ = rec.Str("instId")
	o.Currency, _ = rec.Str("ccy")
	if s, ok := rec.Str("side"); ok {
		o.Side = ParseSide(s)
	} else {
		o.Side = SideUnknown
	}
	if s, ok := rec.Str("ordType"); ok {
		o.Type = ParseOrderType(s)
	} else {
		o.Type = OrderTypeUnknown
	}
	if s, ok := rec.Str("state"); ok {
		o.State = ParseOrderState(s)
	} else {
		o.State = OrderStateUnknown
	}
	if s, ok := rec.Str("tdMode"); ok {
		o.TradeMode = ParseTradeMode(s)
	} else {
		o.TradeMode = TradeModeUnknown
	}
	return o, nil
}
