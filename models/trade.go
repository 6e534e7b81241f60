package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade is one executed transaction on an instrument. TradeID is the
// identity field.
type Trade struct {
	TradeID      string
	InstrumentID string
	Side         Side
	Price        *decimal.Decimal
	Size         *decimal.Decimal
	Timestamp    *time.Time
}

// TradeFromRecord maps one raw trade record into a Trade.
func TradeFromRecord(rec Record) (*Trade, error) {
	id, err := rec.identity("Trade", "tradeId")
	if err != nil {
		return nil, err
	}

	t := &Trade{
		TradeID:   id,
		Price:     rec.optDecimal("px"),
		Size:      rec.optDecimal("sz"),
		Timestamp: rec.optTime("ts"),
	}
	t.InstrumentID, _ = rec.Str("instId")
	if s, ok := rec.Str("side"); ok {
		t.Side = ParseSide(s)
	} else {
		t.Side = SideUnknown
	}
	return t, nil
}
