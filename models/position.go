package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Position is one open position. PositionID is the identity field.
type Position struct {
	PositionID     string
	InstrumentID   string
	InstrumentType InstrumentType
	MarginMode     TradeMode
	Size           *decimal.Decimal
	AveragePrice   *decimal.Decimal
	UnrealizedPnl  *decimal.Decimal
	Leverage       *decimal.Decimal
	CreatedAt      *time.Time
	UpdatedAt      *time.Time
}

// PositionFromRecord maps one raw position record into a Position.
func PositionFromRecord(rec Record) (*Position, error) {
	id, err := rec.identity("Position", "posId")
	if err != nil {
		return nil, err
	}

	p := &Position{
		PositionID:    id,
		Size:          rec.optDecimal("pos"),
		AveragePrice:  rec.optDecimal("avgPx"),
		UnrealizedPnl: rec.optDecimal("upl"),
		Leverage:      rec.optDecimal("lever"),
		CreatedAt:     rec.optTime("cTime"),
		UpdatedAt:     rec.optTime("uTime"),
	}
	p.InstrumentID, _ = rec.Str("instId")
	if s, ok := rec.Str("instType"); ok {
		p.InstrumentType = ParseInstrumentType(s)
	} else {
		p.InstrumentType = InstrumentTypeUnknown
	}
	if s, ok := rec.Str("mgnMode"); ok {
		p.MarginMode = ParseTradeMode(s)
	} else {
		p.MarginMode = TradeModeUnknown
	}
	return p, nil
}
