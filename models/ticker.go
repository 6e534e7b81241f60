package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ticker is a 24h market summary for one instrument. InstrumentID is the
// identity field.
type Ticker struct {
	InstrumentID     string
	InstrumentType   InstrumentType
	Last             *decimal.Decimal
	LastSize         *decimal.Decimal
	AskPrice         *decimal.Decimal
	AskSize          *decimal.Decimal
	BidPrice         *decimal.Decimal
	BidSize          *decimal.Decimal
	Open24h          *decimal.Decimal
	High24h          *decimal.Decimal
	Low24h           *decimal.Decimal
	Volume24h        *decimal.Decimal
	VolumeCurrency24 *decimal.Decimal
	Timestamp        *time.Time
}

// TickerFromRecord maps one raw ticker record into a Ticker.
func TickerFromRecord(rec Record) (*Ticker, error) {
	id, err := rec.identity("Ticker", "instId")
	if err != nil {
		return nil, err
	}

	t := &Ticker{
		InstrumentID:     id,
		Last:             rec.optDecimal("last"),
		LastSize:         rec.optDecimal("lastSz"),
		AskPrice:         rec.optDecimal("askPx"),
		AskSize:          rec.optDecimal("askSz"),
		BidPrice:         rec.optDecimal("bidPx"),
		BidSize:          rec.optDecimal("bidSz"),
		Open24h:          rec.optDecimal("open24h"),
		High24h:          rec.optDecimal("high24h"),
		Low24h:           rec.optDecimal("low24h"),
		Volume24h:        rec.optDecimal("vol24h"),
		VolumeCurrency24: rec.optDecimal("volCcy24h"),
		Timestamp:        rec.optTime("ts"),
	}
	if s, ok := rec.Str("instType"); ok {
		t.InstrumentType = ParseInstrumentType(s)
	} else {
		t.InstrumentType = InstrumentTypeUnknown
	}
	return t, nil
}
