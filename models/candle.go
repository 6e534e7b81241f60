package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// The candlestick endpoints return positional string arrays rather than
// objects: [ts, open, high, low, close, volume, volumeInCurrency]. The
// timestamp is the millisecond Unix epoch of the period open.
const candleRowLen = 7

// Candle is one candlestick period. Timestamp is the identity field.
type Candle struct {
	Timestamp        time.Time
	Open             *decimal.Decimal
	High             *decimal.Decimal
	Low              *decimal.Decimal
	Close            *decimal.Decimal
	Volume           *decimal.Decimal
	VolumeInCurrency *decimal.Decimal
}

// CandleFromRow maps one raw candlestick row into a Candle. The row must be
// at least seven columns with a parsable timestamp.
func CandleFromRow(row []string) (*Candle, error) {
	if len(row) < candleRowLen {
		return nil, &MappingError{Type: "Candle", Field: "row", Reason: "has too few columns"}
	}
	ts := parseMillis(row[0])
	if ts == nil {
		return nil, &MappingError{Type: "Candle", Field: "ts", Reason: "is not a millisecond timestamp"}
	}
	return &Candle{
		Timestamp:        *ts,
		Open:             parseDecimal(row[1]),
		High:             parseDecimal(row[2]),
		Low:              parseDecimal(row[3]),
		Close:            parseDecimal(row[4]),
		Volume:           parseDecimal(row[5]),
		VolumeInCurrency: parseDecimal(row[6]),
	}, nil
}

// Change returns close minus open, or nil when either side is unreported.
func (c *Candle) Change() *decimal.Decimal {
	if c.Open == nil || c.Close == nil {
		return nil
	}
	d := c.Close.Sub(*c.Open)
	return &d
}

// Spread returns high minus low, or nil when either side is unreported.
func (c *Candle) Spread() *decimal.Decimal {
	if c.High == nil || c.Low == nil {
		return nil
	}
	d := c.High.Sub(*c.Low)
	return &d
}
