package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance is the per-currency balance detail of an account. Currency is the
// identity field.
type Balance struct {
	Currency  string
	Equity    *decimal.Decimal
	Available *decimal.Decimal
	Cash      *decimal.Decimal
	Frozen    *decimal.Decimal
	UpdatedAt *time.Time
}

// AccountBalance is one account balance snapshot: the account level totals
// plus the per-currency details the exchange nests under "details".
type AccountBalance struct {
	TotalEquity *decimal.Decimal
	UpdatedAt   *time.Time
	Details     []*Balance
}

// BalanceFromRecord maps one currency detail record into a Balance.
func BalanceFromRecord(rec Record) (*Balance, error) {
	ccy, err := rec.identity("Balance", "ccy")
	if err != nil {
		return nil, err
	}
	return &Balance{
		Currency:  ccy,
		Equity:    rec.optDecimal("eq"),
		Available: rec.optDecimal("availBal"),
		Cash:      rec.optDecimal("cashBal"),
		Frozen:    rec.optDecimal("frozenBal"),
		UpdatedAt: rec.optTime("uTime"),
	}, nil
}

// AccountBalanceFromRecord maps one account balance record. The nested
// "details" array identifies the record; a snapshot without it is useless.
func AccountBalanceFromRecord(rec Record) (*AccountBalance, error) {
	raw, ok := rec["details"]
	if !ok {
		return nil, &MappingError{Type: "AccountBalance", Field: "details", Reason: "is missing"}
	}
	entries, ok := raw.([]interface{})
	if !ok {
		return nil, &MappingError{Type: "AccountBalance", Field: "details", Reason: "is not a list"}
	}

	ab := &AccountBalance{
		TotalEquity: rec.optDecimal("totalEq"),
		UpdatedAt:   rec.optTime("uTime"),
		Details:     make([]*Balance, 0, len(entries)),
	}
	for _, entry := range entries {
		m, ok := entry.(map[string]interface{})
		if !ok {
			return nil, &MappingError{Type: "AccountBalance", Field: "details", Reason: "holds a non-object entry"}
		}
		b, err := BalanceFromRecord(Record(m))
		if err != nil {
			return nil, err
		}
		ab.Details = append(ab.Details, b)
	}
	return ab, nil
}
