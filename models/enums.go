package models

import "strings"

// Enumerations reported by the exchange. The exchange adds values over time,
// so every parser maps unrecognised input to an explicit Unknown variant
// instead of failing.

// Side is the taker side of a trade or the direction of an order.
type Side string

const (
	SideBuy     Side = "buy"
	SideSell    Side = "sell"
	SideUnknown Side = "unknown"
)

func ParseSide(s string) Side {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy":
		return SideBuy
	case "sell":
		return SideSell
	default:
		return SideUnknown
	}
}

// OrderState is the lifecycle state of an order.
type OrderState string

const (
	OrderStateLive            OrderState = "live"
	OrderStatePartiallyFilled OrderState = "partially_filled"
	OrderStateFilled          OrderState = "filled"
	OrderStateCanceled        OrderState = "canceled"
	OrderStateUnknown         OrderState = "unknown"
)

func ParseOrderState(s string) OrderState {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "live":
		return OrderStateLive
	case "partially_filled":
		return OrderStatePartiallyFilled
	case "filled":
		return OrderStateFilled
	case "canceled":
		return OrderStateCanceled
	default:
		return OrderStateUnknown
	}
}

// OrderType is the execution type of an order.
type OrderType string

const (
	OrderTypeMarket   OrderType = "market"
	OrderTypeLimit    OrderType = "limit"
	OrderTypePostOnly OrderType = "post_only"
	OrderTypeFok      OrderType = "fok"
	OrderTypeIoc      OrderType = "ioc"
	OrderTypeUnknown  OrderType = "unknown"
)

func ParseOrderType(s string) OrderType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "market":
		return OrderTypeMarket
	case "limit":
		return OrderTypeLimit
	case "post_only":
		return OrderTypePostOnly
	case "fok":
		return OrderTypeFok
	case "ioc":
		return OrderTypeIoc
	default:
		return OrderTypeUnknown
	}
}

// InstrumentType partitions the exchange's product catalogue.
type InstrumentType string

const (
	InstrumentTypeSpot    InstrumentType = "SPOT"
	InstrumentTypeMargin  InstrumentType = "MARGIN"
	InstrumentTypeSwap    InstrumentType = "SWAP"
	InstrumentTypeFutures InstrumentType = "FUTURES"
	InstrumentTypeOption  InstrumentType = "OPTION"
	InstrumentTypeUnknown InstrumentType = "UNKNOWN"
)

func ParseInstrumentType(s string) InstrumentType {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SPOT":
		return InstrumentTypeSpot
	case "MARGIN":
		return InstrumentTypeMargin
	case "SWAP":
		return InstrumentTypeSwap
	case "FUTURES":
		return InstrumentTypeFutures
	case "OPTION":
		return InstrumentTypeOption
	default:
		return InstrumentTypeUnknown
	}
}

// TradeMode selects how an order is margined.
type TradeMode string

const (
	TradeModeCash     TradeMode = "cash"
	TradeModeCross    TradeMode = "cross"
	TradeModeIsolated TradeMode = "isolated"
	TradeModeUnknown  TradeMode = "unknown"
)

func ParseTradeMode(s string) TradeMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cash":
		return TradeModeCash
	case "cross":
		return TradeModeCross
	case "isolated":
		return TradeModeIsolated
	default:
		return TradeModeUnknown
	}
}
