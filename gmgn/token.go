// =================================
// File: gmgn/token.go
// =================================
package gmgn

import (
	"strconv"
	"time"
)

// Token is an immutable snapshot of a tradable asset at fetch time. Numeric
// fields default to zero after parsing, so downstream filters never branch
// on missing values.
type Token struct {
	ID      int64
	Chain   string
	Address string
	Symbol  string
	Logo    string

	Price                float64
	PriceChangePercent   float64 // 24h window
	PriceChangePercent1m float64
	PriceChangePercent5m float64
	PriceChangePercent1h float64

	Volume    float64
	Liquidity float64
	MarketCap float64

	HolderCount int64
	Swaps       int64
	Buys        int64
	Sells       int64
	TotalSupply int64
	SniperCount int64

	SmartBuy24h  int64
	SmartSell24h int64

	IsHoneypot   bool
	IsOpenSource bool
	Renounced    bool

	BluechipOwnerPercentage float64

	BuyTax  string
	SellTax string

	// OpenTimestamp is the pool creation time in unix seconds; zero means
	// the API did not report one.
	OpenTimestamp int64
}

// HasAge reports whether the creation time is known.
func (t Token) HasAge() bool {
	return t.OpenTimestamp > 0
}

// AgeDays returns the token age in days relative to now, or zero when the
// creation time is unknown.
func (t Token) AgeDays(now time.Time) float64 {
	if !t.HasAge() {
		return 0
	}
	return now.Sub(time.Unix(t.OpenTimestamp, 0)).Hours() / 24
}

// tokenFromEntry строит Token из сырой записи ранкинга. Каждое поле
// извлекается по ключу с объявленным значением по умолчанию; значения
// неверного типа и нечисловые строки приводятся к умолчанию, а не к ошибке.
func tokenFromEntry(entry map[string]any) Token {
	return Token{
		ID:      asInt64(entry["id"]),
		Chain:   asString(entry["chain"]),
		Address: asString(entry["address"]),
		Symbol:  asString(entry["symbol"]),
		Logo:    asString(entry["logo"]),

		Price:                asFloat(entry["price"]),
		PriceChangePercent:   asFloat(entry["price_change_percent"]),
		PriceChangePercent1m: asFloat(entry["price_change_percent1m"]),
		PriceChangePercent5m: asFloat(entry["price_change_percent5m"]),
		PriceChangePercent1h: asFloat(entry["price_change_percent1h"]),

		Volume:    asFloat(entry["volume"]),
		Liquidity: asFloat(entry["liquidity"]),
		MarketCap: asFloat(entry["market_cap"]),

		HolderCount: asInt64(entry["holder_count"]),
		Swaps:       asInt64(entry["swaps"]),
		Buys:        asInt64(entry["buys"]),
		Sells:       asInt64(entry["sells"]),
		TotalSupply: asInt64(entry["total_supply"]),
		SniperCount: asInt64(entry["sniper_count"]),

		SmartBuy24h:  asInt64(entry["smart_buy_24h"]),
		SmartSell24h: asInt64(entry["smart_sell_24h"]),

		IsHoneypot:   asBool(entry["is_honeypot"]),
		IsOpenSource: asBool(entry["is_open_source"]),
		Renounced:    asBool(entry["renounced"]),

		BluechipOwnerPercentage: asFloat(entry["bluechip_owner_percentage"]),

		BuyTax:  asString(entry["buy_tax"]),
		SellTax: asString(entry["sell_tax"]),

		OpenTimestamp: asInt64(entry["open_timestamp"]),
	}
}

func asFloat(v any) float64 {
	switch value := v.(type) {
	case float64:
		return value
	case string:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0
		}
		return f
	case bool:
		if value {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func asInt64(v any) int64 {
	switch value := v.(type) {
	case float64:
		return int64(value)
	case string:
		// Whole numbers first, then the float path for "3.0" style values.
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0
		}
		return int64(f)
	default:
		return 0
	}
}

func asString(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}

// asBool принимает флаги в том виде, в котором их отдает API: число 0/1,
// bool или числовая строка.
func asBool(v any) bool {
	switch value := v.(type) {
	case bool:
		return value
	case float64:
		return value != 0
	case string:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return false
		}
		return f != 0
	default:
		return false
	}
}
