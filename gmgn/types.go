// =================================
// File: gmgn/types.go
// =================================
package gmgn

import (
	"fmt"
	"net/url"
)

// Chain identifies a blockchain network supported by the ranking API.
type Chain string

const (
	ChainEthereum Chain = "eth"
	ChainBSC      Chain = "bsc"
	ChainBase     Chain = "base"
	ChainSolana   Chain = "sol"
	ChainTron     Chain = "tron"
)

var validChains = map[Chain]struct{}{
	ChainEthereum: {},
	ChainBSC:      {},
	ChainBase:     {},
	ChainSolana:   {},
	ChainTron:     {},
}

func (c Chain) Valid() bool {
	_, ok := validChains[c]
	return ok
}

// TimePeriod selects the ranking window.
type TimePeriod string

const (
	PeriodOneMinute   TimePeriod = "1m"
	PeriodFiveMinutes TimePeriod = "5m"
	PeriodOneHour     TimePeriod = "1h"
	PeriodSixHours    TimePeriod = "6h"
	PeriodDay         TimePeriod = "24h"
)

var validPeriods = map[TimePeriod]struct{}{
	PeriodOneMinute:   {},
	PeriodFiveMinutes: {},
	PeriodOneHour:     {},
	PeriodSixHours:    {},
	PeriodDay:         {},
}

func (p TimePeriod) Valid() bool {
	_, ok := validPeriods[p]
	return ok
}

// SortCriteria selects the server-side ordering of the ranking.
type SortCriteria string

const (
	SortOpenTimestamp SortCriteria = "open_timestamp"
	SortLiquidity     SortCriteria = "liquidity"
	SortMarketCap     SortCriteria = "marketcap"
	SortBluechipOwner SortCriteria = "bluechip_owner_percentage"
	SortHolderCount   SortCriteria = "holder_count"
	SortSmartMoney    SortCriteria = "smartmoney"
	SortSwaps         SortCriteria = "swaps"
	SortVolume        SortCriteria = "volume"
	SortPrice         SortCriteria = "price"
	SortChange1m      SortCriteria = "change1m"
	SortChange5m      SortCriteria = "change5m"
	SortChange1h      SortCriteria = "change1h"
)

var validCriteria = map[SortCriteria]struct{}{
	SortOpenTimestamp: {},
	SortLiquidity:     {},
	SortMarketCap:     {},
	SortBluechipOwner: {},
	SortHolderCount:   {},
	SortSmartMoney:    {},
	SortSwaps:         {},
	SortVolume:        {},
	SortPrice:         {},
	SortChange1m:      {},
	SortChange5m:      {},
	SortChange1h:      {},
}

func (c SortCriteria) Valid() bool {
	_, ok := validCriteria[c]
	return ok
}

// SortDirection is the ranking order.
type SortDirection string

const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

func (d SortDirection) Valid() bool {
	return d == SortAscending || d == SortDescending
}

// QueryParameters describes one ranking request. Treat values as immutable
// once constructed; the safety toggles map to server-side filters[] entries.
type QueryParameters struct {
	Chain     Chain
	Period    TimePeriod
	Criteria  SortCriteria
	Direction SortDirection

	NotHoneypot bool
	Verified    bool
	Renounced   bool
}

// Validate rejects tags outside the closed sets before any request is built.
func (p QueryParameters) Validate() error {
	if !p.Chain.Valid() {
		return fmt.Errorf("unknown chain tag: %q", p.Chain)
	}
	if !p.Period.Valid() {
		return fmt.Errorf("unknown time period tag: %q", p.Period)
	}
	if !p.Criteria.Valid() {
		return fmt.Errorf("unknown sort criteria tag: %q", p.Criteria)
	}
	if p.Direction != "" && !p.Direction.Valid() {
		return fmt.Errorf("unknown sort direction tag: %q", p.Direction)
	}
	return nil
}

// Values serializes the parameters for the rank endpoint. Safety toggles are
// emitted as repeated filters[] entries, the way the web client sends them.
func (p QueryParameters) Values() url.Values {
	direction := p.Direction
	if direction == "" {
		direction = SortDescending
	}

	values := url.Values{}
	values.Set("orderby", string(p.Criteria))
	values.Set("direction", string(direction))

	if p.NotHoneypot {
		values.Add("filters[]", "not_honeypot")
	}
	if p.Verified {
		values.Add("filters[]", "verified")
	}
	if p.Renounced {
		values.Add("filters[]", "renounced")
	}
	return values
}

// NewVolumeQuery builds the standard volume ranking query.
func NewVolumeQuery(chain Chain, period TimePeriod) QueryParameters {
	return QueryParameters{
		Chain:       chain,
		Period:      period,
		Criteria:    SortVolume,
		Direction:   SortDescending,
		NotHoneypot: true,
	}
}

// NewGainersQuery builds a price-change ranking query, picking the change
// criteria that matches the requested window.
func NewGainersQuery(chain Chain, period TimePeriod) QueryParameters {
	return QueryParameters{
		Chain:       chain,
		Period:      period,
		Criteria:    gainersCriteria(period),
		Direction:   SortDescending,
		NotHoneypot: true,
	}
}

// NewSafeQuery builds a query with every server-side safety filter enabled.
func NewSafeQuery(chain Chain, criteria SortCriteria) QueryParameters {
	return QueryParameters{
		Chain:       chain,
		Period:      PeriodDay,
		Criteria:    criteria,
		Direction:   SortDescending,
		NotHoneypot: true,
		Verified:    true,
		Renounced:   true,
	}
}

func gainersCriteria(period TimePeriod) SortCriteria {
	switch period {
	case PeriodOneMinute:
		return SortChange1m
	case PeriodFiveMinutes:
		return SortChange5m
	default:
		return SortChange1h
	}
}
