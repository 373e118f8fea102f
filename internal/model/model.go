package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionBuy  TransactionType = "BUY"
	TransactionSell TransactionType = "SELL"
)

func (t TransactionType) Valid() bool {
	return t == TransactionBuy || t == TransactionSell
}

// Transaction is a single BUY or SELL row in the ledger. Seq is assigned by
// the store on insert and pins same-day ordering during replay.
type Transaction struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	Seq          int64           `db:"seq" json:"-"`
	Date         time.Time       `db:"trade_date" json:"date"`
	Identifier   string          `db:"identifier" json:"identifier"`
	Broker       string          `db:"broker" json:"broker"`
	Type         TransactionType `db:"tx_type" json:"type"`
	Units        decimal.Decimal `db:"units" json:"units"`
	PricePerUnit decimal.Decimal `db:"price_per_unit" json:"price_per_unit"`
	Fee          decimal.Decimal `db:"fee" json:"fee"`
}

// Notional is units * price per unit, fees excluded.
func (t Transaction) Notional() decimal.Decimal {
	return t.Units.Mul(t.PricePerUnit)
}

// TransactionInput carries the user-supplied fields of a transaction before
// an id and seq have been assigned.
type TransactionInput struct {
	Date         time.Time       `json:"date"`
	Identifier   string          `json:"identifier"`
	Broker       string          `json:"broker"`
	Type         TransactionType `json:"type"`
	Units        decimal.Decimal `json:"units"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	Fee          decimal.Decimal `json:"fee"`
}

// TransactionFilter narrows and orders a ledger listing.
type TransactionFilter struct {
	Identifier string
	Broker     string
	Type       TransactionType
	From       *time.Time
	To         *time.Time
	SortBy     string
	SortDesc   bool
}

// Holding is the open position derived for one identifier: net units with
// their weighted-average cost basis.
type Holding struct {
	Identifier         string          `json:"identifier"`
	Units              decimal.Decimal `json:"units"`
	AverageCostPerUnit decimal.Decimal `json:"average_cost_per_unit"`
	TotalCost          decimal.Decimal `json:"total_cost"`
}

// ClosedPosition is the realized-gain record for an identifier whose net
// units have returned to zero.
type ClosedPosition struct {
	Identifier               string          `json:"identifier"`
	TotalCostWithoutFees     decimal.Decimal `json:"total_cost_without_fees"`
	TotalGainsWithoutFees    decimal.Decimal `json:"total_gains_without_fees"`
	TotalFees                decimal.Decimal `json:"total_fees"`
	RealizedPLWithoutFees    decimal.Decimal `json:"realized_pl_without_fees"`
	RealizedPLWithoutFeesPct decimal.Decimal `json:"realized_pl_without_fees_pct"`
	RealizedPLWithFees       decimal.Decimal `json:"realized_pl_with_fees"`
	RealizedPLWithFeesPct    decimal.Decimal `json:"realized_pl_with_fees_pct"`
}

// PositionValue is the latest manually entered market value for one
// identifier. One row per identifier, replaced on every upsert.
type PositionValue struct {
	Identifier   string          `db:"identifier" json:"identifier"`
	CurrentValue decimal.Decimal `db:"current_value" json:"current_value"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// HoldingPerformance pairs an open holding with its manual valuation.
// HasValue is false when no value was ever entered; such positions count as
// zero and stay out of the current-value and P/L totals.
type HoldingPerformance struct {
	Identifier         string          `json:"identifier"`
	Units              decimal.Decimal `json:"units"`
	AverageCostPerUnit decimal.Decimal `json:"average_cost_per_unit"`
	TotalCost          decimal.Decimal `json:"total_cost"`
	CurrentValue       decimal.Decimal `json:"current_value"`
	AbsolutePL         decimal.Decimal `json:"absolute_pl"`
	PercentagePL       decimal.Decimal `json:"percentage_pl"`
	HasValue           bool            `json:"has_value"`
}

// PortfolioSummary is the consolidated read model over the whole ledger.
type PortfolioSummary struct {
	Positions                          []HoldingPerformance `json:"positions"`
	ClosedPositions                    []ClosedPosition     `json:"closed_positions"`
	TotalInvested                      decimal.Decimal      `json:"total_invested"`
	TotalFees                          decimal.Decimal      `json:"total_fees"`
	TotalWithdrawn                     decimal.Decimal      `json:"total_withdrawn"`
	TotalCurrentPortfolioInvestedValue decimal.Decimal      `json:"total_current_portfolio_invested_value"`
	TotalProfitLoss                    decimal.Decimal      `json:"total_profit_loss"`
}
