package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyCZK Currency = "CZK"
)

func (c Currency) Valid() bool {
	return c == CurrencyEUR || c == CurrencyCZK
}

type AssetType string

const (
	AssetCashCZK     AssetType = "cash_czk"
	AssetCashEUR     AssetType = "cash_eur"
	AssetCrypto      AssetType = "crypto"
	AssetPensionFund AssetType = "pension_fund"
	AssetCD          AssetType = "cd"

	// AssetInvestments is a read projection of the portfolio's current
	// value; it is never stored and writes to it are rejected.
	AssetInvestments AssetType = "investments"
)

func (a AssetType) Valid() bool {
	switch a {
	case AssetCashCZK, AssetCashEUR, AssetCrypto, AssetPensionFund, AssetCD, AssetInvestments:
		return true
	}
	return false
}

// PerAccount reports whether the type keeps one row per account (detail
// holds the account name) or a single row with an empty detail.
func (a AssetType) PerAccount() bool {
	return a == AssetCashCZK || a == AssetCashEUR
}

func (a AssetType) ReadOnly() bool {
	return a == AssetInvestments
}

// OtherAsset is a non-tradable balance keyed by (type, detail).
type OtherAsset struct {
	Type      AssetType       `db:"asset_type" json:"asset_type"`
	Detail    string          `db:"asset_detail" json:"asset_detail"`
	Currency  Currency        `db:"currency" json:"currency"`
	Value     decimal.Decimal `db:"value" json:"value"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

type CurrencyTotal struct {
	Currency   Currency        `json:"currency"`
	TotalValue decimal.Decimal `json:"total_value"`
}

type AssetTypeTotal struct {
	AssetType     AssetType       `json:"asset_type"`
	TotalValueEUR decimal.Decimal `json:"total_value_eur"`
}

// Snapshot is an immutable point-in-time net-worth record. It keeps the
// exchange rate it was built with and never recomputes under a later rate.
type Snapshot struct {
	Date          time.Time        `json:"snapshot_date"`
	TotalValueEUR decimal.Decimal  `json:"total_value_eur"`
	ByCurrency    []CurrencyTotal  `json:"by_currency"`
	ByAssetType   []AssetTypeTotal `json:"by_asset_type"`
	ExchangeRate  decimal.Decimal  `json:"exchange_rate_used"`
}

// SnapshotRange is a date-range query result. Delta fields are nil for an
// empty result set and zero for a single snapshot.
type SnapshotRange struct {
	Snapshots                  []Snapshot       `json:"snapshots"`
	AbsoluteChangeFromOldest   *decimal.Decimal `json:"absolute_change_from_oldest"`
	PercentageChangeFromOldest *decimal.Decimal `json:"percentage_change_from_oldest"`
	AverageMonthlyIncrement    *decimal.Decimal `json:"average_monthly_increment"`
}

// SnapshotInputs is the consistent view of ledger and asset state read in a
// single store transaction when a snapshot is created.
type SnapshotInputs struct {
	Transactions   []Transaction
	PositionValues []PositionValue
	OtherAssets    []OtherAsset
}

// ImportRowResult reports the outcome of one bulk-import row. Rows are
// independent; a failed row never blocks the rest.
type ImportRowResult struct {
	Row           int               `json:"row"`
	Success       bool              `json:"success"`
	TransactionID string            `json:"transaction_id,omitempty"`
	Errors        map[string]string `json:"errors,omitempty"`
}

type ImportReport struct {
	Total     int               `json:"total"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
	Rows      []ImportRowResult `json:"rows"`
}
