package service

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmenoli/finance-track-webapp-sub000/internal/currency"
	"github.com/rmenoli/finance-track-webapp-sub000/internal/model"
	"github.com/rmenoli/finance-track-webapp-sub000/internal/portfolio"
)

var hundred = decimal.NewFromInt(100)

// CreateSnapshot consolidates the other-asset balances and the portfolio's
// current value into an immutable net-worth record under the given rate.
// The inputs come from a single store transaction, so the snapshot never
// sees a half-updated ledger.
func (s *Service) CreateSnapshot(ctx context.Context, asOf time.Time, rate decimal.Decimal) (model.Snapshot, error) {
	verrs := ValidationErrors{}
	if asOf.IsZero() {
		verrs["snapshot_date"] = "is required"
	}
	if rate.LessThanOrEqual(decimal.Zero) {
		verrs["exchange_rate"] = "must be greater than zero"
	}
	if len(verrs) > 0 {
		return model.Snapshot{}, verrs
	}

	in, err := s.snapshots.Inputs(ctx)
	if err != nil {
		return model.Snapshot{}, err
	}

	summary, err := portfolio.BuildSummary(in.Transactions, in.PositionValues)
	if err != nil {
		return model.Snapshot{}, err
	}

	// The investments row stands in for the read-only asset type.
	rows := append(in.OtherAssets, model.OtherAsset{
		Type:     model.AssetInvestments,
		Currency: model.CurrencyEUR,
		Value:    summary.TotalCurrentPortfolioInvestedValue,
	})

	byCurrency := map[model.Currency]decimal.Decimal{}
	byAssetType := map[model.AssetType]decimal.Decimal{}
	total := decimal.Zero
	for _, row := range rows {
		converted, err := currency.ToEUR(row.Value, row.Currency, rate)
		if err != nil {
			return model.Snapshot{}, err
		}
		byCurrency[row.Currency] = byCurrency[row.Currency].Add(row.Value)
		byAssetType[row.Type] = byAssetType[row.Type].Add(converted)
		total = total.Add(converted)
	}

	snap := model.Snapshot{
		Date:          asOf,
		TotalValueEUR: total,
		ByCurrency:    currencyTotals(byCurrency),
		ByAssetType:   assetTypeTotals(byAssetType),
		ExchangeRate:  rate,
	}

	if err := s.snapshots.Insert(ctx, snap); err != nil {
		return model.Snapshot{}, mapRepoErr(err)
	}
	return snap, nil
}

// QuerySnapshots lists snapshots in the range ascending and derives the
// change from the oldest to the latest. Deltas are nil for an empty result
// and zero for a single snapshot; there is never a division error.
func (s *Service) QuerySnapshots(ctx context.Context, from, to *time.Time) (model.SnapshotRange, error) {
	snaps, err := s.snapshots.List(ctx, from, to)
	if err != nil {
		return model.SnapshotRange{}, err
	}

	res := model.SnapshotRange{Snapshots: snaps}
	if len(snaps) == 0 {
		return res, nil
	}

	oldest := snaps[0]
	latest := snaps[len(snaps)-1]

	abs := latest.TotalValueEUR.Sub(oldest.TotalValueEUR)
	pct := decimal.Zero
	if !oldest.TotalValueEUR.IsZero() {
		pct = abs.Div(oldest.TotalValueEUR).Mul(hundred)
	}

	months := monthsBetween(oldest.Date, latest.Date)
	if months < 1 {
		months = 1
	}
	avg := abs.Div(decimal.NewFromInt(int64(months)))

	res.AbsoluteChangeFromOldest = &abs
	res.PercentageChangeFromOldest = &pct
	res.AverageMonthlyIncrement = &avg
	return res, nil
}

func (s *Service) DeleteSnapshot(ctx context.Context, ts time.Time) error {
	return mapRepoErr(s.snapshots.Delete(ctx, ts))
}

func monthsBetween(a, b time.Time) int {
	months := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	if months < 0 {
		return 0
	}
	return months
}

func currencyTotals(totals map[model.Currency]decimal.Decimal) []model.CurrencyTotal {
	currencies := make([]string, 0, len(totals))
	for c := range totals {
		currencies = append(currencies, string(c))
	}
	sort.Strings(currencies)

	res := make([]model.CurrencyTotal, 0, len(currencies))
	for _, c := range currencies {
		res = append(res, model.CurrencyTotal{Currency: model.Currency(c), TotalValue: totals[model.Currency(c)]})
	}
	return res
}

func assetTypeTotals(totals map[model.AssetType]decimal.Decimal) []model.AssetTypeTotal {
	types := make([]string, 0, len(totals))
	for t := range totals {
		types = append(types, string(t))
	}
	sort.Strings(types)

	res := make([]model.AssetTypeTotal, 0, len(types))
	for _, t := range types {
		res = append(res, model.AssetTypeTotal{AssetType: model.AssetType(t), TotalValueEUR: totals[model.AssetType(t)]})
	}
	return res
}
