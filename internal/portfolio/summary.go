package portfolio

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/rmenoli/finance-track-webapp-sub000/internal/model"
)

// GroupByIdentifier buckets transactions per identifier and returns the
// identifiers in alphabetical order for deterministic output.
func GroupByIdentifier(txs []model.Transaction) (map[string][]model.Transaction, []string) {
	grouped := make(map[string][]model.Transaction)
	for _, t := range txs {
		grouped[t.Identifier] = append(grouped[t.Identifier], t)
	}
	identifiers := make([]string, 0, len(grouped))
	for id := range grouped {
		identifiers = append(identifiers, id)
	}
	sort.Strings(identifiers)
	return grouped, identifiers
}

// Holdings derives every open holding from the full ledger.
func Holdings(txs []model.Transaction) ([]model.Holding, error) {
	grouped, identifiers := GroupByIdentifier(txs)
	holdings := []model.Holding{}
	for _, id := range identifiers {
		h, err := ComputeHolding(id, grouped[id])
		if err != nil {
			return nil, err
		}
		if h != nil {
			holdings = append(holdings, *h)
		}
	}
	return holdings, nil
}

// ClosedPositions derives every closed position from the full ledger.
func ClosedPositions(txs []model.Transaction) ([]model.ClosedPosition, error) {
	grouped, identifiers := GroupByIdentifier(txs)
	closed := []model.ClosedPosition{}
	for _, id := range identifiers {
		cp, err := ComputeClosedPosition(id, grouped[id])
		if err != nil {
			return nil, err
		}
		if cp != nil {
			closed = append(closed, *cp)
		}
	}
	return closed, nil
}

// BuildSummary composes holdings, manual position values and closed
// positions into the portfolio-wide view. Positions without a value count
// as zero and stay out of the current-value and P/L totals; fees and
// withdrawals sum over the entire history, closed cycles included.
func BuildSummary(txs []model.Transaction, values []model.PositionValue) (model.PortfolioSummary, error) {
	valueByID := make(map[string]decimal.Decimal, len(values))
	for _, v := range values {
		valueByID[v.Identifier] = v.CurrentValue
	}

	summary := model.PortfolioSummary{
		Positions:                          []model.HoldingPerformance{},
		ClosedPositions:                    []model.ClosedPosition{},
		TotalInvested:                      decimal.Zero,
		TotalFees:                          decimal.Zero,
		TotalWithdrawn:                     decimal.Zero,
		TotalCurrentPortfolioInvestedValue: decimal.Zero,
		TotalProfitLoss:                    decimal.Zero,
	}

	for _, t := range txs {
		summary.TotalFees = summary.TotalFees.Add(t.Fee)
		if t.Type == model.TransactionSell {
			summary.TotalWithdrawn = summary.TotalWithdrawn.Add(t.Notional())
		}
	}

	grouped, identifiers := GroupByIdentifier(txs)
	for _, id := range identifiers {
		holding, err := ComputeHolding(id, grouped[id])
		if err != nil {
			return model.PortfolioSummary{}, err
		}
		if holding == nil {
			cp, err := ComputeClosedPosition(id, grouped[id])
			if err != nil {
				return model.PortfolioSummary{}, err
			}
			if cp != nil {
				summary.ClosedPositions = append(summary.ClosedPositions, *cp)
			}
			continue
		}

		perf := model.HoldingPerformance{
			Identifier:         holding.Identifier,
			Units:              holding.Units,
			AverageCostPerUnit: holding.AverageCostPerUnit,
			TotalCost:          holding.TotalCost,
			CurrentValue:       decimal.Zero,
			AbsolutePL:         decimal.Zero,
			PercentagePL:       decimal.Zero,
		}
		summary.TotalInvested = summary.TotalInvested.Add(holding.TotalCost)

		if current, ok := valueByID[id]; ok {
			perf.HasValue = true
			perf.CurrentValue = current
			perf.AbsolutePL = current.Sub(holding.TotalCost)
			if !holding.TotalCost.IsZero() {
				perf.PercentagePL = perf.AbsolutePL.Div(holding.TotalCost).Mul(hundred)
			}
			summary.TotalCurrentPortfolioInvestedValue = summary.TotalCurrentPortfolioInvestedValue.Add(current)
			summary.TotalProfitLoss = summary.TotalProfitLoss.Add(perf.AbsolutePL)
		}

		summary.Positions = append(summary.Positions, perf)
	}

	return summary, nil
}
