// Package portfolio derives holdings, realized gains and the portfolio
// summary from the raw transaction ledger. Everything here is a pure
// function over the transaction history; nothing derived is ever stored.
package portfolio

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/rmenoli/finance-track-webapp-sub000/internal/model"
)

// ErrInvalidState means the ledger contains a sell that exceeds the units
// held at that point. The ledger boundary rejects such writes, so hitting
// this during replay is a defect, not a user error.
var ErrInvalidState = errors.New("sell exceeds held units")

var hundred = decimal.NewFromInt(100)

// SortTransactions orders a copy of txs chronologically, with the insertion
// sequence as the same-day tiebreak.
func SortTransactions(txs []model.Transaction) []model.Transaction {
	sorted := make([]model.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.Before(sorted[j].Date)
		}
		return sorted[i].Seq < sorted[j].Seq
	})
	return sorted
}

// ComputeHolding replays one identifier's transactions using the
// weighted-average cost method and returns the open holding, or nil when
// the net position is zero or the history is empty.
//
// A buy folds its notional into the running total cost and moves the
// average; a sell only shrinks units and total cost at the pre-sale
// average. Fees never touch the cost basis.
func ComputeHolding(identifier string, txs []model.Transaction) (*model.Holding, error) {
	units := decimal.Zero
	totalCost := decimal.Zero
	avgCost := decimal.Zero

	for _, t := range SortTransactions(txs) {
		switch t.Type {
		case model.TransactionBuy:
			totalCost = totalCost.Add(t.Notional())
			units = units.Add(t.Units)
			avgCost = totalCost.Div(units)
		case model.TransactionSell:
			if t.Units.GreaterThan(units) {
				return nil, ErrInvalidState
			}
			units = units.Sub(t.Units)
			totalCost = totalCost.Sub(t.Units.Mul(avgCost))
			if units.IsZero() {
				// Close the cycle cleanly so a later re-buy starts
				// from a fresh cost basis with no rounding residue.
				totalCost = decimal.Zero
				avgCost = decimal.Zero
			}
		}
	}

	if units.IsZero() {
		return nil, nil
	}

	return &model.Holding{
		Identifier:         identifier,
		Units:              units,
		AverageCostPerUnit: avgCost,
		TotalCost:          totalCost,
	}, nil
}
