package portfolio

import (
	"github.com/shopspring/decimal"

	"github.com/rmenoli/finance-track-webapp-sub000/internal/model"
)

// ComputeClosedPosition returns the realized-gain record for an identifier
// whose net units are exactly zero, or nil while the position is still open
// (or never traded). With weighted-average accounting every buy has been
// fully consumed once the position closes, so cost, gains and fees sum over
// the identifier's whole history.
func ComputeClosedPosition(identifier string, txs []model.Transaction) (*model.ClosedPosition, error) {
	holding, err := ComputeHolding(identifier, txs)
	if err != nil {
		return nil, err
	}
	if holding != nil {
		return nil, nil
	}

	cost := decimal.Zero
	gains := decimal.Zero
	fees := decimal.Zero
	sells := 0
	for _, t := range txs {
		fees = fees.Add(t.Fee)
		switch t.Type {
		case model.TransactionBuy:
			cost = cost.Add(t.Notional())
		case model.TransactionSell:
			gains = gains.Add(t.Notional())
			sells++
		}
	}
	if sells == 0 {
		return nil, nil
	}

	pl := gains.Sub(cost)
	plWithFees := pl.Sub(fees)
	plPct := decimal.Zero
	plWithFeesPct := decimal.Zero
	if !cost.IsZero() {
		plPct = pl.Div(cost).Mul(hundred)
		plWithFeesPct = plWithFees.Div(cost).Mul(hundred)
	}

	return &model.ClosedPosition{
		Identifier:               identifier,
		TotalCostWithoutFees:     cost,
		TotalGainsWithoutFees:    gains,
		TotalFees:                fees,
		RealizedPLWithoutFees:    pl,
		RealizedPLWithoutFeesPct: plPct,
		RealizedPLWithFees:       plWithFees,
		RealizedPLWithFeesPct:    plWithFeesPct,
	}, nil
}
