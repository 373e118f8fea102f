package service

import (
	"context"

	"github.com/rmenoli/finance-track-webapp-sub000/internal/model"
	"github.com/rmenoli/finance-track-webapp-sub000/internal/portfolio"
)

// PortfolioSummary returns the consolidated portfolio view, read through
// the cache. On a miss the summary is rebuilt from the full ledger and the
// cache is refilled in the background.
func (s *Service) PortfolioSummary(ctx context.Context) (model.PortfolioSummary, error) {
	if summary, err := s.cache.GetPortfolioSummary(ctx); err == nil {
		return summary, nil
	}

	txs, err := s.transactions.ListAll(ctx)
	if err != nil {
		return model.PortfolioSummary{}, err
	}
	values, err := s.positionValues.List(ctx)
	if err != nil {
		return model.PortfolioSummary{}, err
	}

	summary, err := portfolio.BuildSummary(txs, values)
	if err != nil {
		return model.PortfolioSummary{}, err
	}

	go func() {
		ctx := context.WithoutCancel(ctx)
		if err := s.cache.SetPortfolioSummary(ctx, summary); err != nil {
			s.log.Warnf("set portfolio summary cache failed: %v", err)
		}
	}()

	return summary, nil
}

func (s *Service) Holdings(ctx context.Context) ([]model.Holding, error) {
	txs, err := s.transactions.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return portfolio.Holdings(txs)
}

func (s *Service) ClosedPositions(ctx context.Context) ([]model.ClosedPosition, error) {
	txs, err := s.transactions.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return portfolio.ClosedPositions(txs)
}

// CostBasis returns the open holding for one identifier; NotFound when the
// identifier was never traded or its position is closed.
func (s *Service) CostBasis(ctx context.Context, identifier string) (model.Holding, error) {
	if !validIdentifier(identifier) {
		return model.Holding{}, ValidationErrors{"identifier": "must be a 12-character code: 2 letters, 9 alphanumerics, 1 digit"}
	}

	txs, err := s.transactions.ListByIdentifier(ctx, identifier)
	if err != nil {
		return model.Holding{}, err
	}
	if len(txs) == 0 {
		return model.Holding{}, ErrNotFound
	}

	holding, err := portfolio.ComputeHolding(identifier, txs)
	if err != nil {
		return model.Holding{}, err
	}
	if holding == nil {
		return model.Holding{}, ErrNotFound
	}
	return *holding, nil
}

// RealizedGains returns closed positions, optionally narrowed to one
// identifier. A still-open or unknown identifier yields an empty list.
func (s *Service) RealizedGains(ctx context.Context, identifier string) ([]model.ClosedPosition, error) {
	if identifier == "" {
		txs, err := s.transactions.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		return portfolio.ClosedPositions(txs)
	}

	if !validIdentifier(identifier) {
		return nil, ValidationErrors{"identifier": "must be a 12-character code: 2 letters, 9 alphanumerics, 1 digit"}
	}

	txs, err := s.transactions.ListByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}
	closed, err := portfolio.ComputeClosedPosition(identifier, txs)
	if err != nil {
		return nil, err
	}
	if closed == nil {
		return []model.ClosedPosition{}, nil
	}
	return []model.ClosedPosition{*closed}, nil
}
