package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmenoli/finance-track-webapp-sub000/internal/model"
)

// UpsertPositionValue replaces the identifier's manual valuation, last
// write wins.
func (s *Service) UpsertPositionValue(ctx context.Context, identifier string, value decimal.Decimal) (model.PositionValue, error) {
	verrs := ValidationErrors{}
	if !validIdentifier(identifier) {
		verrs["identifier"] = "must be a 12-character code: 2 letters, 9 alphanumerics, 1 digit"
	}
	if value.LessThanOrEqual(decimal.Zero) {
		verrs["current_value"] = "must be greater than zero"
	}
	if len(verrs) > 0 {
		return model.PositionValue{}, verrs
	}

	if err := s.positionValues.Upsert(ctx, model.PositionValue{Identifier: identifier, CurrentValue: value}); err != nil {
		return model.PositionValue{}, err
	}
	s.invalidateSummary(ctx)

	stored, err := s.positionValues.Get(ctx, identifier)
	return stored, mapRepoErr(err)
}

func (s *Service) PositionValues(ctx context.Context) ([]model.PositionValue, error) {
	return s.positionValues.List(ctx)
}

func (s *Service) PositionValue(ctx context.Context, identifier string) (model.PositionValue, error) {
	v, err := s.positionValues.Get(ctx, identifier)
	return v, mapRepoErr(err)
}

func (s *Service) DeletePositionValue(ctx context.Context, identifier string) error {
	if err := s.positionValues.Delete(ctx, identifier); err != nil {
		return mapRepoErr(err)
	}
	s.invalidateSummary(ctx)
	return nil
}

// UpsertOtherAsset replaces the (type, detail) balance. The investments
// type is a read projection of the portfolio and rejects writes.
func (s *Service) UpsertOtherAsset(ctx context.Context, a model.OtherAsset) (model.OtherAsset, error) {
	if a.Type.ReadOnly() {
		return model.OtherAsset{}, ErrReadOnlyAssetType
	}

	verrs := ValidationErrors{}
	if !a.Type.Valid() {
		verrs["asset_type"] = "unknown asset type"
	} else if a.Type.PerAccount() {
		if a.Detail == "" {
			verrs["asset_detail"] = "account name is required for this asset type"
		}
	} else if a.Detail != "" {
		verrs["asset_detail"] = "must be empty for single-valued asset types"
	}
	if !a.Currency.Valid() {
		verrs["currency"] = "must be EUR or CZK"
	}
	if a.Value.IsNegative() {
		verrs["value"] = "must not be negative"
	}
	if len(verrs) > 0 {
		return model.OtherAsset{}, verrs
	}

	if err := s.otherAssets.Upsert(ctx, a); err != nil {
		return model.OtherAsset{}, err
	}

	stored, err := s.otherAssets.Get(ctx, a.Type, a.Detail)
	return stored, mapRepoErr(err)
}

// OtherAssets lists the stored balances, optionally with the computed
// investments row appended.
func (s *Service) OtherAssets(ctx context.Context, includeInvestments bool) ([]model.OtherAsset, error) {
	assets, err := s.otherAssets.List(ctx)
	if err != nil {
		return nil, err
	}
	if !includeInvestments {
		return assets, nil
	}

	row, err := s.investmentsRow(ctx)
	if err != nil {
		return nil, err
	}
	return append(assets, row), nil
}

// OtherAsset returns one balance; the investments type resolves to the
// computed projection instead of a stored row.
func (s *Service) OtherAsset(ctx context.Context, assetType model.AssetType, detail string) (model.OtherAsset, error) {
	if !assetType.Valid() {
		return model.OtherAsset{}, ValidationErrors{"asset_type": "unknown asset type"}
	}
	if assetType.ReadOnly() {
		return s.investmentsRow(ctx)
	}

	a, err := s.otherAssets.Get(ctx, assetType, detail)
	return a, mapRepoErr(err)
}

func (s *Service) DeleteOtherAsset(ctx context.Context, assetType model.AssetType, detail string) error {
	if assetType.ReadOnly() {
		return ErrReadOnlyAssetType
	}
	return mapRepoErr(s.otherAssets.Delete(ctx, assetType, detail))
}

func (s *Service) investmentsRow(ctx context.Context) (model.OtherAsset, error) {
	summary, err := s.PortfolioSummary(ctx)
	if err != nil {
		return model.OtherAsset{}, err
	}
	return model.OtherAsset{
		Type:      model.AssetInvestments,
		Currency:  model.CurrencyEUR,
		Value:     summary.TotalCurrentPortfolioInvestedValue,
		UpdatedAt: time.Now().UTC(),
	}, nil
}

func (s *Service) ExchangeRate(ctx context.Context) (decimal.Decimal, error) {
	rate, err := s.settings.GetExchangeRate(ctx)
	return rate, mapRepoErr(err)
}

func (s *Service) SetExchangeRate(ctx context.Context, rate decimal.Decimal) error {
	if rate.LessThanOrEqual(decimal.Zero) {
		return ValidationErrors{"rate": "must be greater than zero"}
	}
	return s.settings.SetExchangeRate(ctx, rate)
}
