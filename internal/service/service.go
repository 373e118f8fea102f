// Package service implements the portfolio accounting engine behind the
// HTTP boundary: ledger writes with validation, derived analytics, other
// assets, exchange rate and net-worth snapshots.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/rmenoli/finance-track-webapp-sub000/internal/model"
	"github.com/rmenoli/finance-track-webapp-sub000/internal/repository"
)

type TransactionRepo interface {
	Insert(ctx context.Context, t *model.Transaction) error
	Update(ctx context.Context, t model.Transaction) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (model.Transaction, error)
	List(ctx context.Context, f model.TransactionFilter) ([]model.Transaction, error)
	ListAll(ctx context.Context) ([]model.Transaction, error)
	ListByIdentifier(ctx context.Context, identifier string) ([]model.Transaction, error)
}

type PositionValueRepo interface {
	Upsert(ctx context.Context, v model.PositionValue) error
	Get(ctx context.Context, identifier string) (model.PositionValue, error)
	List(ctx context.Context) ([]model.PositionValue, error)
	Delete(ctx context.Context, identifier string) error
}

type OtherAssetRepo interface {
	Upsert(ctx context.Context, a model.OtherAsset) error
	Get(ctx context.Context, assetType model.AssetType, detail string) (model.OtherAsset, error)
	List(ctx context.Context) ([]model.OtherAsset, error)
	Delete(ctx context.Context, assetType model.AssetType, detail string) error
}

type SnapshotRepo interface {
	Insert(ctx context.Context, s model.Snapshot) error
	List(ctx context.Context, from, to *time.Time) ([]model.Snapshot, error)
	Delete(ctx context.Context, ts time.Time) error
	Inputs(ctx context.Context) (model.SnapshotInputs, error)
}

type SettingsRepo interface {
	GetExchangeRate(ctx context.Context) (decimal.Decimal, error)
	SetExchangeRate(ctx context.Context, rate decimal.Decimal) error
}

type Cache interface {
	GetPortfolioSummary(ctx context.Context) (model.PortfolioSummary, error)
	SetPortfolioSummary(ctx context.Context, summary model.PortfolioSummary) error
	FlushPortfolioSummary(ctx context.Context) error
}

type Service struct {
	transactions   TransactionRepo
	positionValues PositionValueRepo
	otherAssets    OtherAssetRepo
	snapshots      SnapshotRepo
	settings       SettingsRepo
	cache          Cache
	log            *logrus.Logger
}

func New(
	transactions TransactionRepo,
	positionValues PositionValueRepo,
	otherAssets OtherAssetRepo,
	snapshots SnapshotRepo,
	settings SettingsRepo,
	cache Cache,
	log *logrus.Logger,
) *Service {
	return &Service{
		transactions:   transactions,
		positionValues: positionValues,
		otherAssets:    otherAssets,
		snapshots:      snapshots,
		settings:       settings,
		cache:          cache,
		log:            log,
	}
}

// invalidateSummary drops the cached summary synchronously; a stale entry
// surviving a mutation would serve wrong derived state.
func (s *Service) invalidateSummary(ctx context.Context) {
	if err := s.cache.FlushPortfolioSummary(ctx); err != nil {
		s.log.Errorf("flush portfolio summary cache failed: %v", err)
	}
}

func mapRepoErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrAlreadyExists):
		return ErrConflict
	default:
		return err
	}
}
