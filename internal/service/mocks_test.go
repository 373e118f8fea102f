package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"

	"github.com/rmenoli/finance-track-webapp-sub000/internal/model"
)

type mockTransactionRepo struct{ mock.Mock }

func (m *mockTransactionRepo) Insert(ctx context.Context, t *model.Transaction) error {
	return m.Called(ctx, t).Error(0)
}

func (m *mockTransactionRepo) Update(ctx context.Context, t model.Transaction) error {
	return m.Called(ctx, t).Error(0)
}

func (m *mockTransactionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockTransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (model.Transaction, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Transaction), args.Error(1)
}

func (m *mockTransactionRepo) List(ctx context.Context, f model.TransactionFilter) ([]model.Transaction, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Transaction), args.Error(1)
}

func (m *mockTransactionRepo) ListAll(ctx context.Context) ([]model.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Transaction), args.Error(1)
}

func (m *mockTransactionRepo) ListByIdentifier(ctx context.Context, identifier string) ([]model.Transaction, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Transaction), args.Error(1)
}

type mockPositionValueRepo struct{ mock.Mock }

func (m *mockPositionValueRepo) Upsert(ctx context.Context, v model.PositionValue) error {
	return m.Called(ctx, v).Error(0)
}

func (m *mockPositionValueRepo) Get(ctx context.Context, identifier string) (model.PositionValue, error) {
	args := m.Called(ctx, identifier)
	return args.Get(0).(model.PositionValue), args.Error(1)
}

func (m *mockPositionValueRepo) List(ctx context.Context) ([]model.PositionValue, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PositionValue), args.Error(1)
}

func (m *mockPositionValueRepo) Delete(ctx context.Context, identifier string) error {
	return m.Called(ctx, identifier).Error(0)
}

type mockOtherAssetRepo struct{ mock.Mock }

func (m *mockOtherAssetRepo) Upsert(ctx context.Context, a model.OtherAsset) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockOtherAssetRepo) Get(ctx context.Context, assetType model.AssetType, detail string) (model.OtherAsset, error) {
	args := m.Called(ctx, assetType, detail)
	return args.Get(0).(model.OtherAsset), args.Error(1)
}

func (m *mockOtherAssetRepo) List(ctx context.Context) ([]model.OtherAsset, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.OtherAsset), args.Error(1)
}

func (m *mockOtherAssetRepo) Delete(ctx context.Context, assetType model.AssetType, detail string) error {
	return m.Called(ctx, assetType, detail).Error(0)
}

type mockSnapshotRepo struct{ mock.Mock }

func (m *mockSnapshotRepo) Insert(ctx context.Context, s model.Snapshot) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockSnapshotRepo) List(ctx context.Context, from, to *time.Time) ([]model.Snapshot, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Snapshot), args.Error(1)
}

func (m *mockSnapshotRepo) Delete(ctx context.Context, ts time.Time) error {
	return m.Called(ctx, ts).Error(0)
}

func (m *mockSnapshotRepo) Inputs(ctx context.Context) (model.SnapshotInputs, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.SnapshotInputs), args.Error(1)
}

type mockSettingsRepo struct{ mock.Mock }

func (m *mockSettingsRepo) GetExchangeRate(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockSettingsRepo) SetExchangeRate(ctx context.Context, rate decimal.Decimal) error {
	return m.Called(ctx, rate).Error(0)
}

type mockCache struct{ mock.Mock }

func (m *mockCache) GetPortfolioSummary(ctx context.Context) (model.PortfolioSummary, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.PortfolioSummary), args.Error(1)
}

func (m *mockCache) SetPortfolioSummary(ctx context.Context, summary model.PortfolioSummary) error {
	return m.Called(ctx, summary).Error(0)
}

func (m *mockCache) FlushPortfolioSummary(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type serviceMocks struct {
	transactions   *mockTransactionRepo
	positionValues *mockPositionValueRepo
	otherAssets    *mockOtherAssetRepo
	snapshots      *mockSnapshotRepo
	settings       *mockSettingsRepo
	cache          *mockCache
}

func newTestService(t *testing.T) (*Service, *serviceMocks) {
	t.Helper()
	m := &serviceMocks{
		transactions:   &mockTransactionRepo{},
		positionValues: &mockPositionValueRepo{},
		otherAssets:    &mockOtherAssetRepo{},
		snapshots:      &mockSnapshotRepo{},
		settings:       &mockSettingsRepo{},
		cache:          &mockCache{},
	}
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return New(m.transactions, m.positionValues, m.otherAssets, m.snapshots, m.settings, m.cache, logger), m
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func ledgerTx(identifier string, seq int64, date string, typ model.TransactionType, units, price, fee string) model.Transaction {
	return model.Transaction{
		ID:           uuid.New(),
		Seq:          seq,
		Date:         day(date),
		Identifier:   identifier,
		Type:         typ,
		Units:        dec(units),
		PricePerUnit: dec(price),
		Fee:          dec(fee),
	}
}
