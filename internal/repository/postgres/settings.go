package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/rmenoli/finance-track-webapp-sub000/internal/repository"
)

const exchangeRateKey = "exchange_rate_czk_eur"

type SettingsRepo struct {
	db *sqlx.DB
}

func NewSettingsRepo(db *sqlx.DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

// GetExchangeRate returns the current CZK-per-EUR rate. The migration seeds
// a default row, so a missing row means the store was tampered with.
func (r *SettingsRepo) GetExchangeRate(ctx context.Context) (decimal.Decimal, error) {
	var raw string
	err := r.db.GetContext(ctx, &raw, `SELECT value FROM settings WHERE key = $1`, exchangeRateKey)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Decimal{}, repository.ErrNotFound
	}
	if err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.NewFromString(raw)
}

func (r *SettingsRepo) SetExchangeRate(ctx context.Context, rate decimal.Decimal) error {
	q := `INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`
	_, err := r.db.ExecContext(ctx, q, exchangeRateKey, rate.String())
	return err
}
