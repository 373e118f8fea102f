package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/rmenoli/finance-track-webapp-sub000/internal/model"
	"github.com/rmenoli/finance-track-webapp-sub000/internal/repository"
)

type SnapshotRepo struct {
	db  *sqlx.DB
	log *logrus.Logger
}

func NewSnapshotRepo(db *sqlx.DB, log *logrus.Logger) *SnapshotRepo {
	return &SnapshotRepo{db: db, log: log}
}

type snapshotRow struct {
	Date          time.Time       `db:"snapshot_date"`
	TotalValueEUR decimal.Decimal `db:"total_value_eur"`
	ExchangeRate  decimal.Decimal `db:"exchange_rate"`
	ByCurrency    []byte          `db:"by_currency"`
	ByAssetType   []byte          `db:"by_asset_type"`
}

func (r *SnapshotRepo) Insert(ctx context.Context, s model.Snapshot) error {
	byCurrency, err := json.Marshal(s.ByCurrency)
	if err != nil {
		return err
	}
	byAssetType, err := json.Marshal(s.ByAssetType)
	if err != nil {
		return err
	}

	q := `INSERT INTO snapshots (snapshot_date, total_value_eur, exchange_rate, by_currency, by_asset_type)
		VALUES ($1, $2::numeric, $3::numeric, $4, $5)`
	_, err = r.db.ExecContext(ctx, q, s.Date, s.TotalValueEUR.String(), s.ExchangeRate.String(), byCurrency, byAssetType)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return repository.ErrAlreadyExists
	}
	return err
}

func (r *SnapshotRepo) List(ctx context.Context, from, to *time.Time) ([]model.Snapshot, error) {
	var conds []string
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if from != nil {
		conds = append(conds, "snapshot_date >= "+arg(*from))
	}
	if to != nil {
		conds = append(conds, "snapshot_date <= "+arg(*to))
	}

	q := `SELECT snapshot_date, total_value_eur, exchange_rate, by_currency, by_asset_type FROM snapshots`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY snapshot_date ASC"

	rows, err := r.db.QueryxContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := []model.Snapshot{}
	for rows.Next() {
		var row snapshotRow
		if err := rows.StructScan(&row); err != nil {
			r.log.Warnf("scan snapshot failed: %v", err)
			continue
		}
		s := model.Snapshot{
			Date:          row.Date,
			TotalValueEUR: row.TotalValueEUR,
			ExchangeRate:  row.ExchangeRate,
		}
		if err := json.Unmarshal(row.ByCurrency, &s.ByCurrency); err != nil {
			r.log.Warnf("decode snapshot by_currency failed: %v", err)
			continue
		}
		if err := json.Unmarshal(row.ByAssetType, &s.ByAssetType); err != nil {
			r.log.Warnf("decode snapshot by_asset_type failed: %v", err)
			continue
		}
		res = append(res, s)
	}
	return res, rows.Err()
}

// Delete removes the snapshot with the exact timestamp.
func (r *SnapshotRepo) Delete(ctx context.Context, ts time.Time) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM snapshots WHERE snapshot_date = $1`, ts)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Inputs reads the full ledger, position values and other assets inside one
// repeatable-read transaction so a snapshot never sees a half-updated store.
func (r *SnapshotRepo) Inputs(ctx context.Context) (model.SnapshotInputs, error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return model.SnapshotInputs{}, err
	}
	defer tx.Rollback()

	in := model.SnapshotInputs{
		Transactions:   []model.Transaction{},
		PositionValues: []model.PositionValue{},
		OtherAssets:    []model.OtherAsset{},
	}

	if err := tx.SelectContext(ctx, &in.Transactions, `SELECT id, seq, trade_date, identifier, broker, tx_type, units, price_per_unit, fee
		FROM transactions ORDER BY trade_date, seq`); err != nil {
		return model.SnapshotInputs{}, err
	}
	if err := tx.SelectContext(ctx, &in.PositionValues, `SELECT identifier, current_value, updated_at FROM position_values ORDER BY identifier`); err != nil {
		return model.SnapshotInputs{}, err
	}
	if err := tx.SelectContext(ctx, &in.OtherAssets, `SELECT asset_type, asset_detail, currency, value, updated_at
		FROM other_assets ORDER BY asset_type, asset_detail`); err != nil {
		return model.SnapshotInputs{}, err
	}

	return in, tx.Commit()
}
