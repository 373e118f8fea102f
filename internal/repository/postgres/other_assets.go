package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/rmenoli/finance-track-webapp-sub000/internal/model"
	"github.com/rmenoli/finance-track-webapp-sub000/internal/repository"
)

type OtherAssetRepo struct {
	db  *sqlx.DB
	log *logrus.Logger
}

func NewOtherAssetRepo(db *sqlx.DB, log *logrus.Logger) *OtherAssetRepo {
	return &OtherAssetRepo{db: db, log: log}
}

// Upsert replaces the (type, detail) row, last write wins. Single-valued
// asset types use an empty detail.
func (r *OtherAssetRepo) Upsert(ctx context.Context, a model.OtherAsset) error {
	q := `INSERT INTO other_assets (asset_type, asset_detail, currency, value, updated_at)
		VALUES ($1, $2, $3, $4::numeric, now())
		ON CONFLICT (asset_type, asset_detail)
		DO UPDATE SET currency = EXCLUDED.currency, value = EXCLUDED.value, updated_at = now()`
	_, err := r.db.ExecContext(ctx, q, a.Type, a.Detail, a.Currency, a.Value.String())
	return err
}

func (r *OtherAssetRepo) Get(ctx context.Context, assetType model.AssetType, detail string) (model.OtherAsset, error) {
	var a model.OtherAsset
	err := r.db.GetContext(ctx, &a, `SELECT asset_type, asset_detail, currency, value, updated_at
		FROM other_assets WHERE asset_type = $1 AND asset_detail = $2`, assetType, detail)
	if errors.Is(err, sql.ErrNoRows) {
		return model.OtherAsset{}, repository.ErrNotFound
	}
	return a, err
}

func (r *OtherAssetRepo) List(ctx context.Context) ([]model.OtherAsset, error) {
	rows, err := r.db.QueryxContext(ctx, `SELECT asset_type, asset_detail, currency, value, updated_at
		FROM other_assets ORDER BY asset_type, asset_detail`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := []model.OtherAsset{}
	for rows.Next() {
		var a model.OtherAsset
		if err := rows.StructScan(&a); err != nil {
			r.log.Warnf("scan other asset failed: %v", err)
			continue
		}
		res = append(res, a)
	}
	return res, rows.Err()
}

func (r *OtherAssetRepo) Delete(ctx context.Context, assetType model.AssetType, detail string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM other_assets WHERE asset_type = $1 AND asset_detail = $2`, assetType, detail)
	if err != nil {
		return err
	}
	return requireRow(res)
}
