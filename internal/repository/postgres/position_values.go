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

type PositionValueRepo struct {
	db  *sqlx.DB
	log *logrus.Logger
}

func NewPositionValueRepo(db *sqlx.DB, log *logrus.Logger) *PositionValueRepo {
	return &PositionValueRepo{db: db, log: log}
}

// Upsert replaces the identifier's row unconditionally, last write wins.
func (r *PositionValueRepo) Upsert(ctx context.Context, v model.PositionValue) error {
	q := `INSERT INTO position_values (identifier, current_value, updated_at) VALUES ($1, $2::numeric, now())
		ON CONFLICT (identifier) DO UPDATE SET current_value = EXCLUDED.current_value, updated_at = now()`
	_, err := r.db.ExecContext(ctx, q, v.Identifier, v.CurrentValue.String())
	return err
}

func (r *PositionValueRepo) Get(ctx context.Context, identifier string) (model.PositionValue, error) {
	var v model.PositionValue
	err := r.db.GetContext(ctx, &v, `SELECT identifier, current_value, updated_at FROM position_values WHERE identifier = $1`, identifier)
	if errors.Is(err, sql.ErrNoRows) {
		return model.PositionValue{}, repository.ErrNotFound
	}
	return v, err
}

func (r *PositionValueRepo) List(ctx context.Context) ([]model.PositionValue, error) {
	rows, err := r.db.QueryxContext(ctx, `SELECT identifier, current_value, updated_at FROM position_values ORDER BY identifier`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := []model.PositionValue{}
	for rows.Next() {
		var v model.PositionValue
		if err := rows.StructScan(&v); err != nil {
			r.log.Warnf("scan position value failed: %v", err)
			continue
		}
		res = append(res, v)
	}
	return res, rows.Err()
}

func (r *PositionValueRepo) Delete(ctx context.Context, identifier string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM position_values WHERE identifier = $1`, identifier)
	if err != nil {
		return err
	}
	return requireRow(res)
}
