package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/rmenoli/finance-track-webapp-sub000/internal/model"
	"github.com/rmenoli/finance-track-webapp-sub000/internal/repository"
)

type TransactionRepo struct {
	db  *sqlx.DB
	log *logrus.Logger
}

func NewTransactionRepo(db *sqlx.DB, log *logrus.Logger) *TransactionRepo {
	return &TransactionRepo{db: db, log: log}
}

// sortColumns whitelists user-selectable sort fields.
var sortColumns = map[string]string{
	"date":           "trade_date",
	"identifier":     "identifier",
	"broker":         "broker",
	"type":           "tx_type",
	"units":          "units",
	"price_per_unit": "price_per_unit",
	"fee":            "fee",
}

func (r *TransactionRepo) Insert(ctx context.Context, t *model.Transaction) error {
	q := `INSERT INTO transactions (id, trade_date, identifier, broker, tx_type, units, price_per_unit, fee)
		VALUES ($1, $2, $3, $4, $5, $6::numeric, $7::numeric, $8::numeric) RETURNING seq`
	return r.db.QueryRowContext(ctx, q,
		t.ID, t.Date, t.Identifier, t.Broker, t.Type,
		t.Units.String(), t.PricePerUnit.String(), t.Fee.String(),
	).Scan(&t.Seq)
}

func (r *TransactionRepo) Update(ctx context.Context, t model.Transaction) error {
	q := `UPDATE transactions SET trade_date = $2, identifier = $3, broker = $4, tx_type = $5,
		units = $6::numeric, price_per_unit = $7::numeric, fee = $8::numeric WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q,
		t.ID, t.Date, t.Identifier, t.Broker, t.Type,
		t.Units.String(), t.PricePerUnit.String(), t.Fee.String(),
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *TransactionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *TransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (model.Transaction, error) {
	var t model.Transaction
	err := r.db.GetContext(ctx, &t, `SELECT id, seq, trade_date, identifier, broker, tx_type, units, price_per_unit, fee
		FROM transactions WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Transaction{}, repository.ErrNotFound
	}
	return t, err
}

func (r *TransactionRepo) List(ctx context.Context, f model.TransactionFilter) ([]model.Transaction, error) {
	var conds []string
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Identifier != "" {
		conds = append(conds, "identifier = "+arg(f.Identifier))
	}
	if f.Broker != "" {
		conds = append(conds, "broker = "+arg(f.Broker))
	}
	if f.Type != "" {
		conds = append(conds, "tx_type = "+arg(f.Type))
	}
	if f.From != nil {
		conds = append(conds, "trade_date >= "+arg(*f.From))
	}
	if f.To != nil {
		conds = append(conds, "trade_date <= "+arg(*f.To))
	}

	q := `SELECT id, seq, trade_date, identifier, broker, tx_type, units, price_per_unit, fee FROM transactions`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}

	order := "trade_date, seq"
	if col, ok := sortColumns[f.SortBy]; ok {
		order = col
		if f.SortDesc {
			order += " DESC"
		}
		order += ", seq"
	}
	q += " ORDER BY " + order

	return r.scanTransactions(ctx, q, args...)
}

// ListAll returns the whole ledger in replay order.
func (r *TransactionRepo) ListAll(ctx context.Context) ([]model.Transaction, error) {
	q := `SELECT id, seq, trade_date, identifier, broker, tx_type, units, price_per_unit, fee
		FROM transactions ORDER BY trade_date, seq`
	return r.scanTransactions(ctx, q)
}

// ListByIdentifier returns one identifier's transactions in replay order.
func (r *TransactionRepo) ListByIdentifier(ctx context.Context, identifier string) ([]model.Transaction, error) {
	q := `SELECT id, seq, trade_date, identifier, broker, tx_type, units, price_per_unit, fee
		FROM transactions WHERE identifier = $1 ORDER BY trade_date, seq`
	return r.scanTransactions(ctx, q, identifier)
}

func (r *TransactionRepo) scanTransactions(ctx context.Context, q string, args ...interface{}) ([]model.Transaction, error) {
	rows, err := r.db.QueryxContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := []model.Transaction{}
	for rows.Next() {
		var t model.Transaction
		if err := rows.StructScan(&t); err != nil {
			r.log.Warnf("scan transaction failed: %v", err)
			continue
		}
		res = append(res, t)
	}
	return res, rows.Err()
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
