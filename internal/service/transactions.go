package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/rmenoli/finance-track-webapp-sub000/internal/model"
	"github.com/rmenoli/finance-track-webapp-sub000/internal/portfolio"
	"github.com/rmenoli/finance-track-webapp-sub000/internal/repository"
)

// CreateTransaction validates the input, rejects sells that would drive the
// identifier's running units negative at any point in the replay, and
// appends the row to the ledger.
func (s *Service) CreateTransaction(ctx context.Context, in model.TransactionInput) (model.Transaction, error) {
	if verrs := validateTransactionInput(in, time.Now().UTC()); verrs != nil {
		return model.Transaction{}, verrs
	}

	t := model.Transaction{
		ID:           uuid.New(),
		Date:         in.Date,
		Identifier:   in.Identifier,
		Broker:       in.Broker,
		Type:         in.Type,
		Units:        in.Units,
		PricePerUnit: in.PricePerUnit,
		Fee:          in.Fee,
	}

	existing, err := s.transactions.ListByIdentifier(ctx, t.Identifier)
	if err != nil {
		return model.Transaction{}, err
	}
	candidate := t
	candidate.Seq = nextSeq(existing)
	if err := checkLedgerConsistent(t.Identifier, append(existing, candidate)); err != nil {
		return model.Transaction{}, err
	}

	if err := s.transactions.Insert(ctx, &t); err != nil {
		return model.Transaction{}, err
	}

	s.afterLedgerWrite(ctx, t.Identifier)
	return t, nil
}

// UpdateTransaction replaces the row's fields and revalidates the affected
// identifier histories. The original insertion sequence is kept, so a
// same-day tiebreak never changes retroactively.
func (s *Service) UpdateTransaction(ctx context.Context, id uuid.UUID, in model.TransactionInput) (model.Transaction, error) {
	if verrs := validateTransactionInput(in, time.Now().UTC()); verrs != nil {
		return model.Transaction{}, verrs
	}

	current, err := s.transactions.GetByID(ctx, id)
	if err != nil {
		return model.Transaction{}, mapRepoErr(err)
	}

	updated := current
	updated.Date = in.Date
	updated.Identifier = in.Identifier
	updated.Broker = in.Broker
	updated.Type = in.Type
	updated.Units = in.Units
	updated.PricePerUnit = in.PricePerUnit
	updated.Fee = in.Fee

	target, err := s.transactions.ListByIdentifier(ctx, updated.Identifier)
	if err != nil {
		return model.Transaction{}, err
	}
	if err := checkLedgerConsistent(updated.Identifier, append(withoutID(target, id), updated)); err != nil {
		return model.Transaction{}, err
	}

	if updated.Identifier != current.Identifier {
		source, err := s.transactions.ListByIdentifier(ctx, current.Identifier)
		if err != nil {
			return model.Transaction{}, err
		}
		if err := checkLedgerConsistent(current.Identifier, withoutID(source, id)); err != nil {
			return model.Transaction{}, err
		}
	}

	if err := s.transactions.Update(ctx, updated); err != nil {
		return model.Transaction{}, mapRepoErr(err)
	}

	s.afterLedgerWrite(ctx, updated.Identifier, current.Identifier)
	return updated, nil
}

// DeleteTransaction removes the row unless the remaining history would be
// left with a sell exceeding held units.
func (s *Service) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	current, err := s.transactions.GetByID(ctx, id)
	if err != nil {
		return mapRepoErr(err)
	}

	rest, err := s.transactions.ListByIdentifier(ctx, current.Identifier)
	if err != nil {
		return err
	}
	if err := checkLedgerConsistent(current.Identifier, withoutID(rest, id)); err != nil {
		return err
	}

	if err := s.transactions.Delete(ctx, id); err != nil {
		return mapRepoErr(err)
	}

	s.afterLedgerWrite(ctx, current.Identifier)
	return nil
}

func (s *Service) GetTransaction(ctx context.Context, id uuid.UUID) (model.Transaction, error) {
	t, err := s.transactions.GetByID(ctx, id)
	return t, mapRepoErr(err)
}

func (s *Service) ListTransactions(ctx context.Context, f model.TransactionFilter) ([]model.Transaction, error) {
	if f.Type != "" && !f.Type.Valid() {
		return nil, ValidationErrors{"type": "must be BUY or SELL"}
	}
	return s.transactions.List(ctx, f)
}

// afterLedgerWrite drops the cached summary and removes the manual value of
// any affected identifier whose holding just reached zero units.
func (s *Service) afterLedgerWrite(ctx context.Context, identifiers ...string) {
	s.invalidateSummary(ctx)

	seen := map[string]bool{}
	for _, id := range identifiers {
		if seen[id] {
			continue
		}
		seen[id] = true

		txs, err := s.transactions.ListByIdentifier(ctx, id)
		if err != nil {
			s.log.Errorf("recompute holding for %s failed: %v", id, err)
			continue
		}
		holding, err := portfolio.ComputeHolding(id, txs)
		if err != nil {
			s.log.Errorf("recompute holding for %s failed: %v", id, err)
			continue
		}
		if holding != nil {
			continue
		}
		if err := s.positionValues.Delete(ctx, id); err != nil && !errors.Is(err, repository.ErrNotFound) {
			s.log.Errorf("delete position value for closed %s failed: %v", id, err)
		}
	}
}

// checkLedgerConsistent replays a candidate history and turns an invalid
// state into a boundary validation error.
func checkLedgerConsistent(identifier string, txs []model.Transaction) error {
	if _, err := portfolio.ComputeHolding(identifier, txs); err != nil {
		return ValidationErrors{"units": "sell would exceed held units for " + identifier}
	}
	return nil
}

func withoutID(txs []model.Transaction, id uuid.UUID) []model.Transaction {
	res := make([]model.Transaction, 0, len(txs))
	for _, t := range txs {
		if t.ID != id {
			res = append(res, t)
		}
	}
	return res
}

func nextSeq(txs []model.Transaction) int64 {
	var max int64
	for _, t := range txs {
		if t.Seq > max {
			max = t.Seq
		}
	}
	return max + 1
}
