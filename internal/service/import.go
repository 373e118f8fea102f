package service

import (
	"context"
	"errors"

	"github.com/rmenoli/finance-track-webapp-sub000/internal/model"
)

// ImportTransactions inserts a batch of externally parsed rows. Rows are
// validated independently and a failed row never blocks the rest; only an
// infrastructure failure aborts the import.
func (s *Service) ImportTransactions(ctx context.Context, rows []model.TransactionInput) (model.ImportReport, error) {
	report := model.ImportReport{
		Total: len(rows),
		Rows:  make([]model.ImportRowResult, 0, len(rows)),
	}

	for i, in := range rows {
		t, err := s.CreateTransaction(ctx, in)
		if err != nil {
			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				return model.ImportReport{}, err
			}
			report.Failed++
			report.Rows = append(report.Rows, model.ImportRowResult{
				Row:    i,
				Errors: verrs,
			})
			continue
		}

		report.Succeeded++
		report.Rows = append(report.Rows, model.ImportRowResult{
			Row:           i,
			Success:       true,
			TransactionID: t.ID.String(),
		})
	}

	return report, nil
}
