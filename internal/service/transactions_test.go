package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rmenoli/finance-track-webapp-sub000/internal/model"
	"github.com/rmenoli/finance-track-webapp-sub000/internal/repository"
)

const testISIN = "IE00B4L5Y983"

func TestCreateTransaction_Validation(t *testing.T) {
	svc, m := newTestService(t)

	_, err := svc.CreateTransaction(context.Background(), model.TransactionInput{})

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "date")
	assert.Contains(t, verrs, "identifier")
	assert.Contains(t, verrs, "type")
	assert.Contains(t, verrs, "units")
	assert.Contains(t, verrs, "price_per_unit")
	m.transactions.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestCreateTransaction_FutureDateRejected(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateTransaction(context.Background(), model.TransactionInput{
		Date:         day("2100-01-01"),
		Identifier:   testISIN,
		Type:         model.TransactionBuy,
		Units:        dec("1"),
		PricePerUnit: dec("10"),
	})

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "date")
}

func TestCreateTransaction_Success(t *testing.T) {
	svc, m := newTestService(t)

	m.transactions.On("ListByIdentifier", mock.Anything, testISIN).
		Return([]model.Transaction{}, nil).Once()
	m.transactions.On("Insert", mock.Anything, mock.AnythingOfType("*model.Transaction")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*model.Transaction).Seq = 1
		}).
		Return(nil).Once()
	m.cache.On("FlushPortfolioSummary", mock.Anything).Return(nil).Once()
	m.transactions.On("ListByIdentifier", mock.Anything, testISIN).
		Return([]model.Transaction{ledgerTx(testISIN, 1, "2024-01-02", model.TransactionBuy, "10", "100", "1")}, nil).Once()

	got, err := svc.CreateTransaction(context.Background(), model.TransactionInput{
		Date:         day("2024-01-02"),
		Identifier:   testISIN,
		Broker:       "degiro",
		Type:         model.TransactionBuy,
		Units:        dec("10"),
		PricePerUnit: dec("100"),
		Fee:          dec("1"),
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, testISIN, got.Identifier)
	assert.Equal(t, model.TransactionBuy, got.Type)
	m.transactions.AssertExpectations(t)
	m.cache.AssertExpectations(t)
	m.positionValues.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestCreateTransaction_SellExceedsHeldUnits(t *testing.T) {
	svc, m := newTestService(t)

	held := ledgerTx(testISIN, 1, "2024-01-02", model.TransactionBuy, "5", "100", "0")
	m.transactions.On("ListByIdentifier", mock.Anything, testISIN).
		Return([]model.Transaction{held}, nil).Once()

	_, err := svc.CreateTransaction(context.Background(), model.TransactionInput{
		Date:         day("2024-02-02"),
		Identifier:   testISIN,
		Type:         model.TransactionSell,
		Units:        dec("10"),
		PricePerUnit: dec("100"),
	})

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "units")
	m.transactions.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestCreateTransaction_ClosingSellDropsManualValue(t *testing.T) {
	svc, m := newTestService(t)

	buy := ledgerTx(testISIN, 1, "2024-01-02", model.TransactionBuy, "10", "100", "1")
	sell := ledgerTx(testISIN, 2, "2024-03-02", model.TransactionSell, "10", "120", "1")

	m.transactions.On("ListByIdentifier", mock.Anything, testISIN).
		Return([]model.Transaction{buy}, nil).Once()
	m.transactions.On("Insert", mock.Anything, mock.AnythingOfType("*model.Transaction")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*model.Transaction).Seq = 2
		}).
		Return(nil).Once()
	m.cache.On("FlushPortfolioSummary", mock.Anything).Return(nil).Once()
	m.transactions.On("ListByIdentifier", mock.Anything, testISIN).
		Return([]model.Transaction{buy, sell}, nil).Once()
	m.positionValues.On("Delete", mock.Anything, testISIN).Return(nil).Once()

	_, err := svc.CreateTransaction(context.Background(), model.TransactionInput{
		Date:         day("2024-03-02"),
		Identifier:   testISIN,
		Type:         model.TransactionSell,
		Units:        dec("10"),
		PricePerUnit: dec("120"),
		Fee:          dec("1"),
	})
	require.NoError(t, err)

	m.positionValues.AssertExpectations(t)
	m.cache.AssertExpectations(t)
}

func TestUpdateTransaction_NotFound(t *testing.T) {
	svc, m := newTestService(t)

	id := uuid.New()
	m.transactions.On("GetByID", mock.Anything, id).
		Return(model.Transaction{}, repository.ErrNotFound).Once()

	_, err := svc.UpdateTransaction(context.Background(), id, model.TransactionInput{
		Date:         day("2024-01-02"),
		Identifier:   testISIN,
		Type:         model.TransactionBuy,
		Units:        dec("1"),
		PricePerUnit: dec("10"),
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateTransaction_RejectsShrinkingBuyBelowSells(t *testing.T) {
	svc, m := newTestService(t)

	buy := ledgerTx(testISIN, 1, "2024-01-02", model.TransactionBuy, "10", "100", "0")
	sell := ledgerTx(testISIN, 2, "2024-02-02", model.TransactionSell, "10", "110", "0")

	m.transactions.On("GetByID", mock.Anything, buy.ID).Return(buy, nil).Once()
	m.transactions.On("ListByIdentifier", mock.Anything, testISIN).
		Return([]model.Transaction{buy, sell}, nil).Once()

	_, err := svc.UpdateTransaction(context.Background(), buy.ID, model.TransactionInput{
		Date:         buy.Date,
		Identifier:   testISIN,
		Type:         model.TransactionBuy,
		Units:        dec("5"),
		PricePerUnit: dec("100"),
	})

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "units")
	m.transactions.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteTransaction_WouldOrphanSell(t *testing.T) {
	svc, m := newTestService(t)

	buy := ledgerTx(testISIN, 1, "2024-01-02", model.TransactionBuy, "10", "100", "0")
	sell := ledgerTx(testISIN, 2, "2024-02-02", model.TransactionSell, "10", "110", "0")

	m.transactions.On("GetByID", mock.Anything, buy.ID).Return(buy, nil).Once()
	m.transactions.On("ListByIdentifier", mock.Anything, testISIN).
		Return([]model.Transaction{buy, sell}, nil).Once()

	err := svc.DeleteTransaction(context.Background(), buy.ID)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	m.transactions.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteTransaction_Success(t *testing.T) {
	svc, m := newTestService(t)

	buy := ledgerTx(testISIN, 1, "2024-01-02", model.TransactionBuy, "10", "100", "0")

	m.transactions.On("GetByID", mock.Anything, buy.ID).Return(buy, nil).Once()
	m.transactions.On("ListByIdentifier", mock.Anything, testISIN).
		Return([]model.Transaction{buy}, nil).Once()
	m.transactions.On("Delete", mock.Anything, buy.ID).Return(nil).Once()
	m.cache.On("FlushPortfolioSummary", mock.Anything).Return(nil).Once()
	m.transactions.On("ListByIdentifier", mock.Anything, testISIN).
		Return([]model.Transaction{}, nil).Once()
	// No units left, so any stale manual value goes too.
	m.positionValues.On("Delete", mock.Anything, testISIN).Return(repository.ErrNotFound).Once()

	err := svc.DeleteTransaction(context.Background(), buy.ID)
	require.NoError(t, err)
	m.transactions.AssertExpectations(t)
}

func TestListTransactions_InvalidTypeFilter(t *testing.T) {
	svc, m := newTestService(t)

	_, err := svc.ListTransactions(context.Background(), model.TransactionFilter{Type: "HOLD"})

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "type")
	m.transactions.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}
