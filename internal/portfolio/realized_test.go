package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmenoli/finance-track-webapp-sub000/internal/model"
)

func TestComputeClosedPosition_FullCycle(t *testing.T) {
	txs := []model.Transaction{
		tx(1, "2024-01-02", model.TransactionBuy, "10", "100", "1"),
		tx(2, "2024-03-02", model.TransactionSell, "4", "120", "1"),
		tx(3, "2024-04-02", model.TransactionSell, "6", "130", "1"),
	}

	cp, err := ComputeClosedPosition(testISIN, txs)
	require.NoError(t, err)
	require.NotNil(t, cp)

	assert.Equal(t, testISIN, cp.Identifier)
	assertDecimal(t, "1000", cp.TotalCostWithoutFees)
	assertDecimal(t, "1260", cp.TotalGainsWithoutFees)
	assertDecimal(t, "3", cp.TotalFees)
	assertDecimal(t, "260", cp.RealizedPLWithoutFees)
	assertDecimal(t, "26", cp.RealizedPLWithoutFeesPct)
	assertDecimal(t, "257", cp.RealizedPLWithFees)
	assertDecimal(t, "25.7", cp.RealizedPLWithFeesPct)
}

func TestComputeClosedPosition_OpenPosition(t *testing.T) {
	txs := []model.Transaction{
		tx(1, "2024-01-02", model.TransactionBuy, "10", "100", "1"),
		tx(2, "2024-03-02", model.TransactionSell, "4", "120", "1"),
	}

	cp, err := ComputeClosedPosition(testISIN, txs)
	require.NoError(t, err)
	assert.Nil(t, cp)
}

func TestComputeClosedPosition_ReopenedPosition(t *testing.T) {
	txs := []model.Transaction{
		tx(1, "2024-01-02", model.TransactionBuy, "10", "100", "1"),
		tx(2, "2024-03-02", model.TransactionSell, "10", "120", "1"),
		tx(3, "2024-05-02", model.TransactionBuy, "5", "50", "1"),
	}

	cp, err := ComputeClosedPosition(testISIN, txs)
	require.NoError(t, err)
	assert.Nil(t, cp, "a rebuy reopens the position and removes it from closed positions")
}

func TestComputeClosedPosition_NoHistory(t *testing.T) {
	cp, err := ComputeClosedPosition(testISIN, nil)
	require.NoError(t, err)
	assert.Nil(t, cp)
}

func TestComputeClosedPosition_MultipleCyclesAccumulate(t *testing.T) {
	txs := []model.Transaction{
		tx(1, "2024-01-02", model.TransactionBuy, "10", "100", "1"),
		tx(2, "2024-02-02", model.TransactionSell, "10", "110", "1"),
		tx(3, "2024-03-02", model.TransactionBuy, "5", "200", "1"),
		tx(4, "2024-04-02", model.TransactionSell, "5", "180", "1"),
	}

	cp, err := ComputeClosedPosition(testISIN, txs)
	require.NoError(t, err)
	require.NotNil(t, cp)

	assertDecimal(t, "2000", cp.TotalCostWithoutFees)
	assertDecimal(t, "2000", cp.TotalGainsWithoutFees)
	assertDecimal(t, "4", cp.TotalFees)
	assertDecimal(t, "0", cp.RealizedPLWithoutFees)
	assertDecimal(t, "-4", cp.RealizedPLWithFees)
}
