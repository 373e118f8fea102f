package currency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmenoli/finance-track-webapp-sub000/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestToEUR_Identity(t *testing.T) {
	got, err := ToEUR(dec("123.45"), model.CurrencyEUR, dec("25"))
	require.NoError(t, err)
	assert.True(t, dec("123.45").Equal(got), "got %s", got)
}

func TestToEUR_CZKDividesByRate(t *testing.T) {
	got, err := ToEUR(dec("10000"), model.CurrencyCZK, dec("25"))
	require.NoError(t, err)
	assert.True(t, dec("400").Equal(got), "got %s", got)
}

func TestToEUR_RoundTripWithinTolerance(t *testing.T) {
	rate := dec("24.73")
	original := dec("15873.21")

	eur, err := ToEUR(original, model.CurrencyCZK, rate)
	require.NoError(t, err)

	back := eur.Mul(rate)
	diff := back.Sub(original).Abs()
	assert.True(t, diff.LessThan(dec("0.000001")), "round trip drifted by %s", diff)
}

func TestToEUR_InvalidRate(t *testing.T) {
	_, err := ToEUR(dec("100"), model.CurrencyCZK, decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidRate)

	_, err = ToEUR(dec("100"), model.CurrencyEUR, dec("-1"))
	assert.ErrorIs(t, err, ErrInvalidRate)
}

func TestToEUR_UnknownCurrency(t *testing.T) {
	_, err := ToEUR(dec("100"), model.Currency("USD"), dec("25"))
	assert.Error(t, err)
}

func TestSumEUR(t *testing.T) {
	assets := []model.OtherAsset{
		{Type: model.AssetCashEUR, Currency: model.CurrencyEUR, Value: dec("100")},
		{Type: model.AssetCashCZK, Currency: model.CurrencyCZK, Value: dec("2500")},
	}

	total, err := SumEUR(assets, dec("25"))
	require.NoError(t, err)
	assert.True(t, dec("200").Equal(total), "got %s", total)
}

func TestSumEUR_PropagatesError(t *testing.T) {
	assets := []model.OtherAsset{
		{Type: model.AssetCashCZK, Currency: model.CurrencyCZK, Value: dec("2500")},
	}

	_, err := SumEUR(assets, decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidRate)
}
