package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFundsAmountCheckedAdd(t *testing.T) {
	sum, err := FundsAmount(1).Add(FundsAmount(2))
	require.NoError(t, err)
	assert.Equal(t, FundsAmount(3), sum)

	_, err = FundsAmount(math.MaxUint64).Add(FundsAmount(1))
	require.ErrorIs(t, err, ErrorOverflow)
	// the error names both operands
	assert.Contains(t, err.Error(), "18446744073709551615")
}

func TestFundsAmountCheckedSub(t *testing.T) {
	diff, err := FundsAmount(3).Sub(FundsAmount(2))
	require.NoError(t, err)
	assert.Equal(t, FundsAmount(1), diff)

	_, err = FundsAmount(2).Sub(FundsAmount(3))
	require.ErrorIs(t, err, ErrorUnderflow)
}

func TestShareAmountChecked(t *testing.T) {
	sum, err := ShareAmount(10).Add(ShareAmount(20))
	require.NoError(t, err)
	assert.Equal(t, ShareAmount(30), sum)

	_, err = ShareAmount(0).Sub(ShareAmount(1))
	require.ErrorIs(t, err, ErrorUnderflow)

	_, err = ShareAmount(math.MaxUint64).Add(ShareAmount(math.MaxUint64))
	require.ErrorIs(t, err, ErrorOverflow)
}

func TestCapiAssetAmountChecked(t *testing.T) {
	sum, err := CapiAssetAmount(5).Add(CapiAssetAmount(7))
	require.NoError(t, err)
	assert.Equal(t, CapiAssetAmount(12), sum)

	_, err = CapiAssetAmount(1).Sub(CapiAssetAmount(2))
	require.ErrorIs(t, err, ErrorUnderflow)
}

func TestTotalPrice(t *testing.T) {
	total, err := TotalPrice(FundsAmount(1_000), ShareAmount(25))
	require.NoError(t, err)
	assert.Equal(t, FundsAmount(25_000), total)

	total, err = TotalPrice(FundsAmount(1_000), ShareAmount(0))
	require.NoError(t, err)
	assert.Equal(t, FundsAmount(0), total)

	_, err = TotalPrice(FundsAmount(math.MaxUint64), ShareAmount(2))
	require.ErrorIs(t, err, ErrorOverflow)
}
