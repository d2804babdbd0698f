package domain

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSharesPercentageRange(t *testing.T) {
	for _, valid := range []string{"0", "1", "0.4", "0.0001", "0.999999"} {
		_, err := SharesPercentageFromString(valid)
		assert.NoError(t, err, valid)
	}

	for _, invalid := range []string{"-0.1", "1.0001", "2", "-1"} {
		_, err := SharesPercentageFromString(invalid)
		assert.ErrorIs(t, err, ErrorInvalidPercentage, invalid)
	}

	_, err := SharesPercentageFromString("not a number")
	assert.Error(t, err)
}

func TestSharesPercentageApplyFloors(t *testing.T) {
	pct, err := SharesPercentageFromString("0.01")
	require.NoError(t, err)

	// 0.01 * 899 = 8.99, the contract floors
	applied, err := pct.Apply(FundsAmount(899))
	require.NoError(t, err)
	assert.Equal(t, FundsAmount(8), applied)

	applied, err = pct.Apply(FundsAmount(0))
	require.NoError(t, err)
	assert.Equal(t, FundsAmount(0), applied)
}

func TestSplitShares(t *testing.T) {
	pct, err := SharesPercentageFromString("0.4")
	require.NoError(t, err)

	creator, investors, err := SplitShares(ShareAmount(1000), pct)
	require.NoError(t, err)
	assert.Equal(t, ShareAmount(600), creator)
	assert.Equal(t, ShareAmount(400), investors)
}

func TestSplitSharesNeverLosesUnits(t *testing.T) {
	// creator + investors == supply must hold exactly for any percentage,
	// including ones whose product doesn't land on an integer.
	supplies := []uint64{1, 3, 7, 100, 101, 999, 1_000_000_007}
	percentages := []string{"0", "0.1", "0.25", "0.333333", "0.5", "0.666667", "0.9999", "1"}

	for _, supply := range supplies {
		for _, p := range percentages {
			t.Run(fmt.Sprintf("%v_%v", supply, p), func(t *testing.T) {
				pct, err := SharesPercentageFromString(p)
				require.NoError(t, err)

				creator, investors, err := SplitShares(ShareAmount(supply), pct)
				require.NoError(t, err)

				sum, err := creator.Add(investors)
				require.NoError(t, err)
				assert.Equal(t, ShareAmount(supply), sum)
			})
		}
	}
}

func TestNewSharesPercentageDecimal(t *testing.T) {
	_, err := NewSharesPercentage(decimal.NewFromFloat(0.5))
	assert.NoError(t, err)

	_, err = NewSharesPercentage(decimal.NewFromFloat(1.5))
	assert.ErrorIs(t, err, ErrorInvalidPercentage)
}
