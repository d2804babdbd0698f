package domain

import (
	"fmt"
	"math"
)

// FundsAmount is an amount of the funds asset (the stable asset used to pay
// for shares and to collect income), in base units.
type FundsAmount uint64

// ShareAmount is an amount of a dao's shares asset, in base units.
type ShareAmount uint64

// CapiAssetAmount is an amount of the capi token, in base units.
type CapiAssetAmount uint64

// Precision is the integer scaling factor used to emulate fixed point
// fractions in the integer-only TEAL VM. It must match the value compiled
// into the contracts, the computations here replicate their exact
// floor behavior.
type Precision uint64

// DefaultPrecision is the scaling factor compiled into the v1 contracts.
const DefaultPrecision Precision = 10_000

func checkedAdd(a, b uint64) (uint64, error) {
	sum := a + b
	if sum < a {
		return 0, fmt.Errorf("%w: %v + %v", ErrorOverflow, a, b)
	}
	return sum, nil
}

func checkedSub(a, b uint64) (uint64, error) {
	if b > a {
		return 0, fmt.Errorf("%w: %v - %v", ErrorUnderflow, a, b)
	}
	return a - b, nil
}

func checkedMul(a, b uint64) (uint64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if a > math.MaxUint64/b {
		return 0, fmt.Errorf("%w: %v * %v", ErrorOverflow, a, b)
	}
	return a * b, nil
}

func (a FundsAmount) Add(o FundsAmount) (FundsAmount, error) {
	res, err := checkedAdd(uint64(a), uint64(o))
	return FundsAmount(res), err
}

func (a FundsAmount) Sub(o FundsAmount) (FundsAmount, error) {
	res, err := checkedSub(uint64(a), uint64(o))
	return FundsAmount(res), err
}

func (a FundsAmount) Raw() uint64 {
	return uint64(a)
}

func (a ShareAmount) Add(o ShareAmount) (ShareAmount, error) {
	res, err := checkedAdd(uint64(a), uint64(o))
	return ShareAmount(res), err
}

func (a ShareAmount) Sub(o ShareAmount) (ShareAmount, error) {
	res, err := checkedSub(uint64(a), uint64(o))
	return ShareAmount(res), err
}

func (a ShareAmount) Raw() uint64 {
	return uint64(a)
}

func (a CapiAssetAmount) Add(o CapiAssetAmount) (CapiAssetAmount, error) {
	res, err := checkedAdd(uint64(a), uint64(o))
	return CapiAssetAmount(res), err
}

func (a CapiAssetAmount) Sub(o CapiAssetAmount) (CapiAssetAmount, error) {
	res, err := checkedSub(uint64(a), uint64(o))
	return CapiAssetAmount(res), err
}

func (a CapiAssetAmount) Raw() uint64 {
	return uint64(a)
}

// TotalPrice is the payment required to buy count shares at price each.
// Checked, a price overflowing uint64 must fail loudly rather than wrap
// into a smaller payment.
func TotalPrice(price FundsAmount, count ShareAmount) (FundsAmount, error) {
	res, err := checkedMul(price.Raw(), count.Raw())
	return FundsAmount(res), err
}
