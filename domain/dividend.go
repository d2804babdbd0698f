package domain

import (
	"fmt"
	"math/big"
)

// CalculateEntitledHarvest computes the total dividend an investor holding
// ownedShares is entitled to out of receivedTotal, before subtracting what
// was already claimed.
//
// The order of operations and the two floor points replicate the TEAL
// contract exactly. Intermediate values are exact rationals, the contract's
// rounding must be the only rounding that happens here.
func CalculateEntitledHarvest(
	receivedTotal FundsAmount,
	shareSupply ShareAmount,
	ownedShares ShareAmount,
	precision Precision,
	investorsPart ShareAmount,
) (FundsAmount, error) {
	if shareSupply == 0 {
		return 0, fmt.Errorf("%w: share supply is 0", ErrorDivisionByZero)
	}

	// owned * precision, the contract does this multiplication in uint64.
	mul1, err := checkedMul(ownedShares.Raw(), uint64(precision))
	if err != nil {
		return 0, err
	}

	supply := new(big.Rat).SetUint64(shareSupply.Raw())

	// investors' fractional percentage of the supply, exact rational.
	fractional := new(big.Rat).Quo(new(big.Rat).SetUint64(investorsPart.Raw()), supply)

	percentageMulPrecision := new(big.Rat).Mul(fractional, new(big.Rat).SetUint64(uint64(precision)))

	mul2 := new(big.Rat).Mul(new(big.Rat).SetUint64(mul1), percentageMulPrecision)

	// First floor point.
	entitledPercentage := ratFloor(new(big.Rat).Quo(mul2, supply))

	mul3 := new(big.Rat).Mul(
		new(big.Rat).SetUint64(receivedTotal.Raw()),
		new(big.Rat).SetInt(entitledPercentage),
	)

	precisionSquare, err := checkedMul(uint64(precision), uint64(precision))
	if err != nil {
		return 0, err
	}

	// Second floor point.
	entitledTotal := ratFloor(new(big.Rat).Quo(mul3, new(big.Rat).SetUint64(precisionSquare)))

	if !entitledTotal.IsUint64() {
		return 0, fmt.Errorf("%w: entitled total %v", ErrorOverflow, entitledTotal)
	}
	return FundsAmount(entitledTotal.Uint64()), nil
}

// ClaimableDividend is the additional amount claimable now: the full
// entitlement minus what was already claimed. alreadyClaimed exceeding the
// entitlement means broken sequencing upstream and fails explicitly.
func ClaimableDividend(
	receivedTotal FundsAmount,
	alreadyClaimed FundsAmount,
	shareSupply ShareAmount,
	ownedShares ShareAmount,
	precision Precision,
	investorsPart ShareAmount,
) (FundsAmount, error) {
	entitled, err := CalculateEntitledHarvest(receivedTotal, shareSupply, ownedShares, precision, investorsPart)
	if err != nil {
		return 0, err
	}
	return entitled.Sub(alreadyClaimed)
}

func ratFloor(r *big.Rat) *big.Int {
	// Quo truncates toward zero, all inputs here are non-negative so this
	// is a floor.
	return new(big.Int).Quo(r.Num(), r.Denom())
}
