package domain

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// SharesPercentage is a fraction in the closed interval [0, 1]. It can only
// be obtained through the fallible constructors, so holding one is proof the
// value is in range.
type SharesPercentage struct {
	value decimal.Decimal
}

func NewSharesPercentage(d decimal.Decimal) (SharesPercentage, error) {
	if d.IsNegative() || d.GreaterThan(decimal.NewFromInt(1)) {
		return SharesPercentage{}, fmt.Errorf("%w: %v", ErrorInvalidPercentage, d)
	}
	return SharesPercentage{value: d}, nil
}

func SharesPercentageFromString(s string) (SharesPercentage, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return SharesPercentage{}, fmt.Errorf("parsing percentage %q: %w", s, err)
	}
	return NewSharesPercentage(d)
}

func (p SharesPercentage) Value() decimal.Decimal {
	return p.value
}

func (p SharesPercentage) String() string {
	return p.value.String()
}

// Apply floors amount * p. Floor, not round, to match the contracts.
func (p SharesPercentage) Apply(amount FundsAmount) (FundsAmount, error) {
	res := decimal.NewFromBigInt(new(big.Int).SetUint64(amount.Raw()), 0).
		Mul(p.value).
		Floor()
	return fundsAmountFromDecimal(res)
}

func fundsAmountFromDecimal(d decimal.Decimal) (FundsAmount, error) {
	i := d.BigInt()
	if !i.IsUint64() {
		return 0, fmt.Errorf("%w: %v does not fit in a funds amount", ErrorOverflow, d)
	}
	return FundsAmount(i.Uint64()), nil
}

// SplitShares partitions the share supply between the creator and the
// investors. The investors' part is floored, the creator keeps the
// remainder, so creator + investors == supply always holds exactly.
func SplitShares(supply ShareAmount, investorsPercentage SharesPercentage) (creator, investors ShareAmount, err error) {
	investorsDec := decimal.NewFromBigInt(new(big.Int).SetUint64(supply.Raw()), 0).
		Mul(investorsPercentage.Value()).
		Floor()

	i := investorsDec.BigInt()
	if !i.IsUint64() {
		return 0, 0, fmt.Errorf("%w: investors part %v of supply %v", ErrorOverflow, investorsDec, supply)
	}
	investors = ShareAmount(i.Uint64())

	creator, err = supply.Sub(investors)
	if err != nil {
		return 0, 0, err
	}
	return creator, investors, nil
}
