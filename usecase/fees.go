package usecase

import (
	"fmt"
	"math"

	"github.com/algorand/go-algorand-sdk/v2/transaction"
	"github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/ivanschuetz/capi-core-sub000/domain"
)

// fallback when the suggested params carry no min fee
const minTxnFee = transaction.MinTxnFee

// EstimateFee computes the fee one transaction would individually need under
// the given network parameters.
func EstimateFee(params types.SuggestedParams, txn types.Transaction) (domain.FundsAmount, error) {
	if params.FlatFee {
		return domain.FundsAmount(params.Fee), nil
	}

	size, err := transaction.EstimateSize(txn)
	if err != nil {
		return 0, fmt.Errorf("estimating transaction size: %w", err)
	}

	perByte := uint64(params.Fee)
	if size != 0 && perByte > math.MaxUint64/size {
		return 0, fmt.Errorf("%w: fee per byte %v * size %v", domain.ErrorOverflow, perByte, size)
	}
	fee := perByte * size

	minFee := params.MinFee
	if minFee == 0 {
		minFee = minTxnFee
	}
	if fee < minFee {
		fee = minFee
	}
	return domain.FundsAmount(fee), nil
}

// AggregateFees sums the estimated fees of every transaction in the set.
// The caller assigns the total to the designated fee payer so the network
// accepts the sibling zero-fee transactions, a group is valid as long as its
// pooled fees cover every member's minimum.
func AggregateFees(params types.SuggestedParams, txns []*types.Transaction) (domain.FundsAmount, error) {
	total := domain.FundsAmount(0)
	for _, txn := range txns {
		fee, err := EstimateFee(params, *txn)
		if err != nil {
			return 0, err
		}
		total, err = total.Add(fee)
		if err != nil {
			return 0, err
		}
	}
	return total, nil
}
