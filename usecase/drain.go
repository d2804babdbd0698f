package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/transaction"
	"github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/ivanschuetz/capi-core-sub000/domain"
)

// drainFeeReserve is left in the customer escrow on every drain, headroom so
// the escrow never dips below its minimum balance in a later group.
const drainFeeReserve = minTxnFee

type DrainInteractor struct {
	client NodeClient
}

func NewDrainInteractor(client NodeClient) *DrainInteractor {
	return &DrainInteractor{client: client}
}

// DrainAmounts is the split of the customer escrow's spendable balance.
type DrainAmounts struct {
	Total   domain.FundsAmount
	ToDao   domain.FundsAmount
	CapiFee domain.FundsAmount
}

// FetchDrainAmounts computes what a drain would move right now: the customer
// escrow's balance minus its minimum balance and the fixed reserve, split
// into the dao's part and the capi fee. A balance with nothing to drain
// yields all zeroes, a repeated drain is a no-op, not an error.
func (interactor *DrainInteractor) FetchDrainAmounts(ctx context.Context, customerEscrow types.Address, capiFee domain.SharesPercentage) (*DrainAmounts, error) {
	account, err := interactor.client.AccountInformation(ctx, customerEscrow.String())
	if err != nil {
		return nil, err
	}

	total, err := spendableBalance(account.Amount, account.MinBalance)
	if err != nil {
		return nil, err
	}

	fee, err := capiFee.Apply(total)
	if err != nil {
		return nil, err
	}
	toDao, err := total.Sub(fee)
	if err != nil {
		return nil, err
	}

	return &DrainAmounts{Total: total, ToDao: toDao, CapiFee: fee}, nil
}

func spendableBalance(balance, minBalance uint64) (domain.FundsAmount, error) {
	spendable, err := domain.FundsAmount(balance).Sub(domain.FundsAmount(minBalance))
	if errors.Is(err, domain.ErrorUnderflow) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	spendable, err = spendable.Sub(domain.FundsAmount(drainFeeReserve))
	if errors.Is(err, domain.ErrorUnderflow) {
		return 0, nil
	}
	return spendable, err
}

type DrainParams struct {
	Dao        *domain.Dao
	Drainer    types.Address
	CapiEscrow types.Address
	CapiFee    domain.SharesPercentage
}

type DrainToSign struct {
	Group   *Group
	Amounts DrainAmounts
}

// Drain composes the drain group:
//
//	0: app call recording the received total (fee payer)
//	1: payment customer escrow -> central escrow, dao part (escrow-signed)
//	2: payment customer escrow -> capi escrow, capi fee (escrow-signed)
//
// Both payments are escrow-signed by the customer escrow, the drainer only
// signs and pays for the app call.
func (interactor *DrainInteractor) Drain(ctx context.Context, params DrainParams) (*DrainToSign, error) {
	suggested, err := interactor.client.SuggestedParams(ctx)
	if err != nil {
		return nil, err
	}

	amounts, err := interactor.FetchDrainAmounts(ctx, params.Dao.CustomerEscrow.Address, params.CapiFee)
	if err != nil {
		return nil, err
	}

	appCall, err := transaction.MakeApplicationNoOpTx(
		params.Dao.AppId,
		[][]byte{argDrain, uint64Arg(amounts.ToDao.Raw())},
		nil,
		nil,
		nil,
		suggested,
		params.Drainer,
		nil,
		types.Digest{},
		[32]byte{},
		types.ZeroAddress,
	)
	if err != nil {
		return nil, fmt.Errorf("composing drain app call: %w", err)
	}

	daoPayment, err := transaction.MakePaymentTxn(
		params.Dao.CustomerEscrow.Address.String(),
		params.Dao.CentralEscrow.Address.String(),
		amounts.ToDao.Raw(),
		nil,
		"",
		suggested,
	)
	if err != nil {
		return nil, fmt.Errorf("composing drain payment: %w", err)
	}

	feePayment, err := transaction.MakePaymentTxn(
		params.Dao.CustomerEscrow.Address.String(),
		params.CapiEscrow.String(),
		amounts.CapiFee.Raw(),
		nil,
		"",
		suggested,
	)
	if err != nil {
		return nil, fmt.Errorf("composing capi fee payment: %w", err)
	}

	group := NewGroup(appCall, daoPayment, feePayment)
	if err := group.MarkEscrowSigned(1, params.Dao.CustomerEscrow); err != nil {
		return nil, err
	}
	if err := group.MarkEscrowSigned(2, params.Dao.CustomerEscrow); err != nil {
		return nil, err
	}
	if err := group.SetFeePayer(suggested, 0); err != nil {
		return nil, err
	}
	if err := group.Assign(); err != nil {
		return nil, err
	}

	return &DrainToSign{Group: group, Amounts: *amounts}, nil
}
