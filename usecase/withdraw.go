package usecase

import (
	"context"
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/transaction"
	"github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/ivanschuetz/capi-core-sub000/domain"
)

type WithdrawInteractor struct {
	client NodeClient
}

func NewWithdrawInteractor(client NodeClient) *WithdrawInteractor {
	return &WithdrawInteractor{client: client}
}

type WithdrawParams struct {
	Dao    *domain.Dao
	Owner  types.Address
	Amount domain.FundsAmount
}

type WithdrawToSign struct {
	Group *Group
}

// Withdraw composes the owner withdrawal group:
//
//	0: app call authorizing the withdrawal, only the owner passes (fee payer)
//	1: payment central escrow -> owner (escrow-signed)
func (interactor *WithdrawInteractor) Withdraw(ctx context.Context, params WithdrawParams) (*WithdrawToSign, error) {
	if params.Amount == 0 {
		return nil, fmt.Errorf("cannot withdraw 0")
	}

	suggested, err := interactor.client.SuggestedParams(ctx)
	if err != nil {
		return nil, err
	}

	appCall, err := transaction.MakeApplicationNoOpTx(
		params.Dao.AppId,
		[][]byte{argWithdraw, uint64Arg(params.Amount.Raw())},
		nil,
		nil,
		nil,
		suggested,
		params.Owner,
		nil,
		types.Digest{},
		[32]byte{},
		types.ZeroAddress,
	)
	if err != nil {
		return nil, fmt.Errorf("composing withdraw app call: %w", err)
	}

	payment, err := transaction.MakePaymentTxn(
		params.Dao.CentralEscrow.Address.String(),
		params.Owner.String(),
		params.Amount.Raw(),
		nil,
		"",
		suggested,
	)
	if err != nil {
		return nil, fmt.Errorf("composing withdraw payment: %w", err)
	}

	group := NewGroup(appCall, payment)
	if err := group.MarkEscrowSigned(1, params.Dao.CentralEscrow); err != nil {
		return nil, err
	}
	if err := group.SetFeePayer(suggested, 0); err != nil {
		return nil, err
	}
	if err := group.Assign(); err != nil {
		return nil, err
	}

	return &WithdrawToSign{Group: group}, nil
}
