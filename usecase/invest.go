package usecase

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/transaction"
	"github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/ivanschuetz/capi-core-sub000/domain"
)

// Central application call arguments.
var (
	argInvest   = []byte("invest")
	argLock     = []byte("lock")
	argUnlock   = []byte("unlock")
	argClaim    = []byte("claim")
	argDrain    = []byte("drain")
	argWithdraw = []byte("withdraw")
	argSetup    = []byte("setup")
)

func uint64Arg(v uint64) []byte {
	return binary.BigEndian.AppendUint64(nil, v)
}

type InvestInteractor struct {
	client    NodeClient
	precision domain.Precision
}

func NewInvestInteractor(client NodeClient) *InvestInteractor {
	return &InvestInteractor{
		client:    client,
		precision: domain.DefaultPrecision,
	}
}

type InvestParams struct {
	Dao        *domain.Dao
	Investor   types.Address
	ShareCount domain.ShareAmount
}

// InvestToSign is the composed invest group. The app call and the payment
// await the investor's signature, the share transfer out of the invest
// escrow is already escrow-signed.
type InvestToSign struct {
	Group       *Group
	TotalPrice  domain.FundsAmount
	ClaimedInit domain.FundsAmount
}

// Invest composes the invest group:
//
//	0: app opt-in call, validates the purchase and initializes the
//	   investor's local state (fee payer)
//	1: payment share_price * share_count to the central escrow
//	2: share transfer invest escrow -> locking escrow (escrow-signed)
//
// The local "claimed" state is initialized to the entitlement computed from
// state as of this moment, so later drains don't retroactively grant past
// dividends.
func (interactor *InvestInteractor) Invest(ctx context.Context, params InvestParams) (*InvestToSign, error) {
	if params.ShareCount == 0 {
		return nil, fmt.Errorf("cannot invest in 0 shares")
	}

	suggested, err := interactor.client.SuggestedParams(ctx)
	if err != nil {
		return nil, err
	}

	app, err := interactor.client.ApplicationInformation(ctx, params.Dao.AppId)
	if err != nil {
		return nil, err
	}
	state, err := domain.ParseCentralAppState(app)
	if err != nil {
		return nil, err
	}

	totalPrice, err := domain.TotalPrice(state.SharePrice, params.ShareCount)
	if err != nil {
		return nil, err
	}

	claimedInit, err := domain.CalculateEntitledHarvest(
		state.ReceivedTotal, state.ShareSupply, params.ShareCount, interactor.precision, state.InvestorsPart)
	if err != nil {
		return nil, err
	}

	appCall, err := transaction.MakeApplicationOptInTx(
		params.Dao.AppId,
		[][]byte{argInvest, uint64Arg(claimedInit.Raw())},
		nil,
		nil,
		[]uint64{params.Dao.SharesAssetId},
		suggested,
		params.Investor,
		nil,
		types.Digest{},
		[32]byte{},
		types.ZeroAddress,
	)
	if err != nil {
		return nil, fmt.Errorf("composing invest app call: %w", err)
	}

	payment, err := transaction.MakePaymentTxn(
		params.Investor.String(),
		params.Dao.CentralEscrow.Address.String(),
		totalPrice.Raw(),
		nil,
		"",
		suggested,
	)
	if err != nil {
		return nil, fmt.Errorf("composing share payment: %w", err)
	}

	shareTransfer, err := transaction.MakeAssetTransferTxn(
		params.Dao.InvestEscrow.Address.String(),
		params.Dao.LockingEscrow.Address.String(),
		params.ShareCount.Raw(),
		nil,
		suggested,
		"",
		params.Dao.SharesAssetId,
	)
	if err != nil {
		return nil, fmt.Errorf("composing share transfer: %w", err)
	}

	group := NewGroup(appCall, payment, shareTransfer)
	if err := group.MarkEscrowSigned(2, params.Dao.InvestEscrow); err != nil {
		return nil, err
	}
	if err := group.SetFeePayer(suggested, 0); err != nil {
		return nil, err
	}
	if err := group.Assign(); err != nil {
		return nil, err
	}

	return &InvestToSign{
		Group:       group,
		TotalPrice:  totalPrice,
		ClaimedInit: claimedInit,
	}, nil
}
