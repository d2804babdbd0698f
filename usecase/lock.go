package usecase

import (
	"context"
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/transaction"
	"github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/ivanschuetz/capi-core-sub000/domain"
)

type LockInteractor struct {
	client    NodeClient
	precision domain.Precision
}

func NewLockInteractor(client NodeClient) *LockInteractor {
	return &LockInteractor{
		client:    client,
		precision: domain.DefaultPrecision,
	}
}

type LockParams struct {
	Dao        *domain.Dao
	Investor   types.Address
	ShareCount domain.ShareAmount
}

type LockToSign struct {
	Group       *Group
	ClaimedInit domain.FundsAmount
}

// Lock composes the lock group for shares the investor already holds:
//
//	0: app opt-in call initializing local state (fee payer)
//	1: share transfer investor -> locking escrow
//
// Both transactions are signed by the investor. Like invest, the claimed
// state starts at the entitlement as of now.
func (interactor *LockInteractor) Lock(ctx context.Context, params LockParams) (*LockToSign, error) {
	if params.ShareCount == 0 {
		return nil, fmt.Errorf("cannot lock 0 shares")
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

	claimedInit, err := domain.CalculateEntitledHarvest(
		state.ReceivedTotal, state.ShareSupply, params.ShareCount, interactor.precision, state.InvestorsPart)
	if err != nil {
		return nil, err
	}

	appCall, err := transaction.MakeApplicationOptInTx(
		params.Dao.AppId,
		[][]byte{argLock, uint64Arg(claimedInit.Raw())},
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
		return nil, fmt.Errorf("composing lock app call: %w", err)
	}

	shareTransfer, err := transaction.MakeAssetTransferTxn(
		params.Investor.String(),
		params.Dao.LockingEscrow.Address.String(),
		params.ShareCount.Raw(),
		nil,
		suggested,
		"",
		params.Dao.SharesAssetId,
	)
	if err != nil {
		return nil, fmt.Errorf("composing lock share transfer: %w", err)
	}

	group := NewGroup(appCall, shareTransfer)
	if err := group.SetFeePayer(suggested, 0); err != nil {
		return nil, err
	}
	if err := group.Assign(); err != nil {
		return nil, err
	}

	return &LockToSign{Group: group, ClaimedInit: claimedInit}, nil
}

type UnlockParams struct {
	Dao      *domain.Dao
	Investor types.Address
}

type UnlockToSign struct {
	Group      *Group
	ShareCount domain.ShareAmount
}

// Unlock composes the unlock group:
//
//	0: app close-out call clearing the investor's local state (fee payer)
//	1: share transfer locking escrow -> investor of everything locked
//	   (escrow-signed)
func (interactor *LockInteractor) Unlock(ctx context.Context, params UnlockParams) (*UnlockToSign, error) {
	suggested, err := interactor.client.SuggestedParams(ctx)
	if err != nil {
		return nil, err
	}

	info, err := interactor.client.AccountApplicationInformation(ctx, params.Investor.String(), params.Dao.AppId)
	if err != nil {
		return nil, err
	}
	local, err := domain.ParseInvestorState(info)
	if err != nil {
		return nil, err
	}

	appCall, err := transaction.MakeApplicationCloseOutTx(
		params.Dao.AppId,
		[][]byte{argUnlock},
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
		return nil, fmt.Errorf("composing unlock app call: %w", err)
	}

	shareTransfer, err := transaction.MakeAssetTransferTxn(
		params.Dao.LockingEscrow.Address.String(),
		params.Investor.String(),
		local.Shares.Raw(),
		nil,
		suggested,
		"",
		params.Dao.SharesAssetId,
	)
	if err != nil {
		return nil, fmt.Errorf("composing unlock share transfer: %w", err)
	}

	group := NewGroup(appCall, shareTransfer)
	if err := group.MarkEscrowSigned(1, params.Dao.LockingEscrow); err != nil {
		return nil, err
	}
	if err := group.SetFeePayer(suggested, 0); err != nil {
		return nil, err
	}
	if err := group.Assign(); err != nil {
		return nil, err
	}

	return &UnlockToSign{Group: group, ShareCount: local.Shares}, nil
}
