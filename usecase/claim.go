package usecase

import (
	"context"
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/transaction"
	"github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/ivanschuetz/capi-core-sub000/domain"
)

// ClaimInteractor covers both dao dividend claims and capi token fee
// harvests: the flows were parameterized into one, the inputs (app id,
// paying escrow, share figures) are what differ.
type ClaimInteractor struct {
	client    NodeClient
	precision domain.Precision
}

func NewClaimInteractor(client NodeClient) *ClaimInteractor {
	return &ClaimInteractor{
		client:    client,
		precision: domain.DefaultPrecision,
	}
}

// FetchClaimable reads fresh global and local state and computes the
// additional amount the claimer may withdraw now. Zero is a valid result, a
// claimer with no new income since the last claim gets exactly 0.
func (interactor *ClaimInteractor) FetchClaimable(ctx context.Context, appId uint64, claimer types.Address) (domain.FundsAmount, error) {
	app, err := interactor.client.ApplicationInformation(ctx, appId)
	if err != nil {
		return 0, err
	}
	state, err := domain.ParseCentralAppState(app)
	if err != nil {
		return 0, err
	}

	info, err := interactor.client.AccountApplicationInformation(ctx, claimer.String(), appId)
	if err != nil {
		return 0, err
	}
	local, err := domain.ParseInvestorState(info)
	if err != nil {
		return 0, err
	}

	return domain.ClaimableDividend(
		state.ReceivedTotal, local.ClaimedTotal, state.ShareSupply, local.Shares, interactor.precision, state.InvestorsPart)
}

type ClaimParams struct {
	Dao     *domain.Dao
	Claimer types.Address
}

type ClaimToSign struct {
	Group  *Group
	Amount domain.FundsAmount
}

// Claim composes the claim group:
//
//	0: app call bumping the claimer's claimed total (fee payer)
//	1: payment central escrow -> claimer of exactly the entitlement delta
//	   (escrow-signed)
//
// The contract verifies the transferred amount against the same arithmetic,
// so claiming entitlement + 1 is rejected as a whole group.
func (interactor *ClaimInteractor) Claim(ctx context.Context, params ClaimParams) (*ClaimToSign, error) {
	suggested, err := interactor.client.SuggestedParams(ctx)
	if err != nil {
		return nil, err
	}

	amount, err := interactor.FetchClaimable(ctx, params.Dao.AppId, params.Claimer)
	if err != nil {
		return nil, err
	}

	appCall, err := transaction.MakeApplicationNoOpTx(
		params.Dao.AppId,
		[][]byte{argClaim},
		nil,
		nil,
		nil,
		suggested,
		params.Claimer,
		nil,
		types.Digest{},
		[32]byte{},
		types.ZeroAddress,
	)
	if err != nil {
		return nil, fmt.Errorf("composing claim app call: %w", err)
	}

	payment, err := transaction.MakePaymentTxn(
		params.Dao.CentralEscrow.Address.String(),
		params.Claimer.String(),
		amount.Raw(),
		nil,
		"",
		suggested,
	)
	if err != nil {
		return nil, fmt.Errorf("composing claim payment: %w", err)
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

	return &ClaimToSign{Group: group, Amount: amount}, nil
}
