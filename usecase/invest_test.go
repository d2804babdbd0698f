package usecase

import (
	"context"
	"testing"

	"github.com/algorand/go-algorand-sdk/v2/client/v2/common/models"
	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivanschuetz/capi-core-sub000/domain"
)

func TestInvestComposesGroup(t *testing.T) {
	node := &fakeNode{
		appInfo: func(ctx context.Context, appId uint64) (models.Application, error) {
			return testGlobalState(t, 0), nil
		},
	}

	dao := testDao(t)
	investor := crypto.GenerateAccount().Address

	toSign, err := NewInvestInteractor(node).Invest(context.Background(), InvestParams{
		Dao:        dao,
		Investor:   investor,
		ShareCount: 5,
	})
	require.NoError(t, err)

	// 5 shares at 1 algo each, nothing received yet so claimed starts at 0
	assert.Equal(t, domain.FundsAmount(5_000_000), toSign.TotalPrice)
	assert.Equal(t, domain.FundsAmount(0), toSign.ClaimedInit)

	group := toSign.Group
	require.Equal(t, 3, group.Size())
	assert.Equal(t, GroupPartiallySigned, group.State())

	indices, _, err := group.PendingUserSlots()
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, indices)

	appCall, err := group.Txn(0)
	require.NoError(t, err)
	assert.Equal(t, investor, appCall.Sender)
	assert.NotEqual(t, types.MicroAlgos(0), appCall.Fee)

	payment, err := group.Txn(1)
	require.NoError(t, err)
	assert.Equal(t, dao.CentralEscrow.Address, payment.Receiver)
	assert.Equal(t, types.MicroAlgos(5_000_000), payment.Amount)

	shareTransfer, err := group.Txn(2)
	require.NoError(t, err)
	assert.Equal(t, dao.InvestEscrow.Address, shareTransfer.Sender)
	assert.Equal(t, dao.LockingEscrow.Address, shareTransfer.AssetReceiver)
	assert.Equal(t, uint64(5), shareTransfer.AssetAmount)
	assert.Equal(t, types.AssetIndex(dao.SharesAssetId), shareTransfer.XferAsset)
}

func TestInvestClaimedInitTracksReceivedTotal(t *testing.T) {
	// 1000 received over 300 shares, buying 10 seeds claimed at 33
	node := &fakeNode{
		appInfo: func(ctx context.Context, appId uint64) (models.Application, error) {
			return testGlobalState(t, 1000), nil
		},
	}

	toSign, err := NewInvestInteractor(node).Invest(context.Background(), InvestParams{
		Dao:        testDao(t),
		Investor:   crypto.GenerateAccount().Address,
		ShareCount: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.FundsAmount(33), toSign.ClaimedInit)
}

func TestInvestRejectsZeroShares(t *testing.T) {
	_, err := NewInvestInteractor(&fakeNode{}).Invest(context.Background(), InvestParams{
		Dao:        testDao(t),
		Investor:   crypto.GenerateAccount().Address,
		ShareCount: 0,
	})
	require.Error(t, err)
}
