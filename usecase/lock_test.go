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

func TestLockComposesGroup(t *testing.T) {
	node := &fakeNode{
		appInfo: func(ctx context.Context, appId uint64) (models.Application, error) {
			return testGlobalState(t, 1000), nil
		},
	}

	dao := testDao(t)
	investor := crypto.GenerateAccount().Address

	toSign, err := NewLockInteractor(node).Lock(context.Background(), LockParams{
		Dao:        dao,
		Investor:   investor,
		ShareCount: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.FundsAmount(33), toSign.ClaimedInit)

	group := toSign.Group
	require.Equal(t, 2, group.Size())

	// both slots are the investor's, nothing is escrow-signed
	indices, _, err := group.PendingUserSlots()
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, indices)

	shareTransfer, err := group.Txn(1)
	require.NoError(t, err)
	assert.Equal(t, investor, shareTransfer.Sender)
	assert.Equal(t, dao.LockingEscrow.Address, shareTransfer.AssetReceiver)
	assert.Equal(t, uint64(10), shareTransfer.AssetAmount)
}

func TestLockRejectsZeroShares(t *testing.T) {
	_, err := NewLockInteractor(&fakeNode{}).Lock(context.Background(), LockParams{
		Dao:        testDao(t),
		Investor:   crypto.GenerateAccount().Address,
		ShareCount: 0,
	})
	require.Error(t, err)
}

func TestUnlockReturnsAllLockedShares(t *testing.T) {
	node := &fakeNode{
		accountAppInfo: func(ctx context.Context, address string, appId uint64) (models.AccountApplicationResponse, error) {
			return testLocalState(25, 0), nil
		},
	}

	dao := testDao(t)
	investor := crypto.GenerateAccount().Address

	toSign, err := NewLockInteractor(node).Unlock(context.Background(), UnlockParams{
		Dao:      dao,
		Investor: investor,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.ShareAmount(25), toSign.ShareCount)

	group := toSign.Group
	require.Equal(t, 2, group.Size())
	assert.Equal(t, GroupPartiallySigned, group.State())

	shareTransfer, err := group.Txn(1)
	require.NoError(t, err)
	assert.Equal(t, dao.LockingEscrow.Address, shareTransfer.Sender)
	assert.Equal(t, investor, shareTransfer.AssetReceiver)
	assert.Equal(t, uint64(25), shareTransfer.AssetAmount)
	assert.Equal(t, types.MicroAlgos(0), shareTransfer.Fee)
}

func TestUnlockRequiresOptIn(t *testing.T) {
	_, err := NewLockInteractor(&fakeNode{}).Unlock(context.Background(), UnlockParams{
		Dao:      testDao(t),
		Investor: crypto.GenerateAccount().Address,
	})
	assert.ErrorIs(t, err, domain.ErrorNotOptedIn)
}
