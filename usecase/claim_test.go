package usecase

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/algorand/go-algorand-sdk/v2/client/v2/common/models"
	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivanschuetz/capi-core-sub000/domain"
)

func kvUint(key string, value uint64) models.TealKeyValue {
	return models.TealKeyValue{
		Key:   base64.StdEncoding.EncodeToString([]byte(key)),
		Value: models.TealValue{Type: 2, Uint: value},
	}
}

func kvBytes(key string, value []byte) models.TealKeyValue {
	return models.TealKeyValue{
		Key:   base64.StdEncoding.EncodeToString([]byte(key)),
		Value: models.TealValue{Type: 1, Bytes: base64.StdEncoding.EncodeToString(value)},
	}
}

func testGlobalState(t *testing.T, receivedTotal uint64) models.Application {
	t.Helper()
	escrow := testEscrow(t).Address
	owner := crypto.GenerateAccount().Address
	return models.Application{
		Id: 123,
		Params: models.ApplicationParams{
			GlobalState: []models.TealKeyValue{
				kvUint(domain.GlobalKeyReceivedTotal, receivedTotal),
				kvUint(domain.GlobalKeySharesAssetId, 10),
				kvUint(domain.GlobalKeyFundsAssetId, 20),
				kvUint(domain.GlobalKeyShareSupply, 300),
				kvUint(domain.GlobalKeyInvestorsPart, 300),
				kvUint(domain.GlobalKeySharePrice, 1_000_000),
				kvBytes(domain.GlobalKeyCentralEscrow, escrow[:]),
				kvBytes(domain.GlobalKeyCustomerEscrow, escrow[:]),
				kvBytes(domain.GlobalKeyOwner, owner[:]),
				kvBytes(domain.GlobalKeyName, []byte("My Dao")),
			},
		},
	}
}

func testLocalState(shares, claimedTotal uint64) models.AccountApplicationResponse {
	return models.AccountApplicationResponse{
		AppLocalState: models.ApplicationLocalState{
			Id: 123,
			KeyValue: []models.TealKeyValue{
				kvUint(domain.LocalKeyShares, shares),
				kvUint(domain.LocalKeyClaimedTotal, claimedTotal),
				kvUint(domain.LocalKeyClaimedInit, 0),
			},
		},
	}
}

func claimTestNode(t *testing.T, receivedTotal, shares, claimedTotal uint64) *fakeNode {
	t.Helper()
	return &fakeNode{
		appInfo: func(ctx context.Context, appId uint64) (models.Application, error) {
			return testGlobalState(t, receivedTotal), nil
		},
		accountAppInfo: func(ctx context.Context, address string, appId uint64) (models.AccountApplicationResponse, error) {
			return testLocalState(shares, claimedTotal), nil
		},
	}
}

func TestFetchClaimable(t *testing.T) {
	// 10 of 300 shares over 1000 received entitles to 33, 13 already claimed
	node := claimTestNode(t, 1000, 10, 13)

	claimable, err := NewClaimInteractor(node).FetchClaimable(
		context.Background(), 123, crypto.GenerateAccount().Address)
	require.NoError(t, err)
	assert.Equal(t, domain.FundsAmount(20), claimable)
}

func TestFetchClaimableNothingNew(t *testing.T) {
	node := claimTestNode(t, 1000, 10, 33)

	claimable, err := NewClaimInteractor(node).FetchClaimable(
		context.Background(), 123, crypto.GenerateAccount().Address)
	require.NoError(t, err)
	assert.Equal(t, domain.FundsAmount(0), claimable)
}

func TestFetchClaimableOverclaimedState(t *testing.T) {
	node := claimTestNode(t, 1000, 10, 34)

	_, err := NewClaimInteractor(node).FetchClaimable(
		context.Background(), 123, crypto.GenerateAccount().Address)
	assert.ErrorIs(t, err, domain.ErrorUnderflow)
}

func TestFetchClaimableNotOptedIn(t *testing.T) {
	node := &fakeNode{
		appInfo: func(ctx context.Context, appId uint64) (models.Application, error) {
			return testGlobalState(t, 1000), nil
		},
	}

	_, err := NewClaimInteractor(node).FetchClaimable(
		context.Background(), 123, crypto.GenerateAccount().Address)
	assert.ErrorIs(t, err, domain.ErrorNotOptedIn)
}

func TestClaimComposesGroup(t *testing.T) {
	node := claimTestNode(t, 1000, 10, 13)

	dao := testDao(t)
	claimer := crypto.GenerateAccount().Address

	toSign, err := NewClaimInteractor(node).Claim(context.Background(), ClaimParams{
		Dao:     dao,
		Claimer: claimer,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.FundsAmount(20), toSign.Amount)

	group := toSign.Group
	require.Equal(t, 2, group.Size())
	assert.Equal(t, GroupPartiallySigned, group.State())

	appCall, err := group.Txn(0)
	require.NoError(t, err)
	assert.Equal(t, claimer, appCall.Sender)
	assert.NotEqual(t, types.MicroAlgos(0), appCall.Fee)

	payment, err := group.Txn(1)
	require.NoError(t, err)
	assert.Equal(t, claimer, payment.Receiver)
	assert.Equal(t, types.MicroAlgos(20), payment.Amount)
	assert.Equal(t, types.MicroAlgos(0), payment.Fee)
}
