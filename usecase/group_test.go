package usecase

import (
	"testing"

	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/transaction"
	"github.com/algorand/go-algorand-sdk/v2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivanschuetz/capi-core-sub000/domain"
)

// smallest program the signer accepts: version 6, pushint 1
var testEscrowProgram = []byte{0x06, 0x81, 0x01}

func testEscrow(t *testing.T) domain.Escrow {
	t.Helper()
	addr := crypto.AddressFromProgram(testEscrowProgram)
	return domain.Escrow{Address: addr, Program: testEscrowProgram}
}

func TestSetFeePayerAggregatesOntoOneSlot(t *testing.T) {
	params := testSuggestedParams(true, 1000)
	group := NewGroup(
		testPayment(t, params, 1),
		testPayment(t, params, 2),
		testPayment(t, params, 3),
	)

	require.NoError(t, group.SetFeePayer(params, 0))

	payer, err := group.Txn(0)
	require.NoError(t, err)
	assert.Equal(t, types.MicroAlgos(3000), payer.Fee)

	for i := 1; i < group.Size(); i++ {
		txn, err := group.Txn(i)
		require.NoError(t, err)
		assert.Equal(t, types.MicroAlgos(0), txn.Fee)
	}
}

func TestEmptyGroupCannotBeAssigned(t *testing.T) {
	group := NewGroup()

	assert.ErrorIs(t, group.Assign(), ErrorGroupEmpty)

	// never assigned, so the first-slot accessor bails out before indexing
	_, err := group.FirstTxId()
	assert.ErrorIs(t, err, ErrorGroupNotAssigned)
}

func TestGroupFrozenAfterAssign(t *testing.T) {
	params := testSuggestedParams(true, 1000)
	group := NewGroup(testPayment(t, params, 1))

	require.NoError(t, group.Assign())

	assert.ErrorIs(t, group.SetFeePayer(params, 0), ErrorGroupFrozen)
	assert.ErrorIs(t, group.MarkEscrowSigned(0, testEscrow(t)), ErrorGroupFrozen)
	assert.ErrorIs(t, group.Assign(), ErrorGroupFrozen)
}

func TestAssignSetsGroupIdOnAllSlots(t *testing.T) {
	params := testSuggestedParams(true, 1000)
	group := NewGroup(testPayment(t, params, 1), testPayment(t, params, 2))

	require.NoError(t, group.Assign())

	first, err := group.Txn(0)
	require.NoError(t, err)
	second, err := group.Txn(1)
	require.NoError(t, err)

	assert.NotEqual(t, types.Digest{}, first.Group)
	assert.Equal(t, first.Group, second.Group)
}

func TestEscrowSlotsSignedOnAssign(t *testing.T) {
	params := testSuggestedParams(true, 1000)
	account := crypto.GenerateAccount()
	escrow := testEscrow(t)

	userTxn, err := transaction.MakePaymentTxn(
		account.Address.String(), escrow.Address.String(), 1, nil, "", params)
	require.NoError(t, err)

	group := NewGroup(userTxn, testPayment(t, params, 2))
	require.NoError(t, group.MarkEscrowSigned(1, escrow))
	require.NoError(t, group.Assign())

	assert.Equal(t, GroupPartiallySigned, group.State())

	indices, pending, err := group.PendingUserSlots()
	require.NoError(t, err)
	require.Equal(t, []int{0}, indices)
	require.Len(t, pending, 1)

	txId, raw, err := crypto.SignTransaction(account.PrivateKey, pending[0])
	require.NoError(t, err)

	require.NoError(t, group.ProvideUserSignature(0, domain.SignedTxn{TxId: txId, Raw: raw}))
	assert.Equal(t, GroupFullySigned, group.State())

	blob, err := group.Raw()
	require.NoError(t, err)
	assert.NotEmpty(t, blob)
}

func TestProvideUserSignatureRejectsWrongTransaction(t *testing.T) {
	params := testSuggestedParams(true, 1000)
	account := crypto.GenerateAccount()

	group := NewGroup(testPayment(t, params, 1))
	require.NoError(t, group.Assign())

	// a signature over some other transaction must be rejected
	other := testPayment(t, params, 99)
	txId, raw, err := crypto.SignTransaction(account.PrivateKey, other)
	require.NoError(t, err)

	err = group.ProvideUserSignature(0, domain.SignedTxn{TxId: txId, Raw: raw})
	assert.ErrorIs(t, err, ErrorSignatureMismatch)
}

func TestProvideUserSignatureRejectsEscrowSlot(t *testing.T) {
	params := testSuggestedParams(true, 1000)
	group := NewGroup(testPayment(t, params, 1))
	require.NoError(t, group.MarkEscrowSigned(0, testEscrow(t)))
	require.NoError(t, group.Assign())

	err := group.ProvideUserSignature(0, domain.SignedTxn{TxId: "x", Raw: []byte{1}})
	assert.ErrorIs(t, err, ErrorSlotNotUserSigned)
}

func TestRawRequiresFullSignatures(t *testing.T) {
	params := testSuggestedParams(true, 1000)
	group := NewGroup(testPayment(t, params, 1))
	require.NoError(t, group.Assign())

	_, err := group.Raw()
	assert.ErrorIs(t, err, ErrorGroupNotFullySigned)
}

func TestFirstTxIdBeforeAssignFails(t *testing.T) {
	params := testSuggestedParams(true, 1000)
	group := NewGroup(testPayment(t, params, 1))

	_, err := group.FirstTxId()
	assert.ErrorIs(t, err, ErrorGroupNotAssigned)
}

func TestFirstTxIdMatchesFirstSlot(t *testing.T) {
	params := testSuggestedParams(true, 1000)
	group := NewGroup(testPayment(t, params, 1), testPayment(t, params, 2))
	require.NoError(t, group.Assign())

	first, err := group.Txn(0)
	require.NoError(t, err)

	txId, err := group.FirstTxId()
	require.NoError(t, err)
	assert.Equal(t, crypto.GetTxID(first), txId)
}
