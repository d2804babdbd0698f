package usecase

import (
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/ivanschuetz/capi-core-sub000/domain"
	"github.com/ivanschuetz/capi-core-sub000/infrastructure/teal"
)

// GroupState tracks the lifecycle of an atomic group:
// composed -> assigned -> partially signed -> fully signed -> submitted.
type GroupState int

const (
	GroupComposed GroupState = iota
	GroupAssigned
	GroupPartiallySigned
	GroupFullySigned
	GroupSubmitted
)

var (
	ErrorGroupEmpty          = fmt.Errorf("group has no transactions")
	ErrorGroupFrozen         = fmt.Errorf("group id already assigned, the transaction set is frozen")
	ErrorGroupNotAssigned    = fmt.Errorf("group id not assigned yet")
	ErrorGroupNotFullySigned = fmt.Errorf("group is not fully signed")
	ErrorSignatureMismatch   = fmt.Errorf("signature does not belong to this transaction")
	ErrorSlotOutOfRange      = fmt.Errorf("slot index out of range")
	ErrorSlotNotUserSigned   = fmt.Errorf("slot is escrow-signed, not expecting a user signature")
)

type slot struct {
	txn    types.Transaction
	escrow *domain.Escrow
	signed *domain.SignedTxn
}

// Group is an ordered set of transactions sharing one atomic group id.
// Until Assign is called the set is mutable (fees can still be finalized),
// afterwards every mutator fails: the group id is a hash over the
// transactions and signing covers it, so any change would invalidate all
// signatures.
type Group struct {
	state GroupState
	slots []slot
}

func NewGroup(txns ...types.Transaction) *Group {
	slots := make([]slot, len(txns))
	for i, txn := range txns {
		slots[i] = slot{txn: txn}
	}
	return &Group{state: GroupComposed, slots: slots}
}

func (g *Group) State() GroupState {
	return g.state
}

func (g *Group) Size() int {
	return len(g.slots)
}

// Txn returns a copy of the transaction at the slot.
func (g *Group) Txn(i int) (types.Transaction, error) {
	if i < 0 || i >= len(g.slots) {
		return types.Transaction{}, fmt.Errorf("%w: %d", ErrorSlotOutOfRange, i)
	}
	return g.slots[i].txn, nil
}

// MarkEscrowSigned registers the escrow that will sign the slot during
// Assign. Must be called before the group id is assigned.
func (g *Group) MarkEscrowSigned(i int, escrow domain.Escrow) error {
	if g.state != GroupComposed {
		return ErrorGroupFrozen
	}
	if i < 0 || i >= len(g.slots) {
		return fmt.Errorf("%w: %d", ErrorSlotOutOfRange, i)
	}
	g.slots[i].escrow = &escrow
	return nil
}

// SetFeePayer aggregates the estimated fees of the whole set onto the slot
// at payerIndex and zeroes every other transaction's fee. Must run before
// Assign, fees are covered by the group id hash.
func (g *Group) SetFeePayer(params types.SuggestedParams, payerIndex int) error {
	if g.state != GroupComposed {
		return ErrorGroupFrozen
	}
	if payerIndex < 0 || payerIndex >= len(g.slots) {
		return fmt.Errorf("%w: %d", ErrorSlotOutOfRange, payerIndex)
	}

	txns := make([]*types.Transaction, len(g.slots))
	for i := range g.slots {
		txns[i] = &g.slots[i].txn
	}

	total, err := AggregateFees(params, txns)
	if err != nil {
		return err
	}

	for i := range g.slots {
		g.slots[i].txn.Fee = 0
	}
	g.slots[payerIndex].txn.Fee = types.MicroAlgos(total.Raw())
	return nil
}

// Assign computes the group id over the final transaction set, writes it
// into every transaction and immediately signs the escrow-controlled slots.
// After this the set and order are frozen.
func (g *Group) Assign() error {
	if g.state != GroupComposed {
		return ErrorGroupFrozen
	}
	if len(g.slots) == 0 {
		return ErrorGroupEmpty
	}

	txns := make([]types.Transaction, len(g.slots))
	for i := range g.slots {
		txns[i] = g.slots[i].txn
	}

	gid, err := crypto.ComputeGroupID(txns)
	if err != nil {
		return fmt.Errorf("computing group id: %w", err)
	}

	for i := range g.slots {
		g.slots[i].txn.Group = gid
	}
	g.state = GroupAssigned

	// Escrow signatures are computed locally, right after assignment.
	escrowSigned := false
	for i := range g.slots {
		if g.slots[i].escrow == nil {
			continue
		}
		signed, err := teal.SignWithEscrow(*g.slots[i].escrow, g.slots[i].txn)
		if err != nil {
			return err
		}
		g.slots[i].signed = &signed
		escrowSigned = true
	}
	if escrowSigned {
		g.state = GroupPartiallySigned
	}
	g.refreshSignedState()
	return nil
}

// PendingUserSlots lists the slots still awaiting the caller's signature,
// with the grouped transactions to sign.
func (g *Group) PendingUserSlots() ([]int, []types.Transaction, error) {
	if g.state == GroupComposed {
		return nil, nil, ErrorGroupNotAssigned
	}
	var indices []int
	var txns []types.Transaction
	for i := range g.slots {
		if g.slots[i].signed == nil {
			indices = append(indices, i)
			txns = append(txns, g.slots[i].txn)
		}
	}
	return indices, txns, nil
}

// ProvideUserSignature attaches the caller's signature to a slot. The
// signature's transaction id must match the slot's transaction.
func (g *Group) ProvideUserSignature(i int, signed domain.SignedTxn) error {
	if g.state == GroupComposed {
		return ErrorGroupNotAssigned
	}
	if i < 0 || i >= len(g.slots) {
		return fmt.Errorf("%w: %d", ErrorSlotOutOfRange, i)
	}
	if g.slots[i].escrow != nil {
		return fmt.Errorf("%w: slot %d", ErrorSlotNotUserSigned, i)
	}

	expected := crypto.GetTxID(g.slots[i].txn)
	if signed.TxId != expected {
		return fmt.Errorf("%w: slot %d expects %v, got %v", ErrorSignatureMismatch, i, expected, signed.TxId)
	}

	g.slots[i].signed = &signed
	g.refreshSignedState()
	return nil
}

// Raw returns the signed transactions concatenated in group order, ready to
// broadcast as one atomic unit.
func (g *Group) Raw() ([]byte, error) {
	if g.state != GroupFullySigned {
		return nil, ErrorGroupNotFullySigned
	}
	var raw []byte
	for i := range g.slots {
		raw = append(raw, g.slots[i].signed.Raw...)
	}
	return raw, nil
}

// FirstTxId is the transaction id of the first slot, the one to wait on
// after submission (flows put the application call first, so the pending
// response reports a created application id here).
func (g *Group) FirstTxId() (string, error) {
	if g.state == GroupComposed {
		return "", ErrorGroupNotAssigned
	}
	if g.slots[0].signed != nil {
		return g.slots[0].signed.TxId, nil
	}
	return crypto.GetTxID(g.slots[0].txn), nil
}

func (g *Group) markSubmitted() {
	g.state = GroupSubmitted
}

func (g *Group) refreshSignedState() {
	for i := range g.slots {
		if g.slots[i].signed == nil {
			return
		}
	}
	g.state = GroupFullySigned
}
