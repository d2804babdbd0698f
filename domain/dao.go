package domain

import "github.com/algorand/go-algorand-sdk/v2/types"

// Escrow is an account controlled entirely by a compiled program, it has no
// private key. The address is derived from the program bytes.
type Escrow struct {
	Address types.Address
	Program []byte
}

// Dao aggregates everything needed to build transactions against one dao:
// the central application, its assets and the four escrows.
type Dao struct {
	AppId         uint64
	SharesAssetId uint64
	FundsAssetId  uint64
	Owner         types.Address
	Name          string
	DescrId       string

	InvestEscrow   Escrow
	LockingEscrow  Escrow
	CentralEscrow  Escrow
	CustomerEscrow Escrow
}

// SignedTxn pairs a transaction id with the raw signed transaction bytes,
// either a user signature or an escrow logic signature.
type SignedTxn struct {
	TxId string
	Raw  []byte
}
