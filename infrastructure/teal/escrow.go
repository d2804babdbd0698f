package teal

import (
	"context"
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/ivanschuetz/capi-core-sub000/domain"
)

// Compiler turns TEAL source into program bytes. The node-backed client
// satisfies this, tests plug in a fake.
type Compiler interface {
	Compile(ctx context.Context, source []byte) ([]byte, error)
}

// CompileEscrow renders a versioned escrow template, compiles it and derives
// the escrow's address from the program bytes.
func CompileEscrow(ctx context.Context, compiler Compiler, version TemplateVersion, name string, bindings map[string]string) (domain.Escrow, error) {
	source, err := Render(version, name, bindings)
	if err != nil {
		return domain.Escrow{}, err
	}

	program, err := compiler.Compile(ctx, source)
	if err != nil {
		return domain.Escrow{}, fmt.Errorf("compiling %q: %w", name, err)
	}

	address := crypto.AddressFromProgram(program)
	return domain.Escrow{Address: address, Program: program}, nil
}

// SignWithEscrow computes the escrow's logic signature over the transaction.
// Pure: the program bytes and the transaction are the only inputs, there is
// no session state.
func SignWithEscrow(escrow domain.Escrow, txn types.Transaction) (domain.SignedTxn, error) {
	lsig, err := crypto.MakeLogicSigAccountEscrowChecked(escrow.Program, nil)
	if err != nil {
		return domain.SignedTxn{}, fmt.Errorf("building logic sig for escrow %v: %w", escrow.Address, err)
	}

	txId, raw, err := crypto.SignLogicSigAccountTransaction(lsig, txn)
	if err != nil {
		return domain.SignedTxn{}, fmt.Errorf("escrow-signing transaction: %w", err)
	}

	return domain.SignedTxn{TxId: txId, Raw: raw}, nil
}
