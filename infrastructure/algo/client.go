// Package algo wraps the Algorand SDK clients behind the narrow node and
// indexer interfaces the usecases consume.
package algo

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/client/v2/algod"
	"github.com/algorand/go-algorand-sdk/v2/client/v2/common/models"
	"github.com/algorand/go-algorand-sdk/v2/client/v2/indexer"
	"github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/ivanschuetz/capi-core-sub000/domain"
)

// Node is the node RPC client.
type Node struct {
	client *algod.Client
}

func NewNode(url, token string) (*Node, error) {
	client, err := algod.MakeClient(url, token)
	if err != nil {
		return nil, fmt.Errorf("creating algod client: %w", err)
	}
	return &Node{client: client}, nil
}

func (n *Node) SuggestedParams(ctx context.Context) (types.SuggestedParams, error) {
	return n.client.SuggestedParams().Do(ctx)
}

func (n *Node) Compile(ctx context.Context, source []byte) ([]byte, error) {
	response, err := n.client.TealCompile(source).Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("compiling teal: %w", err)
	}
	program, err := base64.StdEncoding.DecodeString(response.Result)
	if err != nil {
		return nil, fmt.Errorf("decoding compiled program: %w", err)
	}
	return program, nil
}

func (n *Node) BroadcastRawTransactions(ctx context.Context, raw []byte) (string, error) {
	return n.client.SendRawTransaction(raw).Do(ctx)
}

func (n *Node) PendingTransaction(ctx context.Context, txId string) (models.PendingTransactionInfoResponse, error) {
	response, _, err := n.client.PendingTransactionInformation(txId).Do(ctx)
	return response, err
}

func (n *Node) AccountInformation(ctx context.Context, address string) (models.Account, error) {
	return n.client.AccountInformation(address).Do(ctx)
}

func (n *Node) ApplicationInformation(ctx context.Context, appId uint64) (models.Application, error) {
	return n.client.GetApplicationByID(appId).Do(ctx)
}

func (n *Node) AccountApplicationInformation(ctx context.Context, address string, appId uint64) (models.AccountApplicationResponse, error) {
	return n.client.AccountApplicationInformation(address, appId).Do(ctx)
}

// Indexer is the indexer RPC client, used only for historical and aggregate
// queries, never on the transaction-building path.
type Indexer struct {
	client *indexer.Client
}

func NewIndexer(url, token string) (*Indexer, error) {
	client, err := indexer.MakeClient(url, token)
	if err != nil {
		return nil, fmt.Errorf("creating indexer client: %w", err)
	}
	return &Indexer{client: client}, nil
}

func (i *Indexer) SearchTransactions(ctx context.Context, query domain.TxQuery) ([]models.Transaction, error) {
	search := i.client.SearchForTransactions()
	if query.Address != "" {
		search = search.AddressString(query.Address)
	}
	if len(query.NotePrefix) > 0 {
		search = search.NotePrefix(query.NotePrefix)
	}
	if query.TxType != "" {
		search = search.TxType(query.TxType)
	}
	if query.MinRound > 0 {
		search = search.MinRound(query.MinRound)
	}
	if query.Limit > 0 {
		search = search.Limit(query.Limit)
	}

	response, err := search.Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("searching transactions: %w", err)
	}
	return response.Transactions, nil
}

func (i *Indexer) SearchAccounts(ctx context.Context, query domain.AccountQuery) ([]models.Account, error) {
	search := i.client.SearchAccounts()
	if query.AssetId > 0 {
		search = search.AssetID(query.AssetId)
	}
	if query.Limit > 0 {
		search = search.Limit(query.Limit)
	}

	response, err := search.Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("searching accounts: %w", err)
	}
	return response.Accounts, nil
}
