package usecase

import (
	"context"

	"github.com/algorand/go-algorand-sdk/v2/client/v2/common/models"
	"github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/ivanschuetz/capi-core-sub000/domain"
)

// NodeClient is the narrow node RPC surface the flows consume. The
// infrastructure layer provides the real implementation, tests inject fakes.
type NodeClient interface {
	SuggestedParams(ctx context.Context) (types.SuggestedParams, error)
	Compile(ctx context.Context, source []byte) ([]byte, error)
	BroadcastRawTransactions(ctx context.Context, raw []byte) (string, error)
	PendingTransaction(ctx context.Context, txId string) (models.PendingTransactionInfoResponse, error)
	AccountInformation(ctx context.Context, address string) (models.Account, error)
	ApplicationInformation(ctx context.Context, appId uint64) (models.Application, error)
	AccountApplicationInformation(ctx context.Context, address string, appId uint64) (models.AccountApplicationResponse, error)
}

// IndexerClient is the narrow indexer RPC surface, consumed only by the
// repositories for historical queries.
type IndexerClient interface {
	SearchTransactions(ctx context.Context, query domain.TxQuery) ([]models.Transaction, error)
	SearchAccounts(ctx context.Context, query domain.AccountQuery) ([]models.Account, error)
}
