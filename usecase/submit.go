package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/algorand/go-algorand-sdk/v2/client/v2/common/models"

	"github.com/ivanschuetz/capi-core-sub000/interface/exporter"
)

const (
	DefaultPollInterval       = 250 * time.Millisecond
	DefaultConfirmationBudget = 60 * time.Second
)

// ErrorGroupRejected wraps the node's pool error: the whole atomic group was
// rejected, nothing was applied. The caller restarts from composition with
// fresh parameters.
var ErrorGroupRejected = fmt.Errorf("atomic group rejected by the network")

// Submitter broadcasts fully signed groups and waits for confirmations.
type Submitter struct {
	client             NodeClient
	pollInterval       time.Duration
	confirmationBudget time.Duration
}

func NewSubmitter(client NodeClient) *Submitter {
	return &Submitter{
		client:             client,
		pollInterval:       DefaultPollInterval,
		confirmationBudget: DefaultConfirmationBudget,
	}
}

func NewSubmitterWithTiming(client NodeClient, pollInterval, confirmationBudget time.Duration) *Submitter {
	return &Submitter{
		client:             client,
		pollInterval:       pollInterval,
		confirmationBudget: confirmationBudget,
	}
}

// Submit broadcasts the fully signed group as one atomic unit and returns
// the id of its first transaction.
func (s *Submitter) Submit(ctx context.Context, group *Group) (string, error) {
	raw, err := group.Raw()
	if err != nil {
		return "", err
	}

	txId, err := group.FirstTxId()
	if err != nil {
		return "", err
	}

	if _, err := s.client.BroadcastRawTransactions(ctx, raw); err != nil {
		exporter.IncGroupsRejected()
		return "", fmt.Errorf("%w: %v", ErrorGroupRejected, err)
	}

	group.markSubmitted()
	exporter.IncGroupsSubmitted()
	return txId, nil
}

// WaitForConfirmation polls the node until the transaction is confirmed or
// the budget elapses. Timeout returns (nil, nil): not knowing yet is not an
// error, the caller decides whether it is fatal.
func (s *Submitter) WaitForConfirmation(ctx context.Context, txId string) (*models.PendingTransactionInfoResponse, error) {
	deadline := time.Now().Add(s.confirmationBudget)

	for time.Now().Before(deadline) {
		pending, err := s.client.PendingTransaction(ctx, txId)
		if err != nil {
			return nil, err
		}

		if pending.PoolError != "" {
			exporter.IncGroupsRejected()
			return nil, fmt.Errorf("%w: %v", ErrorGroupRejected, pending.PoolError)
		}

		if pending.ConfirmedRound > 0 {
			exporter.IncGroupsConfirmed()
			return &pending, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.pollInterval):
		}
	}

	slog.Debug("confirmation budget elapsed", "txId", txId)
	return nil, nil
}

// SubmitAndWait broadcasts the group and blocks until its confirmation or
// the waiter's timeout.
func (s *Submitter) SubmitAndWait(ctx context.Context, group *Group) (*models.PendingTransactionInfoResponse, error) {
	txId, err := s.Submit(ctx, group)
	if err != nil {
		return nil, err
	}
	return s.WaitForConfirmation(ctx, txId)
}
