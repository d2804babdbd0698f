package repository

import (
	"context"
	"time"

	"github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/ivanschuetz/capi-core-sub000/domain"
	"github.com/ivanschuetz/capi-core-sub000/usecase"
)

// Payment is one payment received by a customer escrow.
type Payment struct {
	TxId   string
	Sender string
	Amount domain.FundsAmount
	Round  uint64
	Time   time.Time
}

type PaymentRepository struct {
	indexer usecase.IndexerClient
}

func NewPaymentRepository(indexer usecase.IndexerClient) *PaymentRepository {
	return &PaymentRepository{indexer: indexer}
}

// FindReceived lists the payments received by the customer escrow since
// minRound (0 for all). Outgoing drain payments are excluded.
func (repo *PaymentRepository) FindReceived(ctx context.Context, customerEscrow types.Address, minRound uint64) ([]Payment, error) {
	txns, err := repo.indexer.SearchTransactions(ctx, domain.TxQuery{
		Address:  customerEscrow.String(),
		TxType:   "pay",
		MinRound: minRound,
	})
	if err != nil {
		return nil, err
	}

	payments := make([]Payment, 0, len(txns))
	for _, txn := range txns {
		if txn.PaymentTransaction.Receiver != customerEscrow.String() {
			continue
		}
		payments = append(payments, Payment{
			TxId:   txn.Id,
			Sender: txn.Sender,
			Amount: domain.FundsAmount(txn.PaymentTransaction.Amount),
			Round:  txn.ConfirmedRound,
			Time:   time.Unix(int64(txn.RoundTime), 0),
		})
	}

	return payments, nil
}

// TotalReceived sums all payments received by the customer escrow. Checked,
// a sum overflowing uint64 fails instead of wrapping.
func (repo *PaymentRepository) TotalReceived(ctx context.Context, customerEscrow types.Address) (domain.FundsAmount, error) {
	payments, err := repo.FindReceived(ctx, customerEscrow, 0)
	if err != nil {
		return 0, err
	}

	total := domain.FundsAmount(0)
	for _, payment := range payments {
		total, err = total.Add(payment.Amount)
		if err != nil {
			return 0, err
		}
	}
	return total, nil
}
