package repository

import (
	"context"
	"log/slog"

	"github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/ivanschuetz/capi-core-sub000/domain"
	"github.com/ivanschuetz/capi-core-sub000/interface/exporter"
	"github.com/ivanschuetz/capi-core-sub000/usecase"
)

type DaoRepository struct {
	indexer usecase.IndexerClient
}

func NewDaoRepository(indexer usecase.IndexerClient) *DaoRepository {
	return &DaoRepository{indexer: indexer}
}

// FindByCreator returns the dao records a creator has published, newest
// first as reported by the indexer. Transactions whose note fails to decode
// or verify are skipped: the note prefix filter also matches foreign notes
// that merely share the version bytes.
func (repo *DaoRepository) FindByCreator(ctx context.Context, creator types.Address) ([]domain.DaoNoteRecord, error) {
	txns, err := repo.indexer.SearchTransactions(ctx, domain.TxQuery{
		Address:    creator.String(),
		NotePrefix: domain.NotePrefix(),
		TxType:     "pay",
	})
	if err != nil {
		return nil, err
	}

	records := make([]domain.DaoNoteRecord, 0, len(txns))
	for _, txn := range txns {
		record, err := domain.DecodeDaoNote(txn.Note)
		if err != nil {
			exporter.IncNoteDecodeFailure()
			slog.Debug("skipping transaction with undecodable note", "txId", txn.Id, "err", err)
			continue
		}
		if record.Creator != creator {
			continue
		}
		records = append(records, *record)
	}

	return records, nil
}
