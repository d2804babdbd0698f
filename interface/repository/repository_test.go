package repository

import (
	"context"
	"testing"

	"github.com/algorand/go-algorand-sdk/v2/client/v2/common/models"
	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivanschuetz/capi-core-sub000/domain"
)

// fakeIndexer implements usecase.IndexerClient with canned results.
type fakeIndexer struct {
	transactions []models.Transaction
	accounts     []models.Account

	lastTxQuery      domain.TxQuery
	lastAccountQuery domain.AccountQuery
}

func (f *fakeIndexer) SearchTransactions(ctx context.Context, query domain.TxQuery) ([]models.Transaction, error) {
	f.lastTxQuery = query
	return f.transactions, nil
}

func (f *fakeIndexer) SearchAccounts(ctx context.Context, query domain.AccountQuery) ([]models.Account, error) {
	f.lastAccountQuery = query
	return f.accounts, nil
}

func daoNoteTxn(t *testing.T, record domain.DaoNoteRecord) models.Transaction {
	t.Helper()
	note, err := domain.EncodeDaoNote(record)
	require.NoError(t, err)
	return models.Transaction{Id: "tx-" + record.Name, Note: note}
}

func TestFindByCreatorDecodesRecords(t *testing.T) {
	creator := crypto.GenerateAccount().Address
	record := domain.DaoNoteRecord{
		AppId:         123,
		Name:          "My Dao",
		SharesAssetId: 10,
		FundsAssetId:  20,
		Creator:       creator,
	}

	indexer := &fakeIndexer{transactions: []models.Transaction{daoNoteTxn(t, record)}}

	records, err := NewDaoRepository(indexer).FindByCreator(context.Background(), creator)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, record, records[0])

	assert.Equal(t, creator.String(), indexer.lastTxQuery.Address)
	assert.Equal(t, domain.NotePrefix(), indexer.lastTxQuery.NotePrefix)
	assert.Equal(t, "pay", indexer.lastTxQuery.TxType)
}

func TestFindByCreatorSkipsUndecodableNotes(t *testing.T) {
	creator := crypto.GenerateAccount().Address
	record := domain.DaoNoteRecord{AppId: 123, Name: "Valid", Creator: creator}

	garbage := models.Transaction{Id: "tx-garbage", Note: append(domain.NotePrefix(), 0xde, 0xad)}

	indexer := &fakeIndexer{transactions: []models.Transaction{garbage, daoNoteTxn(t, record)}}

	records, err := NewDaoRepository(indexer).FindByCreator(context.Background(), creator)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Valid", records[0].Name)
}

func TestFindByCreatorFiltersForeignCreators(t *testing.T) {
	creator := crypto.GenerateAccount().Address
	foreign := crypto.GenerateAccount().Address

	indexer := &fakeIndexer{transactions: []models.Transaction{
		daoNoteTxn(t, domain.DaoNoteRecord{AppId: 1, Name: "Mine", Creator: creator}),
		daoNoteTxn(t, domain.DaoNoteRecord{AppId: 2, Name: "Theirs", Creator: foreign}),
	}}

	records, err := NewDaoRepository(indexer).FindByCreator(context.Background(), creator)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Mine", records[0].Name)
}

func TestFindReceivedFiltersOutgoingPayments(t *testing.T) {
	escrow := crypto.GenerateAccount().Address
	sender := crypto.GenerateAccount().Address

	indexer := &fakeIndexer{transactions: []models.Transaction{
		{
			Id:             "tx-in",
			Sender:         sender.String(),
			ConfirmedRound: 100,
			RoundTime:      1_700_000_000,
			PaymentTransaction: models.TransactionPayment{
				Receiver: escrow.String(),
				Amount:   5000,
			},
		},
		{
			Id:     "tx-out",
			Sender: escrow.String(),
			PaymentTransaction: models.TransactionPayment{
				Receiver: sender.String(),
				Amount:   1000,
			},
		},
	}}

	payments, err := NewPaymentRepository(indexer).FindReceived(context.Background(), escrow, 50)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, "tx-in", payments[0].TxId)
	assert.Equal(t, domain.FundsAmount(5000), payments[0].Amount)
	assert.Equal(t, uint64(100), payments[0].Round)
	assert.Equal(t, uint64(50), indexer.lastTxQuery.MinRound)
}

func TestTotalReceivedSumsPayments(t *testing.T) {
	escrow := crypto.GenerateAccount().Address

	indexer := &fakeIndexer{transactions: []models.Transaction{
		{Id: "a", PaymentTransaction: models.TransactionPayment{Receiver: escrow.String(), Amount: 1000}},
		{Id: "b", PaymentTransaction: models.TransactionPayment{Receiver: escrow.String(), Amount: 2500}},
	}}

	total, err := NewPaymentRepository(indexer).TotalReceived(context.Background(), escrow)
	require.NoError(t, err)
	assert.Equal(t, domain.FundsAmount(3500), total)
}

func TestFindDistributionSortsAndComputesPercentages(t *testing.T) {
	indexer := &fakeIndexer{accounts: []models.Account{
		{Address: "addr-small", Assets: []models.AssetHolding{{AssetId: 10, Amount: 100}}},
		{Address: "addr-big", Assets: []models.AssetHolding{{AssetId: 10, Amount: 400}}},
		{Address: "addr-empty", Assets: []models.AssetHolding{{AssetId: 10, Amount: 0}}},
		{Address: "addr-other-asset", Assets: []models.AssetHolding{{AssetId: 99, Amount: 50}}},
	}}

	holders, err := NewHolderRepository(indexer).FindDistribution(context.Background(), 10, 1000)
	require.NoError(t, err)
	require.Len(t, holders, 2)

	assert.Equal(t, "addr-big", holders[0].Address)
	assert.Equal(t, domain.ShareAmount(400), holders[0].Amount)
	assert.True(t, holders[0].Percentage.Equal(decimal.RequireFromString("40")))

	assert.Equal(t, "addr-small", holders[1].Address)
	assert.True(t, holders[1].Percentage.Equal(decimal.RequireFromString("10")))

	assert.Equal(t, uint64(10), indexer.lastAccountQuery.AssetId)
}

func TestFindDistributionTiesBreakByAddress(t *testing.T) {
	indexer := &fakeIndexer{accounts: []models.Account{
		{Address: "b", Assets: []models.AssetHolding{{AssetId: 10, Amount: 100}}},
		{Address: "a", Assets: []models.AssetHolding{{AssetId: 10, Amount: 100}}},
	}}

	holders, err := NewHolderRepository(indexer).FindDistribution(context.Background(), 10, 200)
	require.NoError(t, err)
	require.Len(t, holders, 2)
	assert.Equal(t, "a", holders[0].Address)
	assert.Equal(t, "b", holders[1].Address)
}
