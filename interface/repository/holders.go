package repository

import (
	"context"
	"math/big"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ivanschuetz/capi-core-sub000/domain"
	"github.com/ivanschuetz/capi-core-sub000/usecase"
)

// Holder is one account holding the shares asset.
type Holder struct {
	Address    string
	Amount     domain.ShareAmount
	Percentage decimal.Decimal
}

type HolderRepository struct {
	indexer usecase.IndexerClient
}

func NewHolderRepository(indexer usecase.IndexerClient) *HolderRepository {
	return &HolderRepository{indexer: indexer}
}

// FindDistribution returns the holders of the asset sorted by amount
// descending, with each holder's percentage of the supply.
func (repo *HolderRepository) FindDistribution(ctx context.Context, assetId uint64, supply domain.ShareAmount) ([]Holder, error) {
	accounts, err := repo.indexer.SearchAccounts(ctx, domain.AccountQuery{AssetId: assetId})
	if err != nil {
		return nil, err
	}

	supplyDec := decimal.NewFromBigInt(new(big.Int).SetUint64(supply.Raw()), 0)

	holders := make([]Holder, 0, len(accounts))
	for _, account := range accounts {
		for _, holding := range account.Assets {
			if holding.AssetId != assetId || holding.Amount == 0 {
				continue
			}

			amountDec := decimal.NewFromBigInt(new(big.Int).SetUint64(holding.Amount), 0)
			percentage := decimal.Zero
			if !supplyDec.IsZero() {
				percentage = amountDec.Div(supplyDec).Mul(decimal.NewFromInt(100))
			}

			holders = append(holders, Holder{
				Address:    account.Address,
				Amount:     domain.ShareAmount(holding.Amount),
				Percentage: percentage,
			})
		}
	}

	sort.Slice(holders, func(i, j int) bool {
		if holders[i].Amount != holders[j].Amount {
			return holders[i].Amount > holders[j].Amount
		}
		return holders[i].Address < holders[j].Address
	})

	return holders, nil
}
