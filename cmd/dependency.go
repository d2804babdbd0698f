package cmd

import (
	"github.com/ivanschuetz/capi-core-sub000/domain/config"
	"github.com/ivanschuetz/capi-core-sub000/infrastructure/algo"
	"github.com/ivanschuetz/capi-core-sub000/interface/api"
	"github.com/ivanschuetz/capi-core-sub000/interface/repository"
	"github.com/ivanschuetz/capi-core-sub000/usecase"
)

func defaultDependencyInject() error {
	var err error

	node, err = algo.NewNode(config.GetAlgodUrl(), config.GetAlgodToken())
	if err != nil {
		return err
	}
	idx, err = algo.NewIndexer(config.GetIndexerUrl(), config.GetIndexerToken())
	if err != nil {
		return err
	}

	daoInteractor = usecase.NewDaoInteractor(node)
	investInteractor = usecase.NewInvestInteractor(node)
	claimInteractor = usecase.NewClaimInteractor(node)
	drainInteractor = usecase.NewDrainInteractor(node)
	lockInteractor = usecase.NewLockInteractor(node)
	withdrawInteractor = usecase.NewWithdrawInteractor(node)
	submitter = usecase.NewSubmitterWithTiming(node, config.GetPollInterval(), config.GetConfirmationBudget())

	daoRepository = repository.NewDaoRepository(idx)
	paymentRepository = repository.NewPaymentRepository(idx)
	holderRepository = repository.NewHolderRepository(idx)

	blobApi = api.NewHttpBlobApi(config.GetApiUrl())

	return nil
}

var node *algo.Node
var idx *algo.Indexer
var daoInteractor *usecase.DaoInteractor
var investInteractor *usecase.InvestInteractor
var claimInteractor *usecase.ClaimInteractor
var drainInteractor *usecase.DrainInteractor
var lockInteractor *usecase.LockInteractor
var withdrawInteractor *usecase.WithdrawInteractor
var submitter *usecase.Submitter
var daoRepository *repository.DaoRepository
var paymentRepository *repository.PaymentRepository
var holderRepository *repository.HolderRepository
var blobApi api.BlobApi
