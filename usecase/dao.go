package usecase

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/algorand/go-algorand-sdk/v2/transaction"
	"github.com/algorand/go-algorand-sdk/v2/types"
	"golang.org/x/sync/errgroup"

	"github.com/ivanschuetz/capi-core-sub000/domain"
	"github.com/ivanschuetz/capi-core-sub000/infrastructure/teal"
)

// Escrows are funded above the network minimum so the asset opt-ins that
// follow don't push them below it.
const escrowFundingAmount = 300_000

type DaoInteractor struct {
	client  NodeClient
	version teal.TemplateVersion
}

func NewDaoInteractor(client NodeClient) *DaoInteractor {
	return &DaoInteractor{
		client:  client,
		version: teal.TemplateVersionV1,
	}
}

type CreateSharesAssetParams struct {
	Creator   types.Address
	Supply    domain.ShareAmount
	UnitName  string
	AssetName string
}

// CreateSharesAsset composes the shares asset creation. The asset id is
// reported by the pending transaction response once confirmed.
func (interactor *DaoInteractor) CreateSharesAsset(ctx context.Context, params CreateSharesAssetParams) (*Group, error) {
	suggested, err := interactor.client.SuggestedParams(ctx)
	if err != nil {
		return nil, err
	}

	create, err := transaction.MakeAssetCreateTxn(
		params.Creator.String(),
		nil,
		suggested,
		params.Supply.Raw(),
		0,
		false,
		params.Creator.String(),
		"",
		"",
		"",
		params.UnitName,
		params.AssetName,
		"",
		"",
	)
	if err != nil {
		return nil, fmt.Errorf("composing shares asset creation: %w", err)
	}

	group := NewGroup(create)
	if err := group.Assign(); err != nil {
		return nil, err
	}
	return group, nil
}

type CreateAppParams struct {
	Creator       types.Address
	SharesAssetId uint64
	FundsAssetId  uint64
	ShareSupply   domain.ShareAmount
	SharePrice    domain.FundsAmount
	InvestorsPart domain.ShareAmount
}

// CreateApp composes the central application creation. It is the first (and
// only) transaction of its group so the confirmation response reports the
// created application id.
func (interactor *DaoInteractor) CreateApp(ctx context.Context, params CreateAppParams) (*Group, error) {
	suggested, err := interactor.client.SuggestedParams(ctx)
	if err != nil {
		return nil, err
	}

	bindings := map[string]string{
		"TMPL_SHARE_SUPPLY":    strconv.FormatUint(params.ShareSupply.Raw(), 10),
		"TMPL_SHARES_ASSET_ID": strconv.FormatUint(params.SharesAssetId, 10),
		"TMPL_FUNDS_ASSET_ID":  strconv.FormatUint(params.FundsAssetId, 10),
		"TMPL_INVESTORS_PART":  strconv.FormatUint(params.InvestorsPart.Raw(), 10),
		"TMPL_SHARE_PRICE":     strconv.FormatUint(params.SharePrice.Raw(), 10),
	}

	approvalSource, err := teal.Render(interactor.version, teal.TemplateAppApproval, bindings)
	if err != nil {
		return nil, err
	}
	clearSource, err := teal.Render(interactor.version, teal.TemplateAppClear, map[string]string{})
	if err != nil {
		return nil, err
	}

	approval, err := interactor.client.Compile(ctx, approvalSource)
	if err != nil {
		return nil, err
	}
	clear, err := interactor.client.Compile(ctx, clearSource)
	if err != nil {
		return nil, err
	}

	appCreate, err := transaction.MakeApplicationCreateTx(
		false,
		approval,
		clear,
		types.StateSchema{NumUint: 6, NumByteSlice: 4},
		types.StateSchema{NumUint: 3},
		nil,
		nil,
		nil,
		nil,
		suggested,
		params.Creator,
		nil,
		types.Digest{},
		[32]byte{},
		types.ZeroAddress,
	)
	if err != nil {
		return nil, fmt.Errorf("composing app creation: %w", err)
	}

	group := NewGroup(appCreate)
	if err := group.Assign(); err != nil {
		return nil, err
	}
	return group, nil
}

// DaoEscrows holds the four compiled escrows of one dao.
type DaoEscrows struct {
	Invest   domain.Escrow
	Locking  domain.Escrow
	Central  domain.Escrow
	Customer domain.Escrow
}

// CompileEscrows renders and compiles the four escrows concurrently. The
// results are independent until group assembly, so completion order doesn't
// matter.
func (interactor *DaoInteractor) CompileEscrows(ctx context.Context, appId, sharesAssetId uint64, creator types.Address) (*DaoEscrows, error) {
	appIdStr := strconv.FormatUint(appId, 10)
	sharesStr := strconv.FormatUint(sharesAssetId, 10)

	var escrows DaoEscrows

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		escrows.Invest, err = teal.CompileEscrow(gctx, interactor.client, interactor.version, teal.TemplateInvestEscrow,
			map[string]string{"TMPL_CENTRAL_APP_ID": appIdStr, "TMPL_SHARES_ASSET_ID": sharesStr})
		return err
	})
	g.Go(func() error {
		var err error
		escrows.Locking, err = teal.CompileEscrow(gctx, interactor.client, interactor.version, teal.TemplateLockingEscrow,
			map[string]string{"TMPL_CENTRAL_APP_ID": appIdStr, "TMPL_SHARES_ASSET_ID": sharesStr})
		return err
	})
	g.Go(func() error {
		var err error
		escrows.Central, err = teal.CompileEscrow(gctx, interactor.client, interactor.version, teal.TemplateCentralEscrow,
			map[string]string{"TMPL_CENTRAL_APP_ID": appIdStr, "TMPL_DAO_CREATOR": creator.String()})
		return err
	})
	g.Go(func() error {
		var err error
		escrows.Customer, err = teal.CompileEscrow(gctx, interactor.client, interactor.version, teal.TemplateCustomerEscrow,
			map[string]string{"TMPL_CENTRAL_APP_ID": appIdStr})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &escrows, nil
}

type FundEscrowsParams struct {
	Creator types.Address
	Escrows *DaoEscrows
}

// FundEscrows composes the group funding all four escrows with their minimum
// balances. All payments are signed by the creator.
func (interactor *DaoInteractor) FundEscrows(ctx context.Context, params FundEscrowsParams) (*Group, error) {
	suggested, err := interactor.client.SuggestedParams(ctx)
	if err != nil {
		return nil, err
	}

	targets := []types.Address{
		params.Escrows.Invest.Address,
		params.Escrows.Locking.Address,
		params.Escrows.Central.Address,
		params.Escrows.Customer.Address,
	}

	txns := make([]types.Transaction, 0, len(targets))
	for _, target := range targets {
		payment, err := transaction.MakePaymentTxn(
			params.Creator.String(),
			target.String(),
			escrowFundingAmount,
			nil,
			"",
			suggested,
		)
		if err != nil {
			return nil, fmt.Errorf("composing escrow funding payment: %w", err)
		}
		txns = append(txns, payment)
	}

	group := NewGroup(txns...)
	if err := group.SetFeePayer(suggested, 0); err != nil {
		return nil, err
	}
	if err := group.Assign(); err != nil {
		return nil, err
	}
	return group, nil
}

type SetupDaoParams struct {
	AppId         uint64
	Creator       types.Address
	SharesAssetId uint64
	FundsAssetId  uint64
	InvestorsPart domain.ShareAmount
	Escrows       *DaoEscrows

	Name           string
	DescrId        string
	ImageHash      []byte
	SocialMediaUrl string
}

type SetupDaoToSign struct {
	Group *Group
	Dao   *domain.Dao
}

// SetupDao composes the final setup group:
//
//	0: app call storing the escrow addresses (fee payer)
//	1: invest escrow shares opt-in (escrow-signed)
//	2: locking escrow shares opt-in (escrow-signed)
//	3: share transfer creator -> invest escrow, the investors' part
//	4: 0-payment creator -> creator carrying the dao record note
func (interactor *DaoInteractor) SetupDao(ctx context.Context, params SetupDaoParams) (*SetupDaoToSign, error) {
	suggested, err := interactor.client.SuggestedParams(ctx)
	if err != nil {
		return nil, err
	}

	appCall, err := transaction.MakeApplicationNoOpTx(
		params.AppId,
		[][]byte{
			argSetup,
			params.Escrows.Central.Address[:],
			params.Escrows.Customer.Address[:],
			[]byte(params.Name),
		},
		nil,
		nil,
		nil,
		suggested,
		params.Creator,
		nil,
		types.Digest{},
		[32]byte{},
		types.ZeroAddress,
	)
	if err != nil {
		return nil, fmt.Errorf("composing setup app call: %w", err)
	}

	investOptIn, err := transaction.MakeAssetAcceptanceTxn(
		params.Escrows.Invest.Address.String(), nil, suggested, params.SharesAssetId)
	if err != nil {
		return nil, fmt.Errorf("composing invest escrow opt-in: %w", err)
	}

	lockingOptIn, err := transaction.MakeAssetAcceptanceTxn(
		params.Escrows.Locking.Address.String(), nil, suggested, params.SharesAssetId)
	if err != nil {
		return nil, fmt.Errorf("composing locking escrow opt-in: %w", err)
	}

	shareTransfer, err := transaction.MakeAssetTransferTxn(
		params.Creator.String(),
		params.Escrows.Invest.Address.String(),
		params.InvestorsPart.Raw(),
		nil,
		suggested,
		"",
		params.SharesAssetId,
	)
	if err != nil {
		return nil, fmt.Errorf("composing setup share transfer: %w", err)
	}

	note, err := domain.EncodeDaoNote(domain.DaoNoteRecord{
		AppId:          params.AppId,
		Name:           params.Name,
		DescrId:        params.DescrId,
		SharesAssetId:  params.SharesAssetId,
		FundsAssetId:   params.FundsAssetId,
		Creator:        params.Creator,
		ImageHash:      params.ImageHash,
		SocialMediaUrl: params.SocialMediaUrl,
	})
	if err != nil {
		return nil, err
	}

	notePayment, err := transaction.MakePaymentTxn(
		params.Creator.String(),
		params.Creator.String(),
		0,
		note,
		"",
		suggested,
	)
	if err != nil {
		return nil, fmt.Errorf("composing note transaction: %w", err)
	}

	group := NewGroup(appCall, investOptIn, lockingOptIn, shareTransfer, notePayment)
	if err := group.MarkEscrowSigned(1, params.Escrows.Invest); err != nil {
		return nil, err
	}
	if err := group.MarkEscrowSigned(2, params.Escrows.Locking); err != nil {
		return nil, err
	}
	if err := group.SetFeePayer(suggested, 0); err != nil {
		return nil, err
	}
	if err := group.Assign(); err != nil {
		return nil, err
	}

	dao := &domain.Dao{
		AppId:          params.AppId,
		SharesAssetId:  params.SharesAssetId,
		FundsAssetId:   params.FundsAssetId,
		Owner:          params.Creator,
		Name:           params.Name,
		DescrId:        params.DescrId,
		InvestEscrow:   params.Escrows.Invest,
		LockingEscrow:  params.Escrows.Locking,
		CentralEscrow:  params.Escrows.Central,
		CustomerEscrow: params.Escrows.Customer,
	}

	return &SetupDaoToSign{Group: group, Dao: dao}, nil
}

// FetchDao rebuilds a dao from its application id: reads the global state
// and re-derives the escrows from templates. The derived central and
// customer addresses must match the stored ones, a mismatch means the app
// was not set up with these templates.
func (interactor *DaoInteractor) FetchDao(ctx context.Context, appId uint64) (*domain.Dao, error) {
	app, err := interactor.client.ApplicationInformation(ctx, appId)
	if err != nil {
		return nil, err
	}
	state, err := domain.ParseCentralAppState(app)
	if err != nil {
		return nil, err
	}

	escrows, err := interactor.CompileEscrows(ctx, appId, state.SharesAssetId, state.Owner)
	if err != nil {
		return nil, err
	}

	if !bytes.Equal(escrows.Central.Address[:], state.CentralEscrow[:]) {
		return nil, fmt.Errorf("derived central escrow %v does not match on-chain state %v",
			escrows.Central.Address, state.CentralEscrow)
	}
	if !bytes.Equal(escrows.Customer.Address[:], state.CustomerEscrow[:]) {
		return nil, fmt.Errorf("derived customer escrow %v does not match on-chain state %v",
			escrows.Customer.Address, state.CustomerEscrow)
	}

	return &domain.Dao{
		AppId:          appId,
		SharesAssetId:  state.SharesAssetId,
		FundsAssetId:   state.FundsAssetId,
		Owner:          state.Owner,
		Name:           state.Name,
		InvestEscrow:   escrows.Invest,
		LockingEscrow:  escrows.Locking,
		CentralEscrow:  escrows.Central,
		CustomerEscrow: escrows.Customer,
	}, nil
}

// FetchDaoFromRecord rebuilds a dao from a decoded note record, re-deriving
// the escrow addresses from the record's compact fields.
func (interactor *DaoInteractor) FetchDaoFromRecord(ctx context.Context, record *domain.DaoNoteRecord) (*domain.Dao, error) {
	escrows, err := interactor.CompileEscrows(ctx, record.AppId, record.SharesAssetId, record.Creator)
	if err != nil {
		return nil, err
	}

	return &domain.Dao{
		AppId:          record.AppId,
		SharesAssetId:  record.SharesAssetId,
		FundsAssetId:   record.FundsAssetId,
		Owner:          record.Creator,
		Name:           record.Name,
		DescrId:        record.DescrId,
		InvestEscrow:   escrows.Invest,
		LockingEscrow:  escrows.Locking,
		CentralEscrow:  escrows.Central,
		CustomerEscrow: escrows.Customer,
	}, nil
}

type UpdateAppParams struct {
	Dao   *domain.Dao
	Owner types.Address

	// Rendered and compiled replacement programs.
	ApprovalBindings map[string]string
}

// UpdateApp composes the application update. Only the owner passes the
// contract's update check; the group is the single update transaction.
func (interactor *DaoInteractor) UpdateApp(ctx context.Context, params UpdateAppParams) (*Group, error) {
	suggested, err := interactor.client.SuggestedParams(ctx)
	if err != nil {
		return nil, err
	}

	approvalSource, err := teal.Render(interactor.version, teal.TemplateAppApproval, params.ApprovalBindings)
	if err != nil {
		return nil, err
	}
	clearSource, err := teal.Render(interactor.version, teal.TemplateAppClear, map[string]string{})
	if err != nil {
		return nil, err
	}

	approval, err := interactor.client.Compile(ctx, approvalSource)
	if err != nil {
		return nil, err
	}
	clear, err := interactor.client.Compile(ctx, clearSource)
	if err != nil {
		return nil, err
	}

	update, err := transaction.MakeApplicationUpdateTx(
		params.Dao.AppId,
		nil,
		nil,
		nil,
		nil,
		approval,
		clear,
		suggested,
		params.Owner,
		nil,
		types.Digest{},
		[32]byte{},
		types.ZeroAddress,
	)
	if err != nil {
		return nil, fmt.Errorf("composing app update: %w", err)
	}

	group := NewGroup(update)
	if err := group.Assign(); err != nil {
		return nil, err
	}
	return group, nil
}
