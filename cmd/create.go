package cmd

import (
	"crypto/ed25519"
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/client/v2/common/models"
	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/mnemonic"
	"github.com/spf13/cobra"

	"github.com/ivanschuetz/capi-core-sub000/domain"
	"github.com/ivanschuetz/capi-core-sub000/domain/config"
	"github.com/ivanschuetz/capi-core-sub000/usecase"
)

var (
	createName          string
	createSupply        uint64
	createPrice         uint64
	createInvestorsPart string
	createDescr         string
	createSocialMedia   string
)

// createCmd runs the whole dao creation: shares asset, application, escrow
// funding and the setup group, each confirmed before the next starts.
var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Creates a new dao owned by the configured account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if config.GetMnemonic() == "" {
			return fmt.Errorf("a mnemonic is required to create a dao")
		}
		privateKey, err := mnemonic.ToPrivateKey(config.GetMnemonic())
		if err != nil {
			return fmt.Errorf("invalid mnemonic: %w", err)
		}
		account, err := crypto.AccountFromPrivateKey(privateKey)
		if err != nil {
			return err
		}

		investorsPct, err := domain.SharesPercentageFromString(createInvestorsPart)
		if err != nil {
			return fmt.Errorf("invalid investors part: %w", err)
		}
		_, investorsPart, err := domain.SplitShares(domain.ShareAmount(createSupply), investorsPct)
		if err != nil {
			return err
		}

		ctx := cmd.Context()

		// 1. shares asset
		assetGroup, err := daoInteractor.CreateSharesAsset(ctx, usecase.CreateSharesAssetParams{
			Creator:   account.Address,
			Supply:    domain.ShareAmount(createSupply),
			UnitName:  "SHARE",
			AssetName: createName + " shares",
		})
		if err != nil {
			return err
		}
		assetPending, err := signAndSubmit(cmd, assetGroup, privateKey)
		if err != nil {
			return err
		}
		sharesAssetId := assetPending.AssetIndex
		fmt.Printf("shares asset: %v\n", sharesAssetId)

		// 2. application
		appGroup, err := daoInteractor.CreateApp(ctx, usecase.CreateAppParams{
			Creator:       account.Address,
			SharesAssetId: sharesAssetId,
			FundsAssetId:  config.GetFundsAssetId(),
			ShareSupply:   domain.ShareAmount(createSupply),
			SharePrice:    domain.FundsAmount(createPrice),
			InvestorsPart: investorsPart,
		})
		if err != nil {
			return err
		}
		appPending, err := signAndSubmit(cmd, appGroup, privateKey)
		if err != nil {
			return err
		}
		appId := appPending.ApplicationIndex
		fmt.Printf("application: %v\n", appId)

		// 3. escrows, parameterized by the now-known app id
		escrows, err := daoInteractor.CompileEscrows(ctx, appId, sharesAssetId, account.Address)
		if err != nil {
			return err
		}
		fundGroup, err := daoInteractor.FundEscrows(ctx, usecase.FundEscrowsParams{
			Creator: account.Address,
			Escrows: escrows,
		})
		if err != nil {
			return err
		}
		if _, err := signAndSubmit(cmd, fundGroup, privateKey); err != nil {
			return err
		}

		// 4. setup
		toSign, err := daoInteractor.SetupDao(ctx, usecase.SetupDaoParams{
			AppId:          appId,
			Creator:        account.Address,
			SharesAssetId:  sharesAssetId,
			FundsAssetId:   config.GetFundsAssetId(),
			InvestorsPart:  investorsPart,
			Escrows:        escrows,
			Name:           createName,
			DescrId:        createDescr,
			SocialMediaUrl: createSocialMedia,
		})
		if err != nil {
			return err
		}
		if _, err := signAndSubmit(cmd, toSign.Group, privateKey); err != nil {
			return err
		}

		fmt.Printf("dao %q is live: app %v, shares %v\n",
			toSign.Dao.Name, toSign.Dao.AppId, toSign.Dao.SharesAssetId)
		return nil
	},
}

func signAndSubmit(cmd *cobra.Command, group *usecase.Group, privateKey ed25519.PrivateKey) (*models.PendingTransactionInfoResponse, error) {
	if err := signPendingSlots(group, privateKey); err != nil {
		return nil, err
	}
	confirmed, err := submitter.SubmitAndWait(cmd.Context(), group)
	if err != nil {
		return nil, err
	}
	if confirmed == nil {
		return nil, fmt.Errorf("confirmation timed out, check the transaction manually")
	}
	return confirmed, nil
}

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.Flags().StringVar(&createName, "name", "", "dao name")
	createCmd.Flags().Uint64Var(&createSupply, "supply", 0, "total share supply")
	createCmd.Flags().Uint64Var(&createPrice, "price", 0, "price per share in microalgos")
	createCmd.Flags().StringVar(&createInvestorsPart, "investors-part", "0.4", "fraction of the supply sold to investors")
	createCmd.Flags().StringVar(&createDescr, "descr-id", "", "description blob id")
	createCmd.Flags().StringVar(&createSocialMedia, "social-media", "", "social media url")
	createCmd.MarkFlagRequired("name")
	createCmd.MarkFlagRequired("supply")
	createCmd.MarkFlagRequired("price")
}
