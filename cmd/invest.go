package cmd

import (
	"fmt"
	"strconv"

	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/mnemonic"
	"github.com/spf13/cobra"

	"github.com/ivanschuetz/capi-core-sub000/domain"
	"github.com/ivanschuetz/capi-core-sub000/domain/config"
	"github.com/ivanschuetz/capi-core-sub000/domain/util"
	"github.com/ivanschuetz/capi-core-sub000/usecase"
)

// investCmd buys and locks shares for the configured account.
var investCmd = &cobra.Command{
	Use:   "invest <app-id> <share-count>",
	Short: "Buys dao shares with the configured account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		appId, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid app id %q: %w", args[0], err)
		}
		shareCount, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid share count %q: %w", args[1], err)
		}

		if config.GetMnemonic() == "" {
			return fmt.Errorf("a mnemonic is required to sign the invest transactions")
		}
		privateKey, err := mnemonic.ToPrivateKey(config.GetMnemonic())
		if err != nil {
			return fmt.Errorf("invalid mnemonic: %w", err)
		}
		account, err := crypto.AccountFromPrivateKey(privateKey)
		if err != nil {
			return err
		}

		ctx := cmd.Context()

		dao, err := daoInteractor.FetchDao(ctx, appId)
		if err != nil {
			return err
		}

		toSign, err := investInteractor.Invest(ctx, usecase.InvestParams{
			Dao:        dao,
			Investor:   account.Address,
			ShareCount: domain.ShareAmount(shareCount),
		})
		if err != nil {
			return err
		}

		fmt.Printf("buying %v shares for %v\n",
			shareCount, util.MicroAlgoString(toSign.TotalPrice.Raw()))

		if err := signPendingSlots(toSign.Group, privateKey); err != nil {
			return err
		}

		confirmed, err := submitter.SubmitAndWait(ctx, toSign.Group)
		if err != nil {
			return err
		}
		if confirmed == nil {
			return fmt.Errorf("confirmation timed out, check the transaction manually")
		}

		fmt.Printf("confirmed in round %v\n", confirmed.ConfirmedRound)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(investCmd)
}
