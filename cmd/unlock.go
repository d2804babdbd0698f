package cmd

import (
	"fmt"
	"strconv"

	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/mnemonic"
	"github.com/spf13/cobra"

	"github.com/ivanschuetz/capi-core-sub000/domain/config"
	"github.com/ivanschuetz/capi-core-sub000/usecase"
)

// unlockCmd returns all locked shares to the configured account and closes
// out its local state.
var unlockCmd = &cobra.Command{
	Use:   "unlock <app-id>",
	Short: "Unlocks the configured account's shares",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appId, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid app id %q: %w", args[0], err)
		}

		if config.GetMnemonic() == "" {
			return fmt.Errorf("a mnemonic is required to sign the unlock transactions")
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

		toSign, err := lockInteractor.Unlock(ctx, usecase.UnlockParams{
			Dao:      dao,
			Investor: account.Address,
		})
		if err != nil {
			return err
		}

		fmt.Printf("unlocking %v shares\n", toSign.ShareCount.Raw())

		if _, err := signAndSubmit(cmd, toSign.Group, privateKey); err != nil {
			return err
		}

		fmt.Printf("shares returned\n")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(unlockCmd)
}
