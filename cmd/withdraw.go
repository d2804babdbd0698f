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

// withdrawCmd withdraws from the central escrow to the dao owner. The
// contract rejects the group when the configured account is not the owner.
var withdrawCmd = &cobra.Command{
	Use:   "withdraw <app-id> <microalgos>",
	Short: "Withdraws funds from a dao's central escrow to its owner",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		appId, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid app id %q: %w", args[0], err)
		}
		amount, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", args[1], err)
		}

		if config.GetMnemonic() == "" {
			return fmt.Errorf("a mnemonic is required to sign the withdrawal")
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

		toSign, err := withdrawInteractor.Withdraw(ctx, usecase.WithdrawParams{
			Dao:    dao,
			Owner:  account.Address,
			Amount: domain.FundsAmount(amount),
		})
		if err != nil {
			return err
		}

		fmt.Printf("withdrawing %v\n", util.MicroAlgoString(amount))

		if _, err := signAndSubmit(cmd, toSign.Group, privateKey); err != nil {
			return err
		}

		fmt.Printf("withdrawal confirmed\n")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(withdrawCmd)
}
