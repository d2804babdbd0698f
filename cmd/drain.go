package cmd

import (
	"crypto/ed25519"
	"fmt"
	"strconv"

	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/mnemonic"
	"github.com/algorand/go-algorand-sdk/v2/types"
	"github.com/spf13/cobra"

	"github.com/ivanschuetz/capi-core-sub000/domain"
	"github.com/ivanschuetz/capi-core-sub000/domain/config"
	"github.com/ivanschuetz/capi-core-sub000/domain/util"
	"github.com/ivanschuetz/capi-core-sub000/usecase"
)

var drainCapiEscrow string

// drainCmd runs the full drain flow: compose, sign with the configured
// mnemonic, submit and wait for the confirmation.
var drainCmd = &cobra.Command{
	Use:   "drain <app-id>",
	Short: "Drains a dao's customer escrow",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appId, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid app id %q: %w", args[0], err)
		}

		if config.GetMnemonic() == "" {
			return fmt.Errorf("a mnemonic is required to sign the drain transactions")
		}
		privateKey, err := mnemonic.ToPrivateKey(config.GetMnemonic())
		if err != nil {
			return fmt.Errorf("invalid mnemonic: %w", err)
		}
		account, err := crypto.AccountFromPrivateKey(privateKey)
		if err != nil {
			return err
		}

		capiEscrow, err := types.DecodeAddress(drainCapiEscrow)
		if err != nil {
			return fmt.Errorf("invalid capi escrow address: %w", err)
		}

		ctx := cmd.Context()

		dao, err := daoInteractor.FetchDao(ctx, appId)
		if err != nil {
			return err
		}

		toSign, err := drainInteractor.Drain(ctx, usecase.DrainParams{
			Dao:        dao,
			Drainer:    account.Address,
			CapiEscrow: capiEscrow,
			CapiFee:    config.GetCapiFeePercentage(),
		})
		if err != nil {
			return err
		}

		fmt.Printf("draining %v (dao %v, capi fee %v)\n",
			util.MicroAlgoString(toSign.Amounts.Total.Raw()),
			util.MicroAlgoString(toSign.Amounts.ToDao.Raw()),
			util.MicroAlgoString(toSign.Amounts.CapiFee.Raw()))

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

func signPendingSlots(group *usecase.Group, privateKey ed25519.PrivateKey) error {
	indices, txns, err := group.PendingUserSlots()
	if err != nil {
		return err
	}
	for i, txn := range txns {
		txId, raw, err := crypto.SignTransaction(privateKey, txn)
		if err != nil {
			return err
		}
		if err := group.ProvideUserSignature(indices[i], domain.SignedTxn{TxId: txId, Raw: raw}); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(drainCmd)
	drainCmd.Flags().StringVar(&drainCapiEscrow, "capi-escrow", "", "capi fee escrow address")
	drainCmd.MarkFlagRequired("capi-escrow")
}
