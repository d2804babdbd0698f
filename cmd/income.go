package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ivanschuetz/capi-core-sub000/domain"
	"github.com/ivanschuetz/capi-core-sub000/domain/util"
)

// incomeCmd lists the payments a dao's customer escrow has received, with
// the running total, and the current shares distribution.
var incomeCmd = &cobra.Command{
	Use:   "income <app-id>",
	Short: "Shows a dao's received payments and holder distribution",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appId, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid app id %q: %w", args[0], err)
		}

		ctx := cmd.Context()

		dao, err := daoInteractor.FetchDao(ctx, appId)
		if err != nil {
			return err
		}

		payments, err := paymentRepository.FindReceived(ctx, dao.CustomerEscrow.Address, 0)
		if err != nil {
			return err
		}
		total, err := paymentRepository.TotalReceived(ctx, dao.CustomerEscrow.Address)
		if err != nil {
			return err
		}

		fmt.Printf("------------- INCOME --------------------\n")
		for _, payment := range payments {
			fmt.Printf("round %v: %v from %v\n",
				payment.Round, util.MicroAlgoString(payment.Amount.Raw()), payment.Sender)
		}
		fmt.Printf("total received: %v\n", util.MicroAlgoToAlgoString(total.Raw()))

		app, err := node.ApplicationInformation(ctx, appId)
		if err != nil {
			return err
		}
		state, err := domain.ParseCentralAppState(app)
		if err != nil {
			return err
		}

		holders, err := holderRepository.FindDistribution(ctx, dao.SharesAssetId, state.ShareSupply)
		if err != nil {
			return err
		}

		fmt.Printf("------------- HOLDERS -------------------\n")
		for _, holder := range holders {
			fmt.Printf("%v: %v shares (%v%%)\n",
				holder.Address, holder.Amount.Raw(), holder.Percentage.StringFixed(2))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(incomeCmd)
}
