package cmd

import (
	"fmt"
	"strconv"

	"github.com/algorand/go-algorand-sdk/v2/types"
	"github.com/spf13/cobra"

	"github.com/ivanschuetz/capi-core-sub000/domain"
	"github.com/ivanschuetz/capi-core-sub000/domain/util"
)

var stateInvestor string

// stateCmd prints a dao's global state, and an investor's local state and
// claimable dividend when --investor is given.
var stateCmd = &cobra.Command{
	Use:   "state <app-id>",
	Short: "Inspects a dao's on-chain state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appId, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid app id %q: %w", args[0], err)
		}

		ctx := cmd.Context()

		app, err := node.ApplicationInformation(ctx, appId)
		if err != nil {
			return err
		}
		state, err := domain.ParseCentralAppState(app)
		if err != nil {
			return err
		}

		fmt.Printf("------------- DAO STATE -----------------\n")
		fmt.Printf("name:            %v\n", state.Name)
		fmt.Printf("owner:           %v\n", state.Owner)
		fmt.Printf("received total:  %v\n", util.MicroAlgoToAlgoString(state.ReceivedTotal.Raw()))
		fmt.Printf("share supply:    %v\n", util.FundsString(state.ShareSupply.Raw()))
		fmt.Printf("investors part:  %v\n", util.FundsString(state.InvestorsPart.Raw()))
		fmt.Printf("share price:     %v\n", util.MicroAlgoString(state.SharePrice.Raw()))
		fmt.Printf("shares asset:    %v\n", state.SharesAssetId)
		fmt.Printf("central escrow:  %v\n", state.CentralEscrow)
		fmt.Printf("customer escrow: %v\n", state.CustomerEscrow)

		if stateInvestor != "" {
			investor, err := types.DecodeAddress(stateInvestor)
			if err != nil {
				return fmt.Errorf("invalid investor address: %w", err)
			}

			claimable, err := claimInteractor.FetchClaimable(ctx, appId, investor)
			if err != nil {
				return err
			}
			fmt.Printf("claimable now:   %v\n", util.MicroAlgoString(claimable.Raw()))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(stateCmd)
	stateCmd.Flags().StringVar(&stateInvestor, "investor", "", "investor address to show local state for")
}
