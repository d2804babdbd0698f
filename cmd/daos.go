package cmd

import (
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/types"
	"github.com/spf13/cobra"
)

var daosWithDescr bool

// daosCmd lists the daos a creator has published, from their on-chain note
// records.
var daosCmd = &cobra.Command{
	Use:   "daos <creator-address>",
	Short: "Lists the daos created by an address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		creator, err := types.DecodeAddress(args[0])
		if err != nil {
			return fmt.Errorf("invalid creator address: %w", err)
		}

		ctx := cmd.Context()

		records, err := daoRepository.FindByCreator(ctx, creator)
		if err != nil {
			return err
		}

		for _, record := range records {
			fmt.Printf("app %v: %v (shares asset %v)\n",
				record.AppId, record.Name, record.SharesAssetId)

			if daosWithDescr && record.DescrId != "" {
				descr, err := blobApi.GetDescr(ctx, record.DescrId)
				if err != nil {
					fmt.Printf("  description unavailable: %v\n", err)
					continue
				}
				fmt.Printf("  %s\n", descr)
			}
		}

		fmt.Printf("%v dao(s)\n", len(records))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(daosCmd)
	daosCmd.Flags().BoolVar(&daosWithDescr, "descr", false, "fetch and print each dao's description")
}
