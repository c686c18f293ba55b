package cmd

import (
	"custody/pkg/number"

	"github.com/spf13/cobra"
)

var mintCmd = &cobra.Command{
	Use:   "mint <asset> <holder> <amount>",
	Short: "credit a holder on the built-in ledger",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		amount, err := number.Positive(args[2])
		if err != nil {
			cmd.PrintErrln("invalid amount:", err)
			return
		}

		b := provideBackend(false)
		defer b.close()

		if err := provideLedger(b.transactor).Mint(ctx, args[0], args[1], amount); err != nil {
			cmd.PrintErrln("mint failed:", err)
			return
		}

		cmd.Println("minted", amount, "to", args[1])
	},
}

var approveCmd = &cobra.Command{
	Use:   "approve <asset> <owner> <amount>",
	Short: "set the allowance an owner grants the vault",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		amount, err := number.Parse(args[2])
		if err != nil {
			cmd.PrintErrln("invalid amount:", err)
			return
		}

		spender, _ := cmd.Flags().GetString("spender")
		if spender == "" {
			spender = cfg.Vault.Address
		}

		b := provideBackend(false)
		defer b.close()

		if err := provideLedger(b.transactor).Approve(ctx, args[0], args[1], spender, amount); err != nil {
			cmd.PrintErrln("approve failed:", err)
			return
		}

		cmd.Println("approved", amount, "for", spender)
	},
}

func init() {
	rootCmd.AddCommand(mintCmd)
	rootCmd.AddCommand(approveCmd)
	approveCmd.Flags().String("spender", "", "spender, defaults to the vault address")
}
