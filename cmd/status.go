package cmd

import (
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status [asset...]",
	Short: "show pause state and custody balances",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		b := provideBackend(false)
		defer b.close()

		vault := provideVault(b.transactor, provideAssetRegistry())

		paused, err := vault.IsPaused(ctx)
		if err != nil {
			cmd.PrintErrln("read pause state failed:", err)
			return
		}

		cmd.Println("vault", vault.Address(), "paused", paused)

		for _, assetID := range args {
			balance, err := vault.CustodyBalance(ctx, assetID)
			if err != nil {
				cmd.PrintErrln("custody balance", assetID, "failed:", err)
				continue
			}

			cmd.Println(assetID, balance)
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
