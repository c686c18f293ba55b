package cmd

import (
	"github.com/spf13/cobra"
)

var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "pause deposits and withdrawals",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		b := provideBackend(false)
		defer b.close()

		if err := provideVault(b.transactor, provideAssetRegistry()).Pause(ctx, cfg.Vault.Admin); err != nil {
			cmd.PrintErrln("pause failed:", err)
			return
		}

		cmd.Println("paused")
	},
}

var unpauseCmd = &cobra.Command{
	Use:   "unpause",
	Short: "resume deposits and withdrawals",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		b := provideBackend(false)
		defer b.close()

		if err := provideVault(b.transactor, provideAssetRegistry()).Unpause(ctx, cfg.Vault.Admin); err != nil {
			cmd.PrintErrln("unpause failed:", err)
			return
		}

		cmd.Println("unpaused")
	},
}

func init() {
	rootCmd.AddCommand(pauseCmd)
	rootCmd.AddCommand(unpauseCmd)
}
