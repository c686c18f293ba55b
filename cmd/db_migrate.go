package cmd

import (
	"github.com/fox-one/pkg/store/db"
	"github.com/spf13/cobra"
)

// migrate creates the vault tables and grants the configured admin on a
// fresh database
var migrateCmd = &cobra.Command{
	Use:     "migrate",
	Aliases: []string{"setdb"},
	Short:   "migrate database tables and initialize the vault",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		if err := db.Migrate(database); err != nil {
			cmd.PrintErrln("migrate database error:", err)
			return
		}

		if skip, _ := cmd.Flags().GetBool("skip-init"); skip {
			return
		}

		vault := provideVault(provideTransactor(database), provideAssetRegistry())
		if err := vault.Init(ctx, cfg.Vault.Admin); err != nil {
			cmd.PrintErrln("initialize vault error:", err)
			return
		}

		cmd.Println("vault", vault.Address(), "ready, admin", cfg.Vault.Admin)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().Bool("skip-init", false, "only migrate tables")
}
