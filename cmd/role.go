package cmd

import (
	"custody/core"

	"github.com/spf13/cobra"
)

var roleCmd = &cobra.Command{
	Use:   "role",
	Short: "manage vault roles",
}

var roleGrantCmd = &cobra.Command{
	Use:   "grant <principal> <role>",
	Short: "grant a role, caller must be admin",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		b := provideBackend(false)
		defer b.close()

		vault := provideVault(b.transactor, provideAssetRegistry())
		caller, _ := cmd.Flags().GetString("caller")

		if err := vault.GrantRole(ctx, caller, args[0], core.Role(args[1])); err != nil {
			cmd.PrintErrln("grant role failed:", err)
			return
		}

		cmd.Println("granted", args[1], "to", args[0])
	},
}

var roleRevokeCmd = &cobra.Command{
	Use:   "revoke <principal> <role>",
	Short: "revoke a role, caller must be admin",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		b := provideBackend(false)
		defer b.close()

		vault := provideVault(b.transactor, provideAssetRegistry())
		caller, _ := cmd.Flags().GetString("caller")

		if err := vault.RevokeRole(ctx, caller, args[0], core.Role(args[1])); err != nil {
			cmd.PrintErrln("revoke role failed:", err)
			return
		}

		cmd.Println("revoked", args[1], "from", args[0])
	},
}

var roleListCmd = &cobra.Command{
	Use:   "list <principal>",
	Short: "list roles held by a principal",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		b := provideBackend(false)
		defer b.close()

		roles, err := provideVault(b.transactor, provideAssetRegistry()).Roles(ctx, args[0])
		if err != nil {
			cmd.PrintErrln("list roles failed:", err)
			return
		}

		for _, role := range roles {
			cmd.Println(role)
		}
	},
}

func init() {
	rootCmd.AddCommand(roleCmd)
	roleCmd.PersistentFlags().String("caller", "", "acting principal, defaults to the configured admin")
	roleCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if caller, _ := cmd.Flags().GetString("caller"); caller == "" {
			_ = cmd.Flags().Set("caller", cfg.Vault.Admin)
		}
	}

	roleCmd.AddCommand(roleGrantCmd)
	roleCmd.AddCommand(roleRevokeCmd)
	roleCmd.AddCommand(roleListCmd)
}
