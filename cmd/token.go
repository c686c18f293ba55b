package cmd

import (
	"time"

	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "issue an api access token for a principal",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		principal, _ := cmd.Flags().GetString("principal")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		token, err := provideSessionService().Issue(ctx, principal, ttl)
		if err != nil {
			cmd.PrintErrln("issue token failed:", err)
			return
		}

		cmd.Println(token)
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.Flags().String("principal", "", "principal the token authenticates")
	tokenCmd.Flags().Duration("ttl", 24*time.Hour, "token lifetime")
}
