package cmd

import (
	"github.com/spf13/cobra"
)

var recoveryCmd = &cobra.Command{
	Use:   "recovery <accountId>",
	Short: "查询账户的恢复方式",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		accountID := args[0]
		if err := components.Recovery.Fetch(cmd.Context(), accountID); err != nil {
			return err
		}
		return printJSON(cmd, components.Recovery.Methods(accountID))
	},
}

func init() {
	rootCmd.AddCommand(recoveryCmd)
}
