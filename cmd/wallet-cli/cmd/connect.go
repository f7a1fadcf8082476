package cmd

import (
	"github.com/spf13/cobra"
)

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "与签名设备配对",
	RunE: func(cmd *cobra.Command, args []string) error {
		err := components.Keystone.Connect(cmd.Context())
		if printErr := printJSON(cmd, components.Keystone.State().Connection); printErr != nil {
			return printErr
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(connectCmd)
}
