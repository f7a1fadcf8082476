package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:     "register <publicKey> <accountId>",
	Short:   "在公钥索引中登记账户",
	Long:    `登记后 signin 可以在该公钥下发现账户。内存存储只在本次运行中有效，通常和 --redis 一起使用。`,
	Example: `wallet-cli --redis register ed25519:6E8sCci9badyRkXb3JoRpBj5p8C6Tw41ELDZoiihKEtp alice.testnet`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := components.Wallet.RegisterAccount(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "已登记 %s -> %s\n", args[1], args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
}
