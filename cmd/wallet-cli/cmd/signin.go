package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"wallet-keystone/internal/keystone"
	"wallet-keystone/pkg/config"
	"wallet-keystone/pkg/hdpath"
	"wallet-keystone/pkg/logger"
)

var (
	signInPath  string
	signInIndex uint32
)

// signinCmd 完整登录流程
// Example:
//
//	wallet-cli signin --index=1
var signinCmd = &cobra.Command{
	Use:     "signin",
	Short:   "发现并导入签名设备上的账户",
	Example: `wallet-cli signin --path="44'/397'/0'/0'/1'"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := signInPath
		if path == "" {
			path = hdpath.Build(config.Global.Keystone.HDPathPrefix, signInIndex)
		}
		if err := hdpath.Validate(path); err != nil {
			return err
		}

		ctx := cmd.Context()
		ks := components.Keystone
		if err := ks.Connect(ctx); err != nil {
			return fmt.Errorf("连接签名设备失败: %w", err)
		}

		err := ks.SignIn(ctx, path)
		if err == nil {
			if _, ownerErr := ks.RefreshAccountOwner(ctx, components.Wallet); ownerErr != nil {
				logger.Warn("refresh account owner failed", zap.Error(ownerErr))
			}
		}

		st := ks.State()
		if printErr := printJSON(cmd, st); printErr != nil {
			return printErr
		}
		if keystone.SelectSignInStatus(st) == keystone.StatusEnterAccountID {
			fmt.Fprintln(cmd.OutOrStdout(), "没有找到账户，可以用 register 登记后重试")
		}
		return err
	},
}

func init() {
	signinCmd.Flags().StringVar(&signInPath, "path", "", "派生路径，优先于 --index")
	signinCmd.Flags().Uint32Var(&signInIndex, "index", 0, "派生路径最后一级 index")
	rootCmd.AddCommand(signinCmd)
}
