package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wallet-keystone/internal/bootstrap"
	"wallet-keystone/pkg/config"
	"wallet-keystone/pkg/logger"
)

var (
	cfgFile  string
	useRedis bool

	// components 在 PersistentPreRunE 中初始化
	components *bootstrap.Components
)

// rootCmd 代表基础命令，没有子命令时直接调用
var rootCmd = &cobra.Command{
	Use:   "wallet-cli",
	Short: "签名设备账户导入命令行工具",
	Long: `连接 QR 签名设备 (默认使用配置中的模拟设备)，发现并导入账户。
默认使用内存存储，每次运行都是独立的；加上 --redis 后数据保存在 Redis 中。`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.InitWithFile(cfgFile)
		if useRedis {
			config.Global.Redis.Enabled = true
			config.Global.Keystone.Storage = "redis"
		}
		logger.Init(config.Global.App.Env)

		c, err := bootstrap.Build(cmd.Context(), config.Global)
		if err != nil {
			return err
		}
		components = c
		return nil
	},
}

// Execute 将所有子命令添加到根命令并设置标志
func Execute() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run(args []string) error {
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	// RunE 返回错误时 cobra 不会执行 PostRun，在这里统一释放连接
	closeComponents()
	return err
}

func closeComponents() {
	if components != nil {
		components.Close()
		components = nil
	}
	logger.Sync()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "配置文件 (默认 ./config.yaml 或 ./config/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&useRedis, "redis", false, "使用 Redis 存储")
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
