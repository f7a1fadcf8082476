package main

import (
	"context"

	"go.uber.org/zap"

	"wallet-keystone/internal/bootstrap"
	"wallet-keystone/internal/handler"
	"wallet-keystone/internal/server"
	"wallet-keystone/pkg/config"
	"wallet-keystone/pkg/logger"
)

// @title wallet-keystone API
// @version 1.0
// @description QR 签名设备配对与账户导入
// @BasePath /
func main() {
	// 0. 初始化 Config
	config.Init()

	// 1. 初始化 Logger
	logger.Init(config.Global.App.Env)
	defer logger.Sync()

	// 2. 组装组件 (Redis、存储、消息队列、设备、钱包、业务服务)
	c, err := bootstrap.Build(context.Background(), config.Global)
	if err != nil {
		logger.Fatal("组件初始化失败", zap.Error(err))
	}
	defer c.Close()

	// 3. HTTP Router
	r := server.NewHTTPRouter(server.Handlers{
		Keystone: handler.NewKeystoneHandler(c.Keystone, c.Wallet, c.Wallet, config.Global.Keystone.HDPathPrefix),
		Recovery: handler.NewRecoveryHandler(c.Recovery),
	})

	// 4. 启动应用 (阻塞，收到信号后优雅退出)
	app := server.New(server.Config{HttpPort: config.Global.App.HttpPort}, r)
	app.Run()

	logger.Info("系统已退出")
}
