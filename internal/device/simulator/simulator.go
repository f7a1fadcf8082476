// Package simulator 开发和测试用的模拟 QR 签名设备，行为全部来自配置
package simulator

import (
	"context"
	"errors"
	"slices"
	"sync"

	"go.uber.org/zap"

	"wallet-keystone/pkg/config"
	"wallet-keystone/pkg/errno"
	"wallet-keystone/pkg/hdpath"
	"wallet-keystone/pkg/logger"
)

// ErrConnectFailed 配置了 fail_connect 时 Initialize 返回
var ErrConnectFailed = errors.New("simulated device: camera unavailable")

type Device struct {
	cfg config.SimulatorConfig

	mu           sync.Mutex
	connected    bool
	onDisconnect func()
}

func New(cfg config.SimulatorConfig) *Device {
	return &Device{cfg: cfg}
}

// Initialize 实现 keystone.Device
func (d *Device) Initialize(ctx context.Context, onDisconnect func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d.cfg.FailConnect {
		return ErrConnectFailed
	}
	d.mu.Lock()
	d.connected = true
	d.onDisconnect = onDisconnect
	d.mu.Unlock()
	logger.Debug("simulated keystone connected")
	return nil
}

func (d *Device) Available() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.connected
}

// Unplug 模拟设备断开，触发 Initialize 时注册的回调
func (d *Device) Unplug() {
	d.mu.Lock()
	cb := d.onDisconnect
	wasConnected := d.connected
	d.connected = false
	d.mu.Unlock()

	if wasConnected && cb != nil {
		cb()
	}
}

// GetPublicKey 实现 service.Signer
func (d *Device) GetPublicKey(ctx context.Context, path string) (string, error) {
	if !d.Available() {
		return "", errno.ErrDeviceUnavailable
	}
	if err := hdpath.Validate(path); err != nil {
		return "", err
	}
	for _, k := range d.cfg.Keys {
		if k.Path == path {
			return k.PublicKey, nil
		}
	}
	// 没有配置的路径返回一个不会登记任何账户的公钥
	return "ed25519:unregistered-" + path, nil
}

// ConfirmAccount 实现 service.Signer；reject 列表里的账户视为用户在设备上拒绝
func (d *Device) ConfirmAccount(ctx context.Context, accountID string) error {
	if !d.Available() {
		return errno.ErrDeviceUnavailable
	}
	if slices.Contains(d.cfg.Reject, accountID) {
		logger.Info("simulated keystone rejected account", zap.String("account_id", accountID))
		return errno.ErrTransportRejection
	}
	return ctx.Err()
}

// Keys 配置中的公钥及其账户，用于启动时填充钱包索引
func (d *Device) Keys() []config.SimulatedKey {
	return d.cfg.Keys
}
