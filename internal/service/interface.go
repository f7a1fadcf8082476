package service

import "context"

// Signer 签名设备上与钱包后端相关的能力
type Signer interface {
	// GetPublicKey 返回派生路径对应的公钥，格式 "ed25519:<base58>"
	GetPublicKey(ctx context.Context, path string) (string, error)
	// ConfirmAccount 在设备上确认导入账户；用户拒绝时返回 errno.ErrTransportRejection
	ConfirmAccount(ctx context.Context, accountID string) error
}
