package model

import (
	"time"

	"wallet-keystone/internal/recovery"
)

// ImportedAccount 在签名设备上确认过的账户
type ImportedAccount struct {
	AccountID  string    `json:"account_id"`
	PublicKey  string    `json:"public_key"`
	ImportedAt time.Time `json:"imported_at"`
}

// AccountSelection 最近一次保存的账户集合以及当前选中的账户
type AccountSelection struct {
	AccountIDs  []string  `json:"account_ids"`
	Selected    string    `json:"selected"`
	KeystoneKey string    `json:"keystone_key,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AccountRecord 账户在链上登记的信息 (公钥、恢复方式)
type AccountRecord struct {
	AccountID       string            `json:"account_id"`
	PublicKey       string            `json:"public_key"`
	RecoveryMethods []recovery.Method `json:"recovery_methods"`
}
