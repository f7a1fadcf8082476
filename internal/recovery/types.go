// Package recovery 按账户拉取并缓存恢复方式列表
package recovery

import (
	"context"
	"time"

	"wallet-keystone/internal/store"
)

const SliceName = "recoveryMethods"

// Method 单个恢复方式 (邮箱、手机、助记词、硬件设备...)
type Method struct {
	Kind      string    `json:"kind"`
	Detail    string    `json:"detail,omitempty"`
	PublicKey string    `json:"publicKey,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// AccountMethods 某个账户的恢复方式及其拉取状态
type AccountMethods struct {
	Items  []Method     `json:"items"`
	Status store.Status `json:"status"`
}

// State 以 accountId 为键；map 只在 reducer 中整体复制后修改
type State struct {
	ByAccountID map[string]AccountMethods `json:"byAccountId"`
}

func InitialState() State {
	return State{ByAccountID: map[string]AccountMethods{}}
}

// Provider 恢复方式的数据来源
type Provider interface {
	GetRecoveryMethods(ctx context.Context, accountID string) ([]Method, error)
}
