// Package owner 刷新当前账户的所有者信息 (是否绑定了签名设备等)，
// 多个功能模块的状态都会消费它的 fulfilled Action。
package owner

import (
	"context"

	"wallet-keystone/internal/store"
)

// TypeRefreshAccountOwner 共享的异步操作类型前缀
const TypeRefreshAccountOwner = "account/refreshAccountOwner"

type KeystoneInfo struct {
	HasKeystone bool   `json:"hasKeystone"`
	KeystoneKey string `json:"keystoneKey"`
}

type AccountOwner struct {
	AccountID string       `json:"accountId"`
	Keystone  KeystoneInfo `json:"keystone"`
}

// Provider 查询当前账户的所有者信息
type Provider interface {
	GetAccountOwner(ctx context.Context) (AccountOwner, error)
}

// Refresh 拉取所有者信息并派发 account/refreshAccountOwner/* Action。
// d 通常是 store.Fanout，把结果同时送给多个模块。
func Refresh(ctx context.Context, d store.Dispatcher, p Provider) (AccountOwner, error) {
	thunk := store.NewAsyncThunk(TypeRefreshAccountOwner, func(ctx context.Context, _ struct{}) (AccountOwner, error) {
		return p.GetAccountOwner(ctx)
	})
	return thunk.Dispatch(ctx, d, struct{}{})
}
