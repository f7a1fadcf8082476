// Package store 提供一个最小的 reducer 状态容器：
// 纯函数 reducer 处理 Action 生成新状态，异步操作以 pending / fulfilled / rejected
// 三个 Action 的形式进入状态树，Observer 在每次状态变更后执行跨切面的规则。
package store

import "strings"

const (
	suffixPending   = "/pending"
	suffixFulfilled = "/fulfilled"
	suffixRejected  = "/rejected"
)

// Meta 异步 Action 的附加信息
type Meta struct {
	RequestID string
	Arg       any
}

// Action 状态变更事件
type Action struct {
	Type    string
	Payload any
	Meta    Meta
	Error   error
	// Ready 显式标记某个操作已就绪 (与 fulfilled/rejected 一样视为终态)
	Ready bool
}

// IsTerminal 操作是否已经结束 (成功、失败或显式 ready)
func (a Action) IsTerminal() bool {
	return a.Ready || a.Error != nil ||
		strings.HasSuffix(a.Type, suffixFulfilled) ||
		strings.HasSuffix(a.Type, suffixRejected)
}

// ArgAs 取出 Meta.Arg 并断言成 T
func ArgAs[T any](a Action) (T, bool) {
	v, ok := a.Meta.Arg.(T)
	return v, ok
}

// PayloadAs 取出 Payload 并断言成 T
func PayloadAs[T any](a Action) (T, bool) {
	v, ok := a.Payload.(T)
	return v, ok
}
