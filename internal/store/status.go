package store

import "wallet-keystone/pkg/errno"

// ErrorPayload 失败信息，只保留可序列化的部分
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewErrorPayload err 为 nil 时返回 nil
func NewErrorPayload(err error) *ErrorPayload {
	if err == nil {
		return nil
	}
	code, msg := errno.Decode(err)
	return &ErrorPayload{Code: code, Message: msg}
}

// Status 异步操作的 loading / error 记录
type Status struct {
	Loading bool          `json:"loading"`
	Error   *ErrorPayload `json:"error,omitempty"`
}

// StatusLens 定位状态树中某个异步操作对应的 Status。
// Set 必须 copy-on-write。
type StatusLens[S any] struct {
	Get func(state S, a Action) Status
	Set func(state S, a Action, st Status) S
}

// HandleAsyncThunkStatus 为 typePrefix 对应的异步操作注册三段状态记录：
// pending 设置 loading 并清掉 error；fulfilled 取消 loading；rejected 取消 loading 并记录 error。
// 不重试、不吞错误。
func HandleAsyncThunkStatus[S any](b *Builder[S], typePrefix string, lens StatusLens[S]) {
	b.AddCase(typePrefix+suffixPending, func(state S, a Action) S {
		return lens.Set(state, a, Status{Loading: true})
	})
	b.AddCase(typePrefix+suffixFulfilled, func(state S, a Action) S {
		st := lens.Get(state, a)
		st.Loading = false
		return lens.Set(state, a, st)
	})
	b.AddCase(typePrefix+suffixRejected, func(state S, a Action) S {
		return lens.Set(state, a, Status{Loading: false, Error: NewErrorPayload(a.Error)})
	})
}
