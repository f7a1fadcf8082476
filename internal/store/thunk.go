package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrConditionFailed Condition 返回 false，本次调用被跳过，没有派发任何 Action
var ErrConditionFailed = errors.New("thunk condition not met")

// SettledHook 在 fulfilled / rejected 派发之后调用，err 为 nil 表示成功
type SettledHook func(ctx context.Context, typePrefix string, err error)

// AsyncThunk 把一个异步操作包装成 pending -> fulfilled | rejected 三个 Action
type AsyncThunk[A, R any] struct {
	TypePrefix string
	Run        func(ctx context.Context, arg A) (R, error)
	// Condition 返回 false 时跳过执行 (可选)
	Condition func(arg A) bool
	// Settled 结束后的附加动作，例如弹出提示 (可选)
	Settled SettledHook
}

func NewAsyncThunk[A, R any](typePrefix string, run func(ctx context.Context, arg A) (R, error)) *AsyncThunk[A, R] {
	return &AsyncThunk[A, R]{TypePrefix: typePrefix, Run: run}
}

func (t *AsyncThunk[A, R]) Pending() string   { return t.TypePrefix + suffixPending }
func (t *AsyncThunk[A, R]) Fulfilled() string { return t.TypePrefix + suffixFulfilled }
func (t *AsyncThunk[A, R]) Rejected() string  { return t.TypePrefix + suffixRejected }

// Dispatch 执行异步操作并派发对应的 Action，返回值等同于 unwrap 之后的结果：
// 失败时 error 原样返回，调用方决定是否继续传播。
func (t *AsyncThunk[A, R]) Dispatch(ctx context.Context, d Dispatcher, arg A) (R, error) {
	var zero R
	if t.Condition != nil && !t.Condition(arg) {
		return zero, ErrConditionFailed
	}

	meta := Meta{RequestID: uuid.NewString(), Arg: arg}
	d.Dispatch(Action{Type: t.Pending(), Meta: meta})

	result, err := t.Run(ctx, arg)
	if err != nil {
		d.Dispatch(Action{Type: t.Rejected(), Meta: meta, Error: err})
		t.settle(ctx, err)
		return zero, err
	}

	d.Dispatch(Action{Type: t.Fulfilled(), Meta: meta, Payload: result})
	t.settle(ctx, nil)
	return result, nil
}

func (t *AsyncThunk[A, R]) settle(ctx context.Context, err error) {
	if t.Settled != nil {
		t.Settled(ctx, t.TypePrefix, err)
	}
}
