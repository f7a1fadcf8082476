package recovery

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wallet-keystone/internal/store"
)

type fakeProvider struct {
	mu      sync.Mutex
	methods map[string][]Method
	err     error
	calls   int

	// block 非 nil 时在返回前等待，模拟慢请求
	block   chan struct{}
	started chan struct{}
}

func (p *fakeProvider) GetRecoveryMethods(ctx context.Context, accountID string) ([]Method, error) {
	p.mu.Lock()
	p.calls++
	block, started := p.block, p.started
	p.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if block != nil {
		<-block
	}
	if p.err != nil {
		return nil, p.err
	}
	return p.methods[accountID], nil
}

func TestSelectors_Defaults(t *testing.T) {
	s := InitialState()
	m := SelectByAccountID(s, "unknown.near")
	assert.Equal(t, []Method{}, m.Items)
	assert.False(t, m.Status.Loading)
	assert.Nil(t, m.Status.Error)
	assert.False(t, SelectLoading(s, "unknown.near"))
}

func TestFetch_ReplacesItems(t *testing.T) {
	p := &fakeProvider{methods: map[string][]Method{
		"alice.near": {{Kind: "email", Detail: "a@example.com"}, {Kind: "phrase"}},
	}}
	svc := NewService(p)
	ctx := context.Background()

	require.NoError(t, svc.Fetch(ctx, "alice.near"))
	assert.Len(t, svc.Methods("alice.near").Items, 2)

	p.methods["alice.near"] = []Method{{Kind: "ledger"}}
	require.NoError(t, svc.Fetch(ctx, "alice.near"))

	got := svc.Methods("alice.near")
	assert.Equal(t, []Method{{Kind: "ledger"}}, got.Items)
	assert.False(t, got.Status.Loading)
	assert.Equal(t, 2, p.calls)
}

func TestFetch_ErrorRecordedPerAccount(t *testing.T) {
	p := &fakeProvider{err: errors.New("rpc unavailable")}
	svc := NewService(p)

	err := svc.Fetch(context.Background(), "alice.near")
	require.EqualError(t, err, "rpc unavailable")

	st := svc.Methods("alice.near")
	assert.False(t, st.Status.Loading)
	require.NotNil(t, st.Status.Error)
	assert.Equal(t, "rpc unavailable", st.Status.Error.Message)
	assert.Equal(t, []Method{}, st.Items)

	// 其他账户不受影响
	assert.Nil(t, svc.Methods("bob.near").Status.Error)
}

func TestFetch_SuppressedWhileLoading(t *testing.T) {
	p := &fakeProvider{
		methods: map[string][]Method{"alice.near": {{Kind: "phone"}}},
		block:   make(chan struct{}),
		started: make(chan struct{}, 1),
	}
	svc := NewService(p)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- svc.Fetch(ctx, "alice.near") }()
	<-p.started

	assert.True(t, SelectLoading(svc.State(), "alice.near"))
	assert.ErrorIs(t, svc.Fetch(ctx, "alice.near"), store.ErrConditionFailed)

	close(p.block)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("fetch did not finish")
	}

	assert.Equal(t, 1, p.calls)
	assert.Equal(t, []Method{{Kind: "phone"}}, svc.Methods("alice.near").Items)
}

func TestReducer_CopyOnWrite(t *testing.T) {
	reduce := NewReducer()
	before := InitialState()
	after := reduce(before, SetRecoveryMethods("alice.near", []Method{{Kind: "email"}}))

	assert.Empty(t, before.ByAccountID)
	assert.Len(t, after.ByAccountID, 1)
}
