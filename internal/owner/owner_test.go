package owner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wallet-keystone/internal/store"
)

type recorder struct{ actions []store.Action }

func (r *recorder) Dispatch(a store.Action) { r.actions = append(r.actions, a) }

type stubProvider struct {
	owner AccountOwner
	err   error
}

func (p stubProvider) GetAccountOwner(ctx context.Context) (AccountOwner, error) {
	return p.owner, p.err
}

func TestRefresh_FansOutFulfilled(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	want := AccountOwner{AccountID: "alice.testnet", Keystone: KeystoneInfo{HasKeystone: true, KeystoneKey: "ed25519:abc"}}

	got, err := Refresh(context.Background(), store.Fanout{a, b}, stubProvider{owner: want})
	require.NoError(t, err)
	assert.Equal(t, want, got)

	for _, r := range []*recorder{a, b} {
		require.Len(t, r.actions, 2)
		assert.Equal(t, TypeRefreshAccountOwner+"/pending", r.actions[0].Type)
		assert.Equal(t, TypeRefreshAccountOwner+"/fulfilled", r.actions[1].Type)
		payload, ok := store.PayloadAs[AccountOwner](r.actions[1])
		require.True(t, ok)
		assert.True(t, payload.Keystone.HasKeystone)
	}
}

func TestRefresh_Rejected(t *testing.T) {
	r := &recorder{}
	boom := errors.New("rpc down")

	_, err := Refresh(context.Background(), r, stubProvider{err: boom})
	require.ErrorIs(t, err, boom)

	require.Len(t, r.actions, 2)
	last := r.actions[1]
	assert.Equal(t, TypeRefreshAccountOwner+"/rejected", last.Type)
	assert.ErrorIs(t, last.Error, boom)
}
