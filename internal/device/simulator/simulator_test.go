package simulator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wallet-keystone/pkg/config"
	"wallet-keystone/pkg/errno"
)

func testConfig() config.SimulatorConfig {
	return config.SimulatorConfig{
		Keys: []config.SimulatedKey{
			{Path: "44'/397'/0'/0'/1'", PublicKey: "ed25519:AAA", Accounts: []string{"alice.near"}},
		},
		Reject: []string{"bob.near"},
	}
}

func TestDevice_RequiresConnection(t *testing.T) {
	d := New(testConfig())
	_, err := d.GetPublicKey(context.Background(), "44'/397'/0'/0'/1'")
	assert.ErrorIs(t, err, errno.ErrDeviceUnavailable)
	assert.ErrorIs(t, d.ConfirmAccount(context.Background(), "alice.near"), errno.ErrDeviceUnavailable)
}

func TestDevice_Signer(t *testing.T) {
	d := New(testConfig())
	ctx := context.Background()
	require.NoError(t, d.Initialize(ctx, nil))
	assert.True(t, d.Available())

	pk, err := d.GetPublicKey(ctx, "44'/397'/0'/0'/1'")
	require.NoError(t, err)
	assert.Equal(t, "ed25519:AAA", pk)

	pk, err = d.GetPublicKey(ctx, "44'/397'/0'/0'/9'")
	require.NoError(t, err)
	assert.NotEqual(t, "ed25519:AAA", pk)

	_, err = d.GetPublicKey(ctx, "bogus")
	assert.ErrorIs(t, err, errno.ErrInvalidPath)

	assert.NoError(t, d.ConfirmAccount(ctx, "alice.near"))
	assert.ErrorIs(t, d.ConfirmAccount(ctx, "bob.near"), errno.ErrTransportRejection)
}

func TestDevice_FailConnect(t *testing.T) {
	cfg := testConfig()
	cfg.FailConnect = true
	d := New(cfg)
	assert.ErrorIs(t, d.Initialize(context.Background(), nil), ErrConnectFailed)
	assert.False(t, d.Available())
}

func TestDevice_Unplug(t *testing.T) {
	d := New(testConfig())
	calls := 0
	require.NoError(t, d.Initialize(context.Background(), func() { calls++ }))

	d.Unplug()
	d.Unplug()
	assert.Equal(t, 1, calls)
	assert.False(t, d.Available())
}
