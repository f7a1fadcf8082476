package wallet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wallet-keystone/internal/event"
	"wallet-keystone/internal/keystone"
	"wallet-keystone/internal/service/mq"
	"wallet-keystone/pkg/cache"
	"wallet-keystone/pkg/errno"
)

const (
	testPath = "44'/397'/0'/0'/1'"
	testKey  = "ed25519:6E8sCci9badyRkXb3JoRpBj5p8C6Tw41ELDZoiihKEtp"
)

type fakeSigner struct {
	keys       map[string]string
	keyErr     error
	confirmErr map[string]error
}

func (f *fakeSigner) GetPublicKey(ctx context.Context, path string) (string, error) {
	if f.keyErr != nil {
		return "", f.keyErr
	}
	return f.keys[path], nil
}

func (f *fakeSigner) ConfirmAccount(ctx context.Context, accountID string) error {
	return f.confirmErr[accountID]
}

type fakeProducer struct {
	msgs []mq.Message
	err  error
}

func (p *fakeProducer) Publish(ctx context.Context, topic, key string, payload []byte) error {
	p.msgs = append(p.msgs, mq.Message{Topic: topic, Key: key, Payload: payload})
	return p.err
}

// brokenCache 所有操作都失败
type brokenCache struct{}

func (brokenCache) Set(context.Context, string, interface{}, time.Duration) error {
	return errors.New("connection refused")
}
func (brokenCache) Get(context.Context, string, interface{}) error {
	return errors.New("connection refused")
}
func (brokenCache) Delete(context.Context, string) error { return errors.New("connection refused") }

func newTestService(t *testing.T) (*Service, *fakeSigner, *fakeProducer) {
	t.Helper()
	signer := &fakeSigner{keys: map[string]string{testPath: testKey}, confirmErr: map[string]error{}}
	producer := &fakeProducer{}
	return NewService(cache.NewMemoryCache(0, time.Minute), signer, producer), signer, producer
}

func TestGetAccountIDs(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.GetAccountIDs(ctx, testPath)
	assert.ErrorIs(t, err, errno.ErrNoAccounts)
	assert.Equal(t, errno.NoAccountsMessage, err.Error())

	require.NoError(t, svc.RegisterAccount(ctx, testKey, "alice.near"))
	require.NoError(t, svc.RegisterAccount(ctx, testKey, "bob.near"))
	require.NoError(t, svc.RegisterAccount(ctx, testKey, "alice.near"))

	ids, err := svc.GetAccountIDs(ctx, testPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice.near", "bob.near"}, ids)
}

func TestGetAccountIDs_DeviceErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want errno.Kind
	}{
		{"rejection passes through", fmt.Errorf("qr: %w", errno.ErrTransportRejection), errno.KindTransportRejection},
		{"other errors wrapped", errors.New("camera closed"), errno.KindGenericDevice},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, signer, _ := newTestService(t)
			signer.keyErr = tt.err

			_, err := svc.GetAccountIDs(context.Background(), testPath)
			require.Error(t, err)
			assert.Equal(t, tt.want, errno.KindOf(err))
		})
	}

	svc, signer, _ := newTestService(t)
	signer.keyErr = errors.New("camera closed")
	_, err := svc.GetAccountIDs(context.Background(), testPath)
	assert.ErrorIs(t, err, errno.ErrDevice)
}

func TestAddAccountID(t *testing.T) {
	svc, signer, _ := newTestService(t)
	ctx := context.Background()
	signer.confirmErr["bob.near"] = errno.ErrTransportRejection
	signer.confirmErr["carol.near"] = errors.New("timeout")

	assert.NoError(t, svc.AddAccountID(ctx, "alice.near"))
	assert.ErrorIs(t, svc.AddAccountID(ctx, "bob.near"), errno.ErrTransportRejection)

	err := svc.AddAccountID(ctx, "carol.near")
	assert.ErrorIs(t, err, errno.ErrDevice)
	assert.Contains(t, err.Error(), "timeout")
}

func TestSaveAndSelectAccounts(t *testing.T) {
	svc, _, producer := newTestService(t)
	ctx := context.Background()
	_, _ = svc.GetAccountIDs(ctx, testPath)

	err := svc.SaveAndSelectAccounts(ctx, []keystone.AccountEntry{
		{AccountID: "a.near", Status: keystone.AccountRejected},
		{AccountID: "b.near", Status: keystone.AccountSuccess},
		{AccountID: "c.near", Status: keystone.AccountSuccess},
	})
	require.NoError(t, err)

	o, err := svc.GetAccountOwner(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b.near", o.AccountID)
	assert.True(t, o.Keystone.HasKeystone)
	assert.Equal(t, testKey, o.Keystone.KeystoneKey)

	require.Len(t, producer.msgs, 1)
	assert.Equal(t, mq.TopicAccounts, producer.msgs[0].Topic)
	var ev event.AccountsSavedEvent
	require.NoError(t, json.Unmarshal(producer.msgs[0].Payload, &ev))
	assert.Equal(t, []string{"b.near", "c.near"}, ev.AccountIDs)
	assert.Equal(t, "b.near", ev.Selected)
	assert.NotEmpty(t, ev.ID)
}

func TestSaveAndSelectAccounts_NothingImported(t *testing.T) {
	svc, _, producer := newTestService(t)
	err := svc.SaveAndSelectAccounts(context.Background(), []keystone.AccountEntry{
		{AccountID: "a.near", Status: keystone.AccountError},
	})
	assert.Error(t, err)
	assert.Empty(t, producer.msgs)
}

func TestSaveAndSelectAccounts_PublishFailureIgnored(t *testing.T) {
	svc, _, producer := newTestService(t)
	producer.err = errors.New("broker down")

	err := svc.SaveAndSelectAccounts(context.Background(), []keystone.AccountEntry{
		{AccountID: "a.near", Status: keystone.AccountSuccess},
	})
	assert.NoError(t, err)
}

func TestStorageFailures(t *testing.T) {
	signer := &fakeSigner{keys: map[string]string{testPath: testKey}}
	svc := NewService(brokenCache{}, signer, nil)
	ctx := context.Background()

	err := svc.SaveAndSelectAccounts(ctx, []keystone.AccountEntry{{AccountID: "a.near", Status: keystone.AccountSuccess}})
	assert.ErrorIs(t, err, errno.ErrPersistence)
	assert.Equal(t, errno.KindPersistence, errno.KindOf(err))

	_, err = svc.GetAccountIDs(ctx, testPath)
	assert.ErrorIs(t, err, errno.ErrPersistence)

	_, err = svc.GetRecoveryMethods(ctx, "a.near")
	assert.ErrorIs(t, err, errno.ErrPersistence)
}

func TestGetRecoveryMethods(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.GetRecoveryMethods(ctx, "ghost.near")
	assert.ErrorIs(t, err, errno.ErrAccountNotFound)

	require.NoError(t, svc.RegisterAccount(ctx, testKey, "alice.near"))
	methods, err := svc.GetRecoveryMethods(ctx, "alice.near")
	require.NoError(t, err)
	require.Len(t, methods, 1)
	assert.Equal(t, "keystone", methods[0].Kind)
	assert.Equal(t, testKey, methods[0].PublicKey)
}

func TestGetAccountOwner_NoSelection(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.GetAccountOwner(context.Background())
	assert.ErrorIs(t, err, errno.ErrAccountNotFound)
}

func TestRegisterAccount_Validation(t *testing.T) {
	svc, _, _ := newTestService(t)
	assert.ErrorIs(t, svc.RegisterAccount(context.Background(), "", "alice.near"), errno.ErrBind)
}
