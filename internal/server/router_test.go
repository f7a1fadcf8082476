package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wallet-keystone/internal/device/simulator"
	"wallet-keystone/internal/handler"
	"wallet-keystone/internal/keystone"
	"wallet-keystone/internal/recovery"
	"wallet-keystone/internal/service/wallet"
	"wallet-keystone/pkg/cache"
	"wallet-keystone/pkg/config"
	"wallet-keystone/pkg/errno"
	"wallet-keystone/pkg/hdpath"
)

const (
	alicePath = "44'/397'/0'/0'/1'"
	aliceKey  = "ed25519:AliceKey"
)

type apiResponse struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

type testServer struct {
	router *gin.Engine
	device *simulator.Device
	wallet *wallet.Service
	ks     *keystone.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	device := simulator.New(config.SimulatorConfig{
		Keys:   []config.SimulatedKey{{Path: alicePath, PublicKey: aliceKey}},
		Reject: []string{"mallory.near"},
	})
	c := cache.NewMemoryCache(0, time.Minute)
	w := wallet.NewService(c, device, nil)
	ks := keystone.NewService(keystone.Options{}, device, w, hdpath.NewStore(c), nil)
	rec := recovery.NewService(w)

	r := NewHTTPRouter(Handlers{
		Keystone: handler.NewKeystoneHandler(ks, w, w, hdpath.DefaultPrefix),
		Recovery: handler.NewRecoveryHandler(rec),
	})
	return &testServer{router: r, device: device, wallet: w, ks: ks}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) apiResponse {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func decodeState(t *testing.T, raw json.RawMessage) keystone.State {
	t.Helper()
	var st keystone.State
	require.NoError(t, json.Unmarshal(raw, &st))
	return st
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, errno.OK.Code, resp.Code)
	assert.Contains(t, string(resp.Data), `"status":"UP"`)
}

func TestSignInFlow(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodPost, "/api/v1/keystone/accounts", gin.H{"public_key": aliceKey, "account_id": "alice.near"})
	require.Equal(t, errno.OK.Code, resp.Code, resp.Msg)
	resp = s.do(t, http.MethodPost, "/api/v1/keystone/accounts", gin.H{"public_key": aliceKey, "account_id": "mallory.near"})
	require.Equal(t, errno.OK.Code, resp.Code, resp.Msg)

	resp = s.do(t, http.MethodPost, "/api/v1/keystone/connect", nil)
	require.Equal(t, errno.OK.Code, resp.Code, resp.Msg)
	assert.True(t, decodeState(t, resp.Data).Connection.Available)

	resp = s.do(t, http.MethodPost, "/api/v1/keystone/signin", gin.H{"index": 1})
	require.Equal(t, errno.OK.Code, resp.Code, resp.Msg)

	st := decodeState(t, resp.Data)
	assert.Equal(t, keystone.StatusSuccess, st.SignInStatus)
	assert.Equal(t, []keystone.AccountEntry{
		{AccountID: "alice.near", Status: keystone.AccountSuccess},
		{AccountID: "mallory.near", Status: keystone.AccountRejected},
	}, st.Accounts)
	assert.True(t, st.HasKeystone)
	assert.Equal(t, aliceKey, st.KeystoneKey)

	resp = s.do(t, http.MethodGet, "/api/v1/recovery/alice.near", nil)
	require.Equal(t, errno.OK.Code, resp.Code, resp.Msg)
	var methods recovery.AccountMethods
	require.NoError(t, json.Unmarshal(resp.Data, &methods))
	require.Len(t, methods.Items, 1)
	assert.Equal(t, "keystone", methods.Items[0].Kind)
}

func TestSignIn_NoAccountsFallsBackToManualEntry(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPost, "/api/v1/keystone/connect", nil)

	resp := s.do(t, http.MethodPost, "/api/v1/keystone/signin", gin.H{"path": "44'/397'/0'/0'/7'"})
	assert.Equal(t, errno.ErrNoAccounts.Code, resp.Code)
	assert.Equal(t, keystone.StatusEnterAccountID, decodeState(t, resp.Data).SignInStatus)

	resp = s.do(t, http.MethodPost, "/api/v1/keystone/accounts/typed.near/import", gin.H{"path": "44'/397'/0'/0'/7'"})
	require.Equal(t, errno.OK.Code, resp.Code, resp.Msg)
	st := decodeState(t, resp.Data)
	assert.Equal(t, keystone.StatusConfirmAccounts, st.SignInStatus)
	assert.Equal(t, []keystone.AccountEntry{{AccountID: "typed.near", Status: keystone.AccountSuccess}}, st.Accounts)

	resp = s.do(t, http.MethodPost, "/api/v1/keystone/reset", nil)
	assert.Nil(t, decodeState(t, resp.Data).Accounts)
}

func TestSignIn_Validation(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodPost, "/api/v1/keystone/signin", gin.H{"path": "44'/oops"})
	assert.Equal(t, errno.ErrBind.Code, resp.Code)
	assert.Contains(t, resp.Msg, "Path")
}

func TestDeviceUnplug(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPost, "/api/v1/keystone/connect", nil)

	s.device.Unplug()

	resp := s.do(t, http.MethodGet, "/api/v1/keystone/state", nil)
	st := decodeState(t, resp.Data)
	assert.False(t, st.Connection.Available)
	assert.True(t, st.Connection.Disconnected)
	assert.Equal(t, keystone.ConnectModalDisconnected, st.Connection.ModalType)
}

func TestModalRoutes(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodPost, "/api/v1/keystone/modal/show", gin.H{"show": true, "action": "transactions/signAndSend"})
	assert.True(t, decodeState(t, resp.Data).Modal.Show)

	resp = s.do(t, http.MethodPost, "/api/v1/keystone/modal/hide", nil)
	assert.False(t, decodeState(t, resp.Data).Modal.Show)

	resp = s.do(t, http.MethodPost, "/api/v1/keystone/modal/show", gin.H{"show": true})
	assert.Equal(t, errno.ErrBind.Code, resp.Code)
}

func TestRecovery_UnknownAccount(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodGet, "/api/v1/recovery/ghost.near", nil)
	assert.Equal(t, errno.ErrAccountNotFound.Code, resp.Code)
}
