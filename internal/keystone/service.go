package keystone

import (
	"context"

	"go.uber.org/zap"

	"wallet-keystone/internal/notify"
	"wallet-keystone/internal/owner"
	"wallet-keystone/internal/store"
	"wallet-keystone/pkg/logger"
)

// Options Service 配置
type Options struct {
	HideEnterAccountIDModal bool
}

type importAllArg struct {
	Path       string
	AccountIDs []string
}

// Service 协调签名设备配对、账户发现与导入。
// 所有状态都在 store 中，外部通过 State / Subscribe 读取。
// 同一个 Service 上的操作不能并发调用 (设备同一时间只能处理一个确认请求)。
type Service struct {
	store  *store.Store[State]
	device Device
	wallet Wallet
	paths  PathStore
	alerts notify.Sink
	log    *zap.Logger

	showConnect   *store.AsyncThunk[struct{}, struct{}]
	connect       *store.AsyncThunk[struct{}, struct{}]
	disconnect    *store.AsyncThunk[struct{}, struct{}]
	getAccountIDs *store.AsyncThunk[string, []string]
	addAccountID  *store.AsyncThunk[string, struct{}]
	saveAndSelect *store.AsyncThunk[[]AccountEntry, struct{}]
	addAndSave    *store.AsyncThunk[importAllArg, []ImportResult]
	checkAndHide  *store.AsyncThunk[struct{}, struct{}]
	signIn        *store.AsyncThunk[string, struct{}]
}

func NewService(opts Options, device Device, wallet Wallet, paths PathStore, alerts notify.Sink) *Service {
	if alerts == nil {
		alerts = notify.LogSink{}
	}
	s := &Service{
		store:  NewStore(ReducerOptions{HideEnterAccountIDModal: opts.HideEnterAccountIDModal}),
		device: device,
		wallet: wallet,
		paths:  paths,
		alerts: alerts,
		log:    logger.With(zap.String("module", SliceName)),
	}

	s.showConnect = store.NewAsyncThunk(TypeShowConnectModal, s.runShowConnectModal)
	s.connect = store.NewAsyncThunk(TypeConnect, s.runConnect)
	s.connect.Settled = notify.ThunkAlerts(alerts, true)

	s.disconnect = store.NewAsyncThunk(TypeDisconnect, s.runDisconnect)

	s.getAccountIDs = store.NewAsyncThunk(TypeGetAccountIDs, s.runGetAccountIDs)
	s.getAccountIDs.Settled = notify.ThunkAlerts(alerts, true)

	s.addAccountID = store.NewAsyncThunk(TypeAddAccountID, func(ctx context.Context, accountID string) (struct{}, error) {
		return struct{}{}, s.wallet.AddAccountID(ctx, accountID)
	})
	s.addAccountID.Settled = notify.ThunkAlerts(alerts, false)

	s.saveAndSelect = store.NewAsyncThunk(TypeSaveAndSelectAccounts, func(ctx context.Context, accounts []AccountEntry) (struct{}, error) {
		return struct{}{}, s.wallet.SaveAndSelectAccounts(ctx, accounts)
	})
	s.saveAndSelect.Settled = notify.ThunkAlerts(alerts, false)

	s.addAndSave = store.NewAsyncThunk(TypeAddAndSaveAccounts, s.runAddAndSave)
	s.checkAndHide = store.NewAsyncThunk(TypeCheckAndHideModal, s.runCheckAndHide)
	s.signIn = store.NewAsyncThunk(TypeSignIn, s.runSignIn)

	return s
}

// State 当前状态快照
func (s *Service) State() State {
	return s.store.GetState()
}

// Subscribe 每次状态变更后回调
func (s *Service) Subscribe(l store.Listener[State]) (unsubscribe func()) {
	return s.store.Subscribe(l)
}

// Dispatch 派发同步 Action (ShowModal、ClearSignInState 等)
func (s *Service) Dispatch(a store.Action) {
	s.store.Dispatch(a)
}

// RefreshAccountOwner 刷新账户所有者信息，结果写入 HasKeystone / KeystoneKey
func (s *Service) RefreshAccountOwner(ctx context.Context, p owner.Provider) (owner.AccountOwner, error) {
	return owner.Refresh(ctx, s.store, p)
}
