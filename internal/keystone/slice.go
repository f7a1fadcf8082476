package keystone

import (
	"wallet-keystone/internal/owner"
	"wallet-keystone/internal/store"
	"wallet-keystone/pkg/errno"
)

// 同步 Action
const (
	ActionSetTxSigned            = SliceName + "/setKeystoneTxSigned"
	ActionClearSignInState       = SliceName + "/clearSignInWithKeystoneModalState"
	ActionShowModal              = SliceName + "/showKeystoneModal"
	ActionHideModal              = SliceName + "/hideKeystoneModal"
	ActionSetConnectionStatus    = SliceName + "/setKeystoneConnectionStatus"
	ActionSetDisconnected        = SliceName + "/setKeystoneDisconnected"
	ActionSetConnectionModalType = SliceName + "/setKeystoneConnectionModalType"
)

// 异步操作前缀
const (
	TypeShowConnectModal      = SliceName + "/handleShowConnectModal"
	TypeConnect               = SliceName + "/handleConnectKeystone"
	TypeDisconnect            = SliceName + "/handleDisconnectKeystone"
	TypeGetAccountIDs         = SliceName + "/getKeystoneAccountIds"
	TypeAddAccountID          = SliceName + "/addKeystoneAccountId"
	TypeSaveAndSelectAccounts = SliceName + "/saveAndSelectKeystoneAccounts"
	TypeAddAndSaveAccounts    = SliceName + "/signInWithKeystoneAddAndSaveAccounts"
	TypeCheckAndHideModal     = SliceName + "/checkAndHideKeystoneModal"
	TypeSignIn                = SliceName + "/signInWithKeystone"
)

type TxSignedPayload struct {
	Status    bool
	AccountID string
}

type ShowModalPayload struct {
	Show   bool
	Action string
}

type ConnectionStatusPayload struct {
	Available bool
}

type ConnectionModalPayload struct {
	Type ConnectModalType
}

// --- Action creators ---

func SetTxSigned(status bool, accountID string) store.Action {
	return store.Action{Type: ActionSetTxSigned, Payload: TxSignedPayload{Status: status, AccountID: accountID}}
}

func ClearSignInState() store.Action {
	return store.Action{Type: ActionClearSignInState}
}

func ShowModal(show bool, action string) store.Action {
	return store.Action{Type: ActionShowModal, Payload: ShowModalPayload{Show: show, Action: action}}
}

func HideModal() store.Action {
	return store.Action{Type: ActionHideModal}
}

func SetConnectionStatus(available bool) store.Action {
	return store.Action{Type: ActionSetConnectionStatus, Payload: ConnectionStatusPayload{Available: available}}
}

// SetDisconnected 一次性写入 available=false、disconnected=true 和断开弹窗
func SetDisconnected() store.Action {
	return store.Action{Type: ActionSetDisconnected}
}

func SetConnectionModalType(t ConnectModalType) store.Action {
	return store.Action{Type: ActionSetConnectionModalType, Payload: ConnectionModalPayload{Type: t}}
}

// ReducerOptions 影响 reducer 行为的开关
type ReducerOptions struct {
	// HideEnterAccountIDModal 为 true 时 "没有找到账户" 不切换到手动输入界面
	HideEnterAccountIDModal bool
}

var rootStatusLens = store.StatusLens[State]{
	Get: func(s State, _ store.Action) store.Status { return s.Status },
	Set: func(s State, _ store.Action, st store.Status) State {
		s.Status = st
		return s
	},
}

var connectionStatusLens = store.StatusLens[State]{
	Get: func(s State, _ store.Action) store.Status { return s.Connection.Status },
	Set: func(s State, _ store.Action, st store.Status) State {
		s.Connection.Status = st
		return s
	},
}

// NewReducer 构造 keystone 模块的 reducer
func NewReducer(opts ReducerOptions) store.Reducer[State] {
	b := store.NewBuilder[State]()

	b.AddCase(ActionSetTxSigned, func(s State, a store.Action) State {
		p, _ := store.PayloadAs[TxSignedPayload](a)
		s.TxSigned = p.Status
		// 签名进行中时不能同时显示确认弹窗
		if p.Status && s.Modal.Show {
			s.Modal = Modal{}
		}
		if p.AccountID == "" || len(s.Accounts) == 0 {
			return s
		}
		// 设备确认期间收到签名完成，标记为 pending
		if st, ok := accountStatus(s.Accounts, p.AccountID); ok && st == AccountConfirm && p.Status {
			s.Accounts = withAccountStatus(s.Accounts, p.AccountID, AccountPending)
		}
		return s
	})
	b.AddCase(ActionClearSignInState, func(s State, _ store.Action) State {
		s.TxSigned = false
		s.SignInStatus = StatusNone
		s.Accounts = nil
		return s
	})
	b.AddCase(ActionShowModal, func(s State, a store.Action) State {
		p, _ := store.PayloadAs[ShowModalPayload](a)
		s.TxSigned = false
		s.Modal = Modal{
			// 登录流程有自己的界面，进行中不弹签名确认
			Show:   s.SignInStatus == StatusNone && p.Show,
			Action: p.Action,
			TextID: DefaultModalTextID,
		}
		return s
	})
	b.AddCase(ActionHideModal, func(s State, _ store.Action) State {
		s.Modal = Modal{}
		s.TxSigned = false
		return s
	})
	b.AddCase(ActionSetConnectionStatus, func(s State, a store.Action) State {
		p, _ := store.PayloadAs[ConnectionStatusPayload](a)
		s.Connection.Available = p.Available
		if p.Available {
			s.Connection.Disconnected = false
		}
		return s
	})
	b.AddCase(ActionSetDisconnected, func(s State, _ store.Action) State {
		s.Connection.Available = false
		s.Connection.Disconnected = true
		s.Connection.ModalType = ConnectModalDisconnected
		return s
	})
	b.AddCase(ActionSetConnectionModalType, func(s State, a store.Action) State {
		p, _ := store.PayloadAs[ConnectionModalPayload](a)
		s.Connection.ModalType = p.Type
		return s
	})

	// getKeystoneAccountIds
	b.AddCase(TypeGetAccountIDs+"/pending", func(s State, _ store.Action) State {
		s.SignInStatus = StatusConfirmPublicKey
		return s
	})
	b.AddCase(TypeGetAccountIDs+"/fulfilled", func(s State, a store.Action) State {
		ids, _ := store.PayloadAs[[]string](a)
		s.TxSigned = false
		s.SignInStatus = StatusConfirmAccounts
		s.Accounts = waitingAccounts(ids)
		return s
	})
	b.AddCase(TypeGetAccountIDs+"/rejected", func(s State, a store.Action) State {
		s.TxSigned = false
		if errno.KindOf(a.Error) == errno.KindNotFound && !opts.HideEnterAccountIDModal {
			s.SignInStatus = StatusEnterAccountID
			return s
		}
		s.SignInStatus = StatusNone
		s.Accounts = nil
		return s
	})

	// addKeystoneAccountId: 每次都重新确认 confirm-accounts，防止上一次流程残留 enter-accountId
	b.AddCase(TypeAddAccountID+"/pending", func(s State, a store.Action) State {
		id, _ := store.ArgAs[string](a)
		s.SignInStatus = StatusConfirmAccounts
		s.Accounts = withAccountStatus(s.Accounts, id, AccountConfirm)
		return s
	})
	b.AddCase(TypeAddAccountID+"/fulfilled", func(s State, a store.Action) State {
		id, _ := store.ArgAs[string](a)
		s.SignInStatus = StatusConfirmAccounts
		s.Accounts = withAccountStatus(s.Accounts, id, AccountSuccess)
		return s
	})
	b.AddCase(TypeAddAccountID+"/rejected", func(s State, a store.Action) State {
		id, _ := store.ArgAs[string](a)
		s.SignInStatus = StatusConfirmAccounts
		status := AccountError
		if errno.KindOf(a.Error) == errno.KindTransportRejection {
			status = AccountRejected
		}
		s.Accounts = withAccountStatus(s.Accounts, id, status)
		return s
	})

	b.AddCase(owner.TypeRefreshAccountOwner+"/fulfilled", func(s State, a store.Action) State {
		o, _ := store.PayloadAs[owner.AccountOwner](a)
		s.HasKeystone = o.Keystone.HasKeystone
		s.KeystoneKey = o.Keystone.KeystoneKey
		return s
	})

	b.AddCase(TypeSignIn+"/fulfilled", func(s State, _ store.Action) State {
		s.SignInStatus = StatusSuccess
		return s
	})

	store.HandleAsyncThunkStatus(b, TypeSignIn, rootStatusLens)
	store.HandleAsyncThunkStatus(b, TypeConnect, connectionStatusLens)

	return b.Build()
}

// AutoHideModal 弹窗等待的 Action 一结束 (成功、失败或 ready) 就关闭弹窗。
// 任何操作只要把自己的 Action 类型写进 Modal.Action 就会自动关闭，不需要单独处理。
func AutoHideModal(s State, a store.Action) State {
	if !a.IsTerminal() || !s.Modal.Show || a.Type != s.Modal.Action {
		return s
	}
	s.Modal = Modal{}
	s.TxSigned = false
	return s
}

// NewStore 创建带自动关闭弹窗规则的 keystone store
func NewStore(opts ReducerOptions) *store.Store[State] {
	return store.New(InitialState(), NewReducer(opts), AutoHideModal)
}
