package keystone

import (
	"context"

	"wallet-keystone/internal/store"
	"wallet-keystone/pkg/hdpath"
)

const SliceName = "keystone"

// HDPathPrefix 签名设备上 NEAR 账户的派生路径前缀
const HDPathPrefix = hdpath.DefaultPrefix

// DefaultModalTextID 签名确认弹窗的默认文案
const DefaultModalTextID = "keystoneSignTxModal.DEFAULT"

// ModalStatus 登录流程所处的阶段，决定 UI 渲染哪个界面；空字符串表示没有流程
type ModalStatus string

const (
	StatusNone             ModalStatus = ""
	StatusConfirmPublicKey ModalStatus = "confirm-public-key"
	StatusConfirmAccounts  ModalStatus = "confirm-accounts"
	StatusEnterAccountID   ModalStatus = "enter-accountId"
	StatusSuccess          ModalStatus = "success"
)

// AccountStatus 单个账户的导入状态
type AccountStatus string

const (
	AccountWaiting  AccountStatus = "waiting"
	AccountConfirm  AccountStatus = "confirm"
	AccountPending  AccountStatus = "pending"
	AccountSuccess  AccountStatus = "success"
	AccountRejected AccountStatus = "rejected"
	AccountError    AccountStatus = "error"
)

// ConnectModalType 设备连接弹窗类型；空字符串表示不显示
type ConnectModalType string

const (
	ConnectModalNone         ConnectModalType = ""
	ConnectModalConnect      ConnectModalType = "connect"
	ConnectModalError        ConnectModalType = "connection-error"
	ConnectModalDisconnected ConnectModalType = "disconnected"
)

// AccountEntry 发现阶段返回的账户及其导入状态
type AccountEntry struct {
	AccountID string        `json:"accountId"`
	Status    AccountStatus `json:"status"`
}

// Modal 签名确认弹窗，零值表示隐藏。
// Action 是弹窗等待的异步 Action 类型，该 Action 结束时弹窗自动关闭。
type Modal struct {
	Show   bool   `json:"show,omitempty"`
	Action string `json:"action,omitempty"`
	TextID string `json:"textId,omitempty"`
}

// Connection 设备配对状态，和具体账户无关
type Connection struct {
	Available    bool             `json:"available"`
	Disconnected bool             `json:"disconnected"`
	ModalType    ConnectModalType `json:"modalType,omitempty"`
	Status       store.Status     `json:"status"`
}

// State keystone 模块的完整状态
type State struct {
	// Status 整个登录流程的 loading / error
	Status       store.Status `json:"status"`
	SignInStatus ModalStatus  `json:"signInWithKeystoneStatus,omitempty"`
	// TxSigned 设备签名进行中；清除即为 false
	TxSigned bool `json:"txSigned,omitempty"`
	// Accounts 按发现顺序排列；nil 表示未开始
	Accounts    []AccountEntry `json:"signInWithKeystone,omitempty"`
	Modal       Modal          `json:"modal"`
	Connection  Connection     `json:"connection"`
	HasKeystone bool           `json:"hasKeystone"`
	KeystoneKey string         `json:"keystoneKey,omitempty"`
}

// InitialState store 初始化时的状态
func InitialState() State {
	return State{}
}

// Device 签名设备驱动
type Device interface {
	// Initialize 完成配对；设备之后断开时调用 onDisconnect
	Initialize(ctx context.Context, onDisconnect func()) error
	Available() bool
}

// Wallet 钱包后端
type Wallet interface {
	// GetAccountIDs 查询派生路径下的账户；没有账户时返回 errno.ErrNoAccounts
	GetAccountIDs(ctx context.Context, path string) ([]string, error)
	// AddAccountID 在设备上确认并导入账户；用户在设备上拒绝时返回 errno.ErrTransportRejection
	AddAccountID(ctx context.Context, accountID string) error
	SaveAndSelectAccounts(ctx context.Context, accounts []AccountEntry) error
}

// PathStore 本地 accountId -> 派生路径
type PathStore interface {
	SetDerivationPath(ctx context.Context, accountID, path string) error
}

// ImportResult 批量导入中单个账户的结果
type ImportResult struct {
	AccountID string
	Status    AccountStatus
	Err       error
}
