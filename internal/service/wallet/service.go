package wallet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"wallet-keystone/internal/event"
	"wallet-keystone/internal/keystone"
	"wallet-keystone/internal/model"
	"wallet-keystone/internal/owner"
	"wallet-keystone/internal/recovery"
	"wallet-keystone/internal/service"
	"wallet-keystone/internal/service/mq"
	"wallet-keystone/pkg/cache"
	"wallet-keystone/pkg/errno"
	"wallet-keystone/pkg/logger"
)

// Service 钱包后端：账户索引、导入记录、选中账户
type Service struct {
	cache    cache.Cache
	signer   service.Signer // 依赖签名设备取公钥、确认账户
	producer mq.Producer    // 可选，为 nil 时不发事件
	log      *zap.Logger

	mu      sync.Mutex
	lastKey string // 最近一次发现账户时设备返回的公钥
}

func NewService(c cache.Cache, signer service.Signer, producer mq.Producer) *Service {
	return &Service{
		cache:    c,
		signer:   signer,
		producer: producer,
		log:      logger.With(zap.String("module", "wallet")),
	}
}

// GetAccountIDs 查询派生路径对应公钥下登记的账户
// 1. 向设备请求公钥
// 2. 按公钥查账户索引
// 3. 没有账户时返回 errno.ErrNoAccounts
func (s *Service) GetAccountIDs(ctx context.Context, path string) ([]string, error) {
	publicKey, err := s.signer.GetPublicKey(ctx, path)
	if err != nil {
		return nil, deviceError(err)
	}

	s.mu.Lock()
	s.lastKey = publicKey
	s.mu.Unlock()

	var ids []string
	err = s.cache.Get(ctx, model.AccountsByKeyKey(publicKey), &ids)
	if err != nil && !errors.Is(err, cache.ErrCacheMiss) {
		return nil, errno.ErrPersistence.WithMessage(err.Error())
	}
	if len(ids) == 0 {
		return nil, errno.ErrNoAccounts
	}
	return ids, nil
}

// AddAccountID 在设备上确认账户并记录导入
func (s *Service) AddAccountID(ctx context.Context, accountID string) error {
	if err := s.signer.ConfirmAccount(ctx, accountID); err != nil {
		return deviceError(err)
	}

	s.mu.Lock()
	publicKey := s.lastKey
	s.mu.Unlock()

	rec := model.ImportedAccount{AccountID: accountID, PublicKey: publicKey, ImportedAt: time.Now().UTC()}
	if err := s.cache.Set(ctx, model.ImportedAccountKey(accountID), rec, 0); err != nil {
		return errno.ErrPersistence.WithMessage(err.Error())
	}
	return nil
}

// SaveAndSelectAccounts 保存导入成功的账户并选中第一个
func (s *Service) SaveAndSelectAccounts(ctx context.Context, accounts []keystone.AccountEntry) error {
	var ids []string
	for _, a := range accounts {
		if a.Status == keystone.AccountSuccess {
			ids = append(ids, a.AccountID)
		}
	}
	if len(ids) == 0 {
		return errno.ErrNoAccounts.WithMessage("no imported accounts to save")
	}

	s.mu.Lock()
	publicKey := s.lastKey
	s.mu.Unlock()

	sel := model.AccountSelection{
		AccountIDs:  ids,
		Selected:    ids[0],
		KeystoneKey: publicKey,
		UpdatedAt:   time.Now().UTC(),
	}
	if err := s.cache.Set(ctx, model.SelectionKey, sel, 0); err != nil {
		return errno.ErrPersistence.WithMessage(err.Error())
	}

	s.publishSaved(ctx, sel)
	return nil
}

func (s *Service) publishSaved(ctx context.Context, sel model.AccountSelection) {
	if s.producer == nil {
		return
	}
	ev := event.AccountsSavedEvent{
		ID:          uuid.NewString(),
		AccountIDs:  sel.AccountIDs,
		Selected:    sel.Selected,
		KeystoneKey: sel.KeystoneKey,
		CreatedAt:   sel.UpdatedAt,
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		s.log.Error("marshal accounts saved event failed", zap.Error(err))
		return
	}
	// 事件只用于通知，发送失败不影响保存结果
	if err := s.producer.Publish(ctx, mq.TopicAccounts, sel.Selected, payload); err != nil {
		s.log.Warn("publish accounts saved event failed", zap.String("selected", sel.Selected), zap.Error(err))
	}
}

// RegisterAccount 在公钥索引中登记账户，并为它添加一个设备恢复方式
func (s *Service) RegisterAccount(ctx context.Context, publicKey, accountID string) error {
	if publicKey == "" || accountID == "" {
		return errno.ErrBind.WithMessage("public key and account id are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var ids []string
	if err := s.cache.Get(ctx, model.AccountsByKeyKey(publicKey), &ids); err != nil && !errors.Is(err, cache.ErrCacheMiss) {
		return errno.ErrPersistence.WithMessage(err.Error())
	}
	if !slices.Contains(ids, accountID) {
		ids = append(ids, accountID)
	}
	if err := s.cache.Set(ctx, model.AccountsByKeyKey(publicKey), ids, 0); err != nil {
		return errno.ErrPersistence.WithMessage(err.Error())
	}

	rec := model.AccountRecord{
		AccountID: accountID,
		PublicKey: publicKey,
		RecoveryMethods: []recovery.Method{{
			Kind:      "keystone",
			PublicKey: publicKey,
			CreatedAt: time.Now().UTC(),
		}},
	}
	if err := s.cache.Set(ctx, model.AccountRecordKey(accountID), rec, 0); err != nil {
		return errno.ErrPersistence.WithMessage(err.Error())
	}
	s.log.Info("account registered", zap.String("account_id", accountID), zap.String("public_key", publicKey))
	return nil
}

// GetRecoveryMethods 实现 recovery.Provider
func (s *Service) GetRecoveryMethods(ctx context.Context, accountID string) ([]recovery.Method, error) {
	var rec model.AccountRecord
	if err := s.cache.Get(ctx, model.AccountRecordKey(accountID), &rec); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, errno.ErrAccountNotFound
		}
		return nil, errno.ErrPersistence.WithMessage(err.Error())
	}
	return rec.RecoveryMethods, nil
}

// GetAccountOwner 实现 owner.Provider，返回当前选中账户
func (s *Service) GetAccountOwner(ctx context.Context) (owner.AccountOwner, error) {
	var sel model.AccountSelection
	if err := s.cache.Get(ctx, model.SelectionKey, &sel); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return owner.AccountOwner{}, errno.ErrAccountNotFound.WithMessage("no account selected")
		}
		return owner.AccountOwner{}, errno.ErrPersistence.WithMessage(err.Error())
	}
	return owner.AccountOwner{
		AccountID: sel.Selected,
		Keystone: owner.KeystoneInfo{
			HasKeystone: sel.KeystoneKey != "",
			KeystoneKey: sel.KeystoneKey,
		},
	}, nil
}

// deviceError 用户拒绝原样返回 (调用方据此标记 rejected)，其余错误归为设备错误
func deviceError(err error) error {
	if errors.Is(err, errno.ErrTransportRejection) || errors.Is(err, errno.ErrNoAccounts) {
		return err
	}
	return fmt.Errorf("%w: %v", errno.ErrDevice, err)
}
