package recovery

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"wallet-keystone/internal/store"
	"wallet-keystone/pkg/logger"
	"wallet-keystone/pkg/monitor"
)

type Service struct {
	store    *store.Store[State]
	provider Provider
	fetch    *store.AsyncThunk[string, struct{}]
}

func NewService(p Provider) *Service {
	s := &Service{
		store:    store.New(InitialState(), NewReducer()),
		provider: p,
	}
	s.fetch = store.NewAsyncThunk(TypeFetchRecoveryMethods, s.runFetch)
	// 同一账户已经在拉取时直接跳过；只是检查一次，并不是互斥锁
	s.fetch.Condition = func(accountID string) bool {
		return !SelectLoading(s.store.GetState(), accountID)
	}
	return s
}

// Fetch 拉取账户的恢复方式并整体替换已有列表。
// 同一账户的上一次拉取还没结束时返回 store.ErrConditionFailed，不派发任何 Action。
func (s *Service) Fetch(ctx context.Context, accountID string) error {
	_, err := s.fetch.Dispatch(ctx, s.store, accountID)
	if !errors.Is(err, store.ErrConditionFailed) {
		monitor.ObserveRecoveryFetch(err)
	}
	return err
}

func (s *Service) runFetch(ctx context.Context, accountID string) (struct{}, error) {
	methods, err := s.provider.GetRecoveryMethods(ctx, accountID)
	if err != nil {
		logger.Warn("fetch recovery methods failed", zap.String("account_id", accountID), zap.Error(err))
		return struct{}{}, err
	}
	s.store.Dispatch(SetRecoveryMethods(accountID, methods))
	return struct{}{}, nil
}

func (s *Service) State() State {
	return s.store.GetState()
}

func (s *Service) Methods(accountID string) AccountMethods {
	return SelectByAccountID(s.store.GetState(), accountID)
}
