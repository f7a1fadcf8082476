package keystone

import (
	"context"
	"time"

	"go.uber.org/zap"

	"wallet-keystone/pkg/hdpath"
	"wallet-keystone/pkg/monitor"
)

// DiscoverAccounts 查询派生路径下的账户。
// 开始时立即进入 confirm-public-key (等设备响应期间 UI 显示等待界面)，
// 成功后所有账户初始化为 waiting。
func (s *Service) DiscoverAccounts(ctx context.Context, path string) ([]string, error) {
	return s.getAccountIDs.Dispatch(ctx, s.store, path)
}

func (s *Service) runGetAccountIDs(ctx context.Context, path string) ([]string, error) {
	if err := hdpath.Validate(path); err != nil {
		return nil, err
	}
	ids, err := s.wallet.GetAccountIDs(ctx, path)
	if err != nil {
		return nil, err
	}
	monitor.ObserveDiscoveredAccounts(len(ids))
	return ids, nil
}

// ImportAccount 在设备上确认并导入单个账户
func (s *Service) ImportAccount(ctx context.Context, accountID string) error {
	_, err := s.addAccountID.Dispatch(ctx, s.store, accountID)
	if status, ok := SelectAccountStatus(s.store.GetState(), accountID); ok {
		monitor.ObserveAccountImport(string(status))
	}
	return err
}

// ImportAndPersistAll 逐个导入账户，最后保存并选中当前全部账户。
// 设备一次只能处理一个确认请求，所以必须串行；单个账户失败只记录日志，不影响后续账户。
// 返回的 error 只来自最后的保存步骤。
func (s *Service) ImportAndPersistAll(ctx context.Context, path string, accountIDs []string) ([]ImportResult, error) {
	return s.addAndSave.Dispatch(ctx, s.store, importAllArg{Path: path, AccountIDs: accountIDs})
}

func (s *Service) runAddAndSave(ctx context.Context, arg importAllArg) ([]ImportResult, error) {
	results := make([]ImportResult, 0, len(arg.AccountIDs))
	for _, accountID := range arg.AccountIDs {
		err := s.importWithPath(ctx, arg.Path, accountID)
		if err != nil {
			// 继续导入剩下的账户
			s.log.Warn("Error importing Keystone-based account", zap.String("account_id", accountID), zap.Error(err))
		}
		status, _ := SelectAccountStatus(s.store.GetState(), accountID)
		results = append(results, ImportResult{AccountID: accountID, Status: status, Err: err})
	}

	_, err := s.saveAndSelect.Dispatch(ctx, s.store, SelectAccounts(s.store.GetState()))
	return results, err
}

func (s *Service) importWithPath(ctx context.Context, path, accountID string) error {
	if err := s.paths.SetDerivationPath(ctx, accountID, path); err != nil {
		return err
	}
	if err := s.ImportAccount(ctx, accountID); err != nil {
		return err
	}
	s.store.Dispatch(SetTxSigned(false, accountID))
	return nil
}

// SignIn 完整的登录流程：发现账户 -> 逐个导入 -> 保存并选中 -> success。
// 发现失败时直接返回错误；保存失败只记录日志，登录仍然视为完成。
func (s *Service) SignIn(ctx context.Context, path string) error {
	start := time.Now()
	_, err := s.signIn.Dispatch(ctx, s.store, path)
	monitor.ObserveSignIn(start, err)
	return err
}

func (s *Service) runSignIn(ctx context.Context, path string) (struct{}, error) {
	s.store.Dispatch(SetTxSigned(true, ""))

	if _, err := s.DiscoverAccounts(ctx, path); err != nil {
		return struct{}{}, err
	}

	accountIDs := SelectAccountIDs(s.store.GetState())
	if _, err := s.ImportAndPersistAll(ctx, path, accountIDs); err != nil {
		s.log.Warn("save and select keystone accounts failed", zap.Error(err))
	}
	return struct{}{}, nil
}

// CheckAndHideModal 弹窗显示时才关闭，可以重复调用
func (s *Service) CheckAndHideModal(ctx context.Context) error {
	_, err := s.checkAndHide.Dispatch(ctx, s.store, struct{}{})
	return err
}

func (s *Service) runCheckAndHide(ctx context.Context, _ struct{}) (struct{}, error) {
	if SelectModalShow(s.store.GetState()) {
		s.store.Dispatch(HideModal())
	}
	return struct{}{}, nil
}
