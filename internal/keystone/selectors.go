package keystone

import "wallet-keystone/internal/store"

func SelectTxSigned(s State) bool { return s.TxSigned }

func SelectModal(s State) Modal { return s.Modal }

func SelectModalShow(s State) bool { return s.Modal.Show }

func SelectHasKeystone(s State) bool { return s.HasKeystone }

func SelectSignInStatus(s State) ModalStatus { return s.SignInStatus }

// SelectAccounts 返回账户列表的副本
func SelectAccounts(s State) []AccountEntry {
	return append([]AccountEntry{}, s.Accounts...)
}

// SelectAccountIDs 按发现顺序返回账户 id
func SelectAccountIDs(s State) []string {
	ids := make([]string, 0, len(s.Accounts))
	for _, e := range s.Accounts {
		ids = append(ids, e.AccountID)
	}
	return ids
}

// SelectAccountStatus 账户不存在时 ok 为 false
func SelectAccountStatus(s State, accountID string) (AccountStatus, bool) {
	return accountStatus(s.Accounts, accountID)
}

func SelectConnectionAvailable(s State) bool { return s.Connection.Available }

func SelectConnectionModalType(s State) ConnectModalType { return s.Connection.ModalType }

func SelectConnectionStatus(s State) store.Status { return s.Connection.Status }

func SelectConnectionLoading(s State) bool { return s.Connection.Status.Loading }

func SelectConnectionError(s State) *store.ErrorPayload { return s.Connection.Status.Error }
