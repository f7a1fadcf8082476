package recovery

import (
	"maps"

	"wallet-keystone/internal/store"
)

const (
	ActionSetRecoveryMethods = SliceName + "/setRecoveryMethods"

	TypeFetchRecoveryMethods = SliceName + "/fetchRecoveryMethods"
)

type SetRecoveryMethodsPayload struct {
	AccountID string
	Methods   []Method
}

func SetRecoveryMethods(accountID string, methods []Method) store.Action {
	return store.Action{Type: ActionSetRecoveryMethods, Payload: SetRecoveryMethodsPayload{AccountID: accountID, Methods: methods}}
}

// withAccount 复制 map 后写入，旧状态保持不变
func withAccount(s State, accountID string, fn func(AccountMethods) AccountMethods) State {
	next := make(map[string]AccountMethods, len(s.ByAccountID)+1)
	maps.Copy(next, s.ByAccountID)
	next[accountID] = fn(next[accountID])
	s.ByAccountID = next
	return s
}

// statusLens 状态路径由 pending Action 的参数 (accountId) 决定
var statusLens = store.StatusLens[State]{
	Get: func(s State, a store.Action) store.Status {
		id, _ := store.ArgAs[string](a)
		return s.ByAccountID[id].Status
	},
	Set: func(s State, a store.Action, st store.Status) State {
		id, _ := store.ArgAs[string](a)
		return withAccount(s, id, func(m AccountMethods) AccountMethods {
			m.Status = st
			return m
		})
	},
}

func NewReducer() store.Reducer[State] {
	b := store.NewBuilder[State]()
	b.AddCase(ActionSetRecoveryMethods, func(s State, a store.Action) State {
		p, _ := store.PayloadAs[SetRecoveryMethodsPayload](a)
		return withAccount(s, p.AccountID, func(m AccountMethods) AccountMethods {
			m.Items = append([]Method(nil), p.Methods...)
			return m
		})
	})
	store.HandleAsyncThunkStatus(b, TypeFetchRecoveryMethods, statusLens)
	return b.Build()
}

// SelectByAccountID 未知账户返回空列表、loading=false
func SelectByAccountID(s State, accountID string) AccountMethods {
	m := s.ByAccountID[accountID]
	if m.Items == nil {
		m.Items = []Method{}
	}
	return m
}

func SelectMethods(s State, accountID string) []Method {
	return SelectByAccountID(s, accountID).Items
}

func SelectLoading(s State, accountID string) bool {
	return s.ByAccountID[accountID].Status.Loading
}
