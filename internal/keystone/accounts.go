package keystone

// 账户列表的 copy-on-write 操作。账户数量很少 (一个公钥下通常只有几个)，线性查找即可。

func findAccount(entries []AccountEntry, accountID string) int {
	for i, e := range entries {
		if e.AccountID == accountID {
			return i
		}
	}
	return -1
}

func accountStatus(entries []AccountEntry, accountID string) (AccountStatus, bool) {
	if i := findAccount(entries, accountID); i >= 0 {
		return entries[i].Status, true
	}
	return "", false
}

// withAccountStatus 返回新切片；账户不存在时追加到末尾
func withAccountStatus(entries []AccountEntry, accountID string, status AccountStatus) []AccountEntry {
	next := make([]AccountEntry, len(entries), len(entries)+1)
	copy(next, entries)
	if i := findAccount(next, accountID); i >= 0 {
		next[i].Status = status
		return next
	}
	return append(next, AccountEntry{AccountID: accountID, Status: status})
}

// waitingAccounts 按设备返回顺序初始化为 waiting，重复的 id 只保留第一次出现
func waitingAccounts(accountIDs []string) []AccountEntry {
	entries := make([]AccountEntry, 0, len(accountIDs))
	seen := make(map[string]struct{}, len(accountIDs))
	for _, id := range accountIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		entries = append(entries, AccountEntry{AccountID: id, Status: AccountWaiting})
	}
	return entries
}
