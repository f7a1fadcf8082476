package model

// 缓存中各类记录的 key，新增记录类型时在这里加

func AccountsByKeyKey(publicKey string) string {
	return "keystone:accounts_by_key:" + publicKey
}

func AccountRecordKey(accountID string) string {
	return "keystone:account:" + accountID
}

func ImportedAccountKey(accountID string) string {
	return "keystone:imported:" + accountID
}

const SelectionKey = "keystone:selection"
