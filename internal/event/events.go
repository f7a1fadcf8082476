package event

import "time"

// AlertEvent 用户可见的提示
// Topic: wallet_events_alert
type AlertEvent struct {
	ID                string    `json:"id"`
	Success           bool      `json:"success"`
	MessageCodeHeader string    `json:"message_code_header,omitempty"`
	MessageCode       string    `json:"message_code"`
	ErrorMessage      string    `json:"error_message,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// AccountsSavedEvent 签名设备账户导入完成
// Topic: wallet_events_keystone_accounts
type AccountsSavedEvent struct {
	ID          string    `json:"id"`
	AccountIDs  []string  `json:"account_ids"`
	Selected    string    `json:"selected"`
	KeystoneKey string    `json:"keystone_key,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
