package request

// SignInRequest path 为空时用 index 和配置的前缀拼出路径
type SignInRequest struct {
	Path  string  `json:"path" binding:"omitempty,hdpath"`
	Index *uint32 `json:"index"`
}

type AccountURI struct {
	AccountID string `uri:"accountId" binding:"required,max=64"`
}

// ImportAccountRequest 手动输入 accountId 后导入
type ImportAccountRequest struct {
	Path string `json:"path" binding:"required,hdpath"`
}

type RegisterAccountRequest struct {
	PublicKey string `json:"public_key" binding:"required"`
	AccountID string `json:"account_id" binding:"required,max=64"`
}

type ShowModalRequest struct {
	Show   bool   `json:"show"`
	Action string `json:"action" binding:"required,max=128"`
}
