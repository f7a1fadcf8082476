package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wallet-keystone/internal/handler/request"
	"wallet-keystone/internal/handler/response"
	"wallet-keystone/internal/keystone"
	"wallet-keystone/internal/owner"
	"wallet-keystone/pkg/errno"
	"wallet-keystone/pkg/hdpath"
	"wallet-keystone/pkg/logger"
	"wallet-keystone/pkg/validator"
)

// AccountRegistrar 在公钥索引中登记账户
type AccountRegistrar interface {
	RegisterAccount(ctx context.Context, publicKey, accountID string) error
}

type KeystoneHandler struct {
	svc       *keystone.Service
	owner     owner.Provider
	registrar AccountRegistrar
	prefix    string
}

func NewKeystoneHandler(svc *keystone.Service, o owner.Provider, registrar AccountRegistrar, pathPrefix string) *KeystoneHandler {
	if pathPrefix == "" {
		pathPrefix = hdpath.DefaultPrefix
	}
	return &KeystoneHandler{svc: svc, owner: o, registrar: registrar, prefix: pathPrefix}
}

// State 当前 keystone 状态
// @Tags Keystone
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1/keystone/state [get]
func (h *KeystoneHandler) State(c *gin.Context) {
	response.Success(c, h.svc.State())
}

// Connect 与签名设备配对
// @Tags Keystone
// @Router /api/v1/keystone/connect [post]
func (h *KeystoneHandler) Connect(c *gin.Context) {
	h.reply(c, h.svc.Connect(c.Request.Context()))
}

// Disconnect 标记设备断开
// @Tags Keystone
// @Router /api/v1/keystone/disconnect [post]
func (h *KeystoneHandler) Disconnect(c *gin.Context) {
	h.reply(c, h.svc.Disconnect(c.Request.Context()))
}

// SignIn 完整登录流程，成功后刷新账户所有者信息
// @Tags Keystone
// @Accept json
// @Param request body request.SignInRequest true "path 或 index"
// @Router /api/v1/keystone/signin [post]
func (h *KeystoneHandler) SignIn(c *gin.Context) {
	var req request.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
		return
	}
	path := req.Path
	if path == "" {
		var index uint32
		if req.Index != nil {
			index = *req.Index
		}
		path = hdpath.Build(h.prefix, index)
	}

	ctx := c.Request.Context()
	if err := h.svc.SignIn(ctx, path); err != nil {
		h.reply(c, err)
		return
	}
	if _, err := h.svc.RefreshAccountOwner(ctx, h.owner); err != nil {
		logger.Warn("refresh account owner failed", zap.Error(err))
	}
	h.reply(c, nil)
}

// ImportAccount 导入手动输入的账户并保存
// @Tags Keystone
// @Accept json
// @Param accountId path string true "account id"
// @Param request body request.ImportAccountRequest true "派生路径"
// @Router /api/v1/keystone/accounts/{accountId}/import [post]
func (h *KeystoneHandler) ImportAccount(c *gin.Context) {
	var uri request.AccountURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
		return
	}
	var req request.ImportAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
		return
	}

	results, err := h.svc.ImportAndPersistAll(c.Request.Context(), req.Path, []string{uri.AccountID})
	if err == nil && len(results) == 1 {
		err = results[0].Err
	}
	h.reply(c, err)
}

// RegisterAccount 在公钥索引中登记账户
// @Tags Keystone
// @Accept json
// @Param request body request.RegisterAccountRequest true "公钥与账户"
// @Router /api/v1/keystone/accounts [post]
func (h *KeystoneHandler) RegisterAccount(c *gin.Context) {
	var req request.RegisterAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
		return
	}
	if err := h.registrar.RegisterAccount(c.Request.Context(), req.PublicKey, req.AccountID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"account_id": req.AccountID, "public_key": req.PublicKey})
}

// ShowModal 显示签名确认弹窗，action 结束时自动关闭
// @Tags Keystone
// @Router /api/v1/keystone/modal/show [post]
func (h *KeystoneHandler) ShowModal(c *gin.Context) {
	var req request.ShowModalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
		return
	}
	h.svc.Dispatch(keystone.ShowModal(req.Show, req.Action))
	h.reply(c, nil)
}

// HideModal 关闭签名确认弹窗，可重复调用
// @Tags Keystone
// @Router /api/v1/keystone/modal/hide [post]
func (h *KeystoneHandler) HideModal(c *gin.Context) {
	h.reply(c, h.svc.CheckAndHideModal(c.Request.Context()))
}

// Reset 清除登录流程状态
// @Tags Keystone
// @Router /api/v1/keystone/reset [post]
func (h *KeystoneHandler) Reset(c *gin.Context) {
	h.svc.Dispatch(keystone.ClearSignInState())
	h.reply(c, nil)
}

// reply 成功和失败都返回最新状态
func (h *KeystoneHandler) reply(c *gin.Context, err error) {
	if err != nil {
		response.ErrorWithData(c, err, h.svc.State())
		return
	}
	response.Success(c, h.svc.State())
}
