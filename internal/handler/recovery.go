package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"wallet-keystone/internal/handler/request"
	"wallet-keystone/internal/handler/response"
	"wallet-keystone/internal/recovery"
	"wallet-keystone/internal/store"
	"wallet-keystone/pkg/errno"
	"wallet-keystone/pkg/validator"
)

type RecoveryHandler struct {
	svc *recovery.Service
}

func NewRecoveryHandler(svc *recovery.Service) *RecoveryHandler {
	return &RecoveryHandler{svc: svc}
}

// Get 拉取并返回账户的恢复方式；已有请求在进行时直接返回当前结果
// @Tags Recovery
// @Param accountId path string true "account id"
// @Success 200 {object} response.Response
// @Router /api/v1/recovery/{accountId} [get]
func (h *RecoveryHandler) Get(c *gin.Context) {
	var uri request.AccountURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
		return
	}

	err := h.svc.Fetch(c.Request.Context(), uri.AccountID)
	if err != nil && !errors.Is(err, store.ErrConditionFailed) {
		response.ErrorWithData(c, err, h.svc.Methods(uri.AccountID))
		return
	}
	response.Success(c, h.svc.Methods(uri.AccountID))
}
