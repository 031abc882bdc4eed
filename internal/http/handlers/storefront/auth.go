package storefront

import (
	"encoding/json"
	"io"

	"github.com/ronoos/storefront/internal/http/handlers/shared"
	"github.com/ronoos/storefront/internal/http/response"
	"github.com/ronoos/storefront/internal/upstream"

	"github.com/gin-gonic/gin"
)

func readBody(c *gin.Context) (json.RawMessage, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		shared.RespondError(c, response.CodeBadRequest, "请求体读取失败", err)
		return nil, false
	}
	return body, true
}

// Login 登录（凭据校验由上游完成）
func (h *Handler) Login(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}
	result, err := h.AuthService.Login(c.Request.Context(), body)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, result)
}

// Register 注册
func (h *Handler) Register(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}
	result, err := h.AuthService.Register(c.Request.Context(), body)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, result)
}

// Logout 注销
func (h *Handler) Logout(c *gin.Context) {
	result, err := h.AuthService.Logout(c.Request.Context(), shared.AuthHeader(c))
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, result)
}

// Me 当前用户档案
func (h *Handler) Me(c *gin.Context) {
	snapshot, err := h.AuthService.Resolve(c.Request.Context(), shared.AuthHeader(c))
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, snapshot)
}

// ListAddresses 地址列表
func (h *Handler) ListAddresses(c *gin.Context) {
	addresses, err := h.AuthService.ListAddresses(c.Request.Context(), shared.AuthHeader(c))
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, addresses)
}

// CreateAddress 新建地址
func (h *Handler) CreateAddress(c *gin.Context) {
	var input upstream.AddressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "请求参数非法", err)
		return
	}
	address, err := h.AuthService.CreateAddress(c.Request.Context(), shared.AuthHeader(c), input)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, address)
}

// UpdateAddress 更新地址
func (h *Handler) UpdateAddress(c *gin.Context) {
	id, ok := shared.ParamUint(c, "id")
	if !ok {
		return
	}
	var input upstream.AddressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "请求参数非法", err)
		return
	}
	address, err := h.AuthService.UpdateAddress(c.Request.Context(), shared.AuthHeader(c), id, input)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, address)
}

// DeleteAddress 删除地址
func (h *Handler) DeleteAddress(c *gin.Context) {
	id, ok := shared.ParamUint(c, "id")
	if !ok {
		return
	}
	if err := h.AuthService.DeleteAddress(c.Request.Context(), shared.AuthHeader(c), id); err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "deleted", nil)
}
