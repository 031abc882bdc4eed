package storefront

import (
	"github.com/ronoos/storefront/internal/http/handlers/shared"
	"github.com/ronoos/storefront/internal/http/response"

	"github.com/gin-gonic/gin"
)

// SelectCakeOptionRequest 定制选项切换请求
type SelectCakeOptionRequest struct {
	Category string `json:"category" binding:"required"`
	OptionID uint   `json:"option_id" binding:"required"`
}

// SetBuildStepRequest 步骤跳转请求
type SetBuildStepRequest struct {
	Step int `json:"step" binding:"required"`
}

// SetBuildMessageRequest 蛋糕寄语请求
type SetBuildMessageRequest struct {
	Message string `json:"message"`
}

// SubmitBuildRequest 定制完成请求
type SubmitBuildRequest struct {
	Quantity int `json:"quantity"`
}

// StartBuild 开始定制流程
func (h *Handler) StartBuild(c *gin.Context) {
	deviceID, ok := shared.DeviceID(c)
	if !ok {
		return
	}
	view, err := h.CakeBuilderService.Start(c.Request.Context(), deviceID)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, view)
}

// GetBuild 查看当前流程
func (h *Handler) GetBuild(c *gin.Context) {
	deviceID, ok := shared.DeviceID(c)
	if !ok {
		return
	}
	view, err := h.CakeBuilderService.Get(c.Request.Context(), deviceID)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, view)
}

// SelectCakeOption 切换定制选项（重复选择同一项视为取消）
func (h *Handler) SelectCakeOption(c *gin.Context) {
	deviceID, ok := shared.DeviceID(c)
	if !ok {
		return
	}
	var req SelectCakeOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "请求参数非法", err)
		return
	}
	view, err := h.CakeBuilderService.SelectOption(c.Request.Context(), deviceID, req.Category, req.OptionID)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, view)
}

// SetBuildStep 跳转流程步骤
func (h *Handler) SetBuildStep(c *gin.Context) {
	deviceID, ok := shared.DeviceID(c)
	if !ok {
		return
	}
	var req SetBuildStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "请求参数非法", err)
		return
	}
	view, err := h.CakeBuilderService.SetStep(c.Request.Context(), deviceID, req.Step)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, view)
}

// SetBuildMessage 设置蛋糕寄语
func (h *Handler) SetBuildMessage(c *gin.Context) {
	deviceID, ok := shared.DeviceID(c)
	if !ok {
		return
	}
	var req SetBuildMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "请求参数非法", err)
		return
	}
	view, err := h.CakeBuilderService.SetMessage(c.Request.Context(), deviceID, req.Message)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, view)
}

// CancelBuild 放弃定制流程
func (h *Handler) CancelBuild(c *gin.Context) {
	deviceID, ok := shared.DeviceID(c)
	if !ok {
		return
	}
	if err := h.CakeBuilderService.Cancel(c.Request.Context(), deviceID); err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "cancelled", nil)
}

// SubmitBuild 完成定制并加入购物车
func (h *Handler) SubmitBuild(c *gin.Context) {
	deviceID, ok := shared.DeviceID(c)
	if !ok {
		return
	}
	var req SubmitBuildRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		shared.RespondError(c, response.CodeBadRequest, "请求参数非法", err)
		return
	}
	item, err := h.CakeBuilderService.Submit(c.Request.Context(), deviceID, req.Quantity)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, item)
}
