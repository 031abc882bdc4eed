package baker

import (
	"github.com/ronoos/storefront/internal/http/handlers/shared"
	"github.com/ronoos/storefront/internal/http/response"

	"github.com/gin-gonic/gin"
)

// Analytics 经营分析汇总
func (h *Handler) Analytics(c *gin.Context) {
	data, err := h.OrderService.Analytics(c.Request.Context(), shared.AuthHeader(c))
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, data)
}
