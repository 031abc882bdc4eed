package storefront

import (
	"github.com/ronoos/storefront/internal/http/handlers/shared"
	"github.com/ronoos/storefront/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListProducts 商品列表
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.CatalogService.ListProducts(c.Request.Context())
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, products)
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := shared.ParamUint(c, "id")
	if !ok {
		return
	}
	product, err := h.CatalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, product)
}

// ListCakeOptions 定制选项列表（按类目）
func (h *Handler) ListCakeOptions(c *gin.Context) {
	category := c.Param("category")
	options, err := h.CatalogService.ListCakeOptions(c.Request.Context(), category)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, options)
}

// GetStoreSettings 门店设置
func (h *Handler) GetStoreSettings(c *gin.Context) {
	settings, err := h.CatalogService.GetStoreSettings(c.Request.Context())
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, settings)
}
