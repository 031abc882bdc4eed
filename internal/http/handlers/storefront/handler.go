package storefront

import (
	"github.com/ronoos/storefront/internal/provider"
)

// Handler 门店前台处理器
type Handler struct {
	*provider.Container
}

// New 创建前台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
