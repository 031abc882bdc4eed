package baker

import (
	"github.com/ronoos/storefront/internal/provider"
)

// Handler 后厨处理器
type Handler struct {
	*provider.Container
}

// New 创建后厨处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
