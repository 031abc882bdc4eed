package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ronoos/storefront/internal/constants"
	"github.com/ronoos/storefront/internal/models"
)

// CakeOption 定制蛋糕选项
// 重量类目使用 label 字段，其余类目使用 name，展示时统一取 DisplayName
type CakeOption struct {
	ID    uint         `json:"id"`
	Name  string       `json:"name,omitempty"`
	Label string       `json:"label,omitempty"`
	Price models.Money `json:"price"`
}

// DisplayName 选项展示名
func (o CakeOption) DisplayName() string {
	if o.Name != "" {
		return o.Name
	}
	return o.Label
}

// ProductVariant 商品规格
type ProductVariant struct {
	ID               uint         `json:"id"`
	Label            string       `json:"label"`
	Price            models.Money `json:"price"`
	PreparationHours string       `json:"preparation_hours,omitempty"`
	IsEggless        bool         `json:"is_eggless"`
}

// ProductImage 商品图片
type ProductImage struct {
	Image     string `json:"image,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
	IsPrimary bool   `json:"is_primary"`
}

// Product 商品
type Product struct {
	ID             uint             `json:"id"`
	Name           string           `json:"name"`
	Description    string           `json:"description,omitempty"`
	IsCustomizable bool             `json:"is_customizable"`
	IsActive       bool             `json:"is_active"`
	Variants       []ProductVariant `json:"variants,omitempty"`
	Images         []ProductImage   `json:"images,omitempty"`
}

// StoreSettings 店铺开关设置
type StoreSettings struct {
	CustomCakeEnabled bool `json:"custom_cake_enabled"`
}

// cakeOptionPaths 类目到上游目录端点的映射
var cakeOptionPaths = map[string]string{
	constants.CakeCategoryBase:    "/catalog/cake-bases/",
	constants.CakeCategoryFlavour: "/catalog/cake-flavours/",
	constants.CakeCategoryShape:   "/catalog/cake-shapes/",
	constants.CakeCategoryWeight:  "/catalog/cake-weights/",
}

// ListCakeOptions 拉取指定类目的定制蛋糕选项
func (c *Client) ListCakeOptions(ctx context.Context, category string) ([]CakeOption, error) {
	path, ok := cakeOptionPaths[category]
	if !ok {
		return nil, fmt.Errorf("%w: unknown cake option category %q", ErrRequestFailed, category)
	}
	var options []CakeOption
	if err := c.do(ctx, http.MethodGet, path, "", nil, &options); err != nil {
		return nil, err
	}
	return options, nil
}

// ListProducts 拉取商品列表（原样返回）
func (c *Client) ListProducts(ctx context.Context) (json.RawMessage, error) {
	return c.ProxyJSON(ctx, http.MethodGet, "/catalog/products/", "", nil)
}

// GetProduct 拉取商品详情
func (c *Client) GetProduct(ctx context.Context, id uint) (*Product, error) {
	var product Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/catalog/products/%d/", id), "", nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// GetStoreSettings 拉取店铺开关设置
func (c *Client) GetStoreSettings(ctx context.Context) (*StoreSettings, error) {
	var settings StoreSettings
	if err := c.do(ctx, http.MethodGet, "/catalog/store-settings/", "", nil, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}
