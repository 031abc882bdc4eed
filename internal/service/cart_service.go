package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/ronoos/storefront/internal/constants"
	"github.com/ronoos/storefront/internal/models"
	"github.com/ronoos/storefront/internal/repository"
)

// AddCartItemInput 加入购物车输入
// 定制蛋糕行 ProductID/VariantID 置空，配置随 CustomConfig 传入
type AddCartItemInput struct {
	DeviceID      string
	Kind          string
	ProductID     *uint
	VariantID     *uint
	DisplayName   string
	VariantLabel  string
	UnitPrice     models.Money
	Quantity      int
	CustomConfig  models.JSON
	MessageOnCake string
}

// CartSummary 购物车汇总
type CartSummary struct {
	Items      []models.CartItem `json:"items"`
	TotalItems int               `json:"total_items"`
	TotalPrice models.Money      `json:"total_price"`
}

// CartService 购物车服务
type CartService struct {
	cartRepo repository.CartRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository) *CartService {
	return &CartService{cartRepo: cartRepo}
}

// LineID 派生购物车行标识
// 规则：kind-商品ID-规格ID，定制行商品段固定为 custom，无规格段固定为 novariant
func LineID(kind string, productID, variantID *uint) string {
	productPart := constants.CartLineCustomProduct
	if productID != nil {
		productPart = fmt.Sprintf("%d", *productID)
	}
	variantPart := constants.CartLineNoVariant
	if variantID != nil {
		variantPart = fmt.Sprintf("%d", *variantID)
	}
	return fmt.Sprintf("%s-%s-%s", kind, productPart, variantPart)
}

// Summary 获取设备购物车汇总
func (s *CartService) Summary(deviceID string) (*CartSummary, error) {
	if strings.TrimSpace(deviceID) == "" {
		return nil, ErrInvalidCartItem
	}
	items, err := s.cartRepo.ListByDevice(deviceID)
	if err != nil {
		return nil, err
	}
	summary := &CartSummary{Items: items}
	for _, item := range items {
		summary.TotalItems += item.Quantity
		summary.TotalPrice = summary.TotalPrice.Add(item.Subtotal())
	}
	return summary, nil
}

// AddItem 加入购物车
// 行标识相同则合并数量，合并后单价保持已有行不变
func (s *CartService) AddItem(input AddCartItemInput) (*models.CartItem, error) {
	if strings.TrimSpace(input.DeviceID) == "" || input.Quantity <= 0 {
		return nil, ErrInvalidCartItem
	}
	if input.Kind != constants.CartItemKindStandard && input.Kind != constants.CartItemKindCustom {
		return nil, ErrInvalidCartItem
	}
	if input.Kind == constants.CartItemKindStandard && input.ProductID == nil {
		return nil, ErrInvalidCartItem
	}
	if input.Kind == constants.CartItemKindCustom && len(input.CustomConfig) == 0 {
		return nil, ErrInvalidCartItem
	}
	if len([]rune(input.MessageOnCake)) > constants.CakeMessageMax {
		return nil, ErrCakeMessageTooLong
	}

	lineID := LineID(input.Kind, input.ProductID, input.VariantID)
	existing, err := s.cartRepo.GetByDeviceAndLine(input.DeviceID, lineID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.Quantity += input.Quantity
		if err := s.cartRepo.UpdateQuantity(input.DeviceID, lineID, existing.Quantity); err != nil {
			return nil, err
		}
		return existing, nil
	}

	now := time.Now()
	item := &models.CartItem{
		DeviceID:      input.DeviceID,
		LineID:        lineID,
		Kind:          input.Kind,
		ProductID:     input.ProductID,
		VariantID:     input.VariantID,
		DisplayName:   input.DisplayName,
		VariantLabel:  input.VariantLabel,
		UnitPrice:     input.UnitPrice,
		Quantity:      input.Quantity,
		CustomConfig:  input.CustomConfig,
		MessageOnCake: input.MessageOnCake,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.cartRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateQuantity 设置行数量，数量归零及以下时删除该行
func (s *CartService) UpdateQuantity(deviceID, lineID string, quantity int) error {
	if strings.TrimSpace(deviceID) == "" || strings.TrimSpace(lineID) == "" {
		return ErrInvalidCartItem
	}
	existing, err := s.cartRepo.GetByDeviceAndLine(deviceID, lineID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrCartItemNotFound
	}
	if quantity <= 0 {
		return s.cartRepo.DeleteByDeviceAndLine(deviceID, lineID)
	}
	return s.cartRepo.UpdateQuantity(deviceID, lineID, quantity)
}

// RemoveItem 删除购物车行
func (s *CartService) RemoveItem(deviceID, lineID string) error {
	if strings.TrimSpace(deviceID) == "" || strings.TrimSpace(lineID) == "" {
		return ErrInvalidCartItem
	}
	return s.cartRepo.DeleteByDeviceAndLine(deviceID, lineID)
}

// Clear 清空设备购物车
func (s *CartService) Clear(deviceID string) error {
	if strings.TrimSpace(deviceID) == "" {
		return ErrInvalidCartItem
	}
	return s.cartRepo.ClearByDevice(deviceID)
}
