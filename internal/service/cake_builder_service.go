package service

import (
	"context"
	"strings"

	"github.com/ronoos/storefront/internal/constants"
	"github.com/ronoos/storefront/internal/models"
)

// CakeBuildView 定制流程状态视图
type CakeBuildView struct {
	Step       int                      `json:"step"`
	Selections map[string]CakeSelection `json:"selections"`
	Message    string                   `json:"message"`
	Price      models.Money             `json:"price"`
	Complete   bool                     `json:"complete"`
}

// CakeBuilderService 定制蛋糕流程服务
type CakeBuilderService struct {
	store   CakeBuildStore
	catalog *CatalogService
	cart    *CartService
}

// NewCakeBuilderService 创建定制流程服务
func NewCakeBuilderService(store CakeBuildStore, catalog *CatalogService, cart *CartService) *CakeBuilderService {
	return &CakeBuilderService{store: store, catalog: catalog, cart: cart}
}

func buildView(build *CakeBuild) *CakeBuildView {
	return &CakeBuildView{
		Step:       build.Step,
		Selections: build.Selections,
		Message:    build.Message,
		Price:      build.Price(),
		Complete:   build.Complete(),
	}
}

// Start 开始定制流程
// 门店关闭定制功能时拒绝；已有流程直接重置
func (s *CakeBuilderService) Start(ctx context.Context, deviceID string) (*CakeBuildView, error) {
	if strings.TrimSpace(deviceID) == "" {
		return nil, ErrInvalidCartItem
	}
	settings, err := s.catalog.GetStoreSettings(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil || !settings.CustomCakeEnabled {
		return nil, ErrCakeBuildDisabled
	}
	build := NewCakeBuild()
	if err := s.store.Save(ctx, deviceID, build); err != nil {
		return nil, err
	}
	return buildView(build), nil
}

// Get 查看当前流程
func (s *CakeBuilderService) Get(ctx context.Context, deviceID string) (*CakeBuildView, error) {
	build, err := s.load(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	return buildView(build), nil
}

// SelectOption 在指定分类下切换选项
// 选项必须存在于该分类的当前目录中；重复选择同一项视为取消
func (s *CakeBuilderService) SelectOption(ctx context.Context, deviceID, category string, optionID uint) (*CakeBuildView, error) {
	build, err := s.load(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if !constants.IsValidCakeCategory(category) {
		return nil, ErrCakeCategoryInvalid
	}
	option, err := s.catalog.FindCakeOption(ctx, category, optionID)
	if err != nil {
		return nil, err
	}
	build.Toggle(category, CakeSelection{
		OptionID: option.ID,
		Name:     option.DisplayName(),
		Price:    option.Price,
	})
	if err := s.store.Save(ctx, deviceID, build); err != nil {
		return nil, err
	}
	return buildView(build), nil
}

// SetStep 跳转步骤
func (s *CakeBuilderService) SetStep(ctx context.Context, deviceID string, step int) (*CakeBuildView, error) {
	build, err := s.load(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if err := build.SetStep(step); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, deviceID, build); err != nil {
		return nil, err
	}
	return buildView(build), nil
}

// SetMessage 设置蛋糕寄语
func (s *CakeBuilderService) SetMessage(ctx context.Context, deviceID, message string) (*CakeBuildView, error) {
	build, err := s.load(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if err := build.SetMessage(message); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, deviceID, build); err != nil {
		return nil, err
	}
	return buildView(build), nil
}

// Cancel 放弃当前流程
func (s *CakeBuilderService) Cancel(ctx context.Context, deviceID string) error {
	if strings.TrimSpace(deviceID) == "" {
		return ErrInvalidCartItem
	}
	return s.store.Delete(ctx, deviceID)
}

// Submit 完成定制并加入购物车
// 四个分类必须全部选中；成功后流程状态销毁
func (s *CakeBuilderService) Submit(ctx context.Context, deviceID string, quantity int) (*models.CartItem, error) {
	build, err := s.load(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if !build.Complete() {
		return nil, ErrCakeBuildIncomplete
	}
	if quantity <= 0 {
		quantity = 1
	}
	item, err := s.cart.AddItem(AddCartItemInput{
		DeviceID:      deviceID,
		Kind:          constants.CartItemKindCustom,
		DisplayName:   "Custom Cake",
		UnitPrice:     build.Price(),
		Quantity:      quantity,
		CustomConfig:  build.Config(),
		MessageOnCake: build.Message,
	})
	if err != nil {
		return nil, err
	}
	if err := s.store.Delete(ctx, deviceID); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *CakeBuilderService) load(ctx context.Context, deviceID string) (*CakeBuild, error) {
	if strings.TrimSpace(deviceID) == "" {
		return nil, ErrInvalidCartItem
	}
	build, err := s.store.Get(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if build == nil {
		return nil, ErrCakeBuildNotFound
	}
	return build, nil
}
