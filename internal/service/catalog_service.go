package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ronoos/storefront/internal/cache"
	"github.com/ronoos/storefront/internal/config"
	"github.com/ronoos/storefront/internal/constants"
	"github.com/ronoos/storefront/internal/logger"
	"github.com/ronoos/storefront/internal/upstream"
)

// CatalogService 商品目录服务（上游只读数据的缓存门面）
type CatalogService struct {
	client   *upstream.Client
	cacheTTL time.Duration
}

// NewCatalogService 创建目录服务
func NewCatalogService(client *upstream.Client, cfg *config.CatalogConfig) *CatalogService {
	ttl := 5 * time.Minute
	if cfg != nil && cfg.CacheTTLSeconds > 0 {
		ttl = time.Duration(cfg.CacheTTLSeconds) * time.Second
	}
	return &CatalogService{client: client, cacheTTL: ttl}
}

// ListProducts 拉取商品列表（原样透传，不缓存个性化字段之外无差异故可缓存）
func (s *CatalogService) ListProducts(ctx context.Context) (json.RawMessage, error) {
	return s.client.ListProducts(ctx)
}

// GetProduct 拉取商品详情
func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*upstream.Product, error) {
	return s.client.GetProduct(ctx, id)
}

// ListCakeOptions 按分类获取定制选项（缓存优先）
func (s *CatalogService) ListCakeOptions(ctx context.Context, category string) ([]upstream.CakeOption, error) {
	if !constants.IsValidCakeCategory(category) {
		return nil, ErrCakeCategoryInvalid
	}
	key := fmt.Sprintf("%s:%s", constants.CacheKeyCakeOptions, category)
	if cache.Enabled() {
		var cached []upstream.CakeOption
		found, err := cache.GetJSON(ctx, key, &cached)
		if err != nil {
			logger.Warnw("cake_options_cache_read_failed", "category", category, "error", err)
		} else if found {
			return cached, nil
		}
	}
	options, err := s.client.ListCakeOptions(ctx, category)
	if err != nil {
		return nil, err
	}
	if cache.Enabled() {
		if err := cache.SetJSON(ctx, key, options, s.cacheTTL); err != nil {
			logger.Warnw("cake_options_cache_write_failed", "category", category, "error", err)
		}
	}
	return options, nil
}

// FindCakeOption 在分类内按 ID 查找选项
func (s *CatalogService) FindCakeOption(ctx context.Context, category string, optionID uint) (*upstream.CakeOption, error) {
	options, err := s.ListCakeOptions(ctx, category)
	if err != nil {
		return nil, err
	}
	for _, option := range options {
		if option.ID == optionID {
			return &option, nil
		}
	}
	return nil, ErrCakeOptionInvalid
}

// GetStoreSettings 获取门店设置（缓存优先）
func (s *CatalogService) GetStoreSettings(ctx context.Context) (*upstream.StoreSettings, error) {
	if cache.Enabled() {
		var cached upstream.StoreSettings
		found, err := cache.GetJSON(ctx, constants.CacheKeyStoreSettings, &cached)
		if err != nil {
			logger.Warnw("store_settings_cache_read_failed", "error", err)
		} else if found {
			return &cached, nil
		}
	}
	settings, err := s.client.GetStoreSettings(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.CacheStoreSettings(ctx, settings); err != nil {
		logger.Warnw("store_settings_cache_write_failed", "error", err)
	}
	return settings, nil
}

// CacheStoreSettings 写入门店设置缓存（轮询刷新也走这里）
func (s *CatalogService) CacheStoreSettings(ctx context.Context, settings *upstream.StoreSettings) error {
	if !cache.Enabled() || settings == nil {
		return nil
	}
	return cache.SetJSON(ctx, constants.CacheKeyStoreSettings, settings, s.cacheTTL)
}

// RefreshStoreSettings 绕过缓存刷新门店设置
func (s *CatalogService) RefreshStoreSettings(ctx context.Context) (*upstream.StoreSettings, error) {
	settings, err := s.client.GetStoreSettings(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.CacheStoreSettings(ctx, settings); err != nil {
		logger.Warnw("store_settings_cache_write_failed", "error", err)
	}
	return settings, nil
}
