package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/ronoos/storefront/internal/cache"
	"github.com/ronoos/storefront/internal/logger"
	"github.com/ronoos/storefront/internal/upstream"
)

// AuthService 账号代理服务
// 凭据与令牌全部由上游签发校验，本服务只缓存档案快照
type AuthService struct {
	client *upstream.Client
}

// NewAuthService 创建账号服务
func NewAuthService(client *upstream.Client) *AuthService {
	return &AuthService{client: client}
}

// Login 登录透传
func (s *AuthService) Login(ctx context.Context, body json.RawMessage) (json.RawMessage, error) {
	return s.client.Login(ctx, body)
}

// Register 注册透传
func (s *AuthService) Register(ctx context.Context, body json.RawMessage) (json.RawMessage, error) {
	return s.client.Register(ctx, body)
}

// Logout 注销并失效本地快照
func (s *AuthService) Logout(ctx context.Context, authHeader string) (json.RawMessage, error) {
	result, err := s.client.Logout(ctx, authHeader)
	if err != nil {
		return nil, err
	}
	if token := bearerToken(authHeader); token != "" {
		if err := cache.DelAuthSnapshot(ctx, token); err != nil {
			logger.Warnw("auth_snapshot_invalidate_failed", "error", err)
		}
	}
	return result, nil
}

// Resolve 解析请求令牌对应的用户快照（缓存优先）
func (s *AuthService) Resolve(ctx context.Context, authHeader string) (*cache.AuthSnapshot, error) {
	token := bearerToken(authHeader)
	if token == "" {
		return nil, &upstream.APIError{StatusCode: 401, Detail: "missing credentials"}
	}
	snapshot, found, err := cache.GetAuthSnapshot(ctx, token)
	if err != nil {
		logger.Warnw("auth_snapshot_read_failed", "error", err)
	}
	if found && snapshot != nil {
		return snapshot, nil
	}
	profile, err := s.client.GetMe(ctx, authHeader)
	if err != nil {
		return nil, err
	}
	snapshot = &cache.AuthSnapshot{
		UserID: profile.ID,
		Email:  profile.Email,
		Name:   profile.Name,
		Role:   profile.Role,
	}
	if err := cache.SetAuthSnapshot(ctx, token, snapshot); err != nil {
		logger.Warnw("auth_snapshot_write_failed", "error", err)
	}
	return snapshot, nil
}

// ListAddresses 地址列表
func (s *AuthService) ListAddresses(ctx context.Context, authHeader string) ([]upstream.Address, error) {
	return s.client.ListAddresses(ctx, authHeader)
}

// CreateAddress 新建地址
func (s *AuthService) CreateAddress(ctx context.Context, authHeader string, input upstream.AddressInput) (*upstream.Address, error) {
	return s.client.CreateAddress(ctx, authHeader, input)
}

// UpdateAddress 更新地址
func (s *AuthService) UpdateAddress(ctx context.Context, authHeader string, id uint, input upstream.AddressInput) (*upstream.Address, error) {
	return s.client.UpdateAddress(ctx, authHeader, id, input)
}

// DeleteAddress 删除地址
func (s *AuthService) DeleteAddress(ctx context.Context, authHeader string, id uint) error {
	return s.client.DeleteAddress(ctx, authHeader, id)
}

func bearerToken(authHeader string) string {
	trimmed := strings.TrimSpace(authHeader)
	if trimmed == "" {
		return ""
	}
	parts := strings.SplitN(trimmed, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return trimmed
}
