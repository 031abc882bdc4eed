package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/ronoos/storefront/internal/constants"
)

const authSnapshotTTL = 10 * time.Minute

// AuthSnapshot 上游用户快照
// 身份由上游烘焙后端裁决，网关只缓存 /users/me/ 的结果以避免逐请求回源
// 键为令牌指纹（SHA-256），不落明文令牌
type AuthSnapshot struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	FetchedAt int64  `json:"fetched_at"`
}

// IsBaker 是否烘焙师角色
func (s *AuthSnapshot) IsBaker() bool {
	return s != nil && s.Role == constants.RoleBaker
}

// TokenFingerprint 计算令牌指纹
func TokenFingerprint(token string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(token)))
	return hex.EncodeToString(sum[:])
}

func authSnapshotKey(fingerprint string) string {
	return fmt.Sprintf("%s:%s", constants.CacheKeyAuthSnapshot, fingerprint)
}

// GetAuthSnapshot 获取令牌对应的用户快照
func GetAuthSnapshot(ctx context.Context, token string) (*AuthSnapshot, bool, error) {
	if strings.TrimSpace(token) == "" {
		return nil, false, nil
	}
	var snapshot AuthSnapshot
	hit, err := GetJSON(ctx, authSnapshotKey(TokenFingerprint(token)), &snapshot)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &snapshot, true, nil
}

// SetAuthSnapshot 写入用户快照
func SetAuthSnapshot(ctx context.Context, token string, snapshot *AuthSnapshot) error {
	if snapshot == nil || strings.TrimSpace(token) == "" {
		return nil
	}
	return SetJSON(ctx, authSnapshotKey(TokenFingerprint(token)), snapshot, authSnapshotTTL)
}

// DelAuthSnapshot 删除用户快照（登出时调用）
func DelAuthSnapshot(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	return Del(ctx, authSnapshotKey(TokenFingerprint(token)))
}
