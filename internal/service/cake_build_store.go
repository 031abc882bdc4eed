package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ronoos/storefront/internal/cache"
	"github.com/ronoos/storefront/internal/constants"
)

const cakeBuildTTL = 24 * time.Hour

// CakeBuildStore 定制流程状态存储
type CakeBuildStore interface {
	Get(ctx context.Context, deviceID string) (*CakeBuild, error)
	Save(ctx context.Context, deviceID string, build *CakeBuild) error
	Delete(ctx context.Context, deviceID string) error
}

// NewCakeBuildStore 按 Redis 可用性选择存储实现
func NewCakeBuildStore() CakeBuildStore {
	if cache.Enabled() {
		return &RedisCakeBuildStore{ttl: cakeBuildTTL}
	}
	return NewMemoryCakeBuildStore(cakeBuildTTL)
}

// RedisCakeBuildStore Redis 实现
type RedisCakeBuildStore struct {
	ttl time.Duration
}

func cakeBuildKey(deviceID string) string {
	return fmt.Sprintf("%s:%s", constants.CacheKeyCakeBuild, deviceID)
}

// Get 读取流程状态，不存在返回 nil
func (s *RedisCakeBuildStore) Get(ctx context.Context, deviceID string) (*CakeBuild, error) {
	var build CakeBuild
	found, err := cache.GetJSON(ctx, cakeBuildKey(deviceID), &build)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &build, nil
}

// Save 写入流程状态并续期
func (s *RedisCakeBuildStore) Save(ctx context.Context, deviceID string, build *CakeBuild) error {
	return cache.SetJSON(ctx, cakeBuildKey(deviceID), build, s.ttl)
}

// Delete 删除流程状态
func (s *RedisCakeBuildStore) Delete(ctx context.Context, deviceID string) error {
	return cache.Del(ctx, cakeBuildKey(deviceID))
}

// MemoryCakeBuildStore 进程内实现（Redis 未启用时的降级）
type MemoryCakeBuildStore struct {
	mu     sync.Mutex
	ttl    time.Duration
	builds map[string]memoryBuildEntry
}

type memoryBuildEntry struct {
	build     *CakeBuild
	expiresAt time.Time
}

// NewMemoryCakeBuildStore 创建进程内存储
func NewMemoryCakeBuildStore(ttl time.Duration) *MemoryCakeBuildStore {
	if ttl <= 0 {
		ttl = cakeBuildTTL
	}
	return &MemoryCakeBuildStore{
		ttl:    ttl,
		builds: make(map[string]memoryBuildEntry),
	}
}

// Get 读取流程状态，过期视为不存在
func (s *MemoryCakeBuildStore) Get(_ context.Context, deviceID string) (*CakeBuild, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.builds[deviceID]
	if !ok {
		return nil, nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.builds, deviceID)
		return nil, nil
	}
	return entry.build, nil
}

// Save 写入流程状态并续期
func (s *MemoryCakeBuildStore) Save(_ context.Context, deviceID string, build *CakeBuild) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.builds[deviceID] = memoryBuildEntry{
		build:     build,
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

// Delete 删除流程状态
func (s *MemoryCakeBuildStore) Delete(_ context.Context, deviceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.builds, deviceID)
	return nil
}
