package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/ronoos/storefront/internal/config"
	"github.com/ronoos/storefront/internal/logger"
	"github.com/ronoos/storefront/internal/queue"

	"github.com/hibiken/asynq"
)

const defaultSettingsPollInterval = 30 * time.Second

// Service 异步队列服务
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer

	pollInterval time.Duration
	refreshing   atomic.Bool
}

// NewService 创建异步队列服务
func NewService(cfg *config.QueueConfig, catalogCfg *config.CatalogConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	pollInterval := defaultSettingsPollInterval
	if catalogCfg != nil && catalogCfg.SettingsPollSeconds > 0 {
		pollInterval = time.Duration(catalogCfg.SettingsPollSeconds) * time.Second
	}
	return &Service{
		name:         "worker",
		server:       server,
		mux:          mux,
		consumer:     consumer,
		pollInterval: pollInterval,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil && s.consumer.CatalogService != nil {
		go s.runSettingsPollLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// runSettingsPollLoop 周期刷新门店设置缓存
// 上一轮刷新未返回时跳过本轮，避免上游慢响应时请求堆积
func (s *Service) runSettingsPollLoop(ctx context.Context) {
	runOnce := func() {
		if !s.refreshing.CompareAndSwap(false, true) {
			logger.Debugw("worker_settings_poll_skip_in_flight")
			return
		}
		go func() {
			defer s.refreshing.Store(false)
			if _, err := s.consumer.CatalogService.RefreshStoreSettings(ctx); err != nil {
				logger.Warnw("worker_settings_poll_failed", "error", err)
			}
		}()
	}
	runOnce()

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
