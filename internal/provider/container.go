package provider

import (
	"github.com/ronoos/storefront/internal/authz"
	"github.com/ronoos/storefront/internal/cache"
	"github.com/ronoos/storefront/internal/config"
	"github.com/ronoos/storefront/internal/logger"
	"github.com/ronoos/storefront/internal/models"
	"github.com/ronoos/storefront/internal/queue"
	"github.com/ronoos/storefront/internal/repository"
	"github.com/ronoos/storefront/internal/service"
	"github.com/ronoos/storefront/internal/upstream"
)

// Container 依赖注入容器
type Container struct {
	Config         *config.Config
	QueueClient    *queue.Client
	UpstreamClient *upstream.Client

	// Repositories
	CartRepo repository.CartRepository

	// Services
	AuthzService       *authz.Service
	AuthService        *service.AuthService
	EmailService       *service.EmailService
	CartService        *service.CartService
	CatalogService     *service.CatalogService
	CakeBuildStore     service.CakeBuildStore
	CakeBuilderService *service.CakeBuilderService
	CheckoutService    *service.CheckoutService
	OrderService       *service.OrderService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) (*Container, error) {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	upstreamClient, err := upstream.NewClient(&cfg.Upstream)
	if err != nil {
		return nil, err
	}

	c := &Container{
		Config:         cfg,
		QueueClient:    queueClient,
		UpstreamClient: upstreamClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	if err := c.initServices(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Container) initRepositories() {
	db := models.DB
	c.CartRepo = repository.NewCartRepository(db)
}

func (c *Container) initServices() error {
	cfg := c.Config

	authzService, err := authz.NewService(models.DB)
	if err != nil {
		return err
	}
	if err := authzService.BootstrapBuiltinRoles(); err != nil {
		return err
	}
	c.AuthzService = authzService

	c.EmailService = service.NewEmailService(&cfg.Email)
	c.AuthService = service.NewAuthService(c.UpstreamClient)
	c.CartService = service.NewCartService(c.CartRepo)
	c.CatalogService = service.NewCatalogService(c.UpstreamClient, &cfg.Catalog)
	c.CakeBuildStore = service.NewCakeBuildStore()
	c.CakeBuilderService = service.NewCakeBuilderService(c.CakeBuildStore, c.CatalogService, c.CartService)
	c.CheckoutService = service.NewCheckoutService(c.CartService, c.CakeBuildStore, c.UpstreamClient, c.QueueClient, &cfg.Checkout)
	c.OrderService = service.NewOrderService(c.UpstreamClient)
	return nil
}
