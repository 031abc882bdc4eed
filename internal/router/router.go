package router

import (
	"fmt"
	"strings"

	"github.com/ronoos/storefront/internal/cache"
	"github.com/ronoos/storefront/internal/config"
	bakerhandlers "github.com/ronoos/storefront/internal/http/handlers/baker"
	storefronthandlers "github.com/ronoos/storefront/internal/http/handlers/storefront"
	"github.com/ronoos/storefront/internal/logger"
	"github.com/ronoos/storefront/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后厨分组）
	storefrontHandler := storefronthandlers.New(c)
	bakerHandler := bakerhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "rn"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 目录接口（只读，无会话要求）
		catalog := apiV1.Group("/catalog")
		{
			catalog.GET("/products", storefrontHandler.ListProducts)
			catalog.GET("/products/:id", storefrontHandler.GetProduct)
			catalog.GET("/cake-options/:category", storefrontHandler.ListCakeOptions)
			catalog.GET("/settings", storefrontHandler.GetStoreSettings)
		}

		// 账号接口（凭据校验在上游）
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", storefrontHandler.Register)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), storefrontHandler.Login)
		}

		// 设备会话接口（购物车与定制流程）
		device := apiV1.Group("")
		device.Use(DeviceSessionMiddleware(cfg.Session))
		{
			device.GET("/cart", storefrontHandler.GetCart)
			device.POST("/cart/items", storefrontHandler.AddCartItem)
			device.PATCH("/cart/items/:line_id", storefrontHandler.UpdateCartItem)
			device.DELETE("/cart/items/:line_id", storefrontHandler.RemoveCartItem)
			device.DELETE("/cart", storefrontHandler.ClearCart)

			device.POST("/cake-builder", storefrontHandler.StartBuild)
			device.GET("/cake-builder", storefrontHandler.GetBuild)
			device.POST("/cake-builder/select", storefrontHandler.SelectCakeOption)
			device.PUT("/cake-builder/step", storefrontHandler.SetBuildStep)
			device.PUT("/cake-builder/message", storefrontHandler.SetBuildMessage)
			device.DELETE("/cake-builder", storefrontHandler.CancelBuild)
			device.POST("/cake-builder/submit", storefrontHandler.SubmitBuild)
		}

		// 用户接口（需上游令牌）
		user := apiV1.Group("")
		user.Use(UpstreamAuthMiddleware(c.AuthService))
		{
			user.POST("/auth/logout", storefrontHandler.Logout)
			user.GET("/me", storefrontHandler.Me)
			user.GET("/me/addresses", storefrontHandler.ListAddresses)
			user.POST("/me/addresses", storefrontHandler.CreateAddress)
			user.PUT("/me/addresses/:id", storefrontHandler.UpdateAddress)
			user.DELETE("/me/addresses/:id", storefrontHandler.DeleteAddress)

			user.GET("/orders", storefrontHandler.ListOrders)
			user.GET("/orders/:id", storefrontHandler.GetOrder)
			user.POST("/orders/:id/cancel", storefrontHandler.CancelOrder)
		}

		// 下单接口（设备会话 + 上游令牌）
		checkout := apiV1.Group("")
		checkout.Use(DeviceSessionMiddleware(cfg.Session), UpstreamAuthMiddleware(c.AuthService))
		{
			checkout.POST("/orders", storefrontHandler.PlaceOrder)
		}

		// 后厨接口（上游令牌 + RBAC）
		baker := apiV1.Group("/baker")
		baker.Use(UpstreamAuthMiddleware(c.AuthService), BakerRBACMiddleware(c.AuthzService))
		{
			baker.GET("/analytics", bakerHandler.Analytics)
			baker.GET("/orders", bakerHandler.ListOrders)
			baker.GET("/orders/:id", bakerHandler.GetOrder)
			baker.PATCH("/orders/:id/status", bakerHandler.UpdateStatus)
			baker.PATCH("/orders/:id/payment-status", bakerHandler.UpdatePaymentStatus)
		}
	}

	// 健康检查
	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
