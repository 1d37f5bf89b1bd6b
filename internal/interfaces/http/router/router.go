package router

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/mbsolutions/storefront/internal/application/catalog"
	orderapp "github.com/mbsolutions/storefront/internal/application/order"
	"github.com/mbsolutions/storefront/internal/infrastructure/auth"
	"github.com/mbsolutions/storefront/internal/infrastructure/config"
	"github.com/mbsolutions/storefront/internal/infrastructure/logger"
	"github.com/mbsolutions/storefront/internal/interfaces/http/handler"
	"github.com/mbsolutions/storefront/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Dependencies bundles everything the HTTP surface needs
type Dependencies struct {
	Config       *config.Config
	Logger       *zap.Logger
	Products     *catalogapp.ProductService
	Orders       *orderapp.OrderService
	Tokens       *auth.TokenService
	Credentials  *auth.Credentials
	LoginLimiter *auth.LoginLimiter
}

// New builds the gin engine with all routes and middleware wired.
// Product reads, order submission and the SEO endpoints are public; every
// mutating catalog route sits behind the admin bearer token.
func New(deps Dependencies) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	_ = middleware.RegisterValidations()

	engine := gin.New()
	if len(deps.Config.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(deps.Config.HTTP.TrustedProxies)
	}

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(deps.Logger),
		logger.Recovery(deps.Logger),
		middleware.CORS(middleware.DefaultCORSConfig(deps.Config.HTTP.CORSAllowOrigins)),
		middleware.BodyLimit(deps.Config.HTTP.MaxBodySize),
	)

	authHandler := handler.NewAuthHandler(deps.Tokens, deps.Credentials, deps.LoginLimiter, deps.Logger)
	productHandler := handler.NewProductHandler(deps.Products)
	orderHandler := handler.NewOrderHandler(deps.Orders)
	imageHandler := handler.NewImageHandler(deps.Config.Images.Dir)
	seoHandler := handler.NewSEOHandler(deps.Products, deps.Config.Site.BaseURL)
	systemHandler := handler.NewSystemHandler(deps.Config.App.Name)

	api := engine.Group("/api")
	{
		api.POST("/login", authHandler.Login)
		api.GET("/productos", productHandler.List)
		api.GET("/productos/:id", productHandler.Get)
		api.POST("/enviar-pedido", orderHandler.Submit)
		api.GET("/health", systemHandler.Health)

		admin := api.Group("", middleware.RequireAuth(deps.Tokens))
		{
			admin.POST("/productos", productHandler.Create)
			admin.PUT("/productos/:id", productHandler.Update)
			admin.DELETE("/productos/:id", productHandler.Delete)
		}
	}

	engine.GET("/images/:filename", imageHandler.Serve)
	engine.GET("/sitemap.xml", seoHandler.Sitemap)
	engine.GET("/robots.txt", seoHandler.Robots)

	return engine
}
