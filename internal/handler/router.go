package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/nexjob/nexjob-api/internal/middleware"
	"github.com/nexjob/nexjob-api/internal/models"
	"github.com/nexjob/nexjob-api/internal/service"
	"github.com/nexjob/nexjob-api/pkg/config"
	"github.com/nexjob/nexjob-api/pkg/logger"
	"github.com/nexjob/nexjob-api/pkg/middleware/cors"
	"github.com/nexjob/nexjob-api/pkg/middleware/requestid"
)

// RouterDeps bundles everything the HTTP surface needs.
type RouterDeps struct {
	Config   *config.Config
	Logger   *zap.Logger
	Metrics  *service.MetricsService
	Auth     middleware.TokenValidator
	AuthH    *AuthHandler
	Settings *SettingsHandler
	SEO      *SEOHandler
	Ads      *AdsHandler
	Sitemaps *SitemapHandler
}

// NewRouter assembles the gin engine with all routes and middleware.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.Middleware())
	router.Use(logger.GinMiddleware(deps.Logger))
	router.Use(cors.New(deps.Config.CORS.AllowedOrigins))
	if deps.Metrics != nil {
		router.Use(middleware.Metrics(deps.Metrics))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "env": deps.Config.Env})
	})
	router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	// Crawling surface lives at the root, not under the API prefix.
	router.GET("/robots.txt", deps.Sitemaps.Robots)
	router.GET("/sitemap.xml", deps.Sitemaps.Index)
	for _, name := range service.SitemapNames {
		router.GET("/sitemap-"+name+".xml", deps.Sitemaps.Sitemap(name))
	}

	api := router.Group(deps.Config.APIPrefix)
	{
		api.POST("/auth/login", deps.AuthH.Login)

		api.GET("/settings", deps.Settings.Public)

		api.GET("/seo/category/:slug", deps.SEO.CategoryMeta)
		api.GET("/seo/location/:slug", deps.SEO.LocationMeta)
		api.GET("/seo/page/:page", deps.SEO.PageMeta)

		api.GET("/ads", deps.Ads.List)
		api.GET("/ads/:position", deps.Ads.ByPosition)
		api.POST("/ads/inject", deps.Ads.Inject)

		admin := api.Group("/admin")
		admin.Use(middleware.JWTAuth(deps.Auth))
		admin.Use(middleware.RequireRoles(models.RoleSuperAdmin, models.RoleAdmin))
		{
			admin.GET("/settings", deps.Settings.Get)
			admin.PUT("/settings", deps.Settings.Update)
		}
	}

	if deps.Config.Env != config.EnvProduction {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return router
}
