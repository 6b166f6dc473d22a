package router

import (
	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
	"github.com/landingpages/internal/config"
	"github.com/landingpages/internal/handler"
	"github.com/landingpages/internal/metrics"
	"github.com/landingpages/internal/service"
)

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(cfg config.AppConfig, pages *service.PageService) *gin.Engine {
	r := gin.Default()

	r.Use(handler.RequestID())

	// 安全响应头
	r.Use(secure.New(secure.Config{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))

	api := handler.NewAPI(pages, cfg.StaticRoot, cfg.PagesDir, cfg.PagesURLPath)

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/hello", api.Hello)
		apiGroup.GET("/pages", api.ListPages)
		apiGroup.POST("/pages", api.CreatePage)
	}

	// 其余路径交给静态文件目录
	r.NoRoute(api.ServeStatic)

	return r
}
