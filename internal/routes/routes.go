package routes

import (
	"cardswap/internal/handlers"
	"cardswap/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Middlewares - обёртки для отдельных групп маршрутов
type Middlewares struct {
	AdminAuth gin.HandlerFunc // Basic-аутентификация админки
	RateLimit gin.HandlerFunc // лимит для публичных форм
}

// RegisterRoutes регистрирует все HTTP маршруты.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	mw Middlewares,
) {
	root := ginRouter.Group("/")
	{
		// Публичные формы
		appHandlers.SubmissionHandler.RegisterRoutes(root, mw.RateLimit)
		appHandlers.ContactHandler.RegisterRoutes(root, mw.RateLimit)

		// Загруженные изображения (без авторизации)
		appHandlers.FileHandler.RegisterRoutes(root)

		// Админка
		appHandlers.AdminHandler.RegisterRoutes(root, mw.AdminAuth)
	}

	// Служебные маршруты
	ginRouter.GET("/healthz", handlers.Health)
	ginRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))
	ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Главная страница и публичная директория (fallback)
	appHandlers.StaticHandler.RegisterRoutes(ginRouter)

	logger.Info("HTTP routes registered")
}
