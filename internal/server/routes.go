package server

import (
	"github.com/labstack/echo/v4"

	"github.com/vigie-app/vigie/backend/internal/server/middleware"
	"github.com/vigie-app/vigie/backend/internal/server/routes"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api", middleware.AuthMiddleware)

	// Article routes
	apiRoutes.GET("/articles", routes.GetArticlesHandler)
	apiRoutes.POST("/articles/analyze", routes.AnalyzeArticleHandler, middleware.RequirePermission("article.analyze"))

	// Relation network routes
	apiRoutes.GET("/relations", routes.GetRelationsHandler)
	apiRoutes.GET("/relations/crisis", routes.GetCrisisRelationsHandler)
	apiRoutes.GET("/influence/:country", routes.GetInfluenceHandler)
	apiRoutes.GET("/metrics", routes.GetMetricsHandler)
	apiRoutes.GET("/summary", routes.GetSummaryHandler)
	apiRoutes.GET("/status", routes.GetStatusHandler)

	// Feed routes
	apiRoutes.GET("/feeds", routes.GetFeedsHandler)
	apiRoutes.POST("/feeds", routes.CreateFeedHandler, middleware.RequirePermission("feed.create"))
	apiRoutes.POST("/feeds/refresh", routes.RefreshFeedsHandler, middleware.RequirePermission("feed.refresh"))
	apiRoutes.PATCH("/feeds/:id", routes.EditFeedHandler, middleware.RequirePermission("feed.update"))
	apiRoutes.DELETE("/feeds/:id", routes.DeleteFeedHandler, middleware.RequirePermission("feed.delete"))

	// Theme routes
	apiRoutes.GET("/themes", routes.GetThemesHandler)
	apiRoutes.POST("/themes", routes.CreateThemeHandler, middleware.RequirePermission("theme.create"))
	apiRoutes.PATCH("/themes/:id", routes.EditThemeHandler, middleware.RequirePermission("theme.update"))
	apiRoutes.DELETE("/themes/:id", routes.DeleteThemeHandler, middleware.RequirePermission("theme.delete"))

	// Alert routes
	apiRoutes.GET("/alerts", routes.GetAlertsHandler)
	apiRoutes.GET("/alerts/triggers", routes.GetAlertTriggersHandler)
	apiRoutes.POST("/alerts", routes.CreateAlertHandler, middleware.RequirePermission("alert.create"))
	apiRoutes.PATCH("/alerts/:id", routes.EditAlertHandler, middleware.RequirePermission("alert.update"))
	apiRoutes.DELETE("/alerts/:id", routes.DeleteAlertHandler, middleware.RequirePermission("alert.delete"))

	// Report routes
	apiRoutes.GET("/reports", routes.GetReportsHandler)
	apiRoutes.GET("/reports/:id", routes.GetReportHandler)
	apiRoutes.POST("/reports", routes.GenerateReportHandler, middleware.RequirePermission("report.generate"))
}
