package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tire-advisor/app/controllers"
)

// SetupAPIRoutes registers the /v1 API.
func SetupAPIRoutes(router *gin.Engine, specController *controllers.SpecController, recommendController *controllers.RecommendController) {
	v1 := router.Group("/v1")
	{
		spec := v1.Group("/spec")
		{
			spec.POST("/extract", specController.Extract)
			spec.POST("/validate", specController.Validate)
			spec.POST("/candidates", specController.Candidates)
		}

		v1.POST("/recommend", recommendController.Recommend)
		v1.GET("/recommend/mock", recommendController.MockRecommend)

		v1.GET("/health", specController.HealthCheck)
	}
}

// SetupHealthRoutes registers the root-level probes.
func SetupHealthRoutes(router *gin.Engine, specController *controllers.SpecController) {
	router.GET("/health", specController.HealthCheck)
	router.GET("/ready", specController.HealthCheck)
	router.GET("/live", specController.HealthCheck)
}

// SetupAllRoutes wires middleware and every route group.
func SetupAllRoutes(router *gin.Engine, specController *controllers.SpecController, recommendController *controllers.RecommendController) {
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	SetupHealthRoutes(router, specController)
	SetupAPIRoutes(router, specController, recommendController)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})
}
