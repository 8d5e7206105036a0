package webserver

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/agent-tribunal/casedocket/src/CDApi/config"
	"github.com/agent-tribunal/casedocket/src/shared/offenses"
)

func attachRoutes(r *gin.Engine, cfg config.Config, db *gorm.DB, rdb *redis.Client) {
	// Wildcard CORS on every response, error shapes included. Pre-flight
	// answers 200 with an empty body.
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{
			"Authorization", "X-Client-Info", "Apikey", "Content-Type",
			"X-Case-Signature", "X-Agent-Key", "X-Key-Id",
		},
		OptionsResponseStatusCode: http.StatusOK,
	}))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	casesH := NewCases(db, rdb)
	statsH := NewStatistics(db)
	limiter := NewRateLimiter(cfg.RateLimit, cfg.RateWindow)

	api := r.Group("/cases-api")
	{
		api.POST("", RateLimitMiddleware(limiter), casesH.Submit)
		api.POST("/cases", RateLimitMiddleware(limiter), casesH.Submit)
		api.GET("", casesH.List)
		api.GET("/cases", casesH.List)
		api.GET("/statistics", statsH.Get)
		api.GET("/offenses", listOffenses)
	}
}

func listOffenses(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"offenses": offenses.Catalog})
}
