// Package api serves the points store and scoreboards over HTTP.
package api

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/mdlunited/arcade/internal/shop"
	"github.com/mdlunited/arcade/internal/storage"
)

// ScoreReader is the part of the score store the API reads.
type ScoreReader interface {
	TopScores(gameID string, limit int) ([]storage.ScoreEntry, error)
}

// Deps are the services the handlers use.
type Deps struct {
	Shop      *shop.Service
	Scores    ScoreReader
	JWTSecret string
	Logger    *log.Logger
}

// NewRouter builds the gin engine with all routes. The gin mode is left
// to the caller.
func NewRouter(d Deps) *gin.Engine {
	if d.Logger == nil {
		d.Logger = log.Default()
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(d.Logger))

	h := &handlers{shop: d.Shop, scores: d.Scores, logger: d.Logger, started: time.Now()}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", h.health)
		v1.GET("/scores/:game", h.topScores)
		v1.GET("/store/items", h.storeItems)

		authed := v1.Group("")
		authed.Use(AuthMiddleware(d.JWTSecret))
		{
			authed.GET("/wallet", h.wallet)
			authed.POST("/store/purchase", h.purchase)
			authed.POST("/admin/coins", h.grantCoins)
		}
	}

	return router
}

// requestLogger logs one line per request.
func requestLogger(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
