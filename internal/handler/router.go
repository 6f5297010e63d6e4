package handler

import (
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/tantasui/decentradocs/internal/middleware"
)

type RouterDeps struct {
	Documents        *DocumentHandler
	Query            *QueryHandler
	CORSAllowOrigins []string
	UploadRateWindow time.Duration
}

func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(deps.CORSAllowOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	api := router.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	uploads := api.Group("")
	uploads.Use(middleware.RateLimit(deps.UploadRateWindow))
	uploads.POST("/documents", deps.Documents.Upload)

	api.DELETE("/documents/:id", deps.Documents.Delete)
	api.GET("/documents/:id/file", deps.Documents.File)
	api.GET("/stats", deps.Documents.Stats)
	api.POST("/query", deps.Query.Query)

	return router
}
