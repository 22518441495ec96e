package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/faqforge/faqforge/api/handler"
	"github.com/faqforge/faqforge/api/middleware"
	"github.com/faqforge/faqforge/cache"
	"github.com/faqforge/faqforge/config"
	"github.com/faqforge/faqforge/extractor"
	"github.com/faqforge/faqforge/store"
	"github.com/faqforge/faqforge/synthesizer"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     Auth (if enabled) → RateLimit
//
// Health endpoint is intentionally outside auth so monitoring probes always work.
func NewRouter(ex *extractor.Extractor, syn *synthesizer.Synthesizer, st *store.Store, cc *cache.Cache, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	v1 := r.Group("/api/v1")

	// Health — no auth required.
	v1.GET("/health", handler.Health(st, startTime))

	// Protected group — auth + rate limit.
	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	// Pipeline
	protected.POST("/generate", handler.Generate(ex, syn, st, cc, cfg.Webhook.Secret))
	protected.POST("/extract", handler.Extract(ex))

	// FAQ records
	protected.GET("/faqs", handler.ListFAQs(st))
	protected.GET("/faqs/:id", handler.GetFAQ(st))
	protected.PATCH("/faqs/:id", handler.UpdateFAQ(st))
	protected.POST("/faqs/:id/publish", handler.PublishFAQ(st))
	protected.DELETE("/faqs/:id", handler.DeleteFAQ(st))

	// Export
	protected.GET("/export/faqs", handler.ExportFAQs(st))

	// Stored page snapshots
	protected.GET("/pages", handler.ListPages(st))
	protected.GET("/pages/markdown", handler.PageMarkdown(ex))

	return r
}
