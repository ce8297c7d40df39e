// Package api wires the HTTP surface: gin router, middleware, and handlers.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/causehire/recruit-api/internal/auth"
	"github.com/causehire/recruit-api/internal/config"
	"github.com/causehire/recruit-api/internal/database"
	"github.com/causehire/recruit-api/internal/drafts"
	"github.com/causehire/recruit-api/internal/flags"
	"github.com/causehire/recruit-api/internal/logger"
	"github.com/causehire/recruit-api/internal/metrics"
)

const (
	healthCheckTimeout   = 2 * time.Second
	healthStatusHealthy  = "healthy"
	healthStatusDegraded = "degraded"
	serviceName          = "recruit-api"
	serviceVersion       = "1.0.0"
)

// Router holds the API dependencies.
type Router struct {
	drafts    *drafts.Service
	tracker   *flags.Tracker
	jobs      *database.JobRepository
	apps      *database.ApplicationRepository
	errorLogs *database.ErrorLogRepository
	jwt       *auth.Manager

	db          *sqlx.DB
	redisClient redis.UniversalClient
	gatherer    prometheus.Gatherer
	metrics     *metrics.Metrics
	cfg         *config.Config
	logger      logger.Logger
}

// Deps bundles everything the router needs.
type Deps struct {
	Drafts    *drafts.Service
	Tracker   *flags.Tracker
	Jobs      *database.JobRepository
	Apps      *database.ApplicationRepository
	ErrorLogs *database.ErrorLogRepository
	JWT       *auth.Manager

	DB          *sqlx.DB
	RedisClient redis.UniversalClient
	Gatherer    prometheus.Gatherer
	Metrics     *metrics.Metrics
	Config      *config.Config
	Logger      logger.Logger
}

// NewRouter creates a new API router.
func NewRouter(d Deps) *Router {
	return &Router{
		drafts:      d.Drafts,
		tracker:     d.Tracker,
		jobs:        d.Jobs,
		apps:        d.Apps,
		errorLogs:   d.ErrorLogs,
		jwt:         d.JWT,
		db:          d.DB,
		redisClient: d.RedisClient,
		gatherer:    d.Gatherer,
		metrics:     d.Metrics,
		cfg:         d.Config,
		logger:      d.Logger,
	}
}

// Engine builds the gin engine with all middleware and routes.
func (r *Router) Engine() *gin.Engine {
	if !r.cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(r.requestLogger())
	router.Use(r.metrics.GinMiddleware())
	router.Use(r.errorLogRecorder())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	if len(r.cfg.Server.CORSOrigins) > 0 {
		corsConfig.AllowOrigins = r.cfg.Server.CORSOrigins
	} else {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", r.healthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})))

	// Public listing needs no token.
	router.GET("/api/v1/public/jobs", r.listPublicJobs)

	v1 := router.Group("/api/v1")
	v1.Use(auth.Middleware(r.jwt))

	draftRoutes := v1.Group("/drafts")
	draftRoutes.GET("", r.listDrafts)
	draftRoutes.POST("/generate", r.generateDraft)
	draftRoutes.POST("/upload", r.uploadDraft)
	draftRoutes.POST("/:id/retry", r.retryDraft)
	draftRoutes.GET("/:id", r.getDraft)

	v1.GET("/progress", r.getProgress)
	v1.PATCH("/progress", r.updateProgress)

	jobRoutes := v1.Group("/jobs")
	jobRoutes.GET("", r.listJobs)
	jobRoutes.POST("", r.createJob)
	jobRoutes.GET("/:id", r.getJob)
	jobRoutes.PUT("/:id", r.updateJob)
	jobRoutes.DELETE("/:id", r.deleteJob)
	jobRoutes.POST("/:id/publish", r.publishJob)
	jobRoutes.GET("/:id/applications", r.listJobApplications)

	appRoutes := v1.Group("/applications")
	appRoutes.GET("", r.listApplications)
	appRoutes.POST("", r.createApplication)
	appRoutes.GET("/:id", r.getApplication)
	appRoutes.PATCH("/:id/status", r.updateApplicationStatus)
	appRoutes.DELETE("/:id", r.deleteApplication)

	v1.GET("/errors", r.listErrorLogs)

	return router
}

// healthCheck reports service health including database and redis reachability.
func (r *Router) healthCheck(c *gin.Context) {
	health := gin.H{
		"status":  healthStatusHealthy,
		"service": serviceName,
		"version": serviceVersion,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	dbConnected := true
	if r.db == nil || r.db.PingContext(ctx) != nil {
		dbConnected = false
		health["status"] = healthStatusDegraded
	}
	health["database"] = gin.H{"connected": dbConnected}

	redisConnected := true
	if r.redisClient == nil || r.redisClient.Ping(ctx).Err() != nil {
		redisConnected = false
		if health["status"] == healthStatusHealthy {
			health["status"] = healthStatusDegraded
		}
	}
	health["redis"] = gin.H{"connected": redisConnected}

	c.JSON(http.StatusOK, health)
}
