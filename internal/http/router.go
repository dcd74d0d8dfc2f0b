// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging with redaction, panic recovery,
// metrics, compression, idempotency, rate limiting, CORS and security headers.
package httpapi

import (
	"context"
	"net/http"
	"path"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/tbourn/go-news-backend/internal/config"
	"github.com/tbourn/go-news-backend/internal/domain"
	"github.com/tbourn/go-news-backend/internal/http/handlers"
	"github.com/tbourn/go-news-backend/internal/http/middleware"
	"github.com/tbourn/go-news-backend/internal/repo"
	"github.com/tbourn/go-news-backend/internal/services"
	"github.com/tbourn/go-news-backend/internal/validation"
)

// Fallback messages.
const (
	MsgRouteNotFound    = "Route not found"
	MsgMethodNotAllowed = "Method not allowed"
)

const maxBodyBytes = 1 << 20

// topicRepoShim adapts repo.ListTopics to services.TopicRepo.
type topicRepoShim struct{}

func (topicRepoShim) ListTopics(ctx context.Context, db *gorm.DB) ([]domain.Topic, error) {
	return repo.ListTopics(ctx, db)
}

// userRepoShim adapts repo.ListUsers to services.UserRepo.
type userRepoShim struct{}

func (userRepoShim) ListUsers(ctx context.Context, db *gorm.DB) ([]domain.User, error) {
	return repo.ListUsers(ctx, db)
}

// Services bundles the application services behind the routes.
type Services struct {
	Topics   *services.TopicService
	Articles *services.ArticleService
	Comments *services.CommentService
	Users    *services.UserService
}

// NewServices builds every service over db.
func NewServices(db *gorm.DB, cfg config.Config) Services {
	return Services{
		Topics:   services.NewTopicService(db, topicRepoShim{}),
		Articles: &services.ArticleService{DB: db},
		Comments: &services.CommentService{DB: db, IdempotencyTTL: cfg.IdempotencyTTL},
		Users:    services.NewUserService(db, userRepoShim{}),
	}
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine and returns the services it built, so the caller can run background
// maintenance against the same instances.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured access logs with header masking
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Gzip
//  8. Idempotency validator on comment creation (before rate limiter to
//     allow bypass on replay)
//  9. Rate limiter (per IP, bypass on replay)
//  10. CORS and security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) Services {
	r.HandleMethodNotAllowed = true
	svcs := NewServices(db, cfg)

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(middleware.LogOptions{
		MaskHeaders: []string{"X-API-Key"},
		SkipPaths:   []string{"/health", "/metrics"},
	}))
	r.Use(middleware.Recovery())
	r.Use(limitBody(maxBodyBytes))

	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	api := groupWithPrefix(r, cfg.APIBasePath)
	commentsRoute := path.Join(api.BasePath(), "/articles/:article_id/comments")

	r.Use(middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{
			MaxLen:     200,
			ScopeParam: "article_id",
			ValidScope: validation.IsID,
			Routes:     []string{commentsRoute},
		},
		func(ctx context.Context, scope, key string, now time.Time) (bool, error) {
			id, err := validation.ID(scope)
			if err != nil {
				return false, nil
			}
			return svcs.Comments.HasReplay(ctx, id, key, now), nil
		},
	))

	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByIP(), "/health", "/metrics")
	r.Use(rl.Handler())

	r.Use(corsMiddleware(cfg.CORS.AllowedOrigins)...)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		EnablePolicy: true,
	}))

	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, MsgRouteNotFound)
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, MsgMethodNotAllowed)
	})

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	h := handlers.New(svcs.Topics, svcs.Articles, svcs.Comments, svcs.Users)
	if cfg.MaxPageSize > 0 {
		h.MaxPageSize = cfg.MaxPageSize
	}
	h.BasePath = cfg.APIBasePath

	{
		api.GET("", h.GetEndpoints)
		api.GET("/topics", h.GetTopics)
		api.GET("/users", h.GetUsers)

		api.GET("/articles", h.GetArticles)
		api.GET("/articles/:article_id", h.GetArticleByID)
		api.PATCH("/articles/:article_id", h.PatchArticleVotes)

		api.GET("/articles/:article_id/comments", h.GetCommentsByArticle)
		api.POST("/articles/:article_id/comments", h.PostComment)
		api.DELETE("/comments/:comment_id", h.DeleteComment)
	}
	return svcs
}

// corsMiddleware returns the CORS posture: allow all origins when none are
// configured, otherwise echo only allowlisted origins.
func corsMiddleware(origins []string) []gin.HandlerFunc {
	base := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.HeaderIdempotencyKey},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Length", middleware.HeaderIdempotencyReplayed},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}

	if len(origins) == 0 {
		base.AllowAllOrigins = true
		// ACAO: * even for requests without an Origin header.
		force := func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		}
		return []gin.HandlerFunc{force, cors.New(base)}
	}

	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	echo := func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); origin != "" {
			if _, ok := allowed[origin]; ok {
				h := c.Writer.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Add("Vary", "Origin")
			}
		}
		c.Next()
	}
	base.AllowOrigins = origins
	return []gin.HandlerFunc{echo, cors.New(base)}
}

// limitBody caps the request body at maxBytes; larger bodies fail to decode.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
