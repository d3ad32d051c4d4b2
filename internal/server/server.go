package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"yatube/internal/cache"
	"yatube/internal/config"
	"yatube/internal/database"
	"yatube/internal/handlers"
	"yatube/internal/media"
	"yatube/internal/middleware"
	"yatube/internal/monitoring"
	"yatube/internal/storage"
)

// NewServer wires the storage, cache and handlers and returns the HTTP
// server ready to listen.
func NewServer(cfg *config.Config) (*http.Server, error) {
	db, err := database.NewDatabase(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := db.Initialize(); err != nil {
		return nil, err
	}

	dbService, err := database.New(cfg)
	if err != nil {
		return nil, err
	}
	store := storage.NewPostgresStore(dbService.GetDB())

	var pageCache cache.Cache
	if cfg.RedisHost != "" {
		pageCache = cache.NewRedisCache(&redis.Options{
			Addr: fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		})
	} else {
		log.Warn("REDIS_HOST not set, using in-process page cache")
		pageCache = cache.NewMemoryCache()
	}

	mediaStore, err := media.NewStore(cfg.MediaRoot)
	if err != nil {
		return nil, err
	}

	handler := handlers.NewHandler(store, pageCache, mediaStore, cfg)

	monitoring.Register()
	router := Routes(handler, dbService, cfg)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Infof("Server starting on port %s", cfg.Port)

	return server, nil
}

// Routes sets up all application routes
func Routes(h *handlers.Handler, dbService database.Service, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	r.Use(monitoring.Middleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	r.Use(middleware.Authenticate(cfg.JWTSecret))

	r.GET("/health", func(c *gin.Context) {
		if dbService != nil {
			c.JSON(http.StatusOK, dbService.Health())
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Auth routes (public)
	r.POST("/auth/signup/", h.Auth.Signup)
	r.POST("/auth/login/", h.Auth.Login)
	r.POST("/auth/logout/", h.Auth.Logout)

	// Public reads
	r.GET("/", h.Post.Index)
	r.GET("/group/:slug/", h.Post.GroupPosts)
	r.GET("/profile/:username/", h.Post.Profile)
	r.GET("/posts/:id/", h.Post.PostDetail)

	// Protected routes (authentication required; anonymous requests are
	// redirected to login with a next parameter)
	protected := r.Group("")
	protected.Use(middleware.LoginRequired())
	{
		protected.GET("/me", h.Auth.GetMe)

		protected.GET("/create/", h.Post.NewPostForm)
		protected.POST("/create/", h.Post.CreatePost)
		protected.GET("/posts/:id/edit/", h.Post.EditPostForm)
		protected.POST("/posts/:id/edit/", h.Post.EditPost)

		protected.POST("/posts/:id/comment", h.Comment.AddComment)

		protected.GET("/follow/", h.Follow.FollowIndex)
		protected.GET("/profile/:username/follow/", h.Follow.Follow)
		protected.GET("/profile/:username/unfollow/", h.Follow.Unfollow)
	}

	return r
}
