package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/SilvioBaratto/diet-generator/config"
	"github.com/SilvioBaratto/diet-generator/internal/api"
	"github.com/SilvioBaratto/diet-generator/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
}

// Options carries the collaborators the server wires into handlers.
type Options struct {
	Config    *config.Config
	DB        *gorm.DB
	Redis     *redis.Client
	Generator service.PlanGenerator
	Archiver  service.PlanArchiver
}

// New creates a new server instance
func New(opts Options) *Server {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:4200", "http://frontend:4200"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := service.NewAuthService(opts.DB, opts.Config.JWTSecret)
	dietService := service.NewDietService(opts.DB, opts.Generator, opts.Archiver)
	mealService := service.NewMealService(opts.DB, opts.Generator, opts.Redis)
	settingsService := service.NewSettingsService(opts.DB)

	v1 := router.Group("/api/v1")
	api.NewDietHandler(dietService, auth).RegisterRoutes(v1)
	api.NewMealHandler(mealService, auth).RegisterRoutes(v1)
	api.NewSettingsHandler(settingsService, auth).RegisterRoutes(v1)

	return &Server{
		router: router,
		db:     opts.DB,
		http: &http.Server{
			Addr:    opts.Config.ServerHost + ":" + opts.Config.ServerPort,
			Handler: router,
		},
	}
}

// Router exposes the underlying gin engine so tests can drive the full
// handler chain without a listening socket.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start starts the server and blocks until it stops.
func (s *Server) Start() error {
	log.Printf("Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
