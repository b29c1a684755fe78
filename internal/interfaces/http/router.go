package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "github.com/assistitk12/assistitk12/docs"
	"github.com/assistitk12/assistitk12/internal/infrastructure/config"
	"github.com/assistitk12/assistitk12/internal/interfaces/http/middleware"
	"github.com/assistitk12/assistitk12/internal/interfaces/http/routes"
	"github.com/assistitk12/assistitk12/internal/shared/logger"
)

// Router owns the gin engine and the container behind it.
type Router struct {
	*Container
}

// NewRouter wires every dependency and returns a router ready for SetupRoutes.
func NewRouter(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Router, error) {
	c, err := NewContainer(db, cfg, log)
	if err != nil {
		return nil, err
	}
	return &Router{Container: c}, nil
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.log))
	r.engine.Use(middleware.Recovery(r.log))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())
	r.engine.Use(middleware.Metrics(r.metrics))

	r.engine.GET("/health", r.health)
	r.engine.GET("/metrics", gin.WrapH(r.metrics.Handler()))
	if r.cfg.Server.Mode != gin.ReleaseMode {
		r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.engine.Group("/api/v1")

	routes.SetupAuthRoutes(api, &routes.AuthRouteConfig{
		AuthHandler:    r.hdlrs.authHandler,
		AuthMiddleware: r.authMiddleware,
	})

	routes.SetupTicketRoutes(api, &routes.TicketRouteConfig{
		TicketHandler:  r.hdlrs.ticketHandler,
		AuthMiddleware: r.authMiddleware,
	})

	routes.SetupDirectoryRoutes(api, &routes.DirectoryRouteConfig{
		UserHandler:    r.hdlrs.userHandler,
		CatalogHandler: r.hdlrs.catalogHandler,
		AuthMiddleware: r.authMiddleware,
	})

	routes.SetupAdminRoutes(api, &routes.AdminRouteConfig{
		BannerHandler:       r.hdlrs.bannerHandler,
		OrganizationHandler: r.hdlrs.organizationHandler,
		AuthMiddleware:      r.authMiddleware,
	})
}

func (r *Router) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	sqlDB, err := r.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// StartBackground loads the mail settings and starts the notification queue
// and the scheduler.
func (r *Router) StartBackground(ctx context.Context) error {
	if err := r.mailer.Initialize(ctx); err != nil {
		// Mail is optional; tickets still work without it.
		r.log.Warnw("mail settings not loaded", "error", err)
	}
	if err := r.queue.Start(); err != nil {
		return err
	}
	r.schedulerManager.Start()
	return nil
}

// Shutdown stops background work. The HTTP server must already be drained.
func (r *Router) Shutdown() {
	if r.schedulerManager != nil {
		if err := r.schedulerManager.Stop(); err != nil {
			r.log.Errorw("failed to stop scheduler", "error", err)
		}
	}

	// Stop the queue last so messages from in-flight requests are delivered.
	if r.queue != nil {
		if err := r.queue.Stop(); err != nil {
			r.log.Errorw("failed to stop notification queue", "error", err)
		}
	}

	if r.redis != nil {
		if err := r.redis.Close(); err != nil {
			r.log.Errorw("failed to close redis client", "error", err)
		}
	}
}
