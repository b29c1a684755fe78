package http

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/assistitk12/assistitk12/internal/application/notification"
	"github.com/assistitk12/assistitk12/internal/infrastructure/auth"
	"github.com/assistitk12/assistitk12/internal/infrastructure/config"
	"github.com/assistitk12/assistitk12/internal/infrastructure/email"
	"github.com/assistitk12/assistitk12/internal/infrastructure/metrics"
	"github.com/assistitk12/assistitk12/internal/infrastructure/permission"
	"github.com/assistitk12/assistitk12/internal/infrastructure/scheduler"
	"github.com/assistitk12/assistitk12/internal/interfaces/http/middleware"
	"github.com/assistitk12/assistitk12/internal/shared/logger"
)

// Container holds the infrastructure, repositories, use cases, handlers and
// background services of one server process and wires them together.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	repos *repositories
	svcs  *services
	ucs   *allUseCases
	hdlrs *allHandlers

	authMiddleware *middleware.AuthMiddleware

	// Background services
	enforcer         *permission.Enforcer
	jwtSvc           *auth.JWTService
	metrics          *metrics.Metrics
	mailer           *email.MailerManager
	queue            *notification.Queue
	schedulerManager *scheduler.SchedulerManager
}

// NewContainer wires every dependency. The order matters: services need the
// repositories, use cases need both, and handlers need the use cases.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	c.initRepositories()

	if err := c.initServices(); err != nil {
		return nil, err
	}

	c.initUseCases()

	if err := c.initScheduler(); err != nil {
		return nil, err
	}

	c.initHandlers()

	return c, nil
}
