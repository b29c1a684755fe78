package http

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	authUsecases "github.com/assistitk12/assistitk12/internal/application/auth/usecases"
	"github.com/assistitk12/assistitk12/internal/application/notification"
	"github.com/assistitk12/assistitk12/internal/domain/directory"
	"github.com/assistitk12/assistitk12/internal/domain/shared/events"
	"github.com/assistitk12/assistitk12/internal/infrastructure/auth"
	"github.com/assistitk12/assistitk12/internal/infrastructure/cache"
	"github.com/assistitk12/assistitk12/internal/infrastructure/crypto"
	"github.com/assistitk12/assistitk12/internal/infrastructure/email"
	"github.com/assistitk12/assistitk12/internal/infrastructure/importer"
	"github.com/assistitk12/assistitk12/internal/infrastructure/metrics"
	"github.com/assistitk12/assistitk12/internal/infrastructure/permission"
	"github.com/assistitk12/assistitk12/internal/infrastructure/ratelimit"
	"github.com/assistitk12/assistitk12/internal/infrastructure/storage"
	"github.com/assistitk12/assistitk12/internal/shared/services/markdown"
)

// services holds infrastructure services shared by several use cases.
type services struct {
	hasher      *auth.BcryptPasswordHasher
	cipher      *crypto.SecretCipher
	markdown    markdown.MarkdownService
	files       *storage.FileStore
	sheets      *importer.SheetReader
	google      authUsecases.IdentityProvider
	states      authUsecases.StateStore
	revoker     authUsecases.TokenRevoker
	limiter     authUsecases.LoginLimiter
	assignables directory.AssignableUserCache
	notifier    *notification.Notifier
}

func (c *Container) initServices() error {
	c.svcs = &services{}

	if c.cfg.Redis.Enabled {
		c.redis = redis.NewClient(&redis.Options{
			Addr:     c.cfg.Redis.GetAddr(),
			Password: c.cfg.Redis.Password,
			DB:       c.cfg.Redis.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		c.log.Infow("redis connected", "addr", c.cfg.Redis.GetAddr())
	}

	enforcer, err := permission.NewEnforcer(c.db, c.log)
	if err != nil {
		return fmt.Errorf("failed to create permission enforcer: %w", err)
	}
	c.enforcer = enforcer

	c.jwtSvc = auth.NewJWTService(c.cfg.Auth.JWT.Secret, c.cfg.Auth.JWT.AccessExpMinutes, c.cfg.Auth.JWT.RefreshExpDays)
	c.svcs.hasher = auth.NewBcryptPasswordHasher(c.cfg.Auth.Password.BcryptCost)

	cipher, err := crypto.NewSecretCipher(c.cfg.Security.SecretKey)
	if err != nil {
		return fmt.Errorf("failed to create secret cipher: %w", err)
	}
	c.svcs.cipher = cipher

	c.svcs.markdown = markdown.NewMarkdownService()
	c.svcs.sheets = importer.NewSheetReader()

	files, err := storage.NewLocalFileStore(c.cfg.Storage.UploadDir)
	if err != nil {
		return fmt.Errorf("failed to open upload directory: %w", err)
	}
	c.svcs.files = files

	c.initCaches()

	if c.cfg.Auth.Google.Enabled() {
		c.svcs.google = auth.NewGoogleOAuthClient(auth.GoogleOAuthConfig{
			ClientID:     c.cfg.Auth.Google.ClientID,
			ClientSecret: c.cfg.Auth.Google.ClientSecret,
			RedirectURL:  c.cfg.Auth.Google.RedirectURL,
		})
	}

	return c.initNotifications()
}

// initCaches picks the Redis implementations when Redis is configured and
// the process-local ones otherwise.
func (c *Container) initCaches() {
	ttl := c.cfg.Cache.AssignableUsersTTL()
	perMinute := c.cfg.Auth.LoginAttemptsPerMinute

	if c.redis != nil {
		c.svcs.assignables = cache.NewRedisAssignableUserCache(c.redis, ttl)
		c.svcs.states = cache.NewRedisStateStore(c.redis, cache.OAuthStatePrefix, cache.OAuthStateTTL)
		c.svcs.revoker = auth.NewRedisTokenRevoker(c.redis)
		if perMinute > 0 {
			c.svcs.limiter = ratelimit.NewRedisRateLimiter(c.redis, ratelimit.PerMinute(perMinute))
		}
		return
	}

	c.svcs.assignables = cache.NewMemoryAssignableUserCache(ttl)
	c.svcs.states = cache.NewMemoryStateStore(cache.OAuthStateTTL)
	c.svcs.revoker = auth.NewMemoryTokenRevoker()
	if perMinute > 0 {
		c.svcs.limiter = ratelimit.NewMemoryRateLimiter(ratelimit.PerMinute(perMinute))
	}
}

func (c *Container) initNotifications() error {
	c.metrics = metrics.New()
	c.mailer = email.NewMailerManager(c.repos.orgRepo, c.svcs.cipher, c.log)

	queue, err := notification.NewQueue(c.mailer, events.DispatcherOptions{
		BufferSize:     c.cfg.Notification.QueueSize,
		Workers:        c.cfg.Notification.Workers,
		HandlerTimeout: c.cfg.Notification.SendTimeout(),
	}, c.metrics, c.log)
	if err != nil {
		return fmt.Errorf("failed to create notification queue: %w", err)
	}
	c.queue = queue

	c.svcs.notifier = notification.NewNotifier(c.repos.titleRepo, c.repos.userRepo, queue, c.svcs.markdown, c.log)
	return nil
}
