package http

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"caretrack/internal/application/activity"
	complaintUC "caretrack/internal/application/complaint/usecases"
	identityUC "caretrack/internal/application/identity/usecases"
	"caretrack/internal/application/permission"
	permissionUC "caretrack/internal/application/permission/usecases"
	"caretrack/internal/domain/shared/events"
	"caretrack/internal/infrastructure/auth"
	"caretrack/internal/infrastructure/config"
	"caretrack/internal/infrastructure/email"
	"caretrack/internal/infrastructure/notification"
	"caretrack/internal/infrastructure/ratelimit"
	"caretrack/internal/infrastructure/repository"
	"caretrack/internal/infrastructure/services"
	"caretrack/internal/interfaces/http/handlers"
	"caretrack/internal/interfaces/http/middleware"
	"caretrack/internal/interfaces/http/routes"
	"caretrack/internal/shared/db"
	"caretrack/internal/shared/logger"

	"caretrack/internal/domain/complaint"
)

// Container wires repositories, services, use cases, handlers and routes
// into a ready gin engine, and owns the lifecycle of the background pieces
// (event dispatcher, Redis client).
type Container struct {
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface

	redis      *redis.Client
	dispatcher *events.InMemoryEventDispatcher

	jwtSvc               *auth.JWTService
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware

	authHandler       *handlers.AuthHandler
	userHandler       *handlers.UserHandler
	complaintHandler  *handlers.ComplaintHandler
	permissionHandler *handlers.PermissionHandler
	activityHandler   *handlers.ActivityHandler

	loginRateLimit gin.HandlerFunc
	ipRateLimit    gin.HandlerFunc
}

// NewContainer builds the full dependency graph. The event dispatcher is
// created but not started; the server command starts and stops it.
func NewContainer(gormDB *gorm.DB, cfg *config.Config, log logger.Interface) *Container {
	c := &Container{
		engine:     gin.New(),
		db:         gormDB,
		cfg:        cfg,
		log:        log,
		dispatcher: events.NewInMemoryEventDispatcher(100),
	}

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	permissionRepo := repository.NewPermissionRepository(gormDB)
	activityRepo := repository.NewActivityRepository(gormDB)
	complaintRepo := repository.NewComplaintRepository(gormDB)
	assignmentRepo := repository.NewAssignmentRepository(gormDB)
	historyRepo := repository.NewHistoryRepository(gormDB)
	replyRepo := repository.NewReplyRepository(gormDB)
	referenceRepo := repository.NewReferenceRepository(gormDB)

	// Shared services
	txManager := db.NewTransactionManager(gormDB)
	permissionSvc := permission.NewService(permissionRepo, log)
	recorder := activity.NewRecorder(activityRepo, log)
	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	numberGen := services.NewComplaintNumberGenerator(gormDB)
	c.jwtSvc = auth.NewJWTService(
		cfg.Auth.JWT.Secret,
		cfg.Auth.JWT.AccessExpMinutes,
		cfg.Auth.JWT.ImpersonationExpHours,
	)

	// Identity use cases
	loginUC := identityUC.NewLoginUseCase(userRepo, hasher, c.jwtSvc, recorder, log)
	startImpersonationUC := identityUC.NewStartImpersonationUseCase(userRepo, c.jwtSvc, recorder, log)
	endImpersonationUC := identityUC.NewEndImpersonationUseCase(userRepo, c.jwtSvc, recorder, log)
	createUserUC := identityUC.NewCreateUserUseCase(userRepo, hasher, referenceRepo, permissionSvc, recorder, log)
	updateUserUC := identityUC.NewUpdateUserUseCase(userRepo, hasher, referenceRepo, permissionSvc, recorder, log)
	listUsersUC := identityUC.NewListUsersUseCase(userRepo, permissionSvc, log)

	// Permission use cases
	getGrantsUC := permissionUC.NewGetGrantsUseCase(permissionRepo, permissionSvc, log)
	setRoleUC := permissionUC.NewSetRolePermissionsUseCase(permissionRepo, permissionSvc, recorder, txManager, log)
	setUserUC := permissionUC.NewSetUserPermissionsUseCase(permissionRepo, userRepo, permissionSvc, recorder, txManager, log)

	// Complaint use cases
	createComplaintUC := complaintUC.NewCreateComplaintUseCase(
		complaintRepo, historyRepo, numberGen, referenceRepo, permissionSvc, recorder, txManager, c.dispatcher, log)
	assignComplaintUC := complaintUC.NewAssignComplaintUseCase(
		complaintRepo, assignmentRepo, historyRepo, userRepo, permissionSvc, recorder, txManager, c.dispatcher, log)
	replyComplaintUC := complaintUC.NewReplyComplaintUseCase(
		complaintRepo, assignmentRepo, replyRepo, historyRepo, permissionSvc, recorder, txManager, c.dispatcher, log)
	updateStatusUC := complaintUC.NewUpdateStatusUseCase(
		complaintRepo, assignmentRepo, historyRepo, permissionSvc, recorder, txManager, c.dispatcher, log)
	getComplaintUC := complaintUC.NewGetComplaintUseCase(
		complaintRepo, assignmentRepo, historyRepo, replyRepo, permissionSvc, log)
	listComplaintsUC := complaintUC.NewListComplaintsUseCase(complaintRepo, permissionSvc, log)

	listActivityUC := activity.NewListActivityUseCase(activityRepo, permissionSvc, log)

	// Handlers
	c.authHandler = handlers.NewAuthHandler(loginUC, startImpersonationUC, endImpersonationUC)
	c.userHandler = handlers.NewUserHandler(createUserUC, updateUserUC, listUsersUC)
	c.complaintHandler = handlers.NewComplaintHandler(
		createComplaintUC, assignComplaintUC, replyComplaintUC, updateStatusUC, getComplaintUC, listComplaintsUC)
	c.permissionHandler = handlers.NewPermissionHandler(getGrantsUC, setRoleUC, setUserUC)
	c.activityHandler = handlers.NewActivityHandler(listActivityUC)

	// Middlewares
	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, userRepo, log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(permissionSvc, log)
	c.initRateLimiters()

	// Email notifications ride on the dispatcher; the engine never waits
	// on SMTP.
	if cfg.Email.Enabled {
		notifier := notification.NewComplaintNotifier(
			email.NewSMTPEmailService(email.SMTPConfig{
				Host:        cfg.Email.SMTPHost,
				Port:        cfg.Email.SMTPPort,
				Username:    cfg.Email.SMTPUser,
				Password:    cfg.Email.SMTPPassword,
				FromAddress: cfg.Email.FromAddress,
				FromName:    cfg.Email.FromName,
				BaseURL:     cfg.Server.BaseURL,
			}),
			userRepo,
			complaintRepo,
		)
		for _, eventType := range []string{
			complaint.EventTypeComplaintAssigned,
			complaint.EventTypeComplaintReplied,
		} {
			if err := c.dispatcher.Subscribe(eventType, notifier); err != nil {
				log.Warnw("failed to subscribe complaint notifier", "event_type", eventType, "error", err)
			}
		}
	}

	c.setupEngine()
	c.setupRoutes()

	return c
}

func (c *Container) initRateLimiters() {
	if c.cfg.Redis.Host == "" {
		c.log.Warnw("redis not configured, rate limiting disabled")
		return
	}

	c.redis = redis.NewClient(&redis.Options{
		Addr:     c.cfg.Redis.GetAddr(),
		Password: c.cfg.Redis.Password,
		DB:       c.cfg.Redis.DB,
	})
	limiter := ratelimit.NewRedisRateLimiter(c.redis)
	c.ipRateLimit = middleware.RateLimit(limiter, ratelimit.Config{
		RequestsPerMinute: 120,
		RequestsPerHour:   3000,
	}, c.log)
	c.loginRateLimit = middleware.LoginRateLimit(limiter, c.log)
}

func (c *Container) setupEngine() {
	gin.SetMode(ginMode(c.cfg.Server.Mode))

	c.engine.Use(middleware.Recovery(c.log))
	c.engine.Use(middleware.Logger(c.log))
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	c.engine.Use(middleware.SecurityHeaders())
	if c.ipRateLimit != nil {
		c.engine.Use(c.ipRateLimit)
	}

	c.engine.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})
}

func (c *Container) setupRoutes() {
	routes.SetupAuthRoutes(c.engine, &routes.AuthRouteConfig{
		AuthHandler:          c.authHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
		LoginRateLimit:       c.loginRateLimit,
	})
	routes.SetupUserRoutes(c.engine, &routes.UserRouteConfig{
		UserHandler:    c.userHandler,
		AuthMiddleware: c.authMiddleware,
	})
	routes.SetupComplaintRoutes(c.engine, &routes.ComplaintRouteConfig{
		ComplaintHandler:     c.complaintHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})
	routes.SetupPermissionRoutes(c.engine, &routes.PermissionRouteConfig{
		PermissionHandler: c.permissionHandler,
		AuthMiddleware:    c.authMiddleware,
	})
	routes.SetupActivityRoutes(c.engine, &routes.ActivityRouteConfig{
		ActivityHandler: c.activityHandler,
		AuthMiddleware:  c.authMiddleware,
	})
}

// Engine returns the wired gin engine.
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// StartDispatcher starts the background event loop.
func (c *Container) StartDispatcher() error {
	return c.dispatcher.Start()
}

// Shutdown stops the event dispatcher and closes the Redis client.
func (c *Container) Shutdown(ctx context.Context) error {
	if err := c.dispatcher.Stop(); err != nil {
		c.log.Warnw("failed to stop event dispatcher", "error", err)
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
	}
	return nil
}

func ginMode(mode string) string {
	switch mode {
	case "release", "production":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
