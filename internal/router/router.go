package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"focusorbit/backend/internal/handler"
	"focusorbit/backend/internal/metrics"
	"focusorbit/backend/internal/middleware"
)

type Handlers struct {
	Auth     *handler.AuthHandler
	Profile  *handler.ProfileHandler
	Settings *handler.SettingsHandler
	Streak   *handler.StreakHandler
	Session  *handler.SessionHandler
	Goal     *handler.GoalHandler
	Role     *handler.RoleHandler
}

type Options struct {
	CORSOrigins []string
	Logger      *zap.Logger
	RateLimiter *middleware.RateLimiter
}

func New(tokens middleware.TokenParser, handlers Handlers, opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.Logger(logger),
		gin.Recovery(),
		middleware.Metrics(),
		middleware.CORS(opts.CORSOrigins),
	)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	var limit gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if opts.RateLimiter != nil {
		limit = opts.RateLimiter.Handler()
	}

	api := engine.Group("/api")

	auth := api.Group("/auth")
	auth.Use(limit)
	auth.POST("/register", handlers.Auth.Register)
	auth.POST("/login", handlers.Auth.Login)

	public := api.Group("")
	public.Use(middleware.OptionalAuth(tokens), limit)
	public.GET("/users/:id/profile", handlers.Profile.GetUser)
	public.GET("/roles/me", handlers.Role.Mine)

	private := api.Group("")
	private.Use(middleware.Auth(tokens), limit)

	private.GET("/profile", handlers.Profile.GetMine)
	private.PUT("/profile", handlers.Profile.SaveMine)

	private.GET("/settings", handlers.Settings.Get)
	private.PUT("/settings", handlers.Settings.Update)

	private.GET("/streak", handlers.Streak.Get)
	private.PUT("/streak", handlers.Streak.Update)
	private.GET("/streak/freeze", handlers.Streak.FreezeBalance)
	private.POST("/streak/freeze/use", handlers.Streak.UseFreeze)
	private.POST("/streak/freeze/earn", handlers.Streak.EarnFreeze)

	private.POST("/sessions", handlers.Session.Log)
	private.GET("/sessions", handlers.Session.List)
	private.DELETE("/sessions", handlers.Session.Clear)
	private.POST("/sessions/complete", handlers.Session.Complete)
	private.GET("/sessions/summary", handlers.Session.Summary)

	private.GET("/goals", handlers.Goal.List)
	private.POST("/goals", handlers.Goal.Add)
	private.GET("/goals/progress", handlers.Goal.Progress)
	private.PUT("/goals/:id", handlers.Goal.Update)
	private.DELETE("/goals/:id", handlers.Goal.Delete)

	private.GET("/roles/me/admin", handlers.Role.IsAdmin)
	private.PUT("/roles/:id", handlers.Role.Assign)

	return engine
}
