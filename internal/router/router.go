package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/leogretz2/bp-planner1/internal/config"
	"github.com/leogretz2/bp-planner1/internal/middleware"
	"github.com/leogretz2/bp-planner1/internal/modules/handler"
	"github.com/leogretz2/bp-planner1/internal/modules/serializer"
	"github.com/leogretz2/bp-planner1/internal/telemetry"
	"go.uber.org/zap"
)

type RouterDeps struct {
	Config              *config.Config
	Log                 *zap.Logger
	RateLimiter         *middleware.RateLimiter
	UserHandler         *handler.UserHandler
	PodHandler          *handler.PodHandler
	ProjectHandler      *handler.ProjectHandler
	TagHandler          *handler.TagHandler
	TaskHandler         *handler.TaskHandler
	WorkLogHandler      *handler.WorkLogHandler
	NotificationHandler *handler.NotificationHandler
}

// NewRouter mounts every procedure as /api/v1/<group>.<procedure>.
// Queries are GET with query-string input; mutations are POST with a JSON body.
func NewRouter(d RouterDeps) (*gin.Engine, error) {
	serializer.SetLogger(d.Log)
	if err := handler.RegisterValidators(); err != nil {
		return nil, err
	}

	r := gin.New()
	// ClientIP keys the rate limiter; only listed proxies may set X-Forwarded-For.
	if err := r.SetTrustedProxies(d.Config.Server.TrustedProxies); err != nil {
		return nil, err
	}
	r.Use(gin.Recovery())

	if telemetry.Enabled(d.Config) {
		r.Use(middleware.OtelTracing(d.Config.App.Name))
		r.Use(middleware.TraceID())
	}

	r.Use(middleware.ZapLogger(d.Log))

	// health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "ok"}) })

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RateLimit(d.RateLimiter, d.Log))
	{
		v1.GET("/users.list", d.UserHandler.List)
		v1.GET("/users.getById", d.UserHandler.GetByID)
		v1.POST("/users.create", d.UserHandler.Create)

		v1.GET("/pods.list", d.PodHandler.List)
		v1.GET("/pods.getById", d.PodHandler.GetByID)
		v1.POST("/pods.create", d.PodHandler.Create)

		v1.GET("/projects.list", d.ProjectHandler.List)
		v1.GET("/projects.getById", d.ProjectHandler.GetByID)
		v1.POST("/projects.create", d.ProjectHandler.Create)

		v1.GET("/tags.list", d.TagHandler.List)
		v1.POST("/tags.create", d.TagHandler.Create)

		v1.GET("/tasks.list", d.TaskHandler.List)
		v1.GET("/tasks.getById", d.TaskHandler.GetByID)
		v1.GET("/tasks.listAssignments", d.TaskHandler.ListAssignments)
		v1.GET("/tasks.listTags", d.TaskHandler.ListTags)
		v1.POST("/tasks.create", d.TaskHandler.Create)
		v1.POST("/tasks.assignTask", d.TaskHandler.AssignTask)
		v1.POST("/tasks.updateStatus", d.TaskHandler.UpdateStatus)
		v1.POST("/tasks.addTag", d.TaskHandler.AddTag)
		v1.POST("/tasks.removeTag", d.TaskHandler.RemoveTag)

		v1.POST("/workLogs.create", d.WorkLogHandler.Create)
		v1.GET("/workLogs.list", d.WorkLogHandler.List)

		v1.POST("/notifications.enqueue", d.NotificationHandler.Enqueue)
		v1.GET("/notifications.listPending", d.NotificationHandler.ListPending)
	}

	return r, nil
}
