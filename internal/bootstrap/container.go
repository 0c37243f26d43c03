package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/leogretz2/bp-planner1/internal/config"
	"github.com/leogretz2/bp-planner1/internal/infra/cache"
	"github.com/leogretz2/bp-planner1/internal/infra/db"
	"github.com/leogretz2/bp-planner1/internal/infra/logger"
	mq "github.com/leogretz2/bp-planner1/internal/infra/queue"
	"github.com/leogretz2/bp-planner1/internal/middleware"
	"github.com/leogretz2/bp-planner1/internal/modules/handler"
	"github.com/leogretz2/bp-planner1/internal/modules/repo"
	"github.com/leogretz2/bp-planner1/internal/modules/service"
	"github.com/leogretz2/bp-planner1/internal/router"
	"github.com/leogretz2/bp-planner1/internal/telemetry"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BuildContainer registers every dependency lazily. Optional backends
// (tracing, Redis, RabbitMQ) resolve to nil when not configured.
func BuildContainer(cfg *config.Config) *do.Injector {
	inj := do.New()

	// config
	do.ProvideValue(inj, cfg)

	// logger
	do.Provide(inj, func(i *do.Injector) (*zap.Logger, error) {
		return logger.New(cfg.Log.Level)
	})

	// tracing
	do.Provide(inj, func(i *do.Injector) (*sdktrace.TracerProvider, error) {
		return telemetry.SetupTracing(context.Background(), cfg)
	})

	// DB
	do.Provide(inj, func(i *do.Injector) (*gorm.DB, error) {
		log := do.MustInvoke[*zap.Logger](i)
		tp := do.MustInvoke[*sdktrace.TracerProvider](i)

		d, err := db.New(cfg.Database)
		if err != nil {
			return nil, err
		}
		if tp != nil {
			if err := db.RegisterOpenTelemetryPlugin(d); err != nil {
				log.Warn("gorm tracing plugin not registered", zap.Error(err))
			}
		}
		// [optional] auto migrate
		if cfg.Database.AutoMigrate {
			if err := db.Migrate(d); err != nil {
				return nil, err
			}
		}
		return d, nil
	})

	// Redis
	do.Provide(inj, func(i *do.Injector) (*redis.Client, error) {
		log := do.MustInvoke[*zap.Logger](i)
		tp := do.MustInvoke[*sdktrace.TracerProvider](i)

		rdb, err := cache.New(context.Background(), cfg.Redis)
		if err != nil || rdb == nil {
			return rdb, err
		}
		if tp != nil {
			if err := cache.RegisterOpenTelemetryPlugin(rdb); err != nil {
				log.Warn("redis tracing hook not registered", zap.Error(err))
			}
		}
		return rdb, nil
	})

	// rate limiter
	do.Provide(inj, func(i *do.Injector) (*middleware.RateLimiter, error) {
		rdb := do.MustInvoke[*redis.Client](i)
		if rdb == nil {
			return nil, nil
		}
		return middleware.NewRateLimiter(rdb, cfg.RateLimit.Requests, cfg.RateLimit.WindowSeconds), nil
	})

	// RabbitMQ Connection
	do.Provide(inj, func(i *do.Injector) (*amqp.Connection, error) {
		if cfg.RabbitMQ.URL == "" {
			return nil, nil
		}
		return mq.Dial(cfg.RabbitMQ)
	})

	// RabbitMQ Publisher
	do.Provide(inj, func(i *do.Injector) (*mq.Publisher, error) {
		conn := do.MustInvoke[*amqp.Connection](i)
		if conn == nil {
			return nil, nil
		}
		return mq.NewPublisher(conn, cfg.RabbitMQ.Exchange, do.MustInvoke[*zap.Logger](i), cfg.App.Name)
	})

	// a nil *mq.Publisher must not become a non-nil interface
	do.Provide(inj, func(i *do.Injector) (service.Publisher, error) {
		p := do.MustInvoke[*mq.Publisher](i)
		if p == nil {
			return nil, nil
		}
		return p, nil
	})

	// Repos
	do.Provide(inj, func(i *do.Injector) (repo.UserRepo, error) {
		return repo.NewUserRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.PodRepo, error) {
		return repo.NewPodRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ProjectRepo, error) {
		return repo.NewProjectRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.TagRepo, error) {
		return repo.NewTagRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.TaskRepo, error) {
		return repo.NewTaskRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.WorkLogRepo, error) {
		return repo.NewWorkLogRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.NotificationRepo, error) {
		return repo.NewNotificationRepo(do.MustInvoke[*gorm.DB](i)), nil
	})

	// Services
	do.Provide(inj, func(i *do.Injector) (service.UserService, error) {
		return service.NewUserService(do.MustInvoke[repo.UserRepo](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.PodService, error) {
		return service.NewPodService(do.MustInvoke[repo.PodRepo](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ProjectService, error) {
		return service.NewProjectService(do.MustInvoke[repo.ProjectRepo](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.TagService, error) {
		return service.NewTagService(do.MustInvoke[repo.TagRepo](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.TaskService, error) {
		return service.NewTaskService(do.MustInvoke[repo.TaskRepo](i), do.MustInvoke[*zap.Logger](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.WorkLogService, error) {
		return service.NewWorkLogService(do.MustInvoke[repo.WorkLogRepo](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.NotificationService, error) {
		return service.NewNotificationService(
			do.MustInvoke[repo.NotificationRepo](i),
			do.MustInvoke[service.Publisher](i),
			service.NotificationRoute{Exchange: cfg.RabbitMQ.Exchange, RoutingKey: cfg.RabbitMQ.RoutingKey},
			do.MustInvoke[*zap.Logger](i),
		), nil
	})

	// Handlers
	do.Provide(inj, func(i *do.Injector) (*handler.UserHandler, error) {
		return handler.NewUserHandler(do.MustInvoke[service.UserService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.PodHandler, error) {
		return handler.NewPodHandler(do.MustInvoke[service.PodService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ProjectHandler, error) {
		return handler.NewProjectHandler(do.MustInvoke[service.ProjectService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.TagHandler, error) {
		return handler.NewTagHandler(do.MustInvoke[service.TagService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.TaskHandler, error) {
		return handler.NewTaskHandler(do.MustInvoke[service.TaskService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.WorkLogHandler, error) {
		return handler.NewWorkLogHandler(do.MustInvoke[service.WorkLogService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.NotificationHandler, error) {
		return handler.NewNotificationHandler(do.MustInvoke[service.NotificationService](i)), nil
	})

	// Router
	do.Provide(inj, func(i *do.Injector) (*gin.Engine, error) {
		return router.NewRouter(router.RouterDeps{
			Config:              cfg,
			Log:                 do.MustInvoke[*zap.Logger](i),
			RateLimiter:         do.MustInvoke[*middleware.RateLimiter](i),
			UserHandler:         do.MustInvoke[*handler.UserHandler](i),
			PodHandler:          do.MustInvoke[*handler.PodHandler](i),
			ProjectHandler:      do.MustInvoke[*handler.ProjectHandler](i),
			TagHandler:          do.MustInvoke[*handler.TagHandler](i),
			TaskHandler:         do.MustInvoke[*handler.TaskHandler](i),
			WorkLogHandler:      do.MustInvoke[*handler.WorkLogHandler](i),
			NotificationHandler: do.MustInvoke[*handler.NotificationHandler](i),
		})
	})

	return inj
}

// Shutdown closes the backends the container has already built, in reverse
// dependency order. Services that were never invoked are skipped so a failed
// startup does not dial brokers just to close them.
func Shutdown(ctx context.Context, inj *do.Injector) error {
	var errs []error

	if p, ok := invoked[*mq.Publisher](inj); ok && p != nil {
		errs = append(errs, p.Close())
	}
	if conn, ok := invoked[*amqp.Connection](inj); ok && conn != nil {
		errs = append(errs, conn.Close())
	}
	if rdb, ok := invoked[*redis.Client](inj); ok {
		errs = append(errs, cache.Close(rdb))
	}
	if d, ok := invoked[*gorm.DB](inj); ok && d != nil {
		errs = append(errs, db.Close(d))
	}
	if tp, ok := invoked[*sdktrace.TracerProvider](inj); ok && tp != nil {
		errs = append(errs, tp.Shutdown(ctx))
	}
	if log, ok := invoked[*zap.Logger](inj); ok {
		_ = log.Sync()
	}

	return errors.Join(errs...)
}

// invoked returns the instance of T only if it was already built. The name
// matches do's default service name for pointer types.
func invoked[T any](inj *do.Injector) (T, bool) {
	var zero T
	name := fmt.Sprintf("%T", zero)
	for _, s := range inj.ListInvokedServices() {
		if s == name {
			v, err := do.Invoke[T](inj)
			return v, err == nil
		}
	}
	return zero, false
}
