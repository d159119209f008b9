package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"portfolio-site/internal/app"
	"portfolio-site/internal/cache"
	"portfolio-site/internal/config"
	"portfolio-site/internal/content"
	mysqlClient "portfolio-site/internal/platform/mysql"
	rabbitmqClient "portfolio-site/internal/platform/rabbitmq"
	redisClient "portfolio-site/internal/platform/redis"
	"portfolio-site/internal/repository"
	"portfolio-site/internal/storage"
	"portfolio-site/internal/worker"
)

// App holds process-wide dependencies. MySQL, Redis and MQConn are nil unless
// their feature is enabled in config.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	Content  *content.Content
	Contacts *app.ContactService

	MySQL         *gorm.DB
	Redis         *redis.Client
	MQConn        *amqp.Connection
	ArchiveWorker *worker.ContactArchiveWorker
	Counter       *cache.SubmissionCounter

	StartedAt time.Time
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	pages, err := content.Load()
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:    cfg,
		Logger:    logger,
		Content:   pages,
		StartedAt: time.Now(),
	}

	var opts []app.ContactOption
	opts = append(opts, app.WithLogger(logger))

	if cfg.Archive.Enabled {
		if err := a.startArchive(ctx); err != nil {
			_ = a.Close()
			return nil, err
		}
		opts = append(opts, app.WithArchivePublisher(
			rabbitmqClient.NewContactPublisher(a.MQConn, cfg.RabbitMQ.ArchiveQueue),
		))
	}

	if cfg.Redis.Enabled {
		redisCli, err := redisClient.New(ctx, cfg.Redis)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.Redis = redisCli
		a.Counter = cache.NewSubmissionCounter(redisCli, 0)
		opts = append(opts, app.WithSubmissionCounter(a.Counter))
	}

	a.Contacts = app.NewContactService(storage.NewCSVLog(cfg.Storage.MessagesPath), opts...)
	logger.Info("contact log ready",
		"path", cfg.Storage.MessagesPath,
		"archive", cfg.Archive.Enabled,
		"counter", cfg.Redis.Enabled,
	)
	return a, nil
}

func (a *App) startArchive(ctx context.Context) error {
	db, err := mysqlClient.New(ctx, a.Config.MySQLDSN())
	if err != nil {
		return err
	}
	a.MySQL = db

	contactRepo := repository.NewContactRepository(db)
	if err := contactRepo.Migrate(); err != nil {
		return err
	}

	conn, err := rabbitmqClient.New(ctx, a.Config.RabbitMQ.URL, a.Config.RabbitMQ.ArchiveQueue)
	if err != nil {
		return err
	}
	a.MQConn = conn

	archiveWorker := worker.NewContactArchiveWorker(conn, contactRepo, a.Config.RabbitMQ.ArchiveQueue, a.Logger)
	if err := archiveWorker.Start(ctx); err != nil {
		return fmt.Errorf("start archive worker failed: %w", err)
	}
	a.ArchiveWorker = archiveWorker
	return nil
}

func (a *App) Close() error {
	var errs []error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	if a.ArchiveWorker != nil {
		a.ArchiveWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			errs = append(errs, fmt.Errorf("close rabbitmq: %w", err))
		}
	}
	if a.MySQL != nil {
		if err := mysqlClient.Close(a.MySQL); err != nil {
			errs = append(errs, fmt.Errorf("close mysql: %w", err))
		}
	}
	return errors.Join(errs...)
}
