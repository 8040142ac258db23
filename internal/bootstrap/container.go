package bootstrap

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"notes-app/internal/config"
	"notes-app/internal/controller"
	"notes-app/internal/pkg/logger"
	"notes-app/internal/repository/contract"
	"notes-app/internal/repository/implementation"
	"notes-app/internal/repository/memory"
	"notes-app/internal/service"
	"notes-app/internal/websocket"
	"notes-app/pkg/database"
	pktNats "notes-app/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	Logger logger.ILogger

	// Controllers
	HealthController controller.IHealthController
	NoteController   controller.INoteController
	StreamController controller.IStreamController

	// Exposed so tests can reset state between cases.
	NoteService service.INoteService

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	WebSocketHub    *websocket.Hub

	closers []func() error
}

// Option customizes container construction. Tests use it to swap the logger.
type Option func(*options)

type options struct {
	logger logger.ILogger
}

func WithLogger(l logger.ILogger) Option {
	return func(o *options) { o.logger = l }
}

func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	// 1. Core Facades
	sysLogger := o.logger
	if sysLogger == nil {
		sysLogger = logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	}
	feedLogger := sysLogger
	if o.logger == nil {
		feedLogger = logger.NewIsolatedLogger(feedLogPath(cfg.App.LogFilePath))
	}

	c := &Container{Logger: sysLogger}

	noteRepository, err := c.newNoteRepository(cfg.Store)
	if err != nil {
		return nil, err
	}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := service.NewNoteEventBus(watermillLogger)
	c.closers = append(c.closers, pubSub.Close)

	// 2.5 Infrastructure
	var rdb *redis.Client
	if cfg.Events.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.Events.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.Events.RedisURL}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		c.closers = append(c.closers, rdb.Close)
	}

	wsHub := websocket.NewHub(rdb, feedLogger)
	sinks := []service.NoteEventSink{wsHub}

	if cfg.Events.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.Events.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			sinks = append(sinks, service.NewNatsSink(natsPub))
			c.closers = append(c.closers, func() error { natsPub.Close(); return nil })
		}
	}

	// 3. Services
	publisherService := service.NewPublisherService(cfg.Events.Topic, pubSub)
	noteService := service.NewNoteService(noteRepository, publisherService, sysLogger)
	consumerService := service.NewConsumerService(pubSub, cfg.Events.Topic, feedLogger, sinks...)

	// 4. Controllers
	c.HealthController = controller.NewHealthController()
	c.NoteController = controller.NewNoteController(noteService)
	c.StreamController = controller.NewStreamController(wsHub)
	c.NoteService = noteService
	c.ConsumerService = consumerService
	c.WebSocketHub = wsHub

	return c, nil
}

// feedLogPath places the change feed log next to the application log.
func feedLogPath(appLogPath string) string {
	return filepath.Join(filepath.Dir(appLogPath), "notification.log")
}

func (c *Container) newNoteRepository(cfg config.StoreConfig) (contract.NoteRepository, error) {
	switch cfg.Driver {
	case "", config.StoreDriverMemory:
		log.Printf("[INFO] Using note store: MEMORY")
		return memory.NewNoteRepository(), nil
	case config.StoreDriverSQLite:
		db, err := database.NewSQLiteDB(cfg.SQLiteDSN, cfg.Verbose)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, sqlDB.Close)
		log.Printf("[INFO] Using note store: SQLITE (in-memory)")
		return implementation.NewNoteRepository(db), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// Start launches the change feed workers. They stop when ctx is cancelled.
func (c *Container) Start(ctx context.Context) error {
	go c.WebSocketHub.Run(ctx)

	if err := c.ConsumerService.Consume(ctx); err != nil {
		return fmt.Errorf("start consumer: %w", err)
	}
	return nil
}

// Close releases infrastructure in reverse construction order.
func (c *Container) Close() error {
	var firstErr error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	_ = c.Logger.Sync()
	return firstErr
}
