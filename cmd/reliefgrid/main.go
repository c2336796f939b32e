package main

import (
	"context"
	"expvar"
	"log"
	"runtime"

	"github.com/jonboulle/clockwork"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cindermoth/reliefgrid/internal/domain"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/broadcast"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/cache"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/configs"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/events"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/gateway"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/geo"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/logging"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/messaging"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/observability"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/providers"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/ratelimiter"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/tracing"
	"github.com/cindermoth/reliefgrid/internal/persistence/db"
	"github.com/cindermoth/reliefgrid/internal/persistence/repository"
	"github.com/cindermoth/reliefgrid/internal/persistence/store"
	"github.com/cindermoth/reliefgrid/internal/presentation/api"
	"github.com/cindermoth/reliefgrid/internal/presentation/handler/disasters"
	"github.com/cindermoth/reliefgrid/internal/presentation/handler/feeds"
	"github.com/cindermoth/reliefgrid/internal/presentation/handler/health"
	"github.com/cindermoth/reliefgrid/internal/presentation/handler/reports"
	"github.com/cindermoth/reliefgrid/internal/presentation/handler/resources"
	"github.com/cindermoth/reliefgrid/internal/presentation/handler/stream"
)

// @title           ReliefGrid Coordination API
// @version         1.0
// @description     Disaster-response coordination service: disaster records, field reports, geolocated resources, provider-backed feeds, and a live mutation stream.
// @BasePath        /api
func main() {
	logger := logging.NewLogger(logging.NewDefaultConfig())

	shutdownTracer, err := tracing.InitTracer(tracing.NewDefaultConfig("reliefgrid"))
	if err != nil {
		logger.Warnf("tracing disabled: %v", err)
	} else {
		defer func() {
			if err := shutdownTracer(context.Background()); err != nil {
				logger.Warnf("tracer shutdown failed: %v", err)
			}
		}()
	}

	configPath := configs.DetermineConfigPath()
	cfg, err := configs.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}

	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	// Mongo is optional. Without it the audit archive is skipped and only the
	// memory cache backend is available; configs.Load enforces the pairing.
	var (
		database *mongo.Database
		archive  domain.AuditArchive
	)
	if cfg.Mongo.Enabled {
		mongoCfg := &db.MongoConfig{
			URI:               cfg.Mongo.URI,
			Database:          cfg.Mongo.Database,
			ConnectionTimeout: cfg.Mongo.ConnectionTimeout,
		}

		mongoClient, err := db.NewMongoClient(context.Background(), mongoCfg)
		if err != nil {
			logger.Fatalf("failed to connect to mongo: %v", err)
		}
		defer func() {
			if err := db.DisconnectMongo(context.Background(), mongoClient); err != nil {
				logger.Warnf("mongo disconnect failed: %v", err)
			}
		}()

		database = db.GetDatabase(mongoClient, mongoCfg)

		mongoArchive := repository.NewMongoAuditArchive(database)
		if err := mongoArchive.EnsureIndexes(context.Background()); err != nil {
			logger.Fatalf("failed to ensure audit archive indexes: %v", err)
		}
		archive = mongoArchive
	}

	var cacheStore cache.Store
	switch cfg.Cache.Backend {
	case "mongo":
		mongoCache := repository.NewMongoCacheStore(database)
		if err := mongoCache.EnsureIndexes(context.Background()); err != nil {
			logger.Fatalf("failed to ensure cache indexes: %v", err)
		}
		cacheStore = mongoCache
	default:
		cacheStore = cache.NewInMemory(cfg.Cache.SweepInterval)
	}
	defer cacheStore.Close()

	simulator := providers.NewSimulator(cfg.Upstream.Latency)
	upstream := gateway.New(simulator, cacheStore, logger, metrics, clock, cfg.Cache.TTL, cfg.Upstream.Timeout)

	hub := broadcast.NewHub(cfg.Broadcast.Buffer, logger, metrics)
	defer hub.Shutdown()

	index := geo.NewIndex()
	recordStore := store.New(upstream, index, hub, archive, logger, metrics, clock)
	recordStore.RebuildIndex()

	relayCtx, cancelRelay := context.WithCancel(context.Background())
	defer cancelRelay()

	var sinks []events.Sink
	if cfg.AMQP.Enabled {
		rabbit, err := messaging.NewRabbitMQ(cfg.AMQP.URI)
		if err != nil {
			logger.Fatalf("failed to connect to rabbitmq: %v", err)
		}
		sinks = append(sinks, events.NewAmqpSink(rabbit))
	}
	if cfg.Kafka.Enabled {
		sinks = append(sinks, events.NewKafkaSink(cfg.Kafka.Brokers, cfg.Kafka.Topic))
	}
	if len(sinks) > 0 {
		relay := events.NewRelay(hub, logger, metrics, sinks...)
		go relay.Run(relayCtx)
	}

	var limiter ratelimiter.Limiter
	if cfg.RateLimit.Enabled {
		rl := ratelimiter.NewFixedWindowRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
		defer rl.Close()
		limiter = rl
	}

	disastersHandler := disasters.NewHandler(recordStore)
	reportsHandler := reports.NewHandler(recordStore, upstream)
	resourcesHandler := resources.NewHandler(recordStore)
	feedsHandler := feeds.NewHandler(recordStore, upstream)
	streamHandler := stream.NewHandler(recordStore, hub, logger)
	healthHandler := health.NewHandler(hub)

	app := api.NewApplication(
		*cfg,
		disastersHandler,
		reportsHandler,
		resourcesHandler,
		feedsHandler,
		streamHandler,
		healthHandler,
		logger,
		metrics,
		limiter,
	)

	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.Mount()
	if err := app.Run(mux); err != nil {
		logger.Fatalf("server error: %v", err)
	}
}
