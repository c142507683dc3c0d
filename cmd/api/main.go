package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	_ "github.com/matchday/club-api/docs"
	"github.com/matchday/club-api/internal/api"
	"github.com/matchday/club-api/internal/api/handler"
	"github.com/matchday/club-api/internal/core/ports"
	"github.com/matchday/club-api/internal/core/service"
	"github.com/matchday/club-api/internal/infrastructure/db/mongo"
	"github.com/matchday/club-api/internal/infrastructure/db/redis"
	"github.com/matchday/club-api/internal/infrastructure/db/sqlite"
	"github.com/matchday/club-api/internal/infrastructure/queue"
	"github.com/matchday/club-api/internal/infrastructure/storage"
	"github.com/matchday/club-api/internal/pkg/config"
	"github.com/matchday/club-api/pkg/logger"
)

const shutdownTimeout = 30 * time.Second

// @title						Club API
// @version					1.0
// @description				Football club backend: accounts, fixtures, tickets, shop, news and complaints.
// @BasePath					/api
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{})
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "club-api",
	})

	db, err := sqlite.Connect(ctx, sqlite.Config{Path: cfg.SQLite.Path, Debug: cfg.SQLite.Debug})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open sqlite")
	}
	if err := sqlite.Migrate(db, logger.Component("migrate")); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate sqlite")
	}

	checks := []handler.DependencyCheck{
		{Name: "sqlite", Ping: func(ctx context.Context) error { return sqlite.Ping(ctx, db) }},
	}

	auditRepo, auditReader, mongoClient := connectAudit(ctx, cfg, log)
	if mongoClient != nil {
		checks = append(checks, handler.DependencyCheck{
			Name: "mongo",
			Ping: func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) },
		})
	}

	var idem ports.IdempotencyStore
	var redisClient *goredis.Client
	if cfg.Redis.Addr != "" {
		redisClient, err = redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		idem = redis.NewIdempotencyStore(redisClient)
		checks = append(checks, handler.DependencyCheck{
			Name: "redis",
			Ping: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		})
		log.Info().Str("addr", cfg.Redis.Addr).Msg("ticket idempotency enabled")
	}

	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, auditRepo, logger.Component("audit"))
	dispatcher.Start()

	tokens, err := service.NewTokenManager(service.TokenConfig{
		Secret:   cfg.JWTSecret,
		UserTTL:  cfg.UserTokenTTL,
		AdminTTL: cfg.AdminTokenTTL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build token manager")
	}

	users := sqlite.NewUserRepository(db)
	admins := sqlite.NewAdminRepository(db)
	matches := sqlite.NewMatchRepository(db)
	tickets := sqlite.NewTicketRepository(db)

	auth := service.NewAuthService(users, admins, tokens, dispatcher, logger.Component("auth"))
	if cfg.Seed.AdminPassword != "" {
		if _, created, err := auth.EnsureAdmin(ctx, cfg.Seed.AdminUsername, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword); err != nil {
			log.Fatal().Err(err).Msg("failed to seed admin")
		} else if created {
			log.Info().Str("username", cfg.Seed.AdminUsername).Msg("admin account created")
		}
	}

	ticketService, err := service.NewTicketService(tickets, matches, idem, dispatcher, logger.Component("tickets"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build ticket service")
	}

	uploads := storage.NewDiskStore(cfg.Uploads.Dir, "/uploads")

	e := api.NewRouter(api.Dependencies{
		Logger:     log,
		Authorizer: service.NewAuthorizer(tokens, users, admins),
		Auth:       auth,
		Matches:    service.NewMatchService(matches, tickets),
		Players:    service.NewPlayerService(sqlite.NewPlayerRepository(db)),
		Products:   service.NewProductService(sqlite.NewProductRepository(db)),
		News:       service.NewNewsService(sqlite.NewNewsRepository(db)),
		Tickets:    ticketService,
		Complaints: service.NewComplaintService(sqlite.NewComplaintRepository(db)),
		Uploader: service.NewUploadService(uploads, service.UploadLimits{
			MaxFileSize: cfg.Uploads.MaxFileBytes,
			MaxFiles:    cfg.Uploads.MaxFiles,
		}, logger.Component("uploads")),
		Audit:        dispatcher,
		AuditReader:  auditReader,
		Health:       checks,
		UploadDir:    uploads.Root(),
		MaxFileBytes: cfg.Uploads.MaxFileBytes,
		MaxFiles:     cfg.Uploads.MaxFiles,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	wait := gfshutdown.GracefulShutdown(ctx, shutdownTimeout, shutdownOperations(e.Shutdown, dispatcher, db, mongoClient, redisClient, log))

	code := <-wait
	log.Info().Int("exit_code", code).Msg("shutdown complete")
	os.Exit(code)
}

// connectAudit returns the MongoDB audit trail when MONGO_URI is set and a
// log-backed sink otherwise. The reader is nil without MongoDB.
func connectAudit(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.AuditRepository, ports.AuditReader, *mongodriver.Client) {
	if cfg.Mongo.URI == "" {
		log.Info().Msg("MONGO_URI not set, audit entries go to the log")
		return queue.NewLogRepository(logger.Component("audit")), nil, nil
	}

	client, mdb, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongo")
	}
	repo := mongo.NewAuditRepository(mdb)
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create audit indexes")
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("audit trail stored in mongo")
	return repo, repo, client
}

// shutdownOperations stops the HTTP server first so no new audit entries are
// queued once the dispatcher starts draining.
func shutdownOperations(
	stopHTTP func(context.Context) error,
	dispatcher *queue.Dispatcher,
	db *gorm.DB,
	mongoClient *mongodriver.Client,
	redisClient *goredis.Client,
	log zerolog.Logger,
) map[string]gfshutdown.Operation {
	return map[string]gfshutdown.Operation{
		"http-and-stores": func(ctx context.Context) error {
			log.Info().Msg("graceful shutdown initiated")
			errs := []error{stopHTTP(ctx), dispatcher.Close(ctx), sqlite.Close(db)}
			if mongoClient != nil {
				errs = append(errs, mongoClient.Disconnect(ctx))
			}
			if redisClient != nil {
				errs = append(errs, redisClient.Close())
			}
			return errors.Join(errs...)
		},
	}
}
