// Command seed migrates the database, ensures the administrator account and
// loads sample fixtures, players and products into empty tables.
package main

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/matchday/club-api/internal/core/domain"
	"github.com/matchday/club-api/internal/core/ports"
	"github.com/matchday/club-api/internal/core/service"
	"github.com/matchday/club-api/internal/infrastructure/db/sqlite"
	"github.com/matchday/club-api/internal/infrastructure/queue"
	"github.com/matchday/club-api/internal/pkg/config"
	"github.com/matchday/club-api/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{})
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "club-seed"})

	db, err := sqlite.Connect(ctx, sqlite.Config{Path: cfg.SQLite.Path, Debug: cfg.SQLite.Debug})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open sqlite")
	}
	defer func() { _ = sqlite.Close(db) }()

	if err := sqlite.Migrate(db, log); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate sqlite")
	}

	audit := queue.NewDispatcher(1, queue.NewLogRepository(logger.Component("audit")), log)
	audit.Start()
	defer func() {
		closeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		_ = audit.Close(closeCtx)
	}()

	if cfg.Seed.AdminPassword == "" {
		log.Warn().Msg("SEED_ADMIN_PASSWORD not set, skipping admin account")
	} else {
		tokens, err := service.NewTokenManager(service.TokenConfig{Secret: cfg.JWTSecret})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to build token manager")
		}
		auth := service.NewAuthService(sqlite.NewUserRepository(db), sqlite.NewAdminRepository(db), tokens, audit, log)
		_, created, err := auth.EnsureAdmin(ctx, cfg.Seed.AdminUsername, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to seed admin")
		}
		log.Info().Str("username", cfg.Seed.AdminUsername).Bool("created", created).Msg("admin account ready")
	}

	matches := service.NewMatchService(sqlite.NewMatchRepository(db), sqlite.NewTicketRepository(db))
	players := service.NewPlayerService(sqlite.NewPlayerRepository(db))
	products := service.NewProductService(sqlite.NewProductRepository(db))

	kickoff := time.Now().UTC().Truncate(time.Hour)
	seed(log, "matches",
		func() (int64, error) { _, n, err := matches.List(ctx, nil, ports.Page{}); return n, err },
		[]*domain.Match{
			{HomeTeam: "Club", AwayTeam: "City Rovers", Competition: "League", Venue: "Home Ground", KickoffAt: kickoff.Add(7 * 24 * time.Hour), TicketPrice: 2500, SeatsAvailable: 500},
			{HomeTeam: "Harbour United", AwayTeam: "Club", Competition: "League", Venue: "Harbour Park", KickoffAt: kickoff.Add(14 * 24 * time.Hour), TicketPrice: 3000, SeatsAvailable: 200},
			{HomeTeam: "Club", AwayTeam: "Valley Athletic", Competition: "Cup", Venue: "Home Ground", KickoffAt: kickoff.Add(21 * 24 * time.Hour), TicketPrice: 1800, SeatsAvailable: 800},
		},
		func(m *domain.Match) error { return matches.Create(ctx, m) },
	)
	seed(log, "players",
		func() (int64, error) { _, n, err := players.List(ctx, ports.Page{}); return n, err },
		[]*domain.Player{
			{Name: "Sam Keeper", Number: 1, Position: "Goalkeeper", Nationality: "England"},
			{Name: "Leo Back", Number: 4, Position: "Defender", Nationality: "Spain"},
			{Name: "Ana Middle", Number: 8, Position: "Midfielder", Nationality: "Brazil"},
			{Name: "Kai Striker", Number: 9, Position: "Forward", Nationality: "Japan"},
		},
		func(p *domain.Player) error { return players.Create(ctx, p) },
	)
	seed(log, "products",
		func() (int64, error) { _, n, err := products.List(ctx, "", ports.Page{}); return n, err },
		[]*domain.Product{
			{Name: "Home Shirt", Category: "kits", Price: 6500, Stock: 120, Description: "This season's home shirt."},
			{Name: "Away Shirt", Category: "kits", Price: 6500, Stock: 80, Description: "This season's away shirt."},
			{Name: "Club Scarf", Category: "accessories", Price: 1500, Stock: 300},
		},
		func(p *domain.Product) error { return products.Create(ctx, p) },
	)

	log.Info().Msg("seed complete")
}

// seed inserts items only when count reports an empty table.
func seed[T any](log zerolog.Logger, what string, count func() (int64, error), items []*T, create func(*T) error) {
	n, err := count()
	if err != nil {
		log.Fatal().Err(err).Str("table", what).Msg("failed to count rows")
	}
	if n > 0 {
		log.Info().Str("table", what).Int64("rows", n).Msg("already populated, skipping")
		return
	}
	for _, item := range items {
		if err := create(item); err != nil {
			log.Fatal().Err(err).Str("table", what).Msg("failed to insert sample row")
		}
	}
	log.Info().Str("table", what).Int("rows", len(items)).Msg("sample rows inserted")
}
