package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alphaforge/forge/internal/clients/alphavantage"
	"github.com/alphaforge/forge/internal/clients/finnhub"
	"github.com/alphaforge/forge/internal/config"
	"github.com/alphaforge/forge/internal/database"
	"github.com/alphaforge/forge/internal/modules/advisor"
	"github.com/alphaforge/forge/internal/modules/calendar"
	"github.com/alphaforge/forge/internal/modules/history"
	"github.com/alphaforge/forge/internal/modules/portfolio"
	"github.com/alphaforge/forge/internal/modules/refdata"
	"github.com/alphaforge/forge/internal/modules/risk"
	"github.com/alphaforge/forge/internal/modules/tasks"
	"github.com/alphaforge/forge/internal/modules/tax"
	"github.com/alphaforge/forge/internal/scheduler"
	"github.com/alphaforge/forge/internal/server"
	"github.com/alphaforge/forge/internal/services/quotes"
	"github.com/alphaforge/forge/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger is not up yet
		panic(err)
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting Alpha Forge")

	// Database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	historyStore, err := history.NewStore(cfg.HistoryDir, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize history store")
	}

	// Repositories and services
	ref := refdata.Defaults()

	positionRepo := portfolio.NewPositionRepository(db.Conn(), log)
	snapshotRepo := portfolio.NewSnapshotRepository(db.Conn(), log)
	portfolioService := portfolio.NewService(positionRepo, snapshotRepo, log)

	quoteRepo := quotes.NewRepository(db.Conn(), log)
	quoteService := quotes.NewService(
		alphavantage.NewClient(cfg.AlphaVantageKey, log),
		finnhub.NewClient(cfg.FinnhubKey, log),
		cfg.QuoteRatePerMin,
		positionRepo,
		quoteRepo,
		historyStore,
		log,
	)

	riskEngine := risk.NewEngine(ref)
	taxEngine := tax.NewEngine()
	advisorEngine := advisor.NewEngine(riskEngine)

	taskRepo := tasks.NewRepository(db.Conn(), log)
	calendarService := calendar.NewService(positionRepo, ref, log)

	// Scheduler
	sched := scheduler.New(log)
	if err := sched.AddJob(cfg.QuoteSyncSchedule, scheduler.NewQuoteSyncJob(quoteService)); err != nil {
		log.Fatal().Err(err).Msg("Failed to register quote sync job")
	}
	if err := sched.AddJob("0 0 22 * * *", scheduler.NewSnapshotJob(portfolioService)); err != nil {
		log.Fatal().Err(err).Msg("Failed to register snapshot job")
	}
	sched.Start()
	defer sched.Stop()

	// HTTP server
	srv := server.New(server.Config{
		Port:    cfg.Port,
		DevMode: cfg.DevMode,
		Log:     log,
		Handlers: server.Handlers{
			Portfolio: portfolio.NewHandler(positionRepo, portfolioService, log),
			Risk:      risk.NewHandler(positionRepo, riskEngine, historyStore, cfg.RiskFreeRate, log),
			Tax:       tax.NewHandler(positionRepo, taxEngine, cfg.OtherIncome, log),
			Advisor:   advisor.NewHandler(positionRepo, advisorEngine, log),
			Calendar:  calendar.NewHandler(calendarService, log),
			Tasks:     tasks.NewHandler(taskRepo, log),
			Quotes:    quotes.NewHandler(quoteService, quoteRepo, log),
		},
	})

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
