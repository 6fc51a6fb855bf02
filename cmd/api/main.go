package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crowdfund/internal/adapter/repo"
	"crowdfund/internal/http/handlers"
	httpapi "crowdfund/internal/http/httpapi"
	"crowdfund/internal/infra"
	"crowdfund/internal/infra/geoip"
	"crowdfund/internal/journal"
	"crowdfund/internal/ledger"
	"crowdfund/internal/middleware"
)

func main() {
	// Konfigurasi & logger (.env dimuat di LoadConfig)
	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()

	// Penyimpanan jurnal & payout sesuai JOURNAL_DRIVER
	stores, err := repo.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.JournalDriver).Msg("failed to open journal store")
	}
	defer stores.Close()

	// Bangun ulang ledger dari jurnal
	state, history, err := journal.Recover(ctx, stores.Journal)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to restore ledger")
	}
	logger.Info().Int("notifications", len(history)).Int("projects", state.Projects.Len()).Msg("ledger restored")

	// Setiap operasi dicatat ke jurnal (beserta payout-nya) sebelum diterapkan
	log := ledger.NewLog(history...)
	committer := journal.NewCommitter(stores.Journal, logger, cfg.JournalCommitTimeout())

	engine := ledger.New(nil,
		ledger.WithJournal(committer),
		ledger.WithClock(time.Now),
		ledger.WithLogger(logger),
		ledger.WithSink(log),
		ledger.WithState(state),
	)

	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	}
	defer resolver.Close()

	app := handlers.NewApp(engine, log, stores.Payouts, logger)
	router := httpapi.NewRouter(app, httpapi.Options{
		JWTSecret:       cfg.JWTSecret,
		DefaultLocale:   cfg.DefaultLocale,
		AllowedOrigins:  cfg.CORSAllowedOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
		CountryLookup:   middleware.CountryLookup(resolver.Lookup()),
	})

	// HTTP server wrapper dari infra
	server := infra.NewHTTPServer(cfg, router)

	// Start async
	go func() {
		logger.Info().Msgf("API listening on %s", server.Addr())
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout())
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Uint64("last_seq", log.LastSeq()).Msg("server stopped")
}
