package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coastlabs/coast-crawler/common/config"
	"github.com/coastlabs/coast-crawler/common/crawler"
	"github.com/coastlabs/coast-crawler/common/db"
	"github.com/coastlabs/coast-crawler/common/logger"
	"github.com/coastlabs/coast-crawler/common/messaging"
	"github.com/coastlabs/coast-crawler/common/services"
	"github.com/coastlabs/coast-crawler/common/storage"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	// INITIATE CONFIGURATION
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("Error loading .env file, using environment variables")
	}

	cfg := config.DefaultConfig()
	cfg.LoadFromEnv()

	// Seed URLs come from the command line, falling back to CRAWLER_SEEDS.
	// No seeds is fine: any domain left PENDING in the store still resumes.
	seeds := os.Args[1:]
	if len(seeds) == 0 {
		seeds = cfg.Crawler.Seeds
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// INITIATE DATABASE — fatal on failure: without the durable frontier the
	// crash-recovery guarantee is void, so in-memory fallback is not an option.
	dbConn, err := db.SetupDatabase(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to setup database")
	}
	defer dbConn.Close()

	// Crawl events always go to the crawl log; NATS is added when enabled.
	sinks := []crawler.EventSink{logger.NewLogService(dbConn)}

	if cfg.Nats.Enabled {
		natsBroker, err := messaging.SetupNatsBroker(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to setup NATS broker")
		}
		defer natsBroker.Close()
		sinks = append(sinks, messaging.NewCrawlEventSink(natsBroker))
	}

	crawlCfg := crawler.DefaultConfig()
	if cfg.Crawler.UserAgent != "" {
		crawlCfg.UserAgent = cfg.Crawler.UserAgent
	}
	if cfg.Crawler.FetchTimeoutSeconds > 0 {
		crawlCfg.FetchTimeout = time.Duration(cfg.Crawler.FetchTimeoutSeconds) * time.Second
	}

	store := services.NewFrontierStore(dbConn)
	engine := crawler.NewEngine(
		store,
		crawler.NewHTTPFetcher(crawlCfg),
		crawler.NewHTMLLinkExtractor(),
		crawler.NewRobotsPolicyLoader(crawlCfg),
	)
	engine.SetEventSink(crawler.NewMultiSink(sinks...))

	if cfg.GCS.Bucket != "" {
		gcsStorage, err := storage.NewGCSStorage(ctx, storage.GCSConfig{
			ProjectID:       cfg.GCS.ProjectID,
			CredentialsFile: cfg.GCS.CredentialsFile,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to setup GCS storage")
		}
		engine.SetArchiver(storage.NewPageArchive(gcsStorage, cfg.GCS.Bucket))
	}

	coordinator := crawler.NewCoordinator(store, engine, int(cfg.Crawler.DomainWorkers))

	// INITIATE STATUS SERVER
	server, err := NewAppHttpServer(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create the status server")
	}
	server.SetDB(dbConn)
	server.setupRoute()

	go func() {
		if err := server.start(); err != nil {
			log.Error().Err(err).Msg("Status server error")
			cancel()
		}
	}()
	log.Info().Str("address", cfg.Listen.Addr()).Msg("Status server started")

	// RUN THE CRAWL
	done := make(chan error, 1)
	go func() {
		done <- coordinator.Run(ctx, seeds)
	}()

	select {
	case <-shutdown:
		log.Info().Msg("Shutdown signal received")
		cancel()
		<-done
	case err := <-done:
		if err != nil {
			log.Error().Err(err).Msg("Crawl finished with errors")
		} else {
			log.Info().Msg("Crawl finished")
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Status server shutdown failed")
	}

	log.Info().Msg("Crawler stopped")
}
