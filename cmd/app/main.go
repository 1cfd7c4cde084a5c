package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"telegram-dating-bot/internal/application"
	"telegram-dating-bot/internal/config"
	"telegram-dating-bot/internal/domain/ports/adapter"
	tele "telegram-dating-bot/internal/infra/adapters/telegram"
	pg "telegram-dating-bot/internal/infra/db/postgres"
	"telegram-dating-bot/internal/infra/logging"
	"telegram-dating-bot/internal/infra/metrics"
	red "telegram-dating-bot/internal/infra/redis"
	"telegram-dating-bot/internal/infra/sched"
	"telegram-dating-bot/internal/infra/web"
	"telegram-dating-bot/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (noop telegram sends, console logs)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		log.Warn().Msg("dev mode enabled")
	}

	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()
	if err := pg.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("schema")
	}

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("redis")
	}
	defer func() { _ = redisClient.Close() }()
	rateLimiter := red.NewRateLimiter(redisClient)
	stateRepo := red.NewStateRepo(redisClient)
	browseCache := red.NewBrowseCache(redisClient, cfg.Redis.TTL)

	// ---- Repositories ----
	userRepo := pg.NewPostgresUserRepo(pool)
	profileRepo := pg.NewPostgresProfileRepo(pool)
	likeRepo := pg.NewPostgresLikeRepo(pool)
	txManager := pg.NewTxManager(pool)

	// ---- Telegram adapter ----
	// The adapter is also the outbound port the use cases notify through, so
	// it is built first and the facade attached afterwards. Mode "noop" logs
	// outbound sends instead of hitting Telegram.
	var outbound adapter.TelegramBotAdapter
	var botAdapter *tele.RealTelegramBotAdapter
	botName := "dating_bot"
	if strings.ToLower(cfg.Bot.Mode) == "noop" {
		outbound = tele.NewNoopBotAdapter(log)
	} else {
		botAdapter, err = tele.NewRealTelegramBotAdapter(&cfg.Bot, stateRepo, rateLimiter, cfg.Match.RateLimitPerMin, log)
		if err != nil {
			log.Fatal().Err(err).Msg("telegram")
		}
		outbound = botAdapter
		botName = botAdapter.Username()
	}

	// ---- Use cases ----
	userUC := usecase.NewUserUseCase(userRepo, profileRepo, txManager, log)
	profileUC := usecase.NewProfileUseCase(profileRepo, userRepo, log)
	searchUC := usecase.NewSearchUseCase(profileRepo, browseCache, cfg.Match.SearchLimit, log)
	likeUC := usecase.NewLikeUseCase(likeRepo, userRepo, outbound, log)
	adminUC := usecase.NewAdminUseCase(userRepo, outbound, cfg.Match.PremiumDays, log)
	statsUC := usecase.NewStatsUseCase(userRepo, log)

	// ---- Facade ----
	facade := application.NewBotFacade(userUC, profileUC, searchUC, likeUC, adminUC, statsUC, cfg.Bot.AdminIDs, botName)

	// ---- Polling ----
	if botAdapter != nil {
		botAdapter.AttachFacade(facade)
		go func() {
			if err := botAdapter.StartPolling(ctx); err != nil && ctx.Err() == nil {
				log.Error().Err(err).Msg("telegram polling stopped")
			}
		}()
	} else {
		log.Warn().Msg("bot mode noop: polling disabled")
	}

	// ---- Web API ----
	authMgr := web.NewAuthManager(cfg.Web.JWTSecret, !cfg.Runtime.Dev, "", 30*time.Minute)
	webSrv := web.NewServer(statsUC, adminUC, authMgr, log)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Web.Port),
		Handler: webSrv.Router(),
	}
	go func() {
		log.Info().Str("addr", server.Addr).Msg("web api listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("web server error")
		}
	}()

	// ---- Premium expiry worker ----
	expiry := sched.NewPremiumExpiryWorker(cfg.Match.ExpirySweep, userRepo, log)
	go func() { _ = expiry.Run(ctx) }()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	log.Info().Msg("shutdown requested")

	if botAdapter != nil {
		botAdapter.StopPolling()
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("web shutdown")
	}
	cancel()
}
