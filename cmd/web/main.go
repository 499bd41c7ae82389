package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quadras/web/internal/backend"
	"quadras/web/internal/config"
	"quadras/web/internal/cooldown"
	"quadras/web/internal/domain/arena"
	"quadras/web/internal/domain/booking"
	"quadras/web/internal/domain/court"
	"quadras/web/internal/domain/opengame"
	"quadras/web/internal/domain/subscription"
	"quadras/web/internal/firebase"
	"quadras/web/internal/handlers"
	apihttp "quadras/web/internal/http"
	"quadras/web/internal/imagehost"
	"quadras/web/internal/logging"
	"quadras/web/internal/obs"
	"quadras/web/internal/payment"
	"quadras/web/internal/session"

	"github.com/redis/go-redis/v9"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)

	shutdownTracer, err := obs.InitTracer(ctx, cfg.OTLPEndpoint, cfg.Env)
	if err != nil {
		logger.Error("tracer init failed", "error", err)
		os.Exit(1)
	}

	clients, err := firebase.NewClients(ctx, cfg)
	if err != nil {
		logger.Error("google clients init failed", "error", err)
		os.Exit(1)
	}
	defer clients.Close()

	// Session verifier
	var verifier session.Verifier
	switch cfg.AuthProvider {
	case config.AuthJWT:
		verifier = session.NewJWTVerifier([]byte(cfg.SessionSecret), cfg.SessionTTL)
	default:
		verifier = session.NewFirebaseVerifier(clients.Auth)
	}

	// Backend
	api := backend.NewClient(cfg.BackendURL, cfg.BackendTimeout, obs.Transport(http.DefaultTransport))

	// Services
	bookingSvc := booking.NewService(api)
	courtSvc := court.NewService(api)
	arenaSvc := arena.NewService(api)
	openGameSvc := opengame.NewService(api)
	subscriptionSvc := subscription.NewService(api)
	paymentSvc := payment.NewService(api)

	// Resend-code cooldown (redis when configured)
	var store cooldown.Store = cooldown.NewMemoryStore()
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error("invalid REDIS_URL", "error", err)
			os.Exit(1)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, cooldowns may fail until it recovers", "error", err)
		}
		store = cooldown.NewRedisStore(rdb, "quadras:cooldown:")
		logger.Info("cooldown store: redis")
	}
	limiter := cooldown.NewLimiter(store, cfg.ResendCooldown)

	// Uploads (optional)
	var uploads *handlers.Uploads
	switch cfg.ImageHost {
	case config.ImageHostImgBB:
		host := imagehost.NewImgBB(cfg.ImgBBURL, cfg.ImgBBAPIKey)
		host.HTTP.Transport = obs.Transport(http.DefaultTransport)
		uploads = handlers.NewUploads(host, cfg.MaxUploadBytes)
	case config.ImageHostGCS:
		uploads = handlers.NewUploads(imagehost.NewGCS(clients.Storage, cfg.GCSBucket), cfg.MaxUploadBytes)
	default:
		logger.Info("IMAGE_HOST not set, uploads disabled")
	}

	// Checkout return lookup (optional)
	var checkout *handlers.Checkout
	if lookup := payment.NewStripeLookup(cfg.StripeSecretKey); lookup != nil {
		checkout = handlers.NewCheckout(lookup)
		logger.Info("stripe checkout lookup enabled")
	} else {
		logger.Info("STRIPE_SECRET_KEY not set, checkout lookup disabled")
	}

	router := apihttp.NewRouter(apihttp.RouterDeps{
		Cfg:      cfg,
		Logger:   logger,
		Verifier: verifier,

		BookingSvc:      bookingSvc,
		CourtSvc:        courtSvc,
		ArenaSvc:        arenaSvc,
		OpenGameSvc:     openGameSvc,
		SubscriptionSvc: subscriptionSvc,
		PaymentSvc:      paymentSvc,

		AthleteActions: api,
		ArenaActions:   api,

		Resender: api,
		Cooldown: limiter,

		Uploads:  uploads,
		Checkout: checkout,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      obs.Handler(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// graceful shutdown
	go func() {
		logger.Info("web listening", "port", cfg.Port, "backend", cfg.BackendURL, "auth", cfg.AuthProvider)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("listen failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 2)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("shutting down...")
	_ = srv.Shutdown(ctxShutdown)
	_ = shutdownTracer(ctxShutdown)
}
