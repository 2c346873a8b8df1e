package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Tous-project/chat-server/internal/api"
	"github.com/Tous-project/chat-server/internal/auth"
	"github.com/Tous-project/chat-server/internal/bus"
	"github.com/Tous-project/chat-server/internal/chat"
	"github.com/Tous-project/chat-server/internal/config"
	"github.com/Tous-project/chat-server/internal/observability"
	"github.com/Tous-project/chat-server/internal/server"
	"github.com/Tous-project/chat-server/internal/store"
)

func main() {
	cfg := config.Load()

	observability.InitLogger(cfg.ServiceName)
	log := observability.Log

	if cfg.TracingEnabled {
		tp, err := observability.InitTracer(cfg.ServiceName, cfg.JaegerURL)
		if err != nil {
			log.Fatal("failed to initialize tracer", zap.Error(err))
		}
		defer tp.Shutdown(context.Background())
	}

	ctx, cancel := setupSignalHandler(log)
	defer cancel()

	db, err := store.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := store.Migrate(ctx, db); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	broker := initBus(ctx, cfg, log)

	users := store.NewUserRepository(db)
	sessions := store.NewSessionRepository(db)
	rooms := store.NewRoomRepository(db)
	members := store.NewMemberRepository(db)

	verifier := auth.NewVerifier(sessions)
	gate := chat.NewGate(members)
	registry := chat.NewRegistry()

	userHandler := api.NewUserHandler(users, sessions)
	roomHandler := api.NewRoomHandler(rooms, members)
	socketHandler := api.NewSocketHandler(rooms, gate, broker, registry, cfg.ServiceName)

	mainSrv := server.New(cfg.HTTPAddr, api.NewRouter(cfg.ServiceName, verifier, userHandler, roomHandler, socketHandler))
	obsSrv := initObservabilityServer(cfg, db)

	startServers(cfg, mainSrv, obsSrv, log)

	<-ctx.Done()
	performGracefulShutdown(mainSrv, obsSrv, log)
}

func setupSignalHandler(log *zap.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Info("received signal, initiating shutdown", zap.String("signal", sig.String()))
		cancel()
	}()
	return ctx, cancel
}

func initBus(ctx context.Context, cfg *config.Config, log *zap.Logger) bus.Bus {
	switch cfg.BusDriver {
	case "kafka":
		log.Info("using kafka bus", zap.Strings("brokers", cfg.KafkaBrokers))
		return bus.NewKafkaBus(cfg.KafkaBrokers)
	case "memory":
		log.Info("using in-process bus; chat will not cross instances")
		return bus.NewMemoryBus()
	default:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Fatal("failed to connect to redis", zap.Error(err))
		}
		log.Info("using redis bus", zap.String("addr", cfg.RedisAddr))
		return bus.NewRedisBus(client)
	}
}

func initObservabilityServer(cfg *config.Config, db *sql.DB) *http.Server {
	mux := chi.NewRouter()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Get("/health/live", observability.HealthLiveHandler)
	mux.Get("/health/ready", observability.HealthReadyHandler(db.PingContext))
	return &http.Server{Addr: cfg.ObsHTTPAddr, Handler: mux}
}

func startServers(cfg *config.Config, mainSrv *server.Server, obsSrv *http.Server, log *zap.Logger) {
	go func() {
		log.Info("starting observability server", zap.String("addr", cfg.ObsHTTPAddr))
		if err := obsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("observability server error", zap.Error(err))
		}
	}()
	go func() {
		log.Info("starting main server", zap.String("addr", cfg.HTTPAddr))
		if err := mainSrv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()
}

func performGracefulShutdown(mainSrv *server.Server, obsSrv *http.Server, log *zap.Logger) {
	log.Info("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := mainSrv.Shutdown(ctx); err != nil {
		log.Error("error during main server shutdown", zap.Error(err))
	}
	if err := obsSrv.Shutdown(ctx); err != nil {
		log.Error("error during observability server shutdown", zap.Error(err))
	}
	log.Info("shutdown complete, exiting")
}
