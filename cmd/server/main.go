package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/yakotaki/chuanghua-shop/internal/catalog"
	"github.com/yakotaki/chuanghua-shop/internal/docstore"
	shophttp "github.com/yakotaki/chuanghua-shop/internal/http"
	"github.com/yakotaki/chuanghua-shop/internal/message"
	"github.com/yakotaki/chuanghua-shop/internal/order"
	"github.com/yakotaki/chuanghua-shop/internal/service"
	"github.com/yakotaki/chuanghua-shop/internal/session"
)

type Config struct {
	HTTPPort        string        `envconfig:"HTTP_PORT" default:"8080"`
	DataDir         string        `envconfig:"DATA_DIR" default:"data"`
	AdminKey        string        `envconfig:"ADMIN_KEY" default:"demo"`
	RedisAddr       string        `envconfig:"REDIS_ADDR"`
	RedisPassword   string        `envconfig:"REDIS_PASSWORD"`
	Env             string        `envconfig:"ENV" default:"development"`
	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

func main() {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		panic("failed to load config: " + err.Error())
	}

	log, err := newLogger(cfg.Env)
	if err != nil {
		panic("failed to build logger: " + err.Error())
	}
	defer log.Sync()

	store := docstore.New(cfg.DataDir)
	cat, err := catalog.NewRepository(store)
	if err != nil {
		log.Fatal("init catalog", zap.Error(err))
	}
	ledger, err := order.NewLedger(store)
	if err != nil {
		log.Fatal("init order ledger", zap.Error(err))
	}
	msgLog, err := message.NewLog(store)
	if err != nil {
		log.Fatal("init message log", zap.Error(err))
	}

	sessions, cleanup := newSessionStore(cfg, log)
	defer cleanup()

	shop := service.NewShop(cat, ledger, msgLog, sessions, log)
	router := shophttp.NewRouter(shop, cfg.AdminKey, log, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("storefront starting", zap.String("port", cfg.HTTPPort), zap.String("data_dir", cfg.DataDir))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}
	log.Info("server exited")
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// newSessionStore picks the cart session backend: Redis when configured so
// carts survive restarts, the in-memory map otherwise.
func newSessionStore(cfg Config, log *zap.Logger) (session.Store, func()) {
	if cfg.RedisAddr == "" {
		return session.NewMemoryStore(), func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("redis connection failed", zap.String("addr", cfg.RedisAddr), zap.Error(err))
	}
	log.Info("cart sessions backed by redis", zap.String("addr", cfg.RedisAddr))
	return session.NewRedisStore(client), func() { client.Close() }
}
