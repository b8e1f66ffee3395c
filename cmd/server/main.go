package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/chatgate/modules/billing"
	"github.com/dmitrymomot/chatgate/modules/chat"
	"github.com/dmitrymomot/chatgate/modules/user"
	"github.com/dmitrymomot/chatgate/pkg/config"
	"github.com/dmitrymomot/chatgate/pkg/httpserver"
	"github.com/dmitrymomot/chatgate/pkg/logger"
	"github.com/dmitrymomot/chatgate/pkg/openai"
	"github.com/dmitrymomot/chatgate/pkg/payment"
	"github.com/dmitrymomot/chatgate/pkg/pg"
)

type appConfig struct {
	Name     string `env:"APP_NAME" envDefault:"chatgate"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL"` // overrides the environment preset when set
}

func main() {
	var appCfg appConfig
	config.MustLoad(&appCfg)

	opts := []logger.Option{logger.WithEnvironment(appCfg.Env, appCfg.Name)}
	if appCfg.LogLevel != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(appCfg.LogLevel)); err != nil {
			panic(fmt.Sprintf("invalid LOG_LEVEL %q: %v", appCfg.LogLevel, err))
		}
		opts = append(opts, logger.WithLevel(lvl))
	}
	log := logger.New(opts...)
	logger.SetAsDefault(log)

	if err := run(context.Background(), appCfg, log); err != nil {
		log.Error("server exited with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, appCfg appConfig, log *slog.Logger) error {
	var (
		dbCfg      pg.Config
		httpCfg    httpserver.Config
		openaiCfg  openai.Config
		stripeCfg  payment.StripeConfig
		billingCfg billing.Config
	)
	config.MustLoad(&dbCfg)
	config.MustLoad(&httpCfg)
	config.MustLoad(&openaiCfg)
	config.MustLoad(&stripeCfg)
	config.MustLoad(&billingCfg)

	pool, err := pg.Connect(ctx, dbCfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	completer, err := openai.NewClient(openaiCfg)
	if err != nil {
		return err
	}

	provider, err := payment.NewStripeProvider(stripeCfg)
	if err != nil {
		return err
	}

	users := user.NewPGStore(pool)

	chatHandler := chat.NewHandler(chat.NewService(users, completer, log), log)

	billingSvc, err := billing.NewService(users, provider, billingCfg, log)
	if err != nil {
		return err
	}
	billingHandler := billing.NewHandler(billingSvc, log)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", httpserver.HealthCheckHandler(ctx, log, pg.Healthcheck(pool)))
	r.Post("/chat", chatHandler.Send)
	r.Post("/create-checkout-session", billingHandler.CreateCheckoutSession)
	r.Post("/webhook", billingHandler.Webhook)

	srv := httpserver.NewFromConfig(httpCfg,
		httpserver.WithLogger(log.With(logger.Component("httpserver"))),
	)
	return srv.Run(ctx, r)
}
