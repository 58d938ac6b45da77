package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/casadosaber/signup/modules/signup"
	"github.com/casadosaber/signup/modules/signup/pgstore"
	"github.com/casadosaber/signup/pkg/cep"
	"github.com/casadosaber/signup/pkg/config"
	"github.com/casadosaber/signup/pkg/email"
	"github.com/casadosaber/signup/pkg/environment"
	"github.com/casadosaber/signup/pkg/file"
	"github.com/casadosaber/signup/pkg/httpserver"
	"github.com/casadosaber/signup/pkg/i18n"
	"github.com/casadosaber/signup/pkg/logger"
	"github.com/casadosaber/signup/pkg/metrics"
	"github.com/casadosaber/signup/pkg/pg"
	"github.com/casadosaber/signup/pkg/ratelimiter"
	"github.com/casadosaber/signup/pkg/redis"
	"github.com/casadosaber/signup/pkg/requestid"
)

type AppConfig struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	Name     string `env:"APP_NAME" envDefault:"signup"`
	LogLevel string `env:"LOG_LEVEL"`

	ReadinessTimeout time.Duration `env:"READINESS_TIMEOUT" envDefault:"2s"`

	// Sites allowed to post the form from another origin. Empty disables CORS.
	CORSOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	HTTP     httpserver.Config
	Postgres pg.Config
	Redis    redis.Config
	Email    email.Config
	Files    file.Config
	CEP      cep.Config
	Signup   signup.Config

	SubmitLimit ratelimiter.Config `envPrefix:"SIGNUP_SUBMIT_"`
	LookupLimit ratelimiter.Config `envPrefix:"SIGNUP_LOOKUP_"`
}

func main() {
	var cfg AppConfig
	config.MustLoad(&cfg)

	opts := []logger.Option{
		logger.WithEnvironment(cfg.Env, cfg.Name),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	}
	if cfg.LogLevel != "" {
		opts = append(opts, logger.WithLevelName(cfg.LogLevel))
	}
	log := logger.New(opts...)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.ErrorContext(ctx, "server stopped with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg AppConfig, log *slog.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	var checks []httpserver.Check

	var sink signup.Sink = signup.NewMemorySink()
	if cfg.Postgres.Enabled() {
		pool, err := pg.Connect(ctx, cfg.Postgres)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := pgstore.Migrate(ctx, pool, cfg.Postgres, log); err != nil {
			return err
		}
		sink = pgstore.New(pool)
		checks = append(checks, httpserver.Check{Name: "postgres", Fn: pg.Healthcheck(pool)})
	} else {
		log.WarnContext(ctx, "postgres disabled, submissions are kept in memory")
	}

	var addrCache cep.Cache = cep.NewMemoryCache(cfg.CEP.CacheSize, cfg.CEP.CacheTTL)
	var limitStore ratelimiter.Store
	if cfg.Redis.Enabled() {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer client.Close()

		addrCache = cep.NewStoreCache(redis.NewStore(client, cfg.Redis.KeyPrefix+"cep:"), cfg.CEP.CacheTTL)
		limitStore = ratelimiter.NewRedisStore(client, cfg.Redis.KeyPrefix+"ratelimit:")
		checks = append(checks, httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client)})
	} else {
		mem := ratelimiter.NewMemoryStore()
		defer mem.Close()
		limitStore = mem
	}

	breaker := cep.NewBreaker(cfg.CEP.BreakerFailures, 1, cfg.CEP.BreakerCooldown)
	client := cep.NewClientFromConfig(cfg.CEP, cep.WithBreaker(breaker), cep.WithLogger(log))
	provider := cep.NewCachedProvider(client, addrCache, log)

	storage, err := file.New(ctx, cfg.Files)
	if err != nil {
		return err
	}
	mailer, err := email.New(cfg.Email)
	if err != nil {
		return err
	}

	translator, err := signup.NewTranslator(ctx,
		i18n.WithDefaultLanguage(cfg.Signup.DefaultLanguage),
		i18n.WithLogger(log),
	)
	if err != nil {
		return err
	}

	svcOpts := []signup.Option{
		signup.WithLookup(provider),
		signup.WithStorage(storage),
		signup.WithMailer(mailer),
		signup.WithMetrics(m),
		signup.WithLogger(log),
		signup.WithTranslator(translator),
	}
	if cfg.SubmitLimit.Enabled() {
		limit, err := ratelimiter.NewBucket(limitStore, cfg.SubmitLimit)
		if err != nil {
			return err
		}
		svcOpts = append(svcOpts, signup.WithSubmitLimit(limit))
	}
	if cfg.LookupLimit.Enabled() {
		limit, err := ratelimiter.NewBucket(limitStore, cfg.LookupLimit)
		if err != nil {
			return err
		}
		svcOpts = append(svcOpts, signup.WithLookupLimit(limit))
	}

	svc, err := signup.NewService(cfg.Signup, sink, svcOpts...)
	if err != nil {
		return err
	}

	router := signup.Router(signup.RouterOptions{
		Signup:    svc,
		Liveness:  httpserver.Liveness(),
		Readiness: httpserver.Readiness(log, cfg.ReadinessTimeout, checks...),
		Metrics:   metrics.Handler(reg),
		Middlewares: []func(http.Handler) http.Handler{
			corsMiddleware(cfg.CORSOrigins, cfg.Signup.SessionHeader),
			middleware.RealIP,
			requestid.Middleware,
			environment.Middleware(environment.Parse(cfg.Env)),
			i18n.Middleware(i18n.DefaultLangExtractor(
				i18n.WithSupportedLanguages(translator.SupportedLanguages()...),
			)),
			middleware.Recoverer,
		},
	})

	server := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	runErr := server.Run(ctx, router)

	// Confirmation e-mails still in flight get the shutdown budget.
	waitCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := svc.Wait(waitCtx); err != nil {
		log.WarnContext(waitCtx, "pending confirmation e-mails abandoned", logger.Error(err))
	}
	return runErr
}

func corsMiddleware(origins []string, sessionHeader string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Accept-Language", "Content-Type", "Datastar-Request", sessionHeader},
		ExposedHeaders: []string{"Retry-After", requestid.Header},
		MaxAge:         300,
	})
}
