// Package httpserver runs an http.Server with graceful shutdown and
// exposes liveness and readiness handlers.
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	r.Get("/healthz", httpserver.Liveness())
//	r.Get("/readyz", httpserver.Readiness(log, 2*time.Second,
//		httpserver.Check{Name: "postgres", Fn: pg.Healthcheck(pool)},
//	))
//	err := srv.Run(ctx, r)
//
// Run returns once ctx is cancelled and in-flight requests finished, or the
// shutdown timeout elapsed.
package httpserver
