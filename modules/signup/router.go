package signup

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Mountable interface {
	Handle() http.Handler
}

// RouterOptions configures what the application router serves. Only Signup
// is required.
type RouterOptions struct {
	Signup Mountable

	// Operational endpoints
	Liveness  http.Handler
	Readiness http.Handler
	Metrics   http.Handler

	Middlewares []func(http.Handler) http.Handler
}

// Router mounts the signup endpoints next to /healthz, /readyz and /metrics.
// Operational endpoints skip the middleware chain.
//
//	r := signup.Router(signup.RouterOptions{
//		Signup:    svc,
//		Liveness:  httpserver.Liveness(),
//		Readiness: httpserver.Readiness(log, 2*time.Second, checks...),
//		Metrics:   metrics.Handler(reg),
//	})
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()

	if opts.Liveness != nil {
		r.Method(http.MethodGet, "/healthz", opts.Liveness)
	}
	if opts.Readiness != nil {
		r.Method(http.MethodGet, "/readyz", opts.Readiness)
	}
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}

	r.Group(func(app chi.Router) {
		app.Use(opts.Middlewares...)
		if opts.Signup != nil {
			app.Mount("/", opts.Signup.Handle())
		}
	})

	return r
}
