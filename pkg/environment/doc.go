// Package environment carries the application environment (development,
// staging, production) through context.Context.
//
// The HTTP error handler consults it to decide whether internal error
// details may be shown to the client:
//
//	env := environment.Parse(cfg.AppEnv)
//	r.Use(environment.Middleware(env))
//	...
//	if environment.IsProduction(r.Context()) {
//	    // hide details
//	}
package environment
