// Package pg connects to PostgreSQL with pgx/v5 and applies goose
// migrations from an embedded filesystem.
//
// Connect retries a few times with a growing delay, which covers a database
// container starting alongside the service. Migrate bridges the pool to
// database/sql for goose:
//
//	pool, err := pg.Connect(ctx, cfg.PG)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, pgstore.Migrations, "migrations", cfg.PG, log); err != nil {
//		return err
//	}
//
// Healthcheck returns a probe usable by the HTTP server's readiness endpoint.
// IsDuplicateKeyError and friends classify driver errors by SQLSTATE.
package pg
