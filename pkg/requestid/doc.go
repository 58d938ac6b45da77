// Package requestid tags every request with an ID.
//
// The middleware keeps a client supplied X-Request-ID when it is at most 128
// characters of [a-zA-Z0-9_-]; anything else is replaced by a fresh UUID.
// The ID is stored in the request context and echoed in the response.
//
//	r.Use(requestid.Middleware)
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
package requestid
