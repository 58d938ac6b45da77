// Package logger builds *slog.Logger instances from functional options and
// injects request-scoped values from context.Context into every record.
//
// New picks a text or JSON handler and wraps it in LogHandlerDecorator,
// which runs the registered ContextExtractor callbacks before delegating:
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.AppEnv, cfg.AppName),
//	    logger.WithLevelName(cfg.LogLevel),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
//	log.WarnContext(ctx, "address lookup failed",
//	    logger.CEP(cep),
//	    logger.Error(err),
//	)
//
// Attribute helpers (Field, FieldKind, CEP, SubmissionID, Error, ...) keep
// key names consistent across packages. Error and Errors return an empty
// attribute for nil errors, so callers need no nil check.
package logger
