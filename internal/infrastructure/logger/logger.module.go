package logger

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"ecmis-core/internal/app/config"
)

var Module = fx.Options(
	fx.Provide(NewAppLogger),
	fx.Provide(NewMiddleware),
)

func NewAppLogger(cfg *config.Config) (*zap.Logger, error) {
	return NewLogger(cfg.Environment, cfg.Logging.Level)
}

func NewMiddleware(log *zap.Logger) *LoggerMiddleware {
	return &LoggerMiddleware{logger: log}
}
