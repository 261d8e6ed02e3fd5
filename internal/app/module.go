package app

import (
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"ecmis-core/internal/app/bootstrap"
	"ecmis-core/internal/app/config"
	"ecmis-core/internal/infrastructure/database"
	"ecmis-core/internal/infrastructure/database/redis"
	"ecmis-core/internal/infrastructure/logger"
	"ecmis-core/internal/modules/auth"
	coreservices "ecmis-core/internal/modules/core-services"
	"ecmis-core/internal/modules/dossiers"
	"ecmis-core/internal/modules/facturation"
	"ecmis-core/internal/modules/reporting"
	"ecmis-core/internal/modules/users"
	"ecmis-core/internal/modules/visites"
	"ecmis-core/internal/shared/middleware"
	"ecmis-core/internal/shared/middleware/security"
)

// NewRedisKeyGenerator crée le générateur de clés Redis préfixées par
// environnement
func NewRedisKeyGenerator(cfg *config.Config) *redis.KeyGenerator {
	return redis.NewKeyGenerator(cfg.Environment)
}

var AppModule = fx.Options(
	// Configuration (doit être fournie en premier)
	fx.Provide(config.NewConfig),
	fx.Provide(config.NewPostgresConfig),
	fx.Provide(config.NewRedisConfig),
	fx.Provide(config.NewMongoConfig),

	// Utilitaires partagés (après config, avant infrastructure)
	fx.Provide(NewRedisKeyGenerator),

	// Infrastructure
	database.Module,
	logger.Module,
	fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
		return &fxevent.ZapLogger{Logger: log}
	}),

	// Middlewares partagés (après infrastructure, avant modules métier)
	middleware.Module,
	fx.Provide(security.CORSMiddleware),

	// Modules métier
	auth.Module,
	coreservices.Module,
	visites.Module,
	dossiers.Module,
	facturation.Module,
	reporting.Module,
	users.Module,

	// Bootstrap System - Providers
	fx.Provide(bootstrap.NewExtensionManager),
	fx.Provide(bootstrap.NewBootstrapSystem),

	// Router
	fx.Provide(NewRouter),

	// Application
	fx.Provide(NewApplication),

	// Lifecycle management
	fx.Invoke(bootstrap.RegisterBootstrapLifecycle),
	fx.Invoke((*Application).Start),
)
