package database

import (
	"go.uber.org/fx"

	"ecmis-core/internal/infrastructure/database/migrations"
	"ecmis-core/internal/infrastructure/database/mongodb"
	"ecmis-core/internal/infrastructure/database/postgres"
	"ecmis-core/internal/infrastructure/database/redis"
	"ecmis-core/internal/infrastructure/database/seeds"
)

var Module = fx.Options(
	postgres.Module,
	redis.Module,
	mongodb.Module,

	fx.Provide(migrations.NewRunner),
	fx.Provide(
		seeds.NewService,
		func(service *seeds.Service) seeds.SeedingService { return service },
	),
)
