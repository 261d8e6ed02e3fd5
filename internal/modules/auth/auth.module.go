package auth

import (
	"go.uber.org/fx"

	"ecmis-core/internal/modules/auth/controllers"
	"ecmis-core/internal/modules/auth/services"
)

// Module regroupe le Permission Gate et la gestion de la matrice
var Module = fx.Options(
	fx.Provide(
		services.NewPostgresPermissionStore,
		func(store *services.PostgresPermissionStore) services.PermissionStore { return store },
	),
	fx.Provide(services.NewPermissionService),
	fx.Provide(controllers.NewPermissionController),
)
