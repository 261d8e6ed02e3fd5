package users

import (
	"go.uber.org/fx"

	"ecmis-core/internal/modules/users/controllers"
	"ecmis-core/internal/modules/users/services"
)

// Module gestion des comptes du personnel et des prescripteurs
var Module = fx.Options(
	fx.Provide(services.NewUtilisateurService),
	fx.Provide(controllers.NewUtilisateurController),
)
