package dossiers

import (
	"go.uber.org/fx"

	"ecmis-core/internal/modules/dossiers/controllers"
	"ecmis-core/internal/modules/dossiers/services"
)

// Module dossiers cliniques par sous-domaine
var Module = fx.Options(
	fx.Provide(services.NewDossierService),
	fx.Provide(controllers.NewDossierController),
)
