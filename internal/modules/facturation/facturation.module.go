package facturation

import (
	"go.uber.org/fx"

	"ecmis-core/internal/modules/facturation/controllers"
	"ecmis-core/internal/modules/facturation/services"
)

// Module catalogues tarifaires, demandes et factures
var Module = fx.Options(
	fx.Provide(services.NewFacturationService),
	fx.Provide(controllers.NewFacturationController),
)
