package visites

import (
	"go.uber.org/fx"

	"ecmis-core/internal/modules/visites/controllers"
	"ecmis-core/internal/modules/visites/services"
)

// Module visites et récaps dénormalisés
var Module = fx.Options(
	fx.Provide(
		services.NewMongoRecapStore,
		func(store *services.MongoRecapStore) services.RecapStore { return store },
	),
	fx.Provide(services.NewVisiteService),
	fx.Provide(controllers.NewVisiteController),
)
