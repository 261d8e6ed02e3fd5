package clinique

import (
	"go.uber.org/fx"

	"ecmis-core/internal/modules/core-services/clinique/controllers"
	"ecmis-core/internal/modules/core-services/clinique/services"
)

// Module référentiel cliniques (lecture seule)
var Module = fx.Options(
	fx.Provide(services.NewCliniqueService),
	fx.Provide(controllers.NewCliniqueController),
)
