package patient

import (
	"go.uber.org/fx"

	"ecmis-core/internal/modules/core-services/patient/controllers"
	"ecmis-core/internal/modules/core-services/patient/services"
)

// Module admission patients et génération de codes uniques
var Module = fx.Options(
	fx.Provide(services.NewPatientCodeGeneratorService),
	fx.Provide(services.NewPatientService),
	fx.Provide(controllers.NewPatientController),
)
