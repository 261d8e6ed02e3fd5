package coreservices

import (
	"go.uber.org/fx"

	"ecmis-core/internal/modules/core-services/clinique"
	"ecmis-core/internal/modules/core-services/patient"
)

// Module regroupe les services transverses (référentiel cliniques, patients)
var Module = fx.Options(
	clinique.Module,
	patient.Module,
)
