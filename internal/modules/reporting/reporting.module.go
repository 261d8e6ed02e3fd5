package reporting

import (
	"go.uber.org/fx"

	"ecmis-core/internal/modules/reporting/controllers"
	"ecmis-core/internal/modules/reporting/services"
	visiteServices "ecmis-core/internal/modules/visites/services"
)

// Module pipeline de rapports agrégés
var Module = fx.Options(
	fx.Provide(
		services.NewPostgresReportingStore,
		func(store *services.PostgresReportingStore) services.VisiteStore { return store },
		func(store *services.PostgresReportingStore) services.DossierFetcher { return store },
		func(store *services.PostgresReportingStore) services.BillingFetcher { return store },
	),
	fx.Provide(
		services.NewUtilisateurPrescripteurSource,
		func(source *services.UtilisateurPrescripteurSource) services.PrescripteurSource { return source },
		func(store visiteServices.RecapStore) services.RecapSource { return store },
	),
	fx.Provide(services.NewScopeResolver),
	fx.Provide(services.NewRecordJoiner),
	fx.Provide(services.NewAggregateAssembler),
	fx.Provide(services.NewReportingService),
	fx.Provide(controllers.NewReportingController),
)
