package app

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"ecmis-core/internal/app/config"
	"ecmis-core/internal/infrastructure/logger"
	authControllers "ecmis-core/internal/modules/auth/controllers"
	authdto "ecmis-core/internal/modules/auth/dto"
	cliniqueControllers "ecmis-core/internal/modules/core-services/clinique/controllers"
	patientControllers "ecmis-core/internal/modules/core-services/patient/controllers"
	dossierControllers "ecmis-core/internal/modules/dossiers/controllers"
	dossierdto "ecmis-core/internal/modules/dossiers/dto"
	facturationControllers "ecmis-core/internal/modules/facturation/controllers"
	facturationdto "ecmis-core/internal/modules/facturation/dto"
	reportingControllers "ecmis-core/internal/modules/reporting/controllers"
	usersControllers "ecmis-core/internal/modules/users/controllers"
	visiteControllers "ecmis-core/internal/modules/visites/controllers"
	middlewareauth "ecmis-core/internal/shared/middleware/auth"
	"ecmis-core/internal/shared/middleware/logging"
	"ecmis-core/internal/shared/middleware/security"
)

// RouterParams dépendances du routeur injectées par Fx
type RouterParams struct {
	fx.In

	Config           *config.Config
	LoggerMiddleware *logger.LoggerMiddleware
	CORS             security.CORSHandler
	Permissions      *middlewareauth.PermissionMiddleware

	Cliniques    *cliniqueControllers.CliniqueController
	Patients     *patientControllers.PatientController
	Visites      *visiteControllers.VisiteController
	Dossiers     *dossierControllers.DossierController
	Facturation  *facturationControllers.FacturationController
	Reporting    *reportingControllers.ReportingController
	Utilisateurs *usersControllers.UtilisateurController
	Auth         *authControllers.PermissionController
}

// NewRouter assemble le routeur HTTP et toutes les routes de l'API
func NewRouter(p RouterParams) *gin.Engine {
	configureGinMode(p.Config.Environment)

	r := gin.New()

	r.Use(logging.RequestIDMiddleware())
	r.Use(p.LoggerMiddleware.GinLogger())
	r.Use(p.LoggerMiddleware.GinRecovery())
	r.Use(gin.HandlerFunc(p.CORS))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"status": "healthy",
			},
		})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"status": "ready",
			},
		})
	})

	// Toute l'API exige une identité d'appelant ; les décisions d'accès
	// relèvent ensuite du Permission Gate route par route.
	apiV1 := r.Group("/api/v1")
	apiV1.Use(middlewareauth.RequestContextMiddleware())
	{
		registerCliniqueRoutes(apiV1, p)
		registerPatientRoutes(apiV1, p)
		registerVisiteRoutes(apiV1, p)
		registerDossierRoutes(apiV1, p)
		registerFacturationRoutes(apiV1, p)
		registerReportingRoutes(apiV1, p)
		registerUtilisateurRoutes(apiV1, p)
	}

	return r
}

// registerCliniqueRoutes référentiel des cliniques, lisible par tout
// appelant identifié
func registerCliniqueRoutes(apiV1 *gin.RouterGroup, p RouterParams) {
	cliniques := apiV1.Group("/cliniques")
	{
		cliniques.GET("", p.Cliniques.ListCliniques)
		cliniques.GET("/:id", p.Cliniques.GetClinique)
	}
}

func registerPatientRoutes(apiV1 *gin.RouterGroup, p RouterParams) {
	patients := apiV1.Group("/patients")
	{
		patients.POST("",
			p.Permissions.RequireTable(authdto.TablePatient, authdto.ActionCreer),
			p.Patients.CreatePatient)
		patients.GET("/search",
			p.Permissions.RequireTable(authdto.TablePatient, authdto.ActionLire),
			p.Patients.SearchPatients)
		patients.GET("/:id",
			p.Permissions.RequireTable(authdto.TablePatient, authdto.ActionLire),
			p.Patients.GetPatient)
		patients.PUT("/:id",
			p.Permissions.RequireTable(authdto.TablePatient, authdto.ActionModifier),
			p.Patients.UpdatePatient)
		patients.DELETE("/:id",
			p.Permissions.RequireTable(authdto.TablePatient, authdto.ActionSupprimer),
			p.Patients.DeletePatient)
		patients.GET("/:id/visites",
			p.Permissions.RequireTable(authdto.TableVisite, authdto.ActionLire),
			p.Visites.ListVisitesByPatient)
	}
}

func registerVisiteRoutes(apiV1 *gin.RouterGroup, p RouterParams) {
	visites := apiV1.Group("/visites")
	{
		visites.POST("",
			p.Permissions.RequireTable(authdto.TableVisite, authdto.ActionCreer),
			p.Visites.CreateVisite)
		visites.GET("/:id",
			p.Permissions.RequireTable(authdto.TableVisite, authdto.ActionLire),
			p.Visites.GetVisite)
		visites.GET("/:id/recap",
			p.Permissions.RequireTable(authdto.TableVisite, authdto.ActionLire),
			p.Visites.GetVisiteRecap)
	}
}

// registerDossierRoutes une arborescence de routes par sous-domaine
// clinique, chacune gardée par sa table de permissions
func registerDossierRoutes(apiV1 *gin.RouterGroup, p RouterParams) {
	dossiers := apiV1.Group("/dossiers")
	for _, domaine := range dossierdto.SousDomaines {
		group := dossiers.Group("/" + string(domaine))
		{
			group.POST("",
				p.Permissions.RequireTable(domaine.TableName(), authdto.ActionCreer),
				p.Dossiers.CreateDossier(domaine))
			group.GET("/visites/:visiteId",
				p.Permissions.RequireTable(domaine.TableName(), authdto.ActionLire),
				p.Dossiers.ListDossiersByVisite(domaine))
		}
	}
}

func registerFacturationRoutes(apiV1 *gin.RouterGroup, p RouterParams) {
	facturation := apiV1.Group("/facturation")
	{
		facturation.POST("/demandes",
			p.Permissions.RequireTable(authdto.TableDemande, authdto.ActionCreer),
			p.Facturation.CreateDemande)
		facturation.GET("/visites/:visiteId/demandes",
			p.Permissions.RequireTable(authdto.TableDemande, authdto.ActionLire),
			p.Facturation.ListDemandesByVisite)
		facturation.POST("/demandes/:id/facturer",
			p.Permissions.RequireTable(authdto.TableDemande, authdto.ActionModifier),
			p.Facturation.FacturerDemande)

		types := []facturationdto.TypeDemande{
			facturationdto.TypeExamen,
			facturationdto.TypeEchographie,
			facturationdto.TypeProduit,
			facturationdto.TypePrestation,
		}
		for _, typeDemande := range types {
			slug := strings.ToLower(string(typeDemande))
			facturation.GET("/tarifs/"+slug,
				p.Permissions.RequireTable(typeDemande.TableName(), authdto.ActionLire),
				p.Facturation.ListTarifs(typeDemande))
			facturation.GET("/factures/"+slug+"/visites/:visiteId",
				p.Permissions.RequireTable(typeDemande.TableName(), authdto.ActionLire),
				p.Facturation.ListFacturesByVisite(typeDemande))
		}
	}
}

// registerReportingRoutes le filtrage par permissions des rapports se fait
// sous-domaine par sous-domaine dans le service, pas au niveau de la route
func registerReportingRoutes(apiV1 *gin.RouterGroup, p RouterParams) {
	reporting := apiV1.Group("/reporting")
	{
		reporting.POST("/listings", p.Reporting.GenerateListing)
		reporting.POST("/listings/export", p.Reporting.GenerateExport)
	}
}

func registerUtilisateurRoutes(apiV1 *gin.RouterGroup, p RouterParams) {
	utilisateurs := apiV1.Group("/utilisateurs")
	{
		utilisateurs.POST("",
			p.Permissions.RequireTable(authdto.TableUtilisateur, authdto.ActionCreer),
			p.Utilisateurs.CreateUtilisateur)
		utilisateurs.GET("",
			p.Permissions.RequireTable(authdto.TableUtilisateur, authdto.ActionLire),
			p.Utilisateurs.ListUtilisateurs)
		utilisateurs.GET("/:userId",
			p.Permissions.RequireTable(authdto.TableUtilisateur, authdto.ActionLire),
			p.Utilisateurs.GetUtilisateur)
		utilisateurs.PUT("/:userId",
			p.Permissions.RequireTable(authdto.TableUtilisateur, authdto.ActionModifier),
			p.Utilisateurs.UpdateUtilisateur)

		utilisateurs.GET("/:userId/permissions",
			p.Permissions.RequireTable(authdto.TablePermission, authdto.ActionLire),
			p.Auth.ListUserPermissions)
		utilisateurs.PUT("/:userId/permissions",
			p.Permissions.RequireTable(authdto.TablePermission, authdto.ActionModifier),
			p.Auth.UpsertUserPermission)
	}
}

func configureGinMode(environment string) {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
}
