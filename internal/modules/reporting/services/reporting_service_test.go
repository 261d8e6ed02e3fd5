package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	authdto "ecmis-core/internal/modules/auth/dto"
	authServices "ecmis-core/internal/modules/auth/services"
	dossierdto "ecmis-core/internal/modules/dossiers/dto"
	facturationdto "ecmis-core/internal/modules/facturation/dto"
	"ecmis-core/internal/modules/reporting/dto"
	visitedto "ecmis-core/internal/modules/visites/dto"
)

// fakePermissionStore matrice de permissions en mémoire
type fakePermissionStore struct {
	permissions map[string]map[authdto.TableName]authdto.Permission
}

func (f *fakePermissionStore) GetPermission(ctx context.Context, userID string, table authdto.TableName) (*authdto.Permission, error) {
	permission, ok := f.permissions[userID][table]
	if !ok {
		return nil, nil
	}
	return &permission, nil
}

func (f *fakePermissionStore) ListByUser(ctx context.Context, userID string) ([]authdto.Permission, error) {
	var result []authdto.Permission
	for _, permission := range f.permissions[userID] {
		result = append(result, permission)
	}
	return result, nil
}

func (f *fakePermissionStore) Upsert(ctx context.Context, userID string, req authdto.UpsertPermissionRequest) (*authdto.Permission, error) {
	return nil, nil
}

type fakePrescripteurSource struct {
	ids []string
}

func (f *fakePrescripteurSource) ListValidPrescripteurIDs(ctx context.Context, cliniqueIDs []string) ([]string, error) {
	return f.ids, nil
}

type fakeRecapSource struct {
	recaps []visitedto.RecapVisite
}

func (f *fakeRecapSource) ListByPatients(ctx context.Context, patientIDs []string) ([]visitedto.RecapVisite, error) {
	return f.recaps, nil
}

func newTestReportingService(
	visites *fakeVisiteStore,
	dossiers *fakeDossierFetcher,
	billing *fakeBillingFetcher,
	permissions *fakePermissionStore,
	prescripteurs *fakePrescripteurSource,
	recaps *fakeRecapSource,
) *ReportingService {
	logger := zap.NewNop()
	return NewReportingService(
		NewScopeResolver(visites, logger),
		NewRecordJoiner(dossiers, billing, logger),
		NewAggregateAssembler(),
		authServices.NewPermissionService(permissions, logger),
		prescripteurs,
		recaps,
		logger,
	)
}

// Scénario complet : une visite en clinique A le 15 janvier 2024, une
// facture d'examen, un récap portant un prescripteur invalide puis un
// valide. Le rapport ADMIN doit sortir l'examen avec le prescripteur
// valide et une section par sous-domaine.
func TestGenerateListingEndToEnd(t *testing.T) {
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	visites := &fakeVisiteStore{
		visites: []dto.VisiteRef{
			{ID: "visite-1", PatientID: "patient-1", CliniqueID: "clinique-a", DateVisite: date},
		},
	}
	dossiers := &fakeDossierFetcher{
		rows: map[dossierdto.SousDomaine][]dto.DossierRow{
			dossierdto.SousDomaineObstetrique: {{ID: "dossier-1", VisiteID: "visite-1", PatientID: "patient-1", CliniqueID: "clinique-a", DateVisite: date}},
		},
	}
	billing := &fakeBillingFetcher{
		rows: map[facturationdto.TypeDemande][]dto.BillingRow{
			facturationdto.TypeExamen: {{
				ID:         "facture-1",
				VisiteID:   "visite-1",
				PatientID:  "patient-1",
				CliniqueID: "clinique-a",
				Libelle:    "NFS",
				Prix:       5000,
			}},
		},
	}
	recaps := &fakeRecapSource{
		recaps: []visitedto.RecapVisite{{
			VisiteID:      "visite-1",
			PatientID:     "patient-1",
			Prescripteurs: []string{"user-2", "user-1"},
		}},
	}

	service := newTestReportingService(
		visites, dossiers, billing,
		&fakePermissionStore{},
		&fakePrescripteurSource{ids: []string{"user-1"}},
		recaps,
	)

	admin := authdto.RequestContext{UserID: "admin-1", Role: authdto.RoleAdmin}
	rapport, err := service.GenerateListing(context.Background(), admin, dto.Scope{
		CliniqueIDs: []string{"clinique-a"},
	})

	require.NoError(t, err)
	require.Len(t, rapport.Sections, len(dossierdto.SousDomaines), "l'ADMIN voit tous les sous-domaines")
	require.Empty(t, rapport.Avertissements)

	require.Len(t, rapport.Examens, 1)
	require.NotNil(t, rapport.Examens[0].ExamIDPrescripteur)
	require.Equal(t, "user-1", *rapport.Examens[0].ExamIDPrescripteur,
		"user-2 n'est pas prescripteur valide: le candidat valide suivant l'emporte")
	require.Empty(t, rapport.Echographies)
	require.Empty(t, rapport.Produits)
	require.Empty(t, rapport.Prestations)
}

func TestGenerateListingEmptyScope(t *testing.T) {
	visites := &fakeVisiteStore{}
	service := newTestReportingService(
		visites, &fakeDossierFetcher{}, &fakeBillingFetcher{},
		&fakePermissionStore{}, &fakePrescripteurSource{}, &fakeRecapSource{},
	)

	admin := authdto.RequestContext{UserID: "admin-1", Role: authdto.RoleAdmin}
	_, err := service.GenerateListing(context.Background(), admin, dto.Scope{})

	require.ErrorIs(t, err, dto.ErrScopeVide)
	require.Equal(t, 0, visites.calls)
}

// Un utilisateur qui ne lit qu'un sous-domaine obtient cette seule section,
// les autres deviennent des avertissements. Le rapport ADMIN sur le même
// périmètre contient tout ce que voit l'utilisateur restreint.
func TestGenerateListingPermissionFiltering(t *testing.T) {
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	visites := &fakeVisiteStore{
		visites: []dto.VisiteRef{
			{ID: "visite-1", PatientID: "patient-1", CliniqueID: "clinique-a", DateVisite: date},
		},
	}
	dossiers := &fakeDossierFetcher{
		rows: map[dossierdto.SousDomaine][]dto.DossierRow{
			dossierdto.SousDomaineObstetrique: {{ID: "dossier-1", CliniqueID: "clinique-a", DateVisite: date}},
			dossierdto.SousDomaineIST:         {{ID: "dossier-2", CliniqueID: "clinique-a", DateVisite: date}},
		},
	}
	permissions := &fakePermissionStore{
		permissions: map[string]map[authdto.TableName]authdto.Permission{
			"user-5": {
				authdto.TableObstetrique: {Table: authdto.TableObstetrique, PeutLire: true},
			},
		},
	}

	service := newTestReportingService(
		visites, dossiers, &fakeBillingFetcher{},
		permissions, &fakePrescripteurSource{}, &fakeRecapSource{},
	)
	scope := dto.Scope{CliniqueIDs: []string{"clinique-a"}}

	restreint := authdto.RequestContext{UserID: "user-5", Role: authdto.RoleUser}
	rapportRestreint, err := service.GenerateListing(context.Background(), restreint, scope)
	require.NoError(t, err)

	require.Len(t, rapportRestreint.Sections, 1)
	require.Equal(t, dossierdto.SousDomaineObstetrique.Libelle(), rapportRestreint.Sections[0].Name)
	// 4 sous-domaines refusés + 4 types facturables refusés
	require.Len(t, rapportRestreint.Avertissements, 8)

	admin := authdto.RequestContext{UserID: "admin-1", Role: authdto.RoleAdmin}
	rapportAdmin, err := service.GenerateListing(context.Background(), admin, scope)
	require.NoError(t, err)

	require.Len(t, rapportAdmin.Sections, len(dossierdto.SousDomaines))
	adminSections := make(map[string][]dto.DossierRow, len(rapportAdmin.Sections))
	for _, section := range rapportAdmin.Sections {
		adminSections[section.Name] = section.Data
	}
	for _, section := range rapportRestreint.Sections {
		require.Equal(t, section.Data, adminSections[section.Name],
			"le rapport ADMIN contient tout ce que voit l'utilisateur restreint")
	}
}

func TestGenerateExportCarriesWarnings(t *testing.T) {
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	visites := &fakeVisiteStore{
		visites: []dto.VisiteRef{
			{ID: "visite-1", PatientID: "patient-1", CliniqueID: "clinique-a", DateVisite: date},
		},
	}
	permissions := &fakePermissionStore{
		permissions: map[string]map[authdto.TableName]authdto.Permission{
			"user-5": {
				authdto.TableObstetrique: {Table: authdto.TableObstetrique, PeutLire: true},
			},
		},
	}

	service := newTestReportingService(
		visites, &fakeDossierFetcher{}, &fakeBillingFetcher{},
		permissions, &fakePrescripteurSource{}, &fakeRecapSource{},
	)

	restreint := authdto.RequestContext{UserID: "user-5", Role: authdto.RoleUser}
	payload, err := service.GenerateExport(context.Background(), restreint, dto.Scope{
		CliniqueIDs: []string{"clinique-a"},
	})

	require.NoError(t, err)
	require.Len(t, payload.Avertissements, 8)
	// 1 section autorisée + les 4 volets facturation, tous vides
	require.Len(t, payload.Sections, 5)
}
