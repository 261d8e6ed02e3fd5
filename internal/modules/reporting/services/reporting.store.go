package services

import (
	"context"
	"fmt"

	"ecmis-core/internal/infrastructure/database/postgres"
	dossierdto "ecmis-core/internal/modules/dossiers/dto"
	facturationdto "ecmis-core/internal/modules/facturation/dto"
	"ecmis-core/internal/modules/reporting/dto"
	"ecmis-core/internal/modules/reporting/queries"
	usersServices "ecmis-core/internal/modules/users/services"
	visitedto "ecmis-core/internal/modules/visites/dto"
)

// Contrats d'accès aux données du pipeline. Les services du pipeline ne
// dépendent que de ces interfaces, ce qui permet de les tester sans base.

// VisiteStore résolution des visites du périmètre
type VisiteStore interface {
	ListVisitesInScope(ctx context.Context, scope dto.Scope) ([]dto.VisiteRef, error)
}

// DossierFetcher lecture jointe d'un sous-domaine clinique
type DossierFetcher interface {
	FetchDossiers(ctx context.Context, domaine dossierdto.SousDomaine, scope dto.Scope) ([]dto.DossierRow, error)
}

// BillingFetcher lecture jointe d'un type facturable
type BillingFetcher interface {
	FetchFactures(ctx context.Context, typeDemande facturationdto.TypeDemande, scope dto.Scope) ([]dto.BillingRow, error)
}

// PrescripteurSource prescripteurs valides d'un ensemble de cliniques
type PrescripteurSource interface {
	ListValidPrescripteurIDs(ctx context.Context, cliniqueIDs []string) ([]string, error)
}

// RecapSource récaps de visites d'un ensemble de patients
type RecapSource interface {
	ListByPatients(ctx context.Context, patientIDs []string) ([]visitedto.RecapVisite, error)
}

// PostgresReportingStore implémentation pgx de VisiteStore, DossierFetcher
// et BillingFetcher
type PostgresReportingStore struct {
	db *postgres.Client
}

func NewPostgresReportingStore(db *postgres.Client) *PostgresReportingStore {
	return &PostgresReportingStore{db: db}
}

var (
	_ VisiteStore    = (*PostgresReportingStore)(nil)
	_ DossierFetcher = (*PostgresReportingStore)(nil)
	_ BillingFetcher = (*PostgresReportingStore)(nil)
)

// scopeArgs paramètres communs des requêtes de périmètre
func scopeArgs(scope dto.Scope) []interface{} {
	var activiteIDs interface{}
	if len(scope.ActiviteIDs) > 0 {
		activiteIDs = scope.ActiviteIDs
	}
	return []interface{}{
		scope.CliniqueIDs,
		scope.Periode.Debut,
		scope.Periode.Fin,
		activiteIDs,
	}
}

// ListVisitesInScope visites du périmètre
func (s *PostgresReportingStore) ListVisitesInScope(ctx context.Context, scope dto.Scope) ([]dto.VisiteRef, error) {
	rows, err := s.db.Query(ctx, queries.ScopeQueries.ListVisitesInScope, scopeArgs(scope)...)
	if err != nil {
		return nil, fmt.Errorf("failed to list visites in scope: %w", err)
	}
	defer rows.Close()

	var visites []dto.VisiteRef
	for rows.Next() {
		var visite dto.VisiteRef
		if err := rows.Scan(
			&visite.ID,
			&visite.PatientID,
			&visite.CliniqueID,
			&visite.DateVisite,
		); err != nil {
			return nil, fmt.Errorf("failed to scan visite ref: %w", err)
		}
		visites = append(visites, visite)
	}
	return visites, rows.Err()
}

// FetchDossiers lignes jointes d'un sous-domaine clinique
func (s *PostgresReportingStore) FetchDossiers(ctx context.Context, domaine dossierdto.SousDomaine, scope dto.Scope) ([]dto.DossierRow, error) {
	query, ok := queries.DossierJoinQueries[domaine]
	if !ok {
		return nil, fmt.Errorf("sous-domaine inconnu: %s", domaine)
	}

	rows, err := s.db.Query(ctx, query, scopeArgs(scope)...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dossiers %s: %w", domaine, err)
	}
	defer rows.Close()

	var result []dto.DossierRow
	for rows.Next() {
		var row dto.DossierRow
		var cliniqueNom *string
		if err := rows.Scan(
			&row.ID,
			&row.VisiteID,
			&row.PatientID,
			&row.PatientNom,
			&row.PatientPrenoms,
			&row.CodePatient,
			&row.CliniqueID,
			&cliniqueNom,
			&row.PrescripteurID,
			&row.DateVisite,
			&row.Donnees,
		); err != nil {
			return nil, fmt.Errorf("failed to scan dossier row: %w", err)
		}
		row.SousDomaine = domaine
		row.CliniqueNom = resolveCliniqueNom(cliniqueNom)
		result = append(result, row)
	}
	return result, rows.Err()
}

// FetchFactures lignes jointes d'un type facturable
func (s *PostgresReportingStore) FetchFactures(ctx context.Context, typeDemande facturationdto.TypeDemande, scope dto.Scope) ([]dto.BillingRow, error) {
	query, ok := queries.BillingJoinQueries[typeDemande]
	if !ok {
		return nil, fmt.Errorf("type facturable inconnu: %s", typeDemande)
	}

	rows, err := s.db.Query(ctx, query, scopeArgs(scope)...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch factures %s: %w", typeDemande, err)
	}
	defer rows.Close()

	var result []dto.BillingRow
	for rows.Next() {
		var row dto.BillingRow
		var cliniqueNom *string
		if err := rows.Scan(
			&row.ID,
			&row.DemandeID,
			&row.VisiteID,
			&row.PatientID,
			&row.PatientNom,
			&row.PatientPrenoms,
			&row.CodePatient,
			&row.CliniqueID,
			&cliniqueNom,
			&row.UserID,
			&row.Libelle,
			&row.Prix,
			&row.Remise,
			&row.DateVisite,
		); err != nil {
			return nil, fmt.Errorf("failed to scan billing row: %w", err)
		}
		row.Type = typeDemande
		row.CliniqueNom = resolveCliniqueNom(cliniqueNom)
		result = append(result, row)
	}
	return result, rows.Err()
}

// resolveCliniqueNom référence absente -> libellé sentinelle, jamais d'erreur
func resolveCliniqueNom(nom *string) string {
	if nom == nil {
		return "Clinique introuvable"
	}
	return *nom
}

// UtilisateurPrescripteurSource adapte le service utilisateurs au contrat
// PrescripteurSource du pipeline
type UtilisateurPrescripteurSource struct {
	utilisateurs *usersServices.UtilisateurService
}

func NewUtilisateurPrescripteurSource(utilisateurs *usersServices.UtilisateurService) *UtilisateurPrescripteurSource {
	return &UtilisateurPrescripteurSource{utilisateurs: utilisateurs}
}

var _ PrescripteurSource = (*UtilisateurPrescripteurSource)(nil)

// ListValidPrescripteurIDs identifiants des prescripteurs actifs du périmètre
func (s *UtilisateurPrescripteurSource) ListValidPrescripteurIDs(ctx context.Context, cliniqueIDs []string) ([]string, error) {
	prescripteurs, err := s.utilisateurs.ListPrescripteursByCliniques(ctx, cliniqueIDs)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(prescripteurs))
	for _, prescripteur := range prescripteurs {
		ids = append(ids, prescripteur.ID)
	}
	return ids, nil
}
