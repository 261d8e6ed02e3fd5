package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"ecmis-core/internal/infrastructure/database/postgres"
	"ecmis-core/internal/modules/dossiers/dto"
	"ecmis-core/internal/modules/dossiers/queries"
	visiteServices "ecmis-core/internal/modules/visites/services"
)

var (
	// ErrSousDomaineInconnu sous-domaine hors référentiel
	ErrSousDomaineInconnu = errors.New("sous-domaine inconnu")
	// ErrDossierDejaExistant un dossier de ce type existe déjà pour la visite
	ErrDossierDejaExistant = errors.New("dossier déjà enregistré pour cette visite")
	// ErrIncoherencePatientVisite le patient du dossier ne correspond pas à celui de la visite
	ErrIncoherencePatientVisite = errors.New("patient incohérent avec la visite")
)

// DossierService création et consultation des dossiers cliniques
type DossierService struct {
	db            *postgres.Client
	visiteService *visiteServices.VisiteService
	recapStore    visiteServices.RecapStore
	logger        *zap.Logger
}

func NewDossierService(
	db *postgres.Client,
	visiteService *visiteServices.VisiteService,
	recapStore visiteServices.RecapStore,
	logger *zap.Logger,
) *DossierService {
	return &DossierService{
		db:            db,
		visiteService: visiteService,
		recapStore:    recapStore,
		logger:        logger,
	}
}

// Create enregistre un dossier clinique pour une visite.
// Règles appliquées :
//   - le patient du dossier doit être celui de la visite (chemin Patient→Visite→Dossier) ;
//   - un seul dossier par sous-domaine et par visite ;
//   - la clinique du dossier est celle de la visite, jamais celle du payload.
func (s *DossierService) Create(ctx context.Context, domaine dto.SousDomaine, req dto.CreateDossierRequest) (*dto.Dossier, error) {
	sql, ok := queries.DossierQueries[domaine]
	if !ok {
		return nil, ErrSousDomaineInconnu
	}

	visite, err := s.visiteService.GetByID(ctx, req.VisiteID)
	if err != nil {
		return nil, err
	}

	if visite.PatientID != req.PatientID {
		return nil, ErrIncoherencePatientVisite
	}

	var exists bool
	if err := s.db.QueryRow(ctx, sql.ExistsForVisite, req.VisiteID).Scan(&exists); err != nil {
		s.logger.Error("vérification unicité dossier échouée",
			zap.String("sous_domaine", string(domaine)),
			zap.String("visite_id", req.VisiteID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to check dossier existence: %w", err)
	}
	if exists {
		return nil, ErrDossierDejaExistant
	}

	donnees := req.Donnees
	if donnees == nil {
		donnees = map[string]interface{}{}
	}

	dossier, err := scanDossier(s.db.QueryRow(ctx, sql.Create,
		req.VisiteID,
		req.PatientID,
		visite.CliniqueID,
		req.PrescripteurID,
		donnees,
	), domaine)
	if err != nil {
		s.logger.Error("création dossier échouée",
			zap.String("sous_domaine", string(domaine)),
			zap.String("visite_id", req.VisiteID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to create dossier: %w", err)
	}

	s.updateRecap(ctx, dossier)

	return dossier, nil
}

// ListByVisite liste les dossiers d'un sous-domaine pour une visite
func (s *DossierService) ListByVisite(ctx context.Context, domaine dto.SousDomaine, visiteID string) ([]dto.Dossier, error) {
	sql, ok := queries.DossierQueries[domaine]
	if !ok {
		return nil, ErrSousDomaineInconnu
	}

	rows, err := s.db.Query(ctx, sql.ListByVisite, visiteID)
	if err != nil {
		s.logger.Error("liste dossiers échouée",
			zap.String("sous_domaine", string(domaine)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to list dossiers: %w", err)
	}
	defer rows.Close()

	var dossiers []dto.Dossier
	for rows.Next() {
		dossier, scanErr := scanDossierRow(rows, domaine)
		if scanErr != nil {
			return nil, scanErr
		}
		dossiers = append(dossiers, *dossier)
	}
	return dossiers, rows.Err()
}

// updateRecap alimente l'index dénormalisé de la visite (best effort)
func (s *DossierService) updateRecap(ctx context.Context, dossier *dto.Dossier) {
	if err := s.recapStore.AppendFormulaire(ctx, dossier.VisiteID, dossier.SousDomaine.Libelle()); err != nil {
		s.logger.Warn("mise à jour formulaires récap échouée",
			zap.String("visite_id", dossier.VisiteID),
			zap.Error(err),
		)
	}

	if dossier.PrescripteurID != nil {
		if err := s.recapStore.AppendPrescripteur(ctx, dossier.VisiteID, *dossier.PrescripteurID); err != nil {
			s.logger.Warn("mise à jour prescripteurs récap échouée",
				zap.String("visite_id", dossier.VisiteID),
				zap.Error(err),
			)
		}
	}
}

func scanDossier(row pgx.Row, domaine dto.SousDomaine) (*dto.Dossier, error) {
	var dossier dto.Dossier
	err := row.Scan(
		&dossier.ID,
		&dossier.VisiteID,
		&dossier.PatientID,
		&dossier.CliniqueID,
		&dossier.PrescripteurID,
		&dossier.Donnees,
		&dossier.CreatedAt,
		&dossier.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	dossier.SousDomaine = domaine
	return &dossier, nil
}

func scanDossierRow(rows pgx.Rows, domaine dto.SousDomaine) (*dto.Dossier, error) {
	var dossier dto.Dossier
	err := rows.Scan(
		&dossier.ID,
		&dossier.VisiteID,
		&dossier.PatientID,
		&dossier.CliniqueID,
		&dossier.PrescripteurID,
		&dossier.Donnees,
		&dossier.CreatedAt,
		&dossier.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan dossier: %w", err)
	}
	dossier.SousDomaine = domaine
	return &dossier, nil
}
