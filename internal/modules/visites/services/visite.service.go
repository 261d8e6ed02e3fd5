package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"ecmis-core/internal/infrastructure/database/postgres"
	patientServices "ecmis-core/internal/modules/core-services/patient/services"
	"ecmis-core/internal/modules/visites/dto"
	"ecmis-core/internal/modules/visites/queries"
)

// ErrVisiteIntrouvable visite absente
var ErrVisiteIntrouvable = errors.New("visite introuvable")

// VisiteService création et consultation des visites
type VisiteService struct {
	db             *postgres.Client
	patientService *patientServices.PatientService
	recapStore     RecapStore
	logger         *zap.Logger
}

func NewVisiteService(
	db *postgres.Client,
	patientService *patientServices.PatientService,
	recapStore RecapStore,
	logger *zap.Logger,
) *VisiteService {
	return &VisiteService{
		db:             db,
		patientService: patientService,
		recapStore:     recapStore,
		logger:         logger,
	}
}

// Create crée une visite pour un patient et initialise son récap.
// La clinique de la visite est celle du patient. L'échec d'initialisation du
// récap ne bloque pas la création : l'index est best-effort.
func (s *VisiteService) Create(ctx context.Context, req dto.CreateVisiteRequest) (*dto.Visite, error) {
	patient, err := s.patientService.GetByID(ctx, req.PatientID)
	if err != nil {
		return nil, err
	}

	dateVisite, err := time.Parse("2006-01-02", req.DateVisite)
	if err != nil {
		return nil, fmt.Errorf("date de visite invalide: %w", err)
	}

	visite, err := s.scanVisite(s.db.QueryRow(ctx, queries.VisiteQueries.Create,
		patient.ID,
		patient.CliniqueID,
		req.ActiviteID,
		dateVisite,
	))
	if err != nil {
		s.logger.Error("création visite échouée",
			zap.String("patient_id", req.PatientID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to create visite: %w", err)
	}

	if recapErr := s.recapStore.Init(ctx, dto.RecapVisite{
		VisiteID:   visite.ID,
		PatientID:  visite.PatientID,
		CliniqueID: visite.CliniqueID,
		DateVisite: visite.DateVisite,
	}); recapErr != nil {
		s.logger.Warn("initialisation récap échouée, visite créée sans index",
			zap.String("visite_id", visite.ID),
			zap.Error(recapErr),
		)
	}

	return visite, nil
}

// GetByID récupère une visite par identifiant
func (s *VisiteService) GetByID(ctx context.Context, visiteID string) (*dto.Visite, error) {
	visite, err := s.scanVisite(s.db.QueryRow(ctx, queries.VisiteQueries.GetByID, visiteID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrVisiteIntrouvable
	}
	if err != nil {
		s.logger.Error("lecture visite échouée", zap.String("visite_id", visiteID), zap.Error(err))
		return nil, fmt.Errorf("failed to get visite: %w", err)
	}
	return visite, nil
}

// ListByPatient liste les visites d'un patient
func (s *VisiteService) ListByPatient(ctx context.Context, patientID string) ([]dto.Visite, error) {
	rows, err := s.db.Query(ctx, queries.VisiteQueries.ListByPatient, patientID)
	if err != nil {
		s.logger.Error("liste visites échouée", zap.String("patient_id", patientID), zap.Error(err))
		return nil, fmt.Errorf("failed to list visites: %w", err)
	}
	defer rows.Close()

	var visites []dto.Visite
	for rows.Next() {
		var visite dto.Visite
		if err := rows.Scan(
			&visite.ID,
			&visite.PatientID,
			&visite.CliniqueID,
			&visite.ActiviteID,
			&visite.DateVisite,
			&visite.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan visite: %w", err)
		}
		visites = append(visites, visite)
	}
	return visites, rows.Err()
}

// GetRecap récupère le récap d'une visite (nil si jamais initialisé)
func (s *VisiteService) GetRecap(ctx context.Context, visiteID string) (*dto.RecapVisite, error) {
	recap, err := s.recapStore.GetByVisite(ctx, visiteID)
	if err != nil {
		s.logger.Error("lecture récap échouée", zap.String("visite_id", visiteID), zap.Error(err))
		return nil, err
	}
	return recap, nil
}

func (s *VisiteService) scanVisite(row pgx.Row) (*dto.Visite, error) {
	var visite dto.Visite
	err := row.Scan(
		&visite.ID,
		&visite.PatientID,
		&visite.CliniqueID,
		&visite.ActiviteID,
		&visite.DateVisite,
		&visite.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &visite, nil
}
