package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"ecmis-core/internal/infrastructure/database/postgres"
	cliniqueServices "ecmis-core/internal/modules/core-services/clinique/services"
	"ecmis-core/internal/modules/core-services/patient/dto"
	"ecmis-core/internal/modules/core-services/patient/queries"
)

// ErrPatientIntrouvable patient absent
var ErrPatientIntrouvable = errors.New("patient introuvable")

// PatientService admission et gestion administrative des patients
type PatientService struct {
	db              *postgres.Client
	codeGenerator   *PatientCodeGeneratorService
	cliniqueService *cliniqueServices.CliniqueService
	logger          *zap.Logger
}

func NewPatientService(
	db *postgres.Client,
	codeGenerator *PatientCodeGeneratorService,
	cliniqueService *cliniqueServices.CliniqueService,
	logger *zap.Logger,
) *PatientService {
	return &PatientService{
		db:              db,
		codeGenerator:   codeGenerator,
		cliniqueService: cliniqueService,
		logger:          logger,
	}
}

// Create admet un patient : résout la clinique, génère le code unique, insère.
func (s *PatientService) Create(ctx context.Context, req dto.CreatePatientRequest) (*dto.Patient, error) {
	clinique, err := s.cliniqueService.GetByID(ctx, req.CliniqueID)
	if err != nil {
		return nil, err
	}

	generation, err := s.codeGenerator.GeneratePatientCode(ctx, clinique.CodeClinique)
	if err != nil {
		s.logger.Error("génération code patient échouée",
			zap.String("clinique_code", clinique.CodeClinique),
			zap.Error(err),
		)
		return nil, err
	}

	var dateNaissance *time.Time
	if req.DateNaissance != nil {
		parsed, parseErr := time.Parse("2006-01-02", *req.DateNaissance)
		if parseErr != nil {
			return nil, fmt.Errorf("date de naissance invalide: %w", parseErr)
		}
		dateNaissance = &parsed
	}

	patient, err := s.scanPatient(s.db.QueryRow(ctx, queries.PatientQueries.Create,
		req.CliniqueID,
		generation.CodePatient,
		req.Nom,
		req.Prenoms,
		req.Sexe,
		dateNaissance,
		req.Telephone,
	))
	if err != nil {
		s.logger.Error("création patient échouée",
			zap.String("clinique_id", req.CliniqueID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}

	s.logger.Info("patient admis",
		zap.String("patient_id", patient.ID),
		zap.String("code_patient", patient.CodePatient),
		zap.String("source_generation", generation.Source),
	)

	return patient, nil
}

// GetByID récupère un patient par identifiant
func (s *PatientService) GetByID(ctx context.Context, patientID string) (*dto.Patient, error) {
	patient, err := s.scanPatient(s.db.QueryRow(ctx, queries.PatientQueries.GetByID, patientID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPatientIntrouvable
	}
	if err != nil {
		s.logger.Error("lecture patient échouée", zap.String("patient_id", patientID), zap.Error(err))
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return patient, nil
}

// GetByCode récupère un patient par code patient
func (s *PatientService) GetByCode(ctx context.Context, codePatient string) (*dto.Patient, error) {
	patient, err := s.scanPatient(s.db.QueryRow(ctx, queries.PatientQueries.GetByCode, codePatient))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPatientIntrouvable
	}
	if err != nil {
		s.logger.Error("lecture patient par code échouée", zap.String("code_patient", codePatient), zap.Error(err))
		return nil, fmt.Errorf("failed to get patient by code: %w", err)
	}
	return patient, nil
}

// Search recherche des patients par nom, prénoms ou code
func (s *PatientService) Search(ctx context.Context, req dto.SearchPatientsRequest) ([]dto.Patient, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = 25
	}

	var rows pgx.Rows
	var err error
	if req.CliniqueID != "" {
		rows, err = s.db.Query(ctx, queries.PatientQueries.SearchByClinique, req.CliniqueID, req.Terme, limit)
	} else {
		rows, err = s.db.Query(ctx, queries.PatientQueries.Search, req.Terme, limit)
	}
	if err != nil {
		s.logger.Error("recherche patients échouée", zap.Error(err))
		return nil, fmt.Errorf("failed to search patients: %w", err)
	}
	defer rows.Close()

	var patients []dto.Patient
	for rows.Next() {
		var patient dto.Patient
		if err := rows.Scan(
			&patient.ID,
			&patient.CliniqueID,
			&patient.CodePatient,
			&patient.Nom,
			&patient.Prenoms,
			&patient.Sexe,
			&patient.DateNaissance,
			&patient.Telephone,
			&patient.CreatedAt,
			&patient.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan patient: %w", err)
		}
		patients = append(patients, patient)
	}
	return patients, rows.Err()
}

// Update met à jour les champs administratifs d'un patient
func (s *PatientService) Update(ctx context.Context, patientID string, req dto.UpdatePatientRequest) (*dto.Patient, error) {
	var dateNaissance *time.Time
	if req.DateNaissance != nil {
		parsed, parseErr := time.Parse("2006-01-02", *req.DateNaissance)
		if parseErr != nil {
			return nil, fmt.Errorf("date de naissance invalide: %w", parseErr)
		}
		dateNaissance = &parsed
	}

	patient, err := s.scanPatient(s.db.QueryRow(ctx, queries.PatientQueries.Update,
		patientID,
		req.Nom,
		req.Prenoms,
		req.Telephone,
		dateNaissance,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPatientIntrouvable
	}
	if err != nil {
		s.logger.Error("mise à jour patient échouée", zap.String("patient_id", patientID), zap.Error(err))
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}
	return patient, nil
}

// Delete suppression administrative. Réservée aux ADMIN (contrôlée en amont).
func (s *PatientService) Delete(ctx context.Context, patientID string) error {
	if err := s.db.Exec(ctx, queries.PatientQueries.Delete, patientID); err != nil {
		s.logger.Error("suppression patient échouée", zap.String("patient_id", patientID), zap.Error(err))
		return fmt.Errorf("failed to delete patient: %w", err)
	}

	s.logger.Warn("patient supprimé (échappatoire administrative)",
		zap.String("patient_id", patientID),
	)
	return nil
}

func (s *PatientService) scanPatient(row pgx.Row) (*dto.Patient, error) {
	var patient dto.Patient
	err := row.Scan(
		&patient.ID,
		&patient.CliniqueID,
		&patient.CodePatient,
		&patient.Nom,
		&patient.Prenoms,
		&patient.Sexe,
		&patient.DateNaissance,
		&patient.Telephone,
		&patient.CreatedAt,
		&patient.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &patient, nil
}
