package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"ecmis-core/internal/infrastructure/database/postgres"
	"ecmis-core/internal/modules/core-services/clinique/dto"
	"ecmis-core/internal/modules/core-services/clinique/queries"
)

// ErrCliniqueIntrouvable référence clinique absente
var ErrCliniqueIntrouvable = errors.New("clinique introuvable")

// CliniqueService lecture seule des données de référence cliniques
type CliniqueService struct {
	db     *postgres.Client
	logger *zap.Logger
}

func NewCliniqueService(db *postgres.Client, logger *zap.Logger) *CliniqueService {
	return &CliniqueService{
		db:     db,
		logger: logger,
	}
}

// GetByID récupère une clinique par identifiant
func (s *CliniqueService) GetByID(ctx context.Context, cliniqueID string) (*dto.Clinique, error) {
	var clinique dto.Clinique
	err := s.db.QueryRow(ctx, queries.CliniqueQueries.GetByID, cliniqueID).Scan(
		&clinique.ID,
		&clinique.Nom,
		&clinique.CodeRegion,
		&clinique.CodeClinique,
		&clinique.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCliniqueIntrouvable
	}
	if err != nil {
		s.logger.Error("lecture clinique échouée",
			zap.String("clinique_id", cliniqueID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to get clinique: %w", err)
	}

	return &clinique, nil
}

// GetByCode récupère une clinique par code
func (s *CliniqueService) GetByCode(ctx context.Context, codeClinique string) (*dto.Clinique, error) {
	var clinique dto.Clinique
	err := s.db.QueryRow(ctx, queries.CliniqueQueries.GetByCode, codeClinique).Scan(
		&clinique.ID,
		&clinique.Nom,
		&clinique.CodeRegion,
		&clinique.CodeClinique,
		&clinique.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCliniqueIntrouvable
	}
	if err != nil {
		s.logger.Error("lecture clinique par code échouée",
			zap.String("code_clinique", codeClinique),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to get clinique by code: %w", err)
	}

	return &clinique, nil
}

// ListAll liste toutes les cliniques du réseau
func (s *CliniqueService) ListAll(ctx context.Context) ([]dto.Clinique, error) {
	rows, err := s.db.Query(ctx, queries.CliniqueQueries.ListAll)
	if err != nil {
		s.logger.Error("liste cliniques échouée", zap.Error(err))
		return nil, fmt.Errorf("failed to list cliniques: %w", err)
	}
	defer rows.Close()

	return scanCliniques(rows)
}

// MapByIDs retourne les cliniques indexées par identifiant.
// Les identifiants sans ligne correspondante sont simplement absents de la map :
// la résolution en libellé sentinelle est à la charge de l'appelant.
func (s *CliniqueService) MapByIDs(ctx context.Context, cliniqueIDs []string) (map[string]dto.Clinique, error) {
	if len(cliniqueIDs) == 0 {
		return map[string]dto.Clinique{}, nil
	}

	rows, err := s.db.Query(ctx, queries.CliniqueQueries.ListByIDs, cliniqueIDs)
	if err != nil {
		s.logger.Error("lecture cliniques par identifiants échouée", zap.Error(err))
		return nil, fmt.Errorf("failed to list cliniques by ids: %w", err)
	}
	defer rows.Close()

	cliniques, err := scanCliniques(rows)
	if err != nil {
		return nil, err
	}

	result := make(map[string]dto.Clinique, len(cliniques))
	for _, clinique := range cliniques {
		result[clinique.ID] = clinique
	}
	return result, nil
}

func scanCliniques(rows pgx.Rows) ([]dto.Clinique, error) {
	var cliniques []dto.Clinique
	for rows.Next() {
		var clinique dto.Clinique
		if err := rows.Scan(
			&clinique.ID,
			&clinique.Nom,
			&clinique.CodeRegion,
			&clinique.CodeClinique,
			&clinique.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan clinique: %w", err)
		}
		cliniques = append(cliniques, clinique)
	}
	return cliniques, rows.Err()
}
