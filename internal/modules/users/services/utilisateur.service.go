package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"ecmis-core/internal/infrastructure/database/postgres"
	"ecmis-core/internal/modules/users/dto"
	"ecmis-core/internal/modules/users/queries"
	"ecmis-core/internal/shared/utils"
)

// ErrUtilisateurIntrouvable compte absent
var ErrUtilisateurIntrouvable = errors.New("utilisateur introuvable")

// UtilisateurService gestion des comptes du personnel
type UtilisateurService struct {
	db        *postgres.Client
	txManager *postgres.TransactionManager
	logger    *zap.Logger
}

func NewUtilisateurService(db *postgres.Client, logger *zap.Logger) *UtilisateurService {
	return &UtilisateurService{
		db:        db,
		txManager: postgres.NewTransactionManager(db),
		logger:    logger,
	}
}

// Create crée un compte : hash bcrypt + rattachements cliniques en transaction
func (s *UtilisateurService) Create(ctx context.Context, req dto.CreateUtilisateurRequest) (*dto.Utilisateur, error) {
	if err := utils.ValidatePasswordStrength(req.Password); err != nil {
		return nil, err
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	var utilisateur *dto.Utilisateur
	err = s.txManager.WithTransaction(ctx, func(tx *postgres.Transaction) error {
		created, scanErr := scanUtilisateur(tx.QueryRow(ctx, queries.UtilisateurQueries.Create,
			req.Identifiant,
			req.Nom,
			req.Prenoms,
			passwordHash,
			req.Role,
			req.EstPrescripteur,
		))
		if scanErr != nil {
			return scanErr
		}

		for _, cliniqueID := range req.CliniqueIDs {
			if execErr := tx.Exec(ctx, queries.UtilisateurQueries.AddCliniqueMembership, created.ID, cliniqueID); execErr != nil {
				return execErr
			}
		}

		created.CliniqueIDs = req.CliniqueIDs
		utilisateur = created
		return nil
	})
	if err != nil {
		s.logger.Error("création utilisateur échouée",
			zap.String("identifiant", req.Identifiant),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to create utilisateur: %w", err)
	}

	s.logger.Info("utilisateur créé",
		zap.String("utilisateur_id", utilisateur.ID),
		zap.String("role", utilisateur.Role),
		zap.Bool("est_prescripteur", utilisateur.EstPrescripteur),
	)
	return utilisateur, nil
}

// GetByID récupère un compte et ses rattachements cliniques
func (s *UtilisateurService) GetByID(ctx context.Context, utilisateurID string) (*dto.Utilisateur, error) {
	utilisateur, err := scanUtilisateur(s.db.QueryRow(ctx, queries.UtilisateurQueries.GetByID, utilisateurID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUtilisateurIntrouvable
	}
	if err != nil {
		s.logger.Error("lecture utilisateur échouée", zap.String("utilisateur_id", utilisateurID), zap.Error(err))
		return nil, fmt.Errorf("failed to get utilisateur: %w", err)
	}

	memberships, err := s.getCliniqueMemberships(ctx, utilisateurID)
	if err != nil {
		return nil, err
	}
	utilisateur.CliniqueIDs = memberships

	return utilisateur, nil
}

// ListAll liste tous les comptes
func (s *UtilisateurService) ListAll(ctx context.Context) ([]dto.Utilisateur, error) {
	rows, err := s.db.Query(ctx, queries.UtilisateurQueries.ListAll)
	if err != nil {
		s.logger.Error("liste utilisateurs échouée", zap.Error(err))
		return nil, fmt.Errorf("failed to list utilisateurs: %w", err)
	}
	defer rows.Close()

	return scanUtilisateurs(rows)
}

// Update met à jour un compte, réécrit les rattachements si fournis
func (s *UtilisateurService) Update(ctx context.Context, utilisateurID string, req dto.UpdateUtilisateurRequest) (*dto.Utilisateur, error) {
	var utilisateur *dto.Utilisateur
	err := s.txManager.WithTransaction(ctx, func(tx *postgres.Transaction) error {
		updated, scanErr := scanUtilisateur(tx.QueryRow(ctx, queries.UtilisateurQueries.Update,
			utilisateurID,
			req.Nom,
			req.Prenoms,
			req.EstPrescripteur,
			req.Statut,
		))
		if scanErr != nil {
			return scanErr
		}

		if req.CliniqueIDs != nil {
			if execErr := tx.Exec(ctx, queries.UtilisateurQueries.ClearCliniqueMemberships, utilisateurID); execErr != nil {
				return execErr
			}
			for _, cliniqueID := range req.CliniqueIDs {
				if execErr := tx.Exec(ctx, queries.UtilisateurQueries.AddCliniqueMembership, utilisateurID, cliniqueID); execErr != nil {
					return execErr
				}
			}
		}

		utilisateur = updated
		return nil
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUtilisateurIntrouvable
	}
	if err != nil {
		s.logger.Error("mise à jour utilisateur échouée", zap.String("utilisateur_id", utilisateurID), zap.Error(err))
		return nil, fmt.Errorf("failed to update utilisateur: %w", err)
	}

	memberships, err := s.getCliniqueMemberships(ctx, utilisateurID)
	if err != nil {
		return nil, err
	}
	utilisateur.CliniqueIDs = memberships

	return utilisateur, nil
}

// ListPrescripteursByCliniques liste les prescripteurs actifs d'un ensemble de cliniques
func (s *UtilisateurService) ListPrescripteursByCliniques(ctx context.Context, cliniqueIDs []string) ([]dto.Utilisateur, error) {
	if len(cliniqueIDs) == 0 {
		return nil, nil
	}

	rows, err := s.db.Query(ctx, queries.UtilisateurQueries.ListPrescripteursByCliniques, cliniqueIDs)
	if err != nil {
		s.logger.Error("liste prescripteurs échouée", zap.Error(err))
		return nil, fmt.Errorf("failed to list prescripteurs: %w", err)
	}
	defer rows.Close()

	return scanUtilisateurs(rows)
}

func (s *UtilisateurService) getCliniqueMemberships(ctx context.Context, utilisateurID string) ([]string, error) {
	rows, err := s.db.Query(ctx, queries.UtilisateurQueries.GetCliniqueMemberships, utilisateurID)
	if err != nil {
		return nil, fmt.Errorf("failed to get clinique memberships: %w", err)
	}
	defer rows.Close()

	var cliniqueIDs []string
	for rows.Next() {
		var cliniqueID string
		if err := rows.Scan(&cliniqueID); err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		cliniqueIDs = append(cliniqueIDs, cliniqueID)
	}
	return cliniqueIDs, rows.Err()
}

func scanUtilisateur(row pgx.Row) (*dto.Utilisateur, error) {
	var utilisateur dto.Utilisateur
	err := row.Scan(
		&utilisateur.ID,
		&utilisateur.Identifiant,
		&utilisateur.Nom,
		&utilisateur.Prenoms,
		&utilisateur.Role,
		&utilisateur.EstPrescripteur,
		&utilisateur.Statut,
		&utilisateur.CreatedAt,
		&utilisateur.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &utilisateur, nil
}

func scanUtilisateurs(rows pgx.Rows) ([]dto.Utilisateur, error) {
	var utilisateurs []dto.Utilisateur
	for rows.Next() {
		var utilisateur dto.Utilisateur
		if err := rows.Scan(
			&utilisateur.ID,
			&utilisateur.Identifiant,
			&utilisateur.Nom,
			&utilisateur.Prenoms,
			&utilisateur.Role,
			&utilisateur.EstPrescripteur,
			&utilisateur.Statut,
			&utilisateur.CreatedAt,
			&utilisateur.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan utilisateur: %w", err)
		}
		utilisateurs = append(utilisateurs, utilisateur)
	}
	return utilisateurs, rows.Err()
}
