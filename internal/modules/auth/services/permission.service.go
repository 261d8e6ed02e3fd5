package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"ecmis-core/internal/modules/auth/dto"
)

// PermissionStore accès aux lignes de la matrice de permissions
type PermissionStore interface {
	GetPermission(ctx context.Context, userID string, table dto.TableName) (*dto.Permission, error)
	ListByUser(ctx context.Context, userID string) ([]dto.Permission, error)
	Upsert(ctx context.Context, userID string, req dto.UpsertPermissionRequest) (*dto.Permission, error)
}

// PermissionService décide l'accès par (utilisateur, table, action).
// SÉCURITÉ : chaque décision relit la matrice depuis PostgreSQL — pas de cache,
// les permissions peuvent changer entre deux actions.
type PermissionService struct {
	store  PermissionStore
	logger *zap.Logger
}

func NewPermissionService(store PermissionStore, logger *zap.Logger) *PermissionService {
	return &PermissionService{
		store:  store,
		logger: logger,
	}
}

// Can vérifie si l'appelant peut effectuer l'action sur la table.
// - Rôle ADMIN : toujours autorisé, sans lecture de la matrice.
// - Erreur de lecture : refus ET erreur remontée (fail-closed, jamais fail-open).
// - Ligne absente : refus.
func (s *PermissionService) Can(ctx context.Context, rc dto.RequestContext, table dto.TableName, action dto.Action) (bool, error) {
	if rc.IsAdmin() {
		return true, nil
	}

	if rc.UserID == "" {
		return false, nil
	}

	permission, err := s.store.GetPermission(ctx, rc.UserID, table)
	if err != nil {
		s.logger.Error("vérification de permission échouée",
			zap.String("utilisateur_id", rc.UserID),
			zap.String("table", string(table)),
			zap.Error(err),
		)
		return false, fmt.Errorf("erreur lors de la vérification des permissions: %w", err)
	}

	if permission == nil {
		return false, nil
	}

	return permission.Allows(action), nil
}

// ListForUser retourne la matrice complète d'un utilisateur
func (s *PermissionService) ListForUser(ctx context.Context, userID string) ([]dto.Permission, error) {
	permissions, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("erreur lors de la récupération des permissions: %w", err)
	}
	return permissions, nil
}

// UpsertForUser écrit une ligne de la matrice pour un utilisateur
func (s *PermissionService) UpsertForUser(ctx context.Context, userID string, req dto.UpsertPermissionRequest) (*dto.Permission, error) {
	if !dto.IsValidTableName(req.Table) {
		return nil, fmt.Errorf("table inconnue: %s", req.Table)
	}

	permission, err := s.store.Upsert(ctx, userID, req)
	if err != nil {
		return nil, fmt.Errorf("erreur lors de l'écriture de la permission: %w", err)
	}

	return permission, nil
}
