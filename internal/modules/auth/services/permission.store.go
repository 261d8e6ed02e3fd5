package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"ecmis-core/internal/infrastructure/database/postgres"
	"ecmis-core/internal/modules/auth/dto"
	"ecmis-core/internal/modules/auth/queries"
)

// PostgresPermissionStore implémentation PostgreSQL du PermissionStore
type PostgresPermissionStore struct {
	db *postgres.Client
}

func NewPostgresPermissionStore(db *postgres.Client) *PostgresPermissionStore {
	return &PostgresPermissionStore{db: db}
}

var _ PermissionStore = (*PostgresPermissionStore)(nil)

// GetPermission retourne la ligne (utilisateur, table), nil si absente
func (s *PostgresPermissionStore) GetPermission(ctx context.Context, userID string, table dto.TableName) (*dto.Permission, error) {
	var permission dto.Permission
	err := s.db.QueryRow(ctx, queries.PermissionQueries.GetPermission, userID, string(table)).Scan(
		&permission.ID,
		&permission.UtilisateurID,
		&permission.Table,
		&permission.PeutCreer,
		&permission.PeutLire,
		&permission.PeutModifier,
		&permission.PeutSupprimer,
		&permission.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &permission, nil
}

func (s *PostgresPermissionStore) ListByUser(ctx context.Context, userID string) ([]dto.Permission, error) {
	rows, err := s.db.Query(ctx, queries.PermissionQueries.ListByUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var permissions []dto.Permission
	for rows.Next() {
		var permission dto.Permission
		err := rows.Scan(
			&permission.ID,
			&permission.UtilisateurID,
			&permission.Table,
			&permission.PeutCreer,
			&permission.PeutLire,
			&permission.PeutModifier,
			&permission.PeutSupprimer,
			&permission.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		permissions = append(permissions, permission)
	}

	return permissions, rows.Err()
}

func (s *PostgresPermissionStore) Upsert(ctx context.Context, userID string, req dto.UpsertPermissionRequest) (*dto.Permission, error) {
	var permission dto.Permission
	err := s.db.QueryRow(ctx, queries.PermissionQueries.UpsertPermission,
		userID,
		string(req.Table),
		req.PeutCreer,
		req.PeutLire,
		req.PeutModifier,
		req.PeutSupprimer,
	).Scan(
		&permission.ID,
		&permission.UtilisateurID,
		&permission.Table,
		&permission.PeutCreer,
		&permission.PeutLire,
		&permission.PeutModifier,
		&permission.PeutSupprimer,
		&permission.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &permission, nil
}
