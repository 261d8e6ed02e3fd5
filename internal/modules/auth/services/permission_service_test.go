package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ecmis-core/internal/modules/auth/dto"
)

type stubPermissionStore struct {
	permission *dto.Permission
	err        error
	calls      int
}

func (s *stubPermissionStore) GetPermission(ctx context.Context, userID string, table dto.TableName) (*dto.Permission, error) {
	s.calls++
	return s.permission, s.err
}

func (s *stubPermissionStore) ListByUser(ctx context.Context, userID string) ([]dto.Permission, error) {
	return nil, nil
}

func (s *stubPermissionStore) Upsert(ctx context.Context, userID string, req dto.UpsertPermissionRequest) (*dto.Permission, error) {
	return nil, nil
}

func TestCanAdminBypassesMatrix(t *testing.T) {
	store := &stubPermissionStore{}
	service := NewPermissionService(store, zap.NewNop())

	allowed, err := service.Can(context.Background(),
		dto.RequestContext{UserID: "admin-1", Role: dto.RoleAdmin},
		dto.TableExamen, dto.ActionSupprimer)

	require.NoError(t, err)
	require.True(t, allowed)
	require.Equal(t, 0, store.calls, "l'ADMIN ne consulte pas la matrice")
}

func TestCanDeniesWithoutMatrixRow(t *testing.T) {
	service := NewPermissionService(&stubPermissionStore{}, zap.NewNop())

	allowed, err := service.Can(context.Background(),
		dto.RequestContext{UserID: "user-1", Role: dto.RoleUser},
		dto.TableExamen, dto.ActionSupprimer)

	require.NoError(t, err)
	require.False(t, allowed, "ligne absente: refus")
}

func TestCanDeniesActionNotGranted(t *testing.T) {
	store := &stubPermissionStore{
		permission: &dto.Permission{
			Table:     dto.TableExamen,
			PeutCreer: true,
			PeutLire:  true,
		},
	}
	service := NewPermissionService(store, zap.NewNop())
	rc := dto.RequestContext{UserID: "user-1", Role: dto.RoleUser}

	allowed, err := service.Can(context.Background(), rc, dto.TableExamen, dto.ActionSupprimer)
	require.NoError(t, err)
	require.False(t, allowed, "la suppression n'est pas accordée par la ligne")

	allowed, err = service.Can(context.Background(), rc, dto.TableExamen, dto.ActionLire)
	require.NoError(t, err)
	require.True(t, allowed)
}

func TestCanFailsClosedOnStoreError(t *testing.T) {
	store := &stubPermissionStore{err: errors.New("connexion perdue")}
	service := NewPermissionService(store, zap.NewNop())

	allowed, err := service.Can(context.Background(),
		dto.RequestContext{UserID: "user-1", Role: dto.RoleUser},
		dto.TablePatient, dto.ActionLire)

	require.Error(t, err)
	require.False(t, allowed, "une erreur de lecture refuse, jamais d'autorisation par défaut")
}

func TestCanDeniesAnonymousCaller(t *testing.T) {
	store := &stubPermissionStore{}
	service := NewPermissionService(store, zap.NewNop())

	allowed, err := service.Can(context.Background(),
		dto.RequestContext{}, dto.TablePatient, dto.ActionLire)

	require.NoError(t, err)
	require.False(t, allowed)
	require.Equal(t, 0, store.calls)
}
