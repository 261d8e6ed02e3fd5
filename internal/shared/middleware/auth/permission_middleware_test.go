package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ecmis-core/internal/modules/auth/dto"
	"ecmis-core/internal/modules/auth/services"
)

type matrixStore struct {
	permissions map[string]map[dto.TableName]dto.Permission
}

func (s *matrixStore) GetPermission(ctx context.Context, userID string, table dto.TableName) (*dto.Permission, error) {
	permission, ok := s.permissions[userID][table]
	if !ok {
		return nil, nil
	}
	return &permission, nil
}

func (s *matrixStore) ListByUser(ctx context.Context, userID string) ([]dto.Permission, error) {
	return nil, nil
}

func (s *matrixStore) Upsert(ctx context.Context, userID string, req dto.UpsertPermissionRequest) (*dto.Permission, error) {
	return nil, nil
}

func newTestRouter(store *matrixStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	middleware := NewPermissionMiddleware(services.NewPermissionService(store, zap.NewNop()))

	r := gin.New()
	r.Use(RequestContextMiddleware())
	r.DELETE("/examens/:id",
		middleware.RequireTable(dto.TableExamen, dto.ActionSupprimer),
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"success": true})
		})
	return r
}

func performDelete(r *gin.Engine, userID, role string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodDelete, "/examens/facture-1", nil)
	if userID != "" {
		req.Header.Set(HeaderUserID, userID)
	}
	if role != "" {
		req.Header.Set(HeaderUserRole, role)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestContextRequired(t *testing.T) {
	r := newTestRouter(&matrixStore{})

	w := performDelete(r, "", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = performDelete(r, "user-1", "SUPERVISEUR")
	require.Equal(t, http.StatusUnauthorized, w.Code, "rôle inconnu: identité rejetée")
}

func TestRequireTableDeniesWithoutPermission(t *testing.T) {
	store := &matrixStore{
		permissions: map[string]map[dto.TableName]dto.Permission{
			"user-1": {
				dto.TableExamen: {Table: dto.TableExamen, PeutLire: true},
			},
		},
	}
	r := newTestRouter(store)

	w := performDelete(r, "user-1", "USER")
	require.Equal(t, http.StatusForbidden, w.Code, "lecture accordée mais pas la suppression")

	w = performDelete(r, "user-2", "USER")
	require.Equal(t, http.StatusForbidden, w.Code, "aucune ligne de matrice: refus")
}

func TestRequireTableAllowsGrantedAction(t *testing.T) {
	store := &matrixStore{
		permissions: map[string]map[dto.TableName]dto.Permission{
			"user-1": {
				dto.TableExamen: {Table: dto.TableExamen, PeutSupprimer: true},
			},
		},
	}
	r := newTestRouter(store)

	w := performDelete(r, "user-1", "USER")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRequireTableAdminAlwaysAllowed(t *testing.T) {
	r := newTestRouter(&matrixStore{})

	w := performDelete(r, "admin-1", "ADMIN")
	require.Equal(t, http.StatusOK, w.Code)
}
