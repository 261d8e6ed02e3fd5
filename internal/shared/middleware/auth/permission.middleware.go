package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ecmis-core/internal/modules/auth/dto"
	"ecmis-core/internal/modules/auth/services"
)

type PermissionMiddleware struct {
	permissionService *services.PermissionService
}

func NewPermissionMiddleware(permissionService *services.PermissionService) *PermissionMiddleware {
	return &PermissionMiddleware{
		permissionService: permissionService,
	}
}

// RequireTable retourne un middleware qui vérifie l'action CRUD sur la table.
// Une erreur de vérification vaut refus (fail-closed) avec un message générique.
func (m *PermissionMiddleware) RequireTable(table dto.TableName, action dto.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		rc, ok := RequestContextFromGin(c)
		if !ok {
			return
		}

		allowed, err := m.permissionService.Can(c.Request.Context(), rc, table, action)
		if err != nil {
			m.respondPermissionError(c, http.StatusInternalServerError, "PERMISSION_CHECK_ERROR",
				"Erreur lors de la vérification des permissions", map[string]interface{}{
					"table_name": string(table),
				})
			return
		}

		if !allowed {
			m.respondPermissionError(c, http.StatusForbidden, "INSUFFICIENT_PERMISSIONS",
				"Permissions insuffisantes pour cette action", map[string]interface{}{
					"table_name": string(table),
					"action":     string(action),
				})
			return
		}

		c.Next()
	}
}

// respondPermissionError envoie une réponse d'erreur de permission standardisée
func (m *PermissionMiddleware) respondPermissionError(c *gin.Context, status int, code, message string, details map[string]interface{}) {
	response := gin.H{
		"error": message,
		"details": gin.H{
			"code": code,
		},
	}

	if details != nil {
		if detailsMap, ok := response["details"].(gin.H); ok {
			for k, v := range details {
				detailsMap[k] = v
			}
		}
	}

	c.JSON(status, response)
	c.Abort()
}
