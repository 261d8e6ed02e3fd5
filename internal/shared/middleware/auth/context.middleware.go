package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ecmis-core/internal/modules/auth/dto"
)

// Le collaborateur d'authentification amont (reverse proxy) fournit
// l'identité via headers ; le coeur la passe ensuite explicitement
// en paramètre des services.
const (
	HeaderUserID   = "X-User-Id"
	HeaderUserRole = "X-User-Role"

	requestContextKey = "request_context"
)

// RequestContextMiddleware extrait l'identité de l'appelant des headers
func RequestContextMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(HeaderUserID)
		role := dto.Role(c.GetHeader(HeaderUserRole))

		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Utilisateur non identifié",
				"details": gin.H{
					"code": "USER_CONTEXT_REQUIRED",
				},
			})
			c.Abort()
			return
		}

		if role != dto.RoleAdmin && role != dto.RoleUser {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Rôle utilisateur invalide",
				"details": gin.H{
					"code": "INVALID_USER_ROLE",
				},
			})
			c.Abort()
			return
		}

		c.Set(requestContextKey, dto.RequestContext{
			UserID: userID,
			Role:   role,
		})

		c.Next()
	}
}

// RequestContextFromGin récupère l'identité posée par le middleware.
// Répond 401 et annule la requête si elle est absente.
func RequestContextFromGin(c *gin.Context) (dto.RequestContext, bool) {
	value, exists := c.Get(requestContextKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Utilisateur non identifié",
			"details": gin.H{
				"code": "USER_CONTEXT_REQUIRED",
			},
		})
		c.Abort()
		return dto.RequestContext{}, false
	}

	rc, ok := value.(dto.RequestContext)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Contexte utilisateur invalide",
			"details": gin.H{
				"code": "INVALID_USER_CONTEXT",
			},
		})
		c.Abort()
		return dto.RequestContext{}, false
	}

	return rc, true
}
