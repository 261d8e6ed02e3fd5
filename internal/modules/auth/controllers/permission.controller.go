package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	middlewareauth "ecmis-core/internal/shared/middleware/auth"
	"ecmis-core/internal/modules/auth/dto"
	"ecmis-core/internal/modules/auth/services"
)

type PermissionController struct {
	service   *services.PermissionService
	validator *validator.Validate
}

func NewPermissionController(service *services.PermissionService) *PermissionController {
	return &PermissionController{
		service:   service,
		validator: validator.New(),
	}
}

// ListUserPermissions GET /permissions/:userId — matrice complète d'un utilisateur
func (c *PermissionController) ListUserPermissions(ctx *gin.Context) {
	rc, ok := middlewareauth.RequestContextFromGin(ctx)
	if !ok {
		return
	}

	userID := ctx.Param("userId")

	// Un utilisateur consulte sa propre matrice ; seul un ADMIN consulte celle des autres
	if !rc.IsAdmin() && rc.UserID != userID {
		ctx.JSON(http.StatusForbidden, gin.H{
			"error": "Permissions insuffisantes pour cette action",
			"details": gin.H{
				"code": "INSUFFICIENT_PERMISSIONS",
			},
		})
		return
	}

	permissions, err := c.service.ListForUser(ctx.Request.Context(), userID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": "Erreur lors de la récupération des permissions",
			"details": gin.H{
				"code": "INTERNAL_ERROR",
			},
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    permissions,
	})
}

// UpsertUserPermission PUT /permissions/:userId — écrit une ligne de la matrice (ADMIN)
func (c *PermissionController) UpsertUserPermission(ctx *gin.Context) {
	rc, ok := middlewareauth.RequestContextFromGin(ctx)
	if !ok {
		return
	}

	if !rc.IsAdmin() {
		ctx.JSON(http.StatusForbidden, gin.H{
			"error": "Accès administrateur requis",
			"details": gin.H{
				"code": "ADMIN_ACCESS_REQUIRED",
			},
		})
		return
	}

	userID := ctx.Param("userId")

	var req dto.UpsertPermissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "Données invalides",
			"details": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": err.Error(),
			},
		})
		return
	}

	if err := c.validator.Struct(req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "Erreur de validation",
			"details": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": err.Error(),
			},
		})
		return
	}

	permission, err := c.service.UpsertForUser(ctx.Request.Context(), userID, req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": "Erreur lors de l'écriture de la permission",
			"details": gin.H{
				"code": "INTERNAL_ERROR",
			},
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    permission,
	})
}
