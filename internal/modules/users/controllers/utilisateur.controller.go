package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"ecmis-core/internal/modules/users/dto"
	"ecmis-core/internal/modules/users/services"
)

type UtilisateurController struct {
	service   *services.UtilisateurService
	validator *validator.Validate
}

func NewUtilisateurController(service *services.UtilisateurService) *UtilisateurController {
	return &UtilisateurController{
		service:   service,
		validator: validator.New(),
	}
}

// CreateUtilisateur POST /utilisateurs
func (c *UtilisateurController) CreateUtilisateur(ctx *gin.Context) {
	var req dto.CreateUtilisateurRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondValidationError(ctx, err)
		return
	}
	if err := c.validator.Struct(req); err != nil {
		respondValidationError(ctx, err)
		return
	}

	utilisateur, err := c.service.Create(ctx.Request.Context(), req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": "Erreur lors de la création du compte",
			"details": gin.H{
				"code": "INTERNAL_ERROR",
			},
		})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    utilisateur,
	})
}

// GetUtilisateur GET /utilisateurs/:id
func (c *UtilisateurController) GetUtilisateur(ctx *gin.Context) {
	utilisateur, err := c.service.GetByID(ctx.Request.Context(), ctx.Param("userId"))
	if errors.Is(err, services.ErrUtilisateurIntrouvable) {
		ctx.JSON(http.StatusNotFound, gin.H{
			"error": "Utilisateur introuvable",
			"details": gin.H{
				"code": "UTILISATEUR_NOT_FOUND",
			},
		})
		return
	}
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": "Erreur lors de la récupération du compte",
			"details": gin.H{
				"code": "INTERNAL_ERROR",
			},
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    utilisateur,
	})
}

// ListUtilisateurs GET /utilisateurs
func (c *UtilisateurController) ListUtilisateurs(ctx *gin.Context) {
	utilisateurs, err := c.service.ListAll(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": "Erreur lors de la récupération des comptes",
			"details": gin.H{
				"code": "INTERNAL_ERROR",
			},
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    utilisateurs,
	})
}

// UpdateUtilisateur PUT /utilisateurs/:id
func (c *UtilisateurController) UpdateUtilisateur(ctx *gin.Context) {
	var req dto.UpdateUtilisateurRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondValidationError(ctx, err)
		return
	}
	if err := c.validator.Struct(req); err != nil {
		respondValidationError(ctx, err)
		return
	}

	utilisateur, err := c.service.Update(ctx.Request.Context(), ctx.Param("userId"), req)
	if errors.Is(err, services.ErrUtilisateurIntrouvable) {
		ctx.JSON(http.StatusNotFound, gin.H{
			"error": "Utilisateur introuvable",
			"details": gin.H{
				"code": "UTILISATEUR_NOT_FOUND",
			},
		})
		return
	}
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": "Erreur lors de la mise à jour du compte",
			"details": gin.H{
				"code": "INTERNAL_ERROR",
			},
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    utilisateur,
	})
}

func respondValidationError(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, gin.H{
		"error": "Données invalides",
		"details": gin.H{
			"code":    "VALIDATION_ERROR",
			"message": err.Error(),
		},
	})
}
