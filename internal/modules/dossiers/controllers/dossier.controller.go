package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"ecmis-core/internal/modules/dossiers/dto"
	"ecmis-core/internal/modules/dossiers/services"
	visiteServices "ecmis-core/internal/modules/visites/services"
)

// DossierController expose une fabrique de handlers par sous-domaine :
// chaque sous-domaine est monté sur sa propre route, gardée par sa propre
// table de permissions.
type DossierController struct {
	service   *services.DossierService
	validator *validator.Validate
}

func NewDossierController(service *services.DossierService) *DossierController {
	return &DossierController{
		service:   service,
		validator: validator.New(),
	}
}

// CreateDossier POST /dossiers/{sous-domaine}
func (c *DossierController) CreateDossier(domaine dto.SousDomaine) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req dto.CreateDossierRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			respondValidationError(ctx, err)
			return
		}
		if err := c.validator.Struct(req); err != nil {
			respondValidationError(ctx, err)
			return
		}

		dossier, err := c.service.Create(ctx.Request.Context(), domaine, req)
		switch {
		case errors.Is(err, visiteServices.ErrVisiteIntrouvable):
			ctx.JSON(http.StatusBadRequest, gin.H{
				"error": "Visite introuvable",
				"details": gin.H{
					"code": "VISITE_NOT_FOUND",
				},
			})
			return
		case errors.Is(err, services.ErrIncoherencePatientVisite):
			ctx.JSON(http.StatusBadRequest, gin.H{
				"error": "Le patient ne correspond pas à la visite",
				"details": gin.H{
					"code": "PATIENT_VISITE_MISMATCH",
				},
			})
			return
		case errors.Is(err, services.ErrDossierDejaExistant):
			ctx.JSON(http.StatusConflict, gin.H{
				"error": "Un dossier de ce type existe déjà pour cette visite",
				"details": gin.H{
					"code": "DOSSIER_ALREADY_EXISTS",
				},
			})
			return
		case err != nil:
			ctx.JSON(http.StatusInternalServerError, gin.H{
				"error": "Erreur lors de l'enregistrement du dossier",
				"details": gin.H{
					"code": "INTERNAL_ERROR",
				},
			})
			return
		}

		ctx.JSON(http.StatusCreated, gin.H{
			"success": true,
			"data":    dossier,
		})
	}
}

// ListDossiersByVisite GET /dossiers/{sous-domaine}/visites/:visiteId
func (c *DossierController) ListDossiersByVisite(domaine dto.SousDomaine) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		dossiers, err := c.service.ListByVisite(ctx.Request.Context(), domaine, ctx.Param("visiteId"))
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{
				"error": "Erreur lors de la récupération des dossiers",
				"details": gin.H{
					"code": "INTERNAL_ERROR",
				},
			})
			return
		}

		ctx.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    dossiers,
		})
	}
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
