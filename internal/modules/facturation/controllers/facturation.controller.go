package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"ecmis-core/internal/modules/facturation/dto"
	"ecmis-core/internal/modules/facturation/services"
	visiteServices "ecmis-core/internal/modules/visites/services"
	middlewareauth "ecmis-core/internal/shared/middleware/auth"
)

type FacturationController struct {
	service   *services.FacturationService
	validator *validator.Validate
}

func NewFacturationController(service *services.FacturationService) *FacturationController {
	return &FacturationController{
		service:   service,
		validator: validator.New(),
	}
}

// ListTarifs GET /facturation/tarifs/{type} — handler par type facturable
func (c *FacturationController) ListTarifs(typeDemande dto.TypeDemande) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tarifs, err := c.service.ListTarifs(ctx.Request.Context(), typeDemande)
		if err != nil {
			respondInternalError(ctx, "Erreur lors de la récupération des tarifs")
			return
		}

		ctx.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    tarifs,
		})
	}
}

// CreateDemande POST /facturation/demandes
func (c *FacturationController) CreateDemande(ctx *gin.Context) {
	rc, ok := middlewareauth.RequestContextFromGin(ctx)
	if !ok {
		return
	}

	var req dto.CreateDemandeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondValidationError(ctx, err)
		return
	}
	if err := c.validator.Struct(req); err != nil {
		respondValidationError(ctx, err)
		return
	}

	demande, err := c.service.CreateDemande(ctx.Request.Context(), rc.UserID, req)
	switch {
	case errors.Is(err, services.ErrTypeDemandeInconnu):
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "Type de demande inconnu",
			"details": gin.H{
				"code": "TYPE_DEMANDE_INCONNU",
			},
		})
		return
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
	case errors.Is(err, services.ErrTarifIntrouvable):
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "Tarif introuvable au catalogue",
			"details": gin.H{
				"code": "TARIF_NOT_FOUND",
			},
		})
		return
	case err != nil:
		respondInternalError(ctx, "Erreur lors de la création de la demande")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    demande,
	})
}

// ListDemandesByVisite GET /facturation/visites/:visiteId/demandes
func (c *FacturationController) ListDemandesByVisite(ctx *gin.Context) {
	demandes, err := c.service.ListDemandesByVisite(ctx.Request.Context(), ctx.Param("visiteId"))
	if err != nil {
		respondInternalError(ctx, "Erreur lors de la récupération des demandes")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    demandes,
	})
}

// FacturerDemande POST /facturation/demandes/:id/facturer
func (c *FacturationController) FacturerDemande(ctx *gin.Context) {
	rc, ok := middlewareauth.RequestContextFromGin(ctx)
	if !ok {
		return
	}

	var req dto.FacturerDemandeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondValidationError(ctx, err)
		return
	}
	if err := c.validator.Struct(req); err != nil {
		respondValidationError(ctx, err)
		return
	}

	facture, err := c.service.FacturerDemande(ctx.Request.Context(), ctx.Param("id"), rc.UserID, req)
	switch {
	case errors.Is(err, services.ErrDemandeIntrouvable):
		ctx.JSON(http.StatusNotFound, gin.H{
			"error": "Demande introuvable",
			"details": gin.H{
				"code": "DEMANDE_NOT_FOUND",
			},
		})
		return
	case errors.Is(err, services.ErrDemandeDejaTraitee):
		ctx.JSON(http.StatusConflict, gin.H{
			"error": "Demande déjà traitée",
			"details": gin.H{
				"code": "DEMANDE_DEJA_TRAITEE",
			},
		})
		return
	case errors.Is(err, services.ErrTarifIntrouvable):
		ctx.JSON(http.StatusConflict, gin.H{
			"error": "Tarif introuvable au catalogue",
			"details": gin.H{
				"code": "TARIF_NOT_FOUND",
			},
		})
		return
	case err != nil:
		respondInternalError(ctx, "Erreur lors de la facturation de la demande")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    facture,
	})
}

// ListFacturesByVisite GET /facturation/factures/{type}/visites/:visiteId
func (c *FacturationController) ListFacturesByVisite(typeDemande dto.TypeDemande) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		factures, err := c.service.ListFacturesByVisite(ctx.Request.Context(), typeDemande, ctx.Param("visiteId"))
		if err != nil {
			respondInternalError(ctx, "Erreur lors de la récupération des factures")
			return
		}

		ctx.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    factures,
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

func respondInternalError(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusInternalServerError, gin.H{
		"error": message,
		"details": gin.H{
			"code": "INTERNAL_ERROR",
		},
	})
}
