package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ecmis-core/internal/modules/core-services/clinique/services"
)

type CliniqueController struct {
	service *services.CliniqueService
}

func NewCliniqueController(service *services.CliniqueService) *CliniqueController {
	return &CliniqueController{service: service}
}

// ListCliniques GET /cliniques — référentiel complet du réseau
func (c *CliniqueController) ListCliniques(ctx *gin.Context) {
	cliniques, err := c.service.ListAll(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": "Erreur lors de la récupération des cliniques",
			"details": gin.H{
				"code": "INTERNAL_ERROR",
			},
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    cliniques,
	})
}

// GetClinique GET /cliniques/:id
func (c *CliniqueController) GetClinique(ctx *gin.Context) {
	clinique, err := c.service.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if errors.Is(err, services.ErrCliniqueIntrouvable) {
		ctx.JSON(http.StatusNotFound, gin.H{
			"error": "Clinique introuvable",
			"details": gin.H{
				"code": "CLINIQUE_NOT_FOUND",
			},
		})
		return
	}
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": "Erreur lors de la récupération de la clinique",
			"details": gin.H{
				"code": "INTERNAL_ERROR",
			},
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    clinique,
	})
}
