package dto

import "time"

// Utilisateur membre du personnel (soignant ou administratif)
type Utilisateur struct {
	ID              string    `json:"id"`
	Identifiant     string    `json:"identifiant"`
	Nom             string    `json:"nom"`
	Prenoms         string    `json:"prenoms"`
	Role            string    `json:"role"`
	EstPrescripteur bool      `json:"est_prescripteur"`
	Statut          string    `json:"statut"`
	CliniqueIDs     []string  `json:"clinique_ids"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CreateUtilisateurRequest payload de création d'un compte
type CreateUtilisateurRequest struct {
	Identifiant     string   `json:"identifiant" validate:"required,max=50"`
	Nom             string   `json:"nom" validate:"required,max=100"`
	Prenoms         string   `json:"prenoms" validate:"required,max=200"`
	Password        string   `json:"password" validate:"required,min=8,max=72"`
	Role            string   `json:"role" validate:"required,oneof=ADMIN USER"`
	EstPrescripteur bool     `json:"est_prescripteur"`
	CliniqueIDs     []string `json:"clinique_ids" validate:"required,min=1,dive,uuid"`
}

// UpdateUtilisateurRequest payload de mise à jour
type UpdateUtilisateurRequest struct {
	Nom             *string  `json:"nom,omitempty" validate:"omitempty,max=100"`
	Prenoms         *string  `json:"prenoms,omitempty" validate:"omitempty,max=200"`
	EstPrescripteur *bool    `json:"est_prescripteur,omitempty"`
	Statut          *string  `json:"statut,omitempty" validate:"omitempty,oneof=actif inactif"`
	CliniqueIDs     []string `json:"clinique_ids,omitempty" validate:"omitempty,min=1,dive,uuid"`
}
