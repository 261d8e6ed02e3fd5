package dto

import "time"

// Patient personne prise en charge par une clinique du réseau
type Patient struct {
	ID            string     `json:"id"`
	CliniqueID    string     `json:"clinique_id"`
	CodePatient   string     `json:"code_patient"`
	Nom           string     `json:"nom"`
	Prenoms       string     `json:"prenoms"`
	Sexe          string     `json:"sexe"`
	DateNaissance *time.Time `json:"date_naissance,omitempty"`
	Telephone     *string    `json:"telephone,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// CreatePatientRequest payload d'admission d'un patient
type CreatePatientRequest struct {
	CliniqueID    string  `json:"clinique_id" validate:"required,uuid"`
	Nom           string  `json:"nom" validate:"required,max=100"`
	Prenoms       string  `json:"prenoms" validate:"required,max=200"`
	Sexe          string  `json:"sexe" validate:"required,oneof=F M"`
	DateNaissance *string `json:"date_naissance,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Telephone     *string `json:"telephone,omitempty" validate:"omitempty,max=20"`
}

// UpdatePatientRequest payload de mise à jour administrative
type UpdatePatientRequest struct {
	Nom           *string `json:"nom,omitempty" validate:"omitempty,max=100"`
	Prenoms       *string `json:"prenoms,omitempty" validate:"omitempty,max=200"`
	Telephone     *string `json:"telephone,omitempty" validate:"omitempty,max=20"`
	DateNaissance *string `json:"date_naissance,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// SearchPatientsRequest critères de recherche
type SearchPatientsRequest struct {
	CliniqueID string `form:"clinique_id" validate:"omitempty,uuid"`
	Terme      string `form:"terme" validate:"omitempty,max=200"`
	Limit      int    `form:"limit" validate:"omitempty,min=1,max=100"`
}
