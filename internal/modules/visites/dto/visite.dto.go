package dto

import "time"

// Visite événement de passage d'un patient, ancre temporelle de tous les
// dossiers cliniques et factures
type Visite struct {
	ID         string    `json:"id"`
	PatientID  string    `json:"patient_id"`
	CliniqueID string    `json:"clinique_id"`
	ActiviteID *string   `json:"activite_id,omitempty"`
	DateVisite time.Time `json:"date_visite"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateVisiteRequest payload de création d'une visite
type CreateVisiteRequest struct {
	PatientID  string  `json:"patient_id" validate:"required,uuid"`
	ActiviteID *string `json:"activite_id,omitempty" validate:"omitempty,uuid"`
	DateVisite string  `json:"date_visite" validate:"required,datetime=2006-01-02"`
}

// RecapVisite document dénormalisé par visite : liste des prescripteurs et
// des formulaires enregistrés. Index best-effort, sans garantie référentielle.
type RecapVisite struct {
	VisiteID      string    `bson:"visite_id" json:"visite_id"`
	PatientID     string    `bson:"patient_id" json:"patient_id"`
	CliniqueID    string    `bson:"clinique_id" json:"clinique_id"`
	DateVisite    time.Time `bson:"date_visite" json:"date_visite"`
	Prescripteurs []string  `bson:"prescripteurs" json:"prescripteurs"`
	Formulaires   []string  `bson:"formulaires" json:"formulaires"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}
