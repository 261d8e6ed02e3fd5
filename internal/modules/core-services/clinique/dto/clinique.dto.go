package dto

import "time"

// Clinique données de référence d'un établissement de soins.
// Immuables au runtime : seedées au bootstrap, lecture seule ensuite.
type Clinique struct {
	ID           string    `json:"id"`
	Nom          string    `json:"nom"`
	CodeRegion   string    `json:"code_region"`
	CodeClinique string    `json:"code_clinique"`
	CreatedAt    time.Time `json:"created_at"`
}

// CliniqueIntrouvableNom libellé sentinelle pour une référence clinique absente
const CliniqueIntrouvableNom = "Clinique introuvable"
