package seeds

import (
	"context"
)

// SeedDataStatus représente l'état des données de référence
type SeedDataStatus struct {
	CliniquesExist bool `json:"cliniques_exist"`
	TarifsExist    bool `json:"tarifs_exist"`
}

// CliniqueJSONData représente une clinique dans le fichier JSON de référence
type CliniqueJSONData struct {
	Nom          string `json:"nom"`
	CodeRegion   string `json:"code_region"`
	CodeClinique string `json:"code_clinique"`
}

// TarifJSONData représente une ligne tarifaire dans le fichier JSON
type TarifJSONData struct {
	Code    string  `json:"code"`
	Libelle string  `json:"libelle"`
	Prix    float64 `json:"prix"`
}

// ReferenceJSONStructure structure complète du fichier JSON de référence
type ReferenceJSONStructure struct {
	Cliniques []CliniqueJSONData `json:"cliniques"`
	Tarifs    struct {
		Examens      []TarifJSONData `json:"examens"`
		Echographies []TarifJSONData `json:"echographies"`
		Produits     []TarifJSONData `json:"produits"`
		Prestations  []TarifJSONData `json:"prestations"`
	} `json:"tarifs"`
}

// SeedingService gestion des données de référence (cliniques + catalogues tarifaires)
type SeedingService interface {
	CheckSeedDataExists(ctx context.Context) (*SeedDataStatus, error)
	SeedReferenceData(ctx context.Context) error
}

// IsComplete vérifie si toutes les données de référence sont présentes
func (s *SeedDataStatus) IsComplete() bool {
	return s.CliniquesExist && s.TarifsExist
}

// GetMissingSeeds retourne la liste des seeds manquants
func (s *SeedDataStatus) GetMissingSeeds() []string {
	var missing []string

	if !s.CliniquesExist {
		missing = append(missing, "cliniques")
	}
	if !s.TarifsExist {
		missing = append(missing, "tarifs")
	}

	return missing
}
