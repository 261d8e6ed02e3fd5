package seeds

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"

	"ecmis-core/internal/infrastructure/database/postgres"
)

//go:embed data/reference.json
var referenceData embed.FS

// Service implémentation du SeedingService sur PostgreSQL
type Service struct {
	db *postgres.Client
}

func NewService(db *postgres.Client) *Service {
	return &Service{db: db}
}

var _ SeedingService = (*Service)(nil)

// CheckSeedDataExists vérifie la présence des données de référence
func (s *Service) CheckSeedDataExists(ctx context.Context) (*SeedDataStatus, error) {
	status := &SeedDataStatus{}

	var count int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM cliniques`).Scan(&count); err != nil {
		return nil, NewSeedError("cliniques", "vérification échouée", err)
	}
	status.CliniquesExist = count > 0

	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM tarifs_examens`).Scan(&count); err != nil {
		return nil, NewSeedError("tarifs", "vérification échouée", err)
	}
	status.TarifsExist = count > 0

	return status, nil
}

// SeedReferenceData insère les cliniques et catalogues tarifaires embarqués.
// Idempotent : les lignes déjà présentes (par code) sont ignorées.
func (s *Service) SeedReferenceData(ctx context.Context) error {
	reference, err := s.loadReference()
	if err != nil {
		return err
	}

	for _, clinique := range reference.Cliniques {
		err := s.db.Exec(ctx, `
			INSERT INTO cliniques (nom, code_region, code_clinique)
			VALUES ($1, $2, $3)
			ON CONFLICT (code_clinique) DO NOTHING
		`, clinique.Nom, clinique.CodeRegion, clinique.CodeClinique)
		if err != nil {
			return NewSeedError("cliniques", fmt.Sprintf("insertion %s échouée", clinique.CodeClinique), err)
		}
	}

	tarifTables := map[string][]TarifJSONData{
		"tarifs_examens":      reference.Tarifs.Examens,
		"tarifs_echographies": reference.Tarifs.Echographies,
		"tarifs_produits":     reference.Tarifs.Produits,
		"tarifs_prestations":  reference.Tarifs.Prestations,
	}

	for table, tarifs := range tarifTables {
		for _, tarif := range tarifs {
			err := s.db.Exec(ctx, fmt.Sprintf(`
				INSERT INTO %s (code, libelle, prix)
				VALUES ($1, $2, $3)
				ON CONFLICT (code) DO NOTHING
			`, table), tarif.Code, tarif.Libelle, tarif.Prix)
			if err != nil {
				return NewSeedError(table, fmt.Sprintf("insertion %s échouée", tarif.Code), err)
			}
		}
	}

	return nil
}

func (s *Service) loadReference() (*ReferenceJSONStructure, error) {
	content, err := referenceData.ReadFile("data/reference.json")
	if err != nil {
		return nil, NewSeedError("reference", "lecture du fichier embarqué échouée", err)
	}

	var reference ReferenceJSONStructure
	if err := json.Unmarshal(content, &reference); err != nil {
		return nil, NewSeedError("reference", "parsing JSON échoué", err)
	}

	return &reference, nil
}
