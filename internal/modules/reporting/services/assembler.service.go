package services

import (
	"fmt"

	facturationdto "ecmis-core/internal/modules/facturation/dto"
	"ecmis-core/internal/modules/reporting/dto"
)

// AggregateAssembler assemble les résultats du pipeline en rapport final.
// Chaque section correspond à un sous-domaine lu ; un sous-domaine en échec
// devient un avertissement, jamais une section silencieusement vide.
type AggregateAssembler struct{}

func NewAggregateAssembler() *AggregateAssembler {
	return &AggregateAssembler{}
}

// Assemble construit le rapport à partir des lectures par sous-domaine et
// par type facturable. L'index de prescripteurs est appliqué aux lignes
// facturables avant conversion au format de sortie.
func (a *AggregateAssembler) Assemble(
	dossierResults []dto.SousDomaineResult,
	billingResults []dto.BillingResult,
	prescripteurs *PrescripteurIndex,
) dto.Rapport {
	rapport := dto.Rapport{
		Sections:     make([]dto.Section, 0, len(dossierResults)),
		Examens:      []dto.ExamenRow{},
		Echographies: []dto.EchographieRow{},
		Produits:     []dto.ProduitRow{},
		Prestations:  []dto.PrestationRow{},
	}

	for _, result := range dossierResults {
		if result.Err != nil {
			rapport.Avertissements = append(rapport.Avertissements,
				fmt.Sprintf("Section %s indisponible", result.Domaine.Libelle()))
			continue
		}
		rows := result.Rows
		if rows == nil {
			rows = []dto.DossierRow{}
		}
		rapport.Sections = append(rapport.Sections, dto.Section{
			Name: result.Domaine.Libelle(),
			Data: rows,
		})
	}

	for _, result := range billingResults {
		if result.Err != nil {
			rapport.Avertissements = append(rapport.Avertissements,
				fmt.Sprintf("Facturation %s indisponible", result.Type))
			continue
		}
		prescripteurs.ResolveBillingRows(result.Rows)

		switch result.Type {
		case facturationdto.TypeExamen:
			for _, row := range result.Rows {
				rapport.Examens = append(rapport.Examens, toExamenRow(row))
			}
		case facturationdto.TypeEchographie:
			for _, row := range result.Rows {
				rapport.Echographies = append(rapport.Echographies, toEchographieRow(row))
			}
		case facturationdto.TypeProduit:
			for _, row := range result.Rows {
				rapport.Produits = append(rapport.Produits, toProduitRow(row))
			}
		case facturationdto.TypePrestation:
			for _, row := range result.Rows {
				rapport.Prestations = append(rapport.Prestations, toPrestationRow(row))
			}
		}
	}

	return rapport
}

// Les formats de sortie conservent les noms de champs historiques des
// consommateurs existants (examIdPrescripteur, clientNom, ...).

func toExamenRow(row dto.BillingRow) dto.ExamenRow {
	return dto.ExamenRow{
		ExamID:             row.ID,
		ExamIDVisite:       row.VisiteID,
		ExamIDClient:       row.PatientID,
		ExamIDClinique:     row.CliniqueID,
		ExamIDPrescripteur: row.PrescripteurID,
		ExamIDUser:         row.UserID,
		ClientNom:          row.PatientNom,
		ClientPrenoms:      row.PatientPrenoms,
		CodePatient:        row.CodePatient,
		CliniqueNom:        row.CliniqueNom,
		Libelle:            row.Libelle,
		Prix:               row.Prix,
		Remise:             row.Remise,
		DateVisite:         row.DateVisite,
	}
}

func toEchographieRow(row dto.BillingRow) dto.EchographieRow {
	return dto.EchographieRow{
		EchoID:             row.ID,
		EchoIDVisite:       row.VisiteID,
		EchoIDClient:       row.PatientID,
		EchoIDClinique:     row.CliniqueID,
		EchoIDPrescripteur: row.PrescripteurID,
		EchoIDUser:         row.UserID,
		ClientNom:          row.PatientNom,
		ClientPrenoms:      row.PatientPrenoms,
		CodePatient:        row.CodePatient,
		CliniqueNom:        row.CliniqueNom,
		Libelle:            row.Libelle,
		Prix:               row.Prix,
		Remise:             row.Remise,
		DateVisite:         row.DateVisite,
	}
}

func toProduitRow(row dto.BillingRow) dto.ProduitRow {
	return dto.ProduitRow{
		ProdID:             row.ID,
		ProdIDVisite:       row.VisiteID,
		ProdIDClient:       row.PatientID,
		ProdIDClinique:     row.CliniqueID,
		ProdIDPrescripteur: row.PrescripteurID,
		ProdIDUser:         row.UserID,
		ClientNom:          row.PatientNom,
		ClientPrenoms:      row.PatientPrenoms,
		CodePatient:        row.CodePatient,
		CliniqueNom:        row.CliniqueNom,
		Libelle:            row.Libelle,
		Prix:               row.Prix,
		Remise:             row.Remise,
		DateVisite:         row.DateVisite,
	}
}

func toPrestationRow(row dto.BillingRow) dto.PrestationRow {
	return dto.PrestationRow{
		PrestID:             row.ID,
		PrestIDVisite:       row.VisiteID,
		PrestIDClient:       row.PatientID,
		PrestIDClinique:     row.CliniqueID,
		PrestIDPrescripteur: row.PrescripteurID,
		PrestIDUser:         row.UserID,
		ClientNom:           row.PatientNom,
		ClientPrenoms:       row.PatientPrenoms,
		CodePatient:         row.CodePatient,
		CliniqueNom:         row.CliniqueNom,
		Libelle:             row.Libelle,
		Prix:                row.Prix,
		Remise:              row.Remise,
		DateVisite:          row.DateVisite,
	}
}

// BuildExport aplatit le rapport en sections tabulaires pour l'export
func (a *AggregateAssembler) BuildExport(rapport dto.Rapport) dto.ExportPayload {
	payload := dto.ExportPayload{
		Sections:       make([]dto.ExportSection, 0, len(rapport.Sections)+4),
		Avertissements: rapport.Avertissements,
	}

	for _, section := range rapport.Sections {
		export := dto.ExportSection{
			Name: section.Name,
			Colonnes: []string{
				"Code patient", "Nom", "Prénoms", "Clinique", "Date de visite", "Prescripteur",
			},
			Lignes: make([][]interface{}, 0, len(section.Data)),
		}
		for _, row := range section.Data {
			export.Lignes = append(export.Lignes, []interface{}{
				row.CodePatient,
				row.PatientNom,
				row.PatientPrenoms,
				row.CliniqueNom,
				row.DateVisite.Format("2006-01-02"),
				exportPrescripteur(row.PrescripteurID),
			})
		}
		payload.Sections = append(payload.Sections, export)
	}

	payload.Sections = append(payload.Sections,
		exportExamens(rapport.Examens),
		exportEchographies(rapport.Echographies),
		exportProduits(rapport.Produits),
		exportPrestations(rapport.Prestations),
	)

	return payload
}

var billingColonnes = []string{
	"Code patient", "Nom", "Prénoms", "Clinique", "Libellé", "Prix", "Remise", "Date de visite", "Prescripteur",
}

func exportExamens(rows []dto.ExamenRow) dto.ExportSection {
	section := dto.ExportSection{Name: "Examens", Colonnes: billingColonnes, Lignes: make([][]interface{}, 0, len(rows))}
	for _, row := range rows {
		section.Lignes = append(section.Lignes, billingLigne(
			row.CodePatient, row.ClientNom, row.ClientPrenoms, row.CliniqueNom,
			row.Libelle, row.Prix, row.Remise, row.DateVisite.Format("2006-01-02"), row.ExamIDPrescripteur))
	}
	return section
}

func exportEchographies(rows []dto.EchographieRow) dto.ExportSection {
	section := dto.ExportSection{Name: "Échographies", Colonnes: billingColonnes, Lignes: make([][]interface{}, 0, len(rows))}
	for _, row := range rows {
		section.Lignes = append(section.Lignes, billingLigne(
			row.CodePatient, row.ClientNom, row.ClientPrenoms, row.CliniqueNom,
			row.Libelle, row.Prix, row.Remise, row.DateVisite.Format("2006-01-02"), row.EchoIDPrescripteur))
	}
	return section
}

func exportProduits(rows []dto.ProduitRow) dto.ExportSection {
	section := dto.ExportSection{Name: "Produits", Colonnes: billingColonnes, Lignes: make([][]interface{}, 0, len(rows))}
	for _, row := range rows {
		section.Lignes = append(section.Lignes, billingLigne(
			row.CodePatient, row.ClientNom, row.ClientPrenoms, row.CliniqueNom,
			row.Libelle, row.Prix, row.Remise, row.DateVisite.Format("2006-01-02"), row.ProdIDPrescripteur))
	}
	return section
}

func exportPrestations(rows []dto.PrestationRow) dto.ExportSection {
	section := dto.ExportSection{Name: "Prestations", Colonnes: billingColonnes, Lignes: make([][]interface{}, 0, len(rows))}
	for _, row := range rows {
		section.Lignes = append(section.Lignes, billingLigne(
			row.CodePatient, row.ClientNom, row.ClientPrenoms, row.CliniqueNom,
			row.Libelle, row.Prix, row.Remise, row.DateVisite.Format("2006-01-02"), row.PrestIDPrescripteur))
	}
	return section
}

func billingLigne(codePatient, nom, prenoms, clinique, libelle string, prix float64, remise *float64, dateVisite string, prescripteur *string) []interface{} {
	var remiseValue interface{}
	if remise != nil {
		remiseValue = *remise
	}
	return []interface{}{
		codePatient, nom, prenoms, clinique, libelle, prix, remiseValue, dateVisite, exportPrescripteur(prescripteur),
	}
}

func exportPrescripteur(id *string) interface{} {
	if id == nil {
		return nil
	}
	return *id
}
