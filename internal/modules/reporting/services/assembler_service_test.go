package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	dossierdto "ecmis-core/internal/modules/dossiers/dto"
	facturationdto "ecmis-core/internal/modules/facturation/dto"
	"ecmis-core/internal/modules/reporting/dto"
	visitedto "ecmis-core/internal/modules/visites/dto"
)

func emptyIndex() *PrescripteurIndex {
	return NewPrescripteurIndex(nil, nil)
}

func TestAssembleSectionsComplete(t *testing.T) {
	assembler := NewAggregateAssembler()

	dossierResults := []dto.SousDomaineResult{
		{Domaine: dossierdto.SousDomaineObstetrique, Rows: []dto.DossierRow{{ID: "d1"}, {ID: "d2"}}},
		{Domaine: dossierdto.SousDomainePlanification, Rows: nil},
		{Domaine: dossierdto.SousDomaineVIH, Rows: []dto.DossierRow{{ID: "d3"}}},
	}

	rapport := assembler.Assemble(dossierResults, nil, emptyIndex())

	require.Len(t, rapport.Sections, 3, "une section par sous-domaine lu")
	require.Equal(t, dossierdto.SousDomaineObstetrique.Libelle(), rapport.Sections[0].Name)
	require.Len(t, rapport.Sections[0].Data, 2)
	require.NotNil(t, rapport.Sections[1].Data, "une section vide reste présente, jamais nil")
	require.Empty(t, rapport.Sections[1].Data)
	require.Len(t, rapport.Sections[2].Data, 1)
	require.Empty(t, rapport.Avertissements)
}

func TestAssembleFailedSectionBecomesWarning(t *testing.T) {
	assembler := NewAggregateAssembler()

	rapport := assembler.Assemble([]dto.SousDomaineResult{
		{Domaine: dossierdto.SousDomaineObstetrique, Rows: []dto.DossierRow{{ID: "d1"}}},
		{Domaine: dossierdto.SousDomaineIST, Err: errors.New("timeout")},
	}, nil, emptyIndex())

	require.Len(t, rapport.Sections, 1)
	require.Len(t, rapport.Avertissements, 1)
	require.Contains(t, rapport.Avertissements[0], dossierdto.SousDomaineIST.Libelle())
}

func TestAssembleBillingLegacyFields(t *testing.T) {
	assembler := NewAggregateAssembler()
	index := NewPrescripteurIndex(
		[]string{"user-1"},
		[]visitedto.RecapVisite{
			{VisiteID: "visite-1", PatientID: "patient-1", Prescripteurs: []string{"user-1"}},
		},
	)

	remise := 500.0
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	billingResults := []dto.BillingResult{
		{
			Type: facturationdto.TypeExamen,
			Rows: []dto.BillingRow{{
				ID:             "facture-1",
				VisiteID:       "visite-1",
				PatientID:      "patient-1",
				PatientNom:     "KOUASSI",
				PatientPrenoms: "Awa",
				CodePatient:    "CENTREA-2024-001-AAA",
				CliniqueID:     "clinique-a",
				CliniqueNom:    "Centre A",
				UserID:         "caissier-1",
				Libelle:        "NFS",
				Prix:           5000,
				Remise:         &remise,
				DateVisite:     date,
			}},
		},
		{
			Type: facturationdto.TypePrestation,
			Rows: []dto.BillingRow{{ID: "facture-2", VisiteID: "visite-9", PatientID: "patient-9"}},
		},
	}

	rapport := assembler.Assemble(nil, billingResults, index)

	require.Len(t, rapport.Examens, 1)
	examen := rapport.Examens[0]
	require.Equal(t, "facture-1", examen.ExamID)
	require.Equal(t, "visite-1", examen.ExamIDVisite)
	require.Equal(t, "patient-1", examen.ExamIDClient)
	require.Equal(t, "clinique-a", examen.ExamIDClinique)
	require.Equal(t, "caissier-1", examen.ExamIDUser)
	require.NotNil(t, examen.ExamIDPrescripteur)
	require.Equal(t, "user-1", *examen.ExamIDPrescripteur)
	require.Equal(t, "KOUASSI", examen.ClientNom)
	require.Equal(t, "Centre A", examen.CliniqueNom)
	require.Equal(t, &remise, examen.Remise)

	require.Len(t, rapport.Prestations, 1)
	require.Nil(t, rapport.Prestations[0].PrestIDPrescripteur, "pas de récap pour ce patient: prescripteur absent")
}

func TestBuildExportFlattensSections(t *testing.T) {
	assembler := NewAggregateAssembler()
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	rapport := dto.Rapport{
		Sections: []dto.Section{
			{
				Name: dossierdto.SousDomaineObstetrique.Libelle(),
				Data: []dto.DossierRow{{
					ID:             "d1",
					CodePatient:    "CENTREA-2024-001-AAA",
					PatientNom:     "KOUASSI",
					PatientPrenoms: "Awa",
					CliniqueNom:    "Centre A",
					DateVisite:     date,
				}},
			},
		},
		Examens:        []dto.ExamenRow{{ExamID: "facture-1", Libelle: "NFS", Prix: 5000, DateVisite: date}},
		Echographies:   []dto.EchographieRow{},
		Produits:       []dto.ProduitRow{},
		Prestations:    []dto.PrestationRow{},
		Avertissements: []string{"Section IST indisponible"},
	}

	payload := assembler.BuildExport(rapport)

	// 1 section clinique + les 4 volets facturation
	require.Len(t, payload.Sections, 5)
	require.Equal(t, rapport.Avertissements, payload.Avertissements)

	require.Equal(t, dossierdto.SousDomaineObstetrique.Libelle(), payload.Sections[0].Name)
	require.Len(t, payload.Sections[0].Lignes, 1)
	require.Equal(t, "2024-01-15", payload.Sections[0].Lignes[0][4])

	require.Equal(t, "Examens", payload.Sections[1].Name)
	require.Len(t, payload.Sections[1].Lignes, 1)
	require.Equal(t, "Prestations", payload.Sections[4].Name)
	require.Empty(t, payload.Sections[4].Lignes)
}
