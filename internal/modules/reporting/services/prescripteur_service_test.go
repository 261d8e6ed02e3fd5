package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ecmis-core/internal/modules/reporting/dto"
	visitedto "ecmis-core/internal/modules/visites/dto"
)

func TestPrescripteurIndexExactVisiteMatch(t *testing.T) {
	index := NewPrescripteurIndex(
		[]string{"user-1", "user-3"},
		[]visitedto.RecapVisite{
			{VisiteID: "visite-1", PatientID: "patient-1", Prescripteurs: []string{"user-1"}},
			{VisiteID: "visite-2", PatientID: "patient-1", Prescripteurs: []string{"user-3"}},
		},
	)

	resolved := index.Resolve("patient-1", "visite-2")
	require.NotNil(t, resolved)
	require.Equal(t, "user-3", *resolved, "le récap exact de la visite prime sur ceux du patient")
}

func TestPrescripteurIndexInvalidCandidateSkipped(t *testing.T) {
	// user-2 n'est pas prescripteur valide : le premier candidat valide
	// dans l'ordre du récap l'emporte
	index := NewPrescripteurIndex(
		[]string{"user-1"},
		[]visitedto.RecapVisite{
			{VisiteID: "visite-1", PatientID: "patient-1", Prescripteurs: []string{"user-2", "user-1"}},
		},
	)

	resolved := index.Resolve("patient-1", "visite-1")
	require.NotNil(t, resolved)
	require.Equal(t, "user-1", *resolved)
}

func TestPrescripteurIndexPatientFallback(t *testing.T) {
	// pas de récap pour la visite demandée : repli sur les récaps du patient
	index := NewPrescripteurIndex(
		[]string{"user-1"},
		[]visitedto.RecapVisite{
			{VisiteID: "visite-autre", PatientID: "patient-1", Prescripteurs: []string{"user-1"}},
		},
	)

	resolved := index.Resolve("patient-1", "visite-sans-recap")
	require.NotNil(t, resolved)
	require.Equal(t, "user-1", *resolved)
}

func TestPrescripteurIndexUnresolvable(t *testing.T) {
	index := NewPrescripteurIndex(
		[]string{"user-1"},
		[]visitedto.RecapVisite{
			{VisiteID: "visite-1", PatientID: "patient-1", Prescripteurs: []string{"user-9"}},
		},
	)

	require.Nil(t, index.Resolve("patient-1", "visite-1"), "aucun candidat valide: prescripteur absent, pas d'erreur")
	require.Nil(t, index.Resolve("patient-inconnu", "visite-x"))
}

func TestResolveBillingRows(t *testing.T) {
	index := NewPrescripteurIndex(
		[]string{"user-1"},
		[]visitedto.RecapVisite{
			{VisiteID: "visite-1", PatientID: "patient-1", Prescripteurs: []string{"user-1"}},
		},
	)

	rows := []dto.BillingRow{
		{ID: "facture-1", PatientID: "patient-1", VisiteID: "visite-1"},
		{ID: "facture-2", PatientID: "patient-2", VisiteID: "visite-9"},
	}
	index.ResolveBillingRows(rows)

	require.NotNil(t, rows[0].PrescripteurID)
	require.Equal(t, "user-1", *rows[0].PrescripteurID)
	require.Nil(t, rows[1].PrescripteurID)
}
