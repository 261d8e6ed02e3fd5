package services

import (
	"ecmis-core/internal/modules/reporting/dto"
	visitedto "ecmis-core/internal/modules/visites/dto"
)

// PrescripteurIndex index de résolution des prescripteurs à partir des
// récaps de visites. Les tables de factures héritées ne portent pas de
// prescripteur fiable : on le reconstruit depuis les récaps, borné à
// l'ensemble des prescripteurs valides du périmètre.
type PrescripteurIndex struct {
	valides    map[string]struct{}
	parVisite  map[visiteKey][]string
	parPatient map[string][]string
}

type visiteKey struct {
	patientID string
	visiteID  string
}

// NewPrescripteurIndex construit l'index à partir des prescripteurs valides
// et des récaps disponibles
func NewPrescripteurIndex(validIDs []string, recaps []visitedto.RecapVisite) *PrescripteurIndex {
	index := &PrescripteurIndex{
		valides:    make(map[string]struct{}, len(validIDs)),
		parVisite:  make(map[visiteKey][]string, len(recaps)),
		parPatient: make(map[string][]string),
	}
	for _, id := range validIDs {
		index.valides[id] = struct{}{}
	}
	for _, recap := range recaps {
		key := visiteKey{patientID: recap.PatientID, visiteID: recap.VisiteID}
		index.parVisite[key] = append(index.parVisite[key], recap.Prescripteurs...)
		index.parPatient[recap.PatientID] = append(index.parPatient[recap.PatientID], recap.Prescripteurs...)
	}
	return index
}

// Resolve prescripteur d'une ligne facturable : d'abord le récap exact de la
// visite, sinon n'importe quel récap du patient. Le premier candidat valide
// dans l'ordre du récap l'emporte ; nil quand aucun candidat n'est valide.
func (idx *PrescripteurIndex) Resolve(patientID, visiteID string) *string {
	if id := idx.firstValid(idx.parVisite[visiteKey{patientID: patientID, visiteID: visiteID}]); id != nil {
		return id
	}
	return idx.firstValid(idx.parPatient[patientID])
}

func (idx *PrescripteurIndex) firstValid(candidats []string) *string {
	for _, candidat := range candidats {
		if _, ok := idx.valides[candidat]; ok {
			id := candidat
			return &id
		}
	}
	return nil
}

// ResolveBillingRows affecte un prescripteur à chaque ligne facturable
func (idx *PrescripteurIndex) ResolveBillingRows(rows []dto.BillingRow) {
	for i := range rows {
		rows[i].PrescripteurID = idx.Resolve(rows[i].PatientID, rows[i].VisiteID)
	}
}
