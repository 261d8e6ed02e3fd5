package dto

import (
	"time"

	dossierdto "ecmis-core/internal/modules/dossiers/dto"
	facturationdto "ecmis-core/internal/modules/facturation/dto"
)

// DossierRow ligne jointe d'un sous-domaine clinique : dossier + patient +
// clinique + visite. Nommage normalisé au scan, quel que soit le sous-domaine.
type DossierRow struct {
	ID             string                 `json:"id"`
	SousDomaine    dossierdto.SousDomaine `json:"sous_domaine"`
	VisiteID       string                 `json:"visite_id"`
	PatientID      string                 `json:"patient_id"`
	PatientNom     string                 `json:"patient_nom"`
	PatientPrenoms string                 `json:"patient_prenoms"`
	CodePatient    string                 `json:"code_patient"`
	CliniqueID     string                 `json:"clinique_id"`
	CliniqueNom    string                 `json:"clinique_nom"`
	PrescripteurID *string                `json:"prescripteur_id,omitempty"`
	DateVisite     time.Time              `json:"date_visite"`
	Donnees        map[string]interface{} `json:"donnees"`
}

func (r DossierRow) ClinicID() string { return r.CliniqueID }

// BillingRow ligne de facture jointe, normalisée. Le prescripteur est résolu
// a posteriori via les récaps de visite.
type BillingRow struct {
	ID             string
	Type           facturationdto.TypeDemande
	DemandeID      string
	VisiteID       string
	PatientID      string
	PatientNom     string
	PatientPrenoms string
	CodePatient    string
	CliniqueID     string
	CliniqueNom    string
	UserID         string
	Libelle        string
	Prix           float64
	Remise         *float64
	DateVisite     time.Time
	PrescripteurID *string
}

func (r BillingRow) ClinicID() string { return r.CliniqueID }

// Lignes de facturation au format de sortie hérité : chaque type porte ses
// propres noms de champs JSON (examId..., echoId..., prodId..., prestId...),
// conservés pour compatibilité avec les écrans et exports existants.

type ExamenRow struct {
	ExamID             string    `json:"examId"`
	ExamIDVisite       string    `json:"examIdVisite"`
	ExamIDClient       string    `json:"examIdClient"`
	ExamIDClinique     string    `json:"examIdClinique"`
	ExamIDPrescripteur *string   `json:"examIdPrescripteur"`
	ExamIDUser         string    `json:"examIdUser"`
	ClientNom          string    `json:"clientNom"`
	ClientPrenoms      string    `json:"clientPrenoms"`
	CodePatient        string    `json:"codePatient"`
	CliniqueNom        string    `json:"cliniqueNom"`
	Libelle            string    `json:"libelle"`
	Prix               float64   `json:"prix"`
	Remise             *float64  `json:"remise"`
	DateVisite         time.Time `json:"dateVisite"`
}

type EchographieRow struct {
	EchoID             string    `json:"echoId"`
	EchoIDVisite       string    `json:"echoIdVisite"`
	EchoIDClient       string    `json:"echoIdClient"`
	EchoIDClinique     string    `json:"echoIdClinique"`
	EchoIDPrescripteur *string   `json:"echoIdPrescripteur"`
	EchoIDUser         string    `json:"echoIdUser"`
	ClientNom          string    `json:"clientNom"`
	ClientPrenoms      string    `json:"clientPrenoms"`
	CodePatient        string    `json:"codePatient"`
	CliniqueNom        string    `json:"cliniqueNom"`
	Libelle            string    `json:"libelle"`
	Prix               float64   `json:"prix"`
	Remise             *float64  `json:"remise"`
	DateVisite         time.Time `json:"dateVisite"`
}

type ProduitRow struct {
	ProdID             string    `json:"prodId"`
	ProdIDVisite       string    `json:"prodIdVisite"`
	ProdIDClient       string    `json:"prodIdClient"`
	ProdIDClinique     string    `json:"prodIdClinique"`
	ProdIDPrescripteur *string   `json:"prodIdPrescripteur"`
	ProdIDUser         string    `json:"prodIdUser"`
	ClientNom          string    `json:"clientNom"`
	ClientPrenoms      string    `json:"clientPrenoms"`
	CodePatient        string    `json:"codePatient"`
	CliniqueNom        string    `json:"cliniqueNom"`
	Libelle            string    `json:"libelle"`
	Prix               float64   `json:"prix"`
	Remise             *float64  `json:"remise"`
	DateVisite         time.Time `json:"dateVisite"`
}

type PrestationRow struct {
	PrestID             string    `json:"prestId"`
	PrestIDVisite       string    `json:"prestIdVisite"`
	PrestIDClient       string    `json:"prestIdClient"`
	PrestIDClinique     string    `json:"prestIdClinique"`
	PrestIDPrescripteur *string   `json:"prestIdPrescripteur"`
	PrestIDUser         string    `json:"prestIdUser"`
	ClientNom           string    `json:"clientNom"`
	ClientPrenoms       string    `json:"clientPrenoms"`
	CodePatient         string    `json:"codePatient"`
	CliniqueNom         string    `json:"cliniqueNom"`
	Libelle             string    `json:"libelle"`
	Prix                float64   `json:"prix"`
	Remise              *float64  `json:"remise"`
	DateVisite          time.Time `json:"dateVisite"`
}

// SousDomaineResult résultat d'un sous-domaine clinique après fan-out.
// L'échec d'un sous-domaine n'avorte pas l'agrégation : il est porté ici.
type SousDomaineResult struct {
	Domaine dossierdto.SousDomaine
	Rows    []DossierRow
	Err     error
}

// BillingResult résultat d'un type facturable après fan-out
type BillingResult struct {
	Type facturationdto.TypeDemande
	Rows []BillingRow
	Err  error
}

// Section collection nommée d'un sous-domaine dans le rapport
type Section struct {
	Name string       `json:"name"`
	Data []DossierRow `json:"data"`
}

// Rapport agrégat final : sections nommées + collections plates de
// facturation + avertissements des sous-domaines en échec
type Rapport struct {
	Sections       []Section        `json:"sections"`
	Examens        []ExamenRow      `json:"examens"`
	Echographies   []EchographieRow `json:"echographies"`
	Produits       []ProduitRow     `json:"produits"`
	Prestations    []PrestationRow  `json:"prestations"`
	Avertissements []string         `json:"avertissements,omitempty"`
}

// ExportSection tableau plat destiné au collaborateur d'export tableur
type ExportSection struct {
	Name     string          `json:"name"`
	Colonnes []string        `json:"colonnes"`
	Lignes   [][]interface{} `json:"lignes"`
}

// ExportPayload lignes plates + en-têtes de colonnes
type ExportPayload struct {
	Sections       []ExportSection `json:"sections"`
	Avertissements []string        `json:"avertissements,omitempty"`
}
