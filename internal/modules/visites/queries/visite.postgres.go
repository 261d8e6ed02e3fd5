package queries

// VisiteQueries regroupe toutes les requêtes SQL pour les visites
var VisiteQueries = struct {
	Create        string
	GetByID       string
	ListByPatient string
}{
	/**
	 * Crée une visite ; la clinique est celle du patient
	 * Paramètres: $1 = patient_id, $2 = clinique_id, $3 = activite_id, $4 = date_visite
	 */
	Create: `
		INSERT INTO visites (patient_id, clinique_id, activite_id, date_visite)
		VALUES ($1, $2, $3, $4)
		RETURNING id, patient_id, clinique_id, activite_id, date_visite, created_at
	`,

	/**
	 * Récupère une visite par identifiant
	 * Paramètres: $1 = visite_id
	 */
	GetByID: `
		SELECT id, patient_id, clinique_id, activite_id, date_visite, created_at
		FROM visites
		WHERE id = $1
	`,

	/**
	 * Liste les visites d'un patient, plus récentes en premier
	 * Paramètres: $1 = patient_id
	 */
	ListByPatient: `
		SELECT id, patient_id, clinique_id, activite_id, date_visite, created_at
		FROM visites
		WHERE patient_id = $1
		ORDER BY date_visite DESC, created_at DESC
	`,
}
