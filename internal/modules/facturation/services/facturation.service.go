package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"ecmis-core/internal/infrastructure/database/postgres"
	"ecmis-core/internal/modules/facturation/dto"
	"ecmis-core/internal/modules/facturation/queries"
	visiteServices "ecmis-core/internal/modules/visites/services"
)

var (
	// ErrTypeDemandeInconnu type facturable hors référentiel
	ErrTypeDemandeInconnu = errors.New("type de demande inconnu")
	// ErrDemandeIntrouvable demande absente
	ErrDemandeIntrouvable = errors.New("demande introuvable")
	// ErrTarifIntrouvable ligne tarifaire absente du catalogue
	ErrTarifIntrouvable = errors.New("tarif introuvable")
	// ErrDemandeDejaTraitee la demande n'est plus en attente
	ErrDemandeDejaTraitee = errors.New("demande déjà traitée")
	// ErrIncoherencePatientVisite le patient ne correspond pas à la visite
	ErrIncoherencePatientVisite = errors.New("patient incohérent avec la visite")
)

// FacturationService catalogues tarifaires, demandes d'actes et factures
type FacturationService struct {
	db            *postgres.Client
	txManager     *postgres.TransactionManager
	visiteService *visiteServices.VisiteService
	logger        *zap.Logger
}

func NewFacturationService(
	db *postgres.Client,
	visiteService *visiteServices.VisiteService,
	logger *zap.Logger,
) *FacturationService {
	return &FacturationService{
		db:            db,
		txManager:     postgres.NewTransactionManager(db),
		visiteService: visiteService,
		logger:        logger,
	}
}

// ListTarifs liste le catalogue actif d'un type facturable
func (s *FacturationService) ListTarifs(ctx context.Context, typeDemande dto.TypeDemande) ([]dto.Tarif, error) {
	sql, ok := queries.BillingQueries[typeDemande]
	if !ok {
		return nil, ErrTypeDemandeInconnu
	}

	rows, err := s.db.Query(ctx, sql.ListTarifs)
	if err != nil {
		s.logger.Error("liste tarifs échouée",
			zap.String("type_demande", string(typeDemande)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to list tarifs: %w", err)
	}
	defer rows.Close()

	var tarifs []dto.Tarif
	for rows.Next() {
		var tarif dto.Tarif
		if err := rows.Scan(
			&tarif.ID,
			&tarif.Code,
			&tarif.Libelle,
			&tarif.Prix,
			&tarif.EstActif,
			&tarif.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan tarif: %w", err)
		}
		tarifs = append(tarifs, tarif)
	}
	return tarifs, rows.Err()
}

// CreateDemande enregistre une demande d'acte pour une visite.
// Le patient doit être celui de la visite, le tarif doit exister au catalogue.
func (s *FacturationService) CreateDemande(ctx context.Context, userID string, req dto.CreateDemandeRequest) (*dto.Demande, error) {
	if !req.TypeDemande.IsValid() {
		return nil, ErrTypeDemandeInconnu
	}

	visite, err := s.visiteService.GetByID(ctx, req.VisiteID)
	if err != nil {
		return nil, err
	}
	if visite.PatientID != req.PatientID {
		return nil, ErrIncoherencePatientVisite
	}

	if _, err := s.getTarif(ctx, req.TypeDemande, req.TarifID); err != nil {
		return nil, err
	}

	demande, err := scanDemande(s.db.QueryRow(ctx, queries.DemandeQueries.Create,
		req.VisiteID,
		req.PatientID,
		visite.CliniqueID,
		req.TypeDemande,
		req.TarifID,
		userID,
	))
	if err != nil {
		s.logger.Error("création demande échouée",
			zap.String("visite_id", req.VisiteID),
			zap.String("type_demande", string(req.TypeDemande)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to create demande: %w", err)
	}
	return demande, nil
}

// ListDemandesByVisite liste les demandes d'une visite
func (s *FacturationService) ListDemandesByVisite(ctx context.Context, visiteID string) ([]dto.Demande, error) {
	rows, err := s.db.Query(ctx, queries.DemandeQueries.ListByVisite, visiteID)
	if err != nil {
		s.logger.Error("liste demandes échouée", zap.String("visite_id", visiteID), zap.Error(err))
		return nil, fmt.Errorf("failed to list demandes: %w", err)
	}
	defer rows.Close()

	var demandes []dto.Demande
	for rows.Next() {
		var demande dto.Demande
		if err := rows.Scan(
			&demande.ID,
			&demande.VisiteID,
			&demande.PatientID,
			&demande.CliniqueID,
			&demande.TypeDemande,
			&demande.TarifID,
			&demande.Statut,
			&demande.CreatedBy,
			&demande.CreatedAt,
			&demande.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan demande: %w", err)
		}
		demandes = append(demandes, demande)
	}
	return demandes, rows.Err()
}

// FacturerDemande exécute une demande en attente : crée la ligne de facture
// immuable et passe la demande à FACTUREE, le tout en transaction.
func (s *FacturationService) FacturerDemande(ctx context.Context, demandeID, userID string, req dto.FacturerDemandeRequest) (*dto.Facture, error) {
	demande, err := s.getDemande(ctx, demandeID)
	if err != nil {
		return nil, err
	}
	if demande.Statut != dto.StatutEnAttente {
		return nil, ErrDemandeDejaTraitee
	}

	sql, ok := queries.BillingQueries[demande.TypeDemande]
	if !ok {
		return nil, ErrTypeDemandeInconnu
	}

	tarif, err := s.getTarif(ctx, demande.TypeDemande, demande.TarifID)
	if err != nil {
		return nil, err
	}

	var facture *dto.Facture
	err = s.txManager.WithTransaction(ctx, func(tx *postgres.Transaction) error {
		// Verrou optimiste : le passage de statut échoue si une autre
		// facturation est passée entre-temps.
		var updatedID string
		if scanErr := tx.QueryRow(ctx, queries.DemandeQueries.SetStatut, demandeID, dto.StatutFacturee).Scan(&updatedID); scanErr != nil {
			if errors.Is(scanErr, pgx.ErrNoRows) {
				return ErrDemandeDejaTraitee
			}
			return scanErr
		}

		created, scanErr := scanFacture(tx.QueryRow(ctx, sql.CreateFacture,
			demande.ID,
			demande.VisiteID,
			demande.PatientID,
			demande.CliniqueID,
			userID,
			tarif.Libelle,
			tarif.Prix,
			req.Remise,
		), demande.TypeDemande)
		if scanErr != nil {
			return scanErr
		}

		facture = created
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrDemandeDejaTraitee) {
			return nil, ErrDemandeDejaTraitee
		}
		s.logger.Error("facturation demande échouée",
			zap.String("demande_id", demandeID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to facturer demande: %w", err)
	}

	s.logger.Info("demande facturée",
		zap.String("demande_id", demandeID),
		zap.String("facture_id", facture.ID),
		zap.String("type", string(facture.Type)),
	)
	return facture, nil
}

// ListFacturesByVisite liste les factures d'un type pour une visite
func (s *FacturationService) ListFacturesByVisite(ctx context.Context, typeDemande dto.TypeDemande, visiteID string) ([]dto.Facture, error) {
	sql, ok := queries.BillingQueries[typeDemande]
	if !ok {
		return nil, ErrTypeDemandeInconnu
	}

	rows, err := s.db.Query(ctx, sql.ListFactures, visiteID)
	if err != nil {
		s.logger.Error("liste factures échouée",
			zap.String("type_demande", string(typeDemande)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to list factures: %w", err)
	}
	defer rows.Close()

	var factures []dto.Facture
	for rows.Next() {
		var facture dto.Facture
		if err := rows.Scan(
			&facture.ID,
			&facture.DemandeID,
			&facture.VisiteID,
			&facture.PatientID,
			&facture.CliniqueID,
			&facture.UserID,
			&facture.Libelle,
			&facture.Prix,
			&facture.Remise,
			&facture.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan facture: %w", err)
		}
		facture.Type = typeDemande
		factures = append(factures, facture)
	}
	return factures, rows.Err()
}

func (s *FacturationService) getDemande(ctx context.Context, demandeID string) (*dto.Demande, error) {
	demande, err := scanDemande(s.db.QueryRow(ctx, queries.DemandeQueries.GetByID, demandeID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrDemandeIntrouvable
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get demande: %w", err)
	}
	return demande, nil
}

func (s *FacturationService) getTarif(ctx context.Context, typeDemande dto.TypeDemande, tarifID string) (*dto.Tarif, error) {
	sql, ok := queries.BillingQueries[typeDemande]
	if !ok {
		return nil, ErrTypeDemandeInconnu
	}

	var tarif dto.Tarif
	err := s.db.QueryRow(ctx, sql.GetTarifByID, tarifID).Scan(
		&tarif.ID,
		&tarif.Code,
		&tarif.Libelle,
		&tarif.Prix,
		&tarif.EstActif,
		&tarif.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTarifIntrouvable
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tarif: %w", err)
	}
	return &tarif, nil
}

func scanDemande(row pgx.Row) (*dto.Demande, error) {
	var demande dto.Demande
	err := row.Scan(
		&demande.ID,
		&demande.VisiteID,
		&demande.PatientID,
		&demande.CliniqueID,
		&demande.TypeDemande,
		&demande.TarifID,
		&demande.Statut,
		&demande.CreatedBy,
		&demande.CreatedAt,
		&demande.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &demande, nil
}

func scanFacture(row pgx.Row, typeDemande dto.TypeDemande) (*dto.Facture, error) {
	var facture dto.Facture
	err := row.Scan(
		&facture.ID,
		&facture.DemandeID,
		&facture.VisiteID,
		&facture.PatientID,
		&facture.CliniqueID,
		&facture.UserID,
		&facture.Libelle,
		&facture.Prix,
		&facture.Remise,
		&facture.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	facture.Type = typeDemande
	return &facture, nil
}
