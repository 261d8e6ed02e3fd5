package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	authdto "ecmis-core/internal/modules/auth/dto"
	authServices "ecmis-core/internal/modules/auth/services"
	dossierdto "ecmis-core/internal/modules/dossiers/dto"
	facturationdto "ecmis-core/internal/modules/facturation/dto"
	"ecmis-core/internal/modules/reporting/dto"
)

// billingTypes ordre de présentation des types facturables dans le rapport
var billingTypes = []facturationdto.TypeDemande{
	facturationdto.TypeExamen,
	facturationdto.TypeEchographie,
	facturationdto.TypeProduit,
	facturationdto.TypePrestation,
}

// ReportingService orchestre le pipeline de rapport : résolution du
// périmètre, filtrage par permissions, lectures jointes en parallèle,
// résolution des prescripteurs puis assemblage.
type ReportingService struct {
	scopeResolver *ScopeResolver
	joiner        *RecordJoiner
	assembler     *AggregateAssembler
	permissions   *authServices.PermissionService
	prescripteurs PrescripteurSource
	recaps        RecapSource
	logger        *zap.Logger
}

func NewReportingService(
	scopeResolver *ScopeResolver,
	joiner *RecordJoiner,
	assembler *AggregateAssembler,
	permissions *authServices.PermissionService,
	prescripteurs PrescripteurSource,
	recaps RecapSource,
	logger *zap.Logger,
) *ReportingService {
	return &ReportingService{
		scopeResolver: scopeResolver,
		joiner:        joiner,
		assembler:     assembler,
		permissions:   permissions,
		prescripteurs: prescripteurs,
		recaps:        recaps,
		logger:        logger,
	}
}

// GenerateListing produit le rapport agrégé du périmètre pour l'appelant.
// Les sous-domaines que l'appelant ne peut pas lire sont omis du rapport
// avec un avertissement, sans faire échouer le reste.
func (s *ReportingService) GenerateListing(ctx context.Context, rc authdto.RequestContext, scope dto.Scope) (*dto.Rapport, error) {
	visites, err := s.scopeResolver.Resolve(ctx, scope)
	if err != nil {
		return nil, err
	}

	domaines, types, refus, err := s.authorizedDomains(ctx, rc)
	if err != nil {
		return nil, err
	}

	validIDs, err := s.prescripteurs.ListValidPrescripteurIDs(ctx, scope.CliniqueIDs)
	if err != nil {
		return nil, fmt.Errorf("erreur lors de la résolution des prescripteurs: %w", err)
	}

	recaps, err := s.recaps.ListByPatients(ctx, patientIDs(visites))
	if err != nil {
		// les récaps enrichissent le rapport, leur absence ne le bloque pas
		s.logger.Warn("Récaps de visites indisponibles", zap.Error(err))
		recaps = nil
	}

	dossierResults := s.joiner.JoinDossiers(ctx, scope, domaines)
	billingResults := s.joiner.JoinBilling(ctx, scope, types)

	index := NewPrescripteurIndex(validIDs, recaps)
	rapport := s.assembler.Assemble(dossierResults, billingResults, index)
	rapport.Avertissements = append(rapport.Avertissements, refus...)

	s.logger.Info("Rapport généré",
		zap.String("utilisateur_id", rc.UserID),
		zap.Int("visites", len(visites)),
		zap.Int("sections", len(rapport.Sections)),
		zap.Int("avertissements", len(rapport.Avertissements)))

	return &rapport, nil
}

// GenerateExport produit le rapport aplati en sections tabulaires
func (s *ReportingService) GenerateExport(ctx context.Context, rc authdto.RequestContext, scope dto.Scope) (*dto.ExportPayload, error) {
	rapport, err := s.GenerateListing(ctx, rc, scope)
	if err != nil {
		return nil, err
	}

	payload := s.assembler.BuildExport(*rapport)
	return &payload, nil
}

// authorizedDomains filtre sous-domaines et types facturables par la matrice
// de permissions en lecture. Chaque refus devient un avertissement.
func (s *ReportingService) authorizedDomains(ctx context.Context, rc authdto.RequestContext) ([]dossierdto.SousDomaine, []facturationdto.TypeDemande, []string, error) {
	var (
		domaines []dossierdto.SousDomaine
		types    []facturationdto.TypeDemande
		refus    []string
	)

	for _, domaine := range dossierdto.SousDomaines {
		allowed, err := s.permissions.Can(ctx, rc, domaine.TableName(), authdto.ActionLire)
		if err != nil {
			return nil, nil, nil, err
		}
		if !allowed {
			refus = append(refus, fmt.Sprintf("Section %s non autorisée", domaine.Libelle()))
			continue
		}
		domaines = append(domaines, domaine)
	}

	for _, typeDemande := range billingTypes {
		allowed, err := s.permissions.Can(ctx, rc, typeDemande.TableName(), authdto.ActionLire)
		if err != nil {
			return nil, nil, nil, err
		}
		if !allowed {
			refus = append(refus, fmt.Sprintf("Facturation %s non autorisée", typeDemande))
			continue
		}
		types = append(types, typeDemande)
	}

	return domaines, types, refus, nil
}

// patientIDs identifiants uniques des patients du périmètre
func patientIDs(visites []dto.VisiteRef) []string {
	seen := make(map[string]struct{}, len(visites))
	ids := make([]string, 0, len(visites))
	for _, visite := range visites {
		if _, ok := seen[visite.PatientID]; ok {
			continue
		}
		seen[visite.PatientID] = struct{}{}
		ids = append(ids, visite.PatientID)
	}
	return ids
}
