package services

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	dossierdto "ecmis-core/internal/modules/dossiers/dto"
	facturationdto "ecmis-core/internal/modules/facturation/dto"
	"ecmis-core/internal/modules/reporting/dto"
)

// maxJoinConcurrency plafond de lectures jointes simultanées sur le pool
const maxJoinConcurrency = 4

// RecordJoiner lit en parallèle les sous-domaines cliniques et les types
// facturables d'un périmètre. L'échec d'un sous-domaine n'interrompt pas
// les autres, le résultat porte l'erreur par sous-domaine.
type RecordJoiner struct {
	dossiers DossierFetcher
	billing  BillingFetcher
	logger   *zap.Logger
}

func NewRecordJoiner(dossiers DossierFetcher, billing BillingFetcher, logger *zap.Logger) *RecordJoiner {
	return &RecordJoiner{
		dossiers: dossiers,
		billing:  billing,
		logger:   logger,
	}
}

// JoinDossiers lit les sous-domaines demandés, un résultat par sous-domaine
// dans l'ordre d'entrée
func (j *RecordJoiner) JoinDossiers(ctx context.Context, scope dto.Scope, domaines []dossierdto.SousDomaine) []dto.SousDomaineResult {
	results := make([]dto.SousDomaineResult, len(domaines))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxJoinConcurrency)

	allowed := cliniqueSet(scope)
	for i, domaine := range domaines {
		i, domaine := i, domaine
		group.Go(func() error {
			rows, err := j.dossiers.FetchDossiers(groupCtx, domaine, scope)
			if err != nil {
				j.logger.Error("Échec de lecture d'un sous-domaine",
					zap.String("sous_domaine", string(domaine)),
					zap.Error(err))
			}
			results[i] = dto.SousDomaineResult{
				Domaine: domaine,
				Rows:    filterInScope(rows, allowed),
				Err:     err,
			}
			return nil
		})
	}

	// les erreurs restent dans les résultats, jamais remontées par le groupe
	_ = group.Wait()
	return results
}

// JoinBilling lit les types facturables demandés, un résultat par type
// dans l'ordre d'entrée
func (j *RecordJoiner) JoinBilling(ctx context.Context, scope dto.Scope, types []facturationdto.TypeDemande) []dto.BillingResult {
	results := make([]dto.BillingResult, len(types))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxJoinConcurrency)

	allowed := cliniqueSet(scope)
	for i, typeDemande := range types {
		i, typeDemande := i, typeDemande
		group.Go(func() error {
			rows, err := j.billing.FetchFactures(groupCtx, typeDemande, scope)
			if err != nil {
				j.logger.Error("Échec de lecture d'un type facturable",
					zap.String("type", string(typeDemande)),
					zap.Error(err))
			}
			results[i] = dto.BillingResult{
				Type: typeDemande,
				Rows: filterInScope(rows, allowed),
				Err:  err,
			}
			return nil
		})
	}

	_ = group.Wait()
	return results
}

func cliniqueSet(scope dto.Scope) map[string]struct{} {
	allowed := make(map[string]struct{}, len(scope.CliniqueIDs))
	for _, id := range scope.CliniqueIDs {
		allowed[id] = struct{}{}
	}
	return allowed
}

// filterInScope écarte toute ligne dont la clinique sort du périmètre
// demandé. Les requêtes filtrent déjà en SQL ; cette frontière garantit
// l'invariant quelle que soit la provenance des lignes.
func filterInScope[T dto.ClinicScoped](rows []T, allowed map[string]struct{}) []T {
	filtered := rows[:0]
	for _, row := range rows {
		if _, ok := allowed[row.ClinicID()]; ok {
			filtered = append(filtered, row)
		}
	}
	return filtered
}
