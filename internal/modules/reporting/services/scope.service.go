package services

import (
	"context"

	"go.uber.org/zap"

	"ecmis-core/internal/modules/reporting/dto"
)

// ScopeResolver résout le périmètre d'un rapport en visites concrètes
type ScopeResolver struct {
	visites VisiteStore
	logger  *zap.Logger
}

func NewScopeResolver(visites VisiteStore, logger *zap.Logger) *ScopeResolver {
	return &ScopeResolver{
		visites: visites,
		logger:  logger,
	}
}

// Resolve liste les visites du périmètre. Un périmètre sans clinique est
// rejeté avant toute requête : aucun scan implicite de tout l'historique.
func (s *ScopeResolver) Resolve(ctx context.Context, scope dto.Scope) ([]dto.VisiteRef, error) {
	if len(scope.CliniqueIDs) == 0 {
		return nil, dto.ErrScopeVide
	}

	visites, err := s.visites.ListVisitesInScope(ctx, scope)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Périmètre résolu",
		zap.Int("cliniques", len(scope.CliniqueIDs)),
		zap.Int("visites", len(visites)))

	return visites, nil
}
