package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ecmis-core/internal/modules/reporting/dto"
)

// fakeVisiteStore compte les appels pour vérifier qu'un périmètre vide
// n'atteint jamais la base
type fakeVisiteStore struct {
	calls   int
	visites []dto.VisiteRef
	err     error
}

func (f *fakeVisiteStore) ListVisitesInScope(ctx context.Context, scope dto.Scope) ([]dto.VisiteRef, error) {
	f.calls++
	return f.visites, f.err
}

func TestScopeResolverRejectsEmptyScope(t *testing.T) {
	store := &fakeVisiteStore{}
	resolver := NewScopeResolver(store, zap.NewNop())

	_, err := resolver.Resolve(context.Background(), dto.Scope{})

	require.ErrorIs(t, err, dto.ErrScopeVide)
	require.Equal(t, 0, store.calls, "aucune requête ne doit partir pour un périmètre vide")
}

func TestScopeResolverReturnsVisites(t *testing.T) {
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	store := &fakeVisiteStore{
		visites: []dto.VisiteRef{
			{ID: "visite-1", PatientID: "patient-1", CliniqueID: "clinique-a", DateVisite: date},
		},
	}
	resolver := NewScopeResolver(store, zap.NewNop())

	visites, err := resolver.Resolve(context.Background(), dto.Scope{
		CliniqueIDs: []string{"clinique-a"},
	})

	require.NoError(t, err)
	require.Equal(t, 1, store.calls)
	require.Len(t, visites, 1)
	require.Equal(t, "visite-1", visites[0].ID)
}

func TestPeriodeContientBornesIncluses(t *testing.T) {
	debut := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	fin := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	periode := dto.Periode{Debut: &debut, Fin: &fin}

	require.True(t, periode.Contient(debut), "la borne de début est incluse")
	require.True(t, periode.Contient(fin), "la borne de fin est incluse")
	require.True(t, periode.Contient(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)))
	require.False(t, periode.Contient(debut.AddDate(0, 0, -1)))
	require.False(t, periode.Contient(fin.AddDate(0, 0, 1)))
}

func TestPeriodeBornesOuvertes(t *testing.T) {
	require.True(t, dto.Periode{}.Contient(time.Date(1990, 6, 1, 0, 0, 0, 0, time.UTC)))

	fin := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	sansDebut := dto.Periode{Fin: &fin}
	require.True(t, sansDebut.Contient(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.False(t, sansDebut.Contient(fin.AddDate(0, 0, 1)))
}
