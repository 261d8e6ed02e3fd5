package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	dossierdto "ecmis-core/internal/modules/dossiers/dto"
	facturationdto "ecmis-core/internal/modules/facturation/dto"
	"ecmis-core/internal/modules/reporting/dto"
)

type fakeDossierFetcher struct {
	rows map[dossierdto.SousDomaine][]dto.DossierRow
	errs map[dossierdto.SousDomaine]error
}

func (f *fakeDossierFetcher) FetchDossiers(ctx context.Context, domaine dossierdto.SousDomaine, scope dto.Scope) ([]dto.DossierRow, error) {
	if err := f.errs[domaine]; err != nil {
		return nil, err
	}
	return f.rows[domaine], nil
}

type fakeBillingFetcher struct {
	rows map[facturationdto.TypeDemande][]dto.BillingRow
	errs map[facturationdto.TypeDemande]error
}

func (f *fakeBillingFetcher) FetchFactures(ctx context.Context, typeDemande facturationdto.TypeDemande, scope dto.Scope) ([]dto.BillingRow, error) {
	if err := f.errs[typeDemande]; err != nil {
		return nil, err
	}
	return f.rows[typeDemande], nil
}

func TestJoinDossiersPartialFailure(t *testing.T) {
	errIST := errors.New("table indisponible")
	fetcher := &fakeDossierFetcher{
		rows: map[dossierdto.SousDomaine][]dto.DossierRow{
			dossierdto.SousDomaineObstetrique: {{ID: "dossier-1", CliniqueID: "clinique-a"}},
		},
		errs: map[dossierdto.SousDomaine]error{
			dossierdto.SousDomaineIST: errIST,
		},
	}
	joiner := NewRecordJoiner(fetcher, &fakeBillingFetcher{}, zap.NewNop())

	results := joiner.JoinDossiers(context.Background(), dto.Scope{CliniqueIDs: []string{"clinique-a"}}, dossierdto.SousDomaines)

	require.Len(t, results, len(dossierdto.SousDomaines))
	byDomaine := make(map[dossierdto.SousDomaine]dto.SousDomaineResult, len(results))
	for i, result := range results {
		require.Equal(t, dossierdto.SousDomaines[i], result.Domaine, "un résultat par sous-domaine, dans l'ordre d'entrée")
		byDomaine[result.Domaine] = result
	}

	require.ErrorIs(t, byDomaine[dossierdto.SousDomaineIST].Err, errIST)
	require.NoError(t, byDomaine[dossierdto.SousDomaineObstetrique].Err)
	require.Len(t, byDomaine[dossierdto.SousDomaineObstetrique].Rows, 1)
	require.NoError(t, byDomaine[dossierdto.SousDomaineVIH].Err, "l'échec d'un sous-domaine n'affecte pas les autres")
}

func TestJoinBillingKeepsOrder(t *testing.T) {
	fetcher := &fakeBillingFetcher{
		rows: map[facturationdto.TypeDemande][]dto.BillingRow{
			facturationdto.TypeExamen:  {{ID: "facture-1", CliniqueID: "clinique-a"}},
			facturationdto.TypeProduit: {{ID: "facture-2", CliniqueID: "clinique-a"}},
		},
	}
	joiner := NewRecordJoiner(&fakeDossierFetcher{}, fetcher, zap.NewNop())

	types := []facturationdto.TypeDemande{
		facturationdto.TypeExamen,
		facturationdto.TypeEchographie,
		facturationdto.TypeProduit,
		facturationdto.TypePrestation,
	}
	results := joiner.JoinBilling(context.Background(), dto.Scope{CliniqueIDs: []string{"clinique-a"}}, types)

	require.Len(t, results, 4)
	for i, result := range results {
		require.Equal(t, types[i], result.Type)
		require.NoError(t, result.Err)
	}
	require.Len(t, results[0].Rows, 1)
	require.Empty(t, results[1].Rows)
}

func TestJoinDossiersDropsRowsOutsideScope(t *testing.T) {
	fetcher := &fakeDossierFetcher{
		rows: map[dossierdto.SousDomaine][]dto.DossierRow{
			dossierdto.SousDomaineObstetrique: {
				{ID: "dossier-1", CliniqueID: "clinique-a"},
				{ID: "dossier-2", CliniqueID: "clinique-z"},
			},
		},
	}
	joiner := NewRecordJoiner(fetcher, &fakeBillingFetcher{}, zap.NewNop())

	results := joiner.JoinDossiers(context.Background(),
		dto.Scope{CliniqueIDs: []string{"clinique-a"}},
		[]dossierdto.SousDomaine{dossierdto.SousDomaineObstetrique})

	require.Len(t, results[0].Rows, 1)
	require.Equal(t, "dossier-1", results[0].Rows[0].ID)
}
