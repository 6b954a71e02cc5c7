package duckdb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genoinsight/genoinsight/internal/clinical"
	"github.com/genoinsight/genoinsight/internal/predict"
	"github.com/genoinsight/genoinsight/internal/vcf"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func storedAnnotation(id, ancestry, class string, prob float64) *clinical.Annotation {
	return &clinical.Annotation{
		Variant: &vcf.Variant{
			ID:          id,
			Chrom:       "chr1",
			Pos:         100,
			Ref:         "A",
			Alt:         "G",
			Gene:        "BRCA1",
			Consequence: "missense_variant",
		},
		Prediction: &predict.Prediction{
			VariantID:             id,
			Classification:        class,
			PathogenicProbability: prob,
			Confidence:            prob,
			ModelUsed:             "single",
		},
		ACMGCriteria:   []string{"PM2", "PP3"},
		Actionability:  clinical.ActionabilityHigh,
		ConfidenceTier: clinical.ConfidenceHigh,
		PopulationData: clinical.PopulationData{
			PatientAncestry: ancestry,
			AlleleFrequency: 0.0001,
		},
	}
}

func TestStore_WriteAndLookup(t *testing.T) {
	s := openTestStore(t)

	anns := []*clinical.Annotation{
		storedAnnotation("chr1:100:A>G", "European", predict.ClassPathogenic, 0.94),
		storedAnnotation("chr1:100:A>G", "East Asian", predict.ClassPathogenic, 0.94),
		storedAnnotation("chr2:200:C>T", "European", predict.ClassBenign, 0.02),
	}
	require.NoError(t, s.WriteAnnotations(anns))

	got, err := s.LookupVariant("chr1:100:A>G")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "chr1:100:A>G", got[0].VariantID)
	assert.Equal(t, "BRCA1", got[0].Gene)
	assert.Equal(t, predict.ClassPathogenic, got[0].Classification)
	assert.Equal(t, 0.94, got[0].Probability)
	assert.Equal(t, []string{"PM2", "PP3"}, got[0].ACMGCriteria)

	missing, err := s.LookupVariant("chr9:1:A>G")
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestStore_WriteDeduplicates(t *testing.T) {
	s := openTestStore(t)

	ann := storedAnnotation("chr1:100:A>G", "European", predict.ClassPathogenic, 0.94)
	require.NoError(t, s.WriteAnnotations([]*clinical.Annotation{ann, ann, ann}))

	got, err := s.LookupVariant("chr1:100:A>G")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestStore_WriteEmptyBatch(t *testing.T) {
	s := openTestStore(t)
	assert.NoError(t, s.WriteAnnotations(nil))
}

func TestStore_CountByClassification(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.WriteAnnotations([]*clinical.Annotation{
		storedAnnotation("chr1:1:A>G", "European", predict.ClassPathogenic, 0.95),
		storedAnnotation("chr1:2:A>G", "European", predict.ClassPathogenic, 0.92),
		storedAnnotation("chr1:3:A>G", "European", predict.ClassBenign, 0.02),
	}))

	counts, err := s.CountByClassification()
	require.NoError(t, err)
	assert.Equal(t, 2, counts[predict.ClassPathogenic])
	assert.Equal(t, 1, counts[predict.ClassBenign])
}

func TestStore_ClearAnnotations(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.WriteAnnotations([]*clinical.Annotation{
		storedAnnotation("chr1:1:A>G", "European", predict.ClassPathogenic, 0.95),
	}))
	require.NoError(t, s.ClearAnnotations())

	got, err := s.LookupVariant("chr1:1:A>G")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_PersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genoinsight.duckdb")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.WriteAnnotations([]*clinical.Annotation{
		storedAnnotation("chr1:1:A>G", "European", predict.ClassPathogenic, 0.95),
	}))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.LookupVariant("chr1:1:A>G")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
