package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genoinsight/genoinsight/internal/clinical"
	"github.com/genoinsight/genoinsight/internal/predict"
	"github.com/genoinsight/genoinsight/internal/vcf"
)

func sampleAnnotation() *clinical.Annotation {
	return &clinical.Annotation{
		Variant: &vcf.Variant{
			ID:          "chr17:43044295:T>C",
			Gene:        "BRCA1",
			Consequence: "frameshift_variant",
		},
		Prediction: &predict.Prediction{
			VariantID:             "chr17:43044295:T>C",
			Classification:        predict.ClassPathogenic,
			PathogenicProbability: 0.94,
			Confidence:            0.94,
			ModelUsed:             "single",
		},
		ACMGCriteria:   []string{"PVS1", "PM2"},
		Actionability:  clinical.ActionabilityHigh,
		ConfidenceTier: clinical.ConfidenceHigh,
		PopulationData: clinical.PopulationData{
			PatientAncestry: "European",
			PopulationKey:   "Non_Finnish_European",
			AlleleFrequency: 0.0001,
			KnownVariant:    true,
		},
	}
}

func TestTabWriter(t *testing.T) {
	var buf bytes.Buffer
	tw := NewTabWriter(&buf)

	require.NoError(t, tw.WriteHeader())
	require.NoError(t, tw.Write(sampleAnnotation()))
	require.NoError(t, tw.WriteReport(clinical.Summarize([]*clinical.Annotation{sampleAnnotation()})))
	require.NoError(t, tw.Flush())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 4)

	assert.True(t, strings.HasPrefix(lines[0], "#Variant_id\tGene\t"))

	fields := strings.Split(lines[1], "\t")
	require.Len(t, fields, 12)
	assert.Equal(t, "chr17:43044295:T>C", fields[0])
	assert.Equal(t, "BRCA1", fields[1])
	assert.Equal(t, "Pathogenic", fields[3])
	// Probabilities render with exactly three decimals.
	assert.Equal(t, "0.940", fields[4])
	assert.Equal(t, "PVS1,PM2", fields[7])
	assert.Equal(t, "European", fields[11])

	assert.Contains(t, buf.String(), "## total_variants=1 pathogenic=1 uncertain=0 benign=0")
	assert.Contains(t, buf.String(), "## genetic_counseling_indicated=true")
	assert.Contains(t, buf.String(), "## priority chr17:43044295:T>C Pathogenic p=0.940")
}

func TestTabWriter_EmptyCriteria(t *testing.T) {
	var buf bytes.Buffer
	tw := NewTabWriter(&buf)

	ann := sampleAnnotation()
	ann.ACMGCriteria = nil
	require.NoError(t, tw.Write(ann))
	require.NoError(t, tw.Flush())

	fields := strings.Split(strings.TrimRight(buf.String(), "\n"), "\t")
	assert.Equal(t, "-", fields[7])
}

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	jw := NewJSONWriter(&buf)

	ann := sampleAnnotation()
	require.NoError(t, jw.WriteHeader())
	require.NoError(t, jw.Write(ann))
	require.NoError(t, jw.WriteReport(clinical.Summarize([]*clinical.Annotation{ann})))
	require.NoError(t, jw.Flush())

	var doc struct {
		TotalAnalyzed int `json:"total_analyzed"`
		Annotations   []struct {
			Variant struct {
				ID   string `json:"id"`
				Gene string `json:"gene"`
			} `json:"variant"`
			Prediction struct {
				Classification string `json:"classification"`
			} `json:"ml_classification"`
		} `json:"annotations"`
		ClinicalReport struct {
			Summary struct {
				TotalVariants int `json:"total_variants"`
				Pathogenic    int `json:"pathogenic"`
			} `json:"summary"`
			GeneticCounselingIndicated bool `json:"genetic_counseling_indicated"`
		} `json:"clinical_report"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, 1, doc.TotalAnalyzed)
	require.Len(t, doc.Annotations, 1)
	assert.Equal(t, "chr17:43044295:T>C", doc.Annotations[0].Variant.ID)
	assert.Equal(t, "BRCA1", doc.Annotations[0].Variant.Gene)
	assert.Equal(t, "Pathogenic", doc.Annotations[0].Prediction.Classification)
	assert.Equal(t, 1, doc.ClinicalReport.Summary.TotalVariants)
	assert.True(t, doc.ClinicalReport.GeneticCounselingIndicated)
}

func TestJSONWriter_EmptyBatch(t *testing.T) {
	var buf bytes.Buffer
	jw := NewJSONWriter(&buf)

	require.NoError(t, jw.WriteHeader())
	require.NoError(t, jw.Flush())

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, float64(0), doc["total_analyzed"])
	// Annotations is an empty array, not null.
	assert.Equal(t, []any{}, doc["annotations"])
}
