package server

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuality_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Quality
		wantErr bool
	}{
		{"number", `55.5`, Quality{Value: 55.5, Known: true}, false},
		{"numeric string", `"42"`, Quality{Value: 42, Known: true}, false},
		{"dot means missing", `"."`, Quality{}, false},
		{"null means missing", `null`, Quality{}, false},
		{"non-numeric string", `"high"`, Quality{}, true},
		{"object", `{}`, Quality{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var q Quality
			err := json.Unmarshal([]byte(tt.input), &q)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, q)
		})
	}
}

func TestQuality_MarshalJSON(t *testing.T) {
	known, err := json.Marshal(Quality{Value: 55, Known: true})
	require.NoError(t, err)
	assert.Equal(t, "55", string(known))

	missing, err := json.Marshal(Quality{})
	require.NoError(t, err)
	assert.Equal(t, `"."`, string(missing))
}

func TestVariantPayload_ToVariant(t *testing.T) {
	p := &VariantPayload{
		ID:              "chr17:43044295:T>C",
		Gene:            "BRCA1",
		Consequence:     "splice_site_variant",
		AlleleFrequency: 0.0003,
		Quality:         Quality{Value: 55, Known: true},
	}

	v := p.ToVariant()
	assert.Equal(t, "chr17", v.Chrom)
	assert.Equal(t, int64(43044295), v.Pos)
	assert.Equal(t, "T", v.Ref)
	assert.Equal(t, "C", v.Alt)
	assert.Equal(t, 55.0, v.Qual)
	assert.True(t, v.QualKnown)
	assert.Equal(t, ".", v.Filter)
}

func TestVariantPayload_ToVariant_Defaults(t *testing.T) {
	v := (&VariantPayload{ID: "rs12345"}).ToVariant()

	// Opaque ID stays opaque; missing fields take the parser defaults.
	assert.Empty(t, v.Chrom)
	assert.Equal(t, "Unknown", v.Gene)
	assert.Equal(t, "Unknown", v.Consequence)
	assert.False(t, v.QualKnown)
}
