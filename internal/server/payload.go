package server

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/genoinsight/genoinsight/internal/vcf"
)

// Quality is a VCF-style quality value in a JSON payload: a number, a
// numeric string, "." or null. "." and null mean missing, never zero.
type Quality struct {
	Value float64
	Known bool
}

// UnmarshalJSON accepts numbers, numeric strings, "." and null.
func (q *Quality) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `"."` {
		*q = Quality{}
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*q = Quality{Value: f, Known: true}
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("invalid quality value %s", s)
	}
	f, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return fmt.Errorf("invalid quality value %q", str)
	}
	*q = Quality{Value: f, Known: true}
	return nil
}

// MarshalJSON renders missing quality as ".".
func (q Quality) MarshalJSON() ([]byte, error) {
	if !q.Known {
		return []byte(`"."`), nil
	}
	return json.Marshal(q.Value)
}

// VariantPayload is the direct API submission shape for one variant.
type VariantPayload struct {
	ID              string  `json:"id" binding:"required"`
	Gene            string  `json:"gene"`
	Consequence     string  `json:"consequence"`
	AlleleFrequency float64 `json:"allele_frequency"`
	Quality         Quality `json:"quality"`
}

// ToVariant converts an API payload into a variant record. Positional
// fields are recovered from a canonical chrom:pos:ref>alt ID when possible;
// other ID shapes stay opaque. Missing gene/consequence default to Unknown,
// matching the VCF parser.
func (p *VariantPayload) ToVariant() *vcf.Variant {
	v := &vcf.Variant{
		ID:          p.ID,
		Gene:        p.Gene,
		Consequence: p.Consequence,
		CohortAF:    p.AlleleFrequency,
		Qual:        p.Quality.Value,
		QualKnown:   p.Quality.Known,
		Filter:      ".",
	}
	if v.Gene == "" {
		v.Gene = "Unknown"
	}
	if v.Consequence == "" {
		v.Consequence = "Unknown"
	}
	if chrom, pos, ref, alt, ok := vcf.ParseVariantID(p.ID); ok {
		v.Chrom, v.Pos, v.Ref, v.Alt = chrom, pos, ref, alt
	}
	return v
}
