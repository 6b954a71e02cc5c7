// Package vcf provides VCF record parsing and variant filtering.
package vcf

import (
	"fmt"
	"strconv"
	"strings"
)

// Variant represents a single alternate allele at one genomic position.
// A multi-allelic VCF line is expanded into one Variant per ALT allele;
// the expanded records share chrom/pos/ref/qual/filter/info and differ
// only in Alt (and hence ID).
type Variant struct {
	ID          string  `json:"id"`
	Chrom       string  `json:"chromosome"`
	Pos         int64   `json:"position"`
	Ref         string  `json:"reference"`
	Alt         string  `json:"alternate"`
	Qual        float64 `json:"quality"`
	QualKnown   bool    `json:"quality_known"`
	Filter      string  `json:"filter"`
	Gene        string  `json:"gene"`
	Consequence string  `json:"consequence"`
	// CohortAF is the INFO AF value: the allele frequency observed in the
	// sequenced cohort. It is not a population (gnomAD) frequency and must
	// not be used as one.
	CohortAF float64        `json:"cohort_allele_frequency"`
	Info     map[string]any `json:"info,omitempty"`
}

// FormatVariantID returns the canonical variant identifier chrom:pos:ref>alt.
func FormatVariantID(chrom string, pos int64, ref, alt string) string {
	return fmt.Sprintf("%s:%d:%s>%s", chrom, pos, ref, alt)
}

// ParseVariantID splits a canonical chrom:pos:ref>alt identifier.
// Returns ok=false for identifiers in any other shape (rs IDs, etc.);
// callers keep such IDs opaque.
func ParseVariantID(id string) (chrom string, pos int64, ref, alt string, ok bool) {
	parts := strings.SplitN(id, ":", 3)
	if len(parts) != 3 {
		return "", 0, "", "", false
	}
	p, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return "", 0, "", "", false
	}
	alleles := strings.SplitN(parts[2], ">", 2)
	if len(alleles) != 2 || alleles[0] == "" || alleles[1] == "" {
		return "", 0, "", "", false
	}
	return parts[0], p, alleles[0], alleles[1], true
}

// QualOrZero returns the quality score, coerced to 0 when missing.
// Filtering decisions must use QualKnown instead; the zero coercion is
// only valid at the feature-extraction boundary.
func (v *Variant) QualOrZero() float64 {
	if !v.QualKnown {
		return 0
	}
	return v.Qual
}

// IsSNV returns true if the variant is a single nucleotide variant.
func (v *Variant) IsSNV() bool {
	return len(v.Ref) == 1 && len(v.Alt) == 1
}

// IsIndel returns true if the variant is an insertion or deletion.
func (v *Variant) IsIndel() bool {
	return len(v.Ref) != len(v.Alt)
}
