package duckdb

import (
	"context"
	"database/sql/driver"
	"fmt"
	"strings"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/genoinsight/genoinsight/internal/clinical"
)

// annotationKey is the composite key for deduplicating annotations before
// writing (the same variant can appear in several uploaded files).
type annotationKey struct {
	variantID, ancestry string
}

// StoredAnnotation is the flattened row shape returned by lookups.
type StoredAnnotation struct {
	VariantID      string
	Gene           string
	Consequence    string
	Classification string
	Probability    float64
	Confidence     float64
	ModelUsed      string
	ACMGCriteria   []string
	Actionability  string
	ConfidenceTier string
	Ancestry       string
	PopulationAF   float64
}

// WriteAnnotations batch-inserts annotations using the Appender API.
// Duplicate (variant_id, ancestry) entries are deduplicated before writing.
func (s *Store) WriteAnnotations(annotations []*clinical.Annotation) error {
	if len(annotations) == 0 {
		return nil
	}

	seen := make(map[annotationKey]bool, len(annotations))
	deduped := make([]*clinical.Annotation, 0, len(annotations))
	for _, ann := range annotations {
		k := annotationKey{ann.Variant.ID, ann.PopulationData.PatientAncestry}
		if !seen[k] {
			seen[k] = true
			deduped = append(deduped, ann)
		}
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "annotations")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	for _, ann := range deduped {
		v, p := ann.Variant, ann.Prediction
		if err := appender.AppendRow(
			v.ID, v.Chrom, v.Pos, v.Ref, v.Alt, v.Gene, v.Consequence,
			p.Classification, p.PathogenicProbability, p.Confidence, p.ModelUsed,
			strings.Join(ann.ACMGCriteria, ","),
			ann.Actionability, ann.ConfidenceTier,
			ann.PopulationData.PatientAncestry,
			ann.PopulationData.AlleleFrequency,
		); err != nil {
			return fmt.Errorf("append annotation: %w", err)
		}
	}

	return appender.Flush()
}

// LookupVariant returns the stored annotations for a variant across all
// ancestries previously analyzed.
func (s *Store) LookupVariant(variantID string) ([]*StoredAnnotation, error) {
	rows, err := s.db.Query(`SELECT
		variant_id, gene, consequence, classification, probability, confidence,
		model_used, acmg_criteria, actionability, confidence_tier,
		ancestry, population_af
		FROM annotations
		WHERE variant_id = ?`, variantID)
	if err != nil {
		return nil, fmt.Errorf("query annotations: %w", err)
	}
	defer rows.Close()

	var stored []*StoredAnnotation
	for rows.Next() {
		var sa StoredAnnotation
		var criteria string
		if err := rows.Scan(
			&sa.VariantID, &sa.Gene, &sa.Consequence, &sa.Classification,
			&sa.Probability, &sa.Confidence, &sa.ModelUsed, &criteria,
			&sa.Actionability, &sa.ConfidenceTier, &sa.Ancestry, &sa.PopulationAF,
		); err != nil {
			return nil, fmt.Errorf("scan annotation: %w", err)
		}
		if criteria != "" {
			sa.ACMGCriteria = strings.Split(criteria, ",")
		}
		stored = append(stored, &sa)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate annotations: %w", err)
	}
	return stored, nil
}

// CountByClassification returns the stored annotation counts per
// classification label.
func (s *Store) CountByClassification() (map[string]int, error) {
	rows, err := s.db.Query(`SELECT classification, COUNT(*)
		FROM annotations GROUP BY classification`)
	if err != nil {
		return nil, fmt.Errorf("query classification counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var class string
		var n int
		if err := rows.Scan(&class, &n); err != nil {
			return nil, fmt.Errorf("scan classification count: %w", err)
		}
		counts[class] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate classification counts: %w", err)
	}
	return counts, nil
}

// ClearAnnotations removes all stored annotations.
func (s *Store) ClearAnnotations() error {
	_, err := s.db.Exec("DELETE FROM annotations")
	return err
}
