package output

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/genoinsight/genoinsight/internal/clinical"
)

// TabWriter writes annotations in tab-delimited format, one line per
// variant, with the cohort summary appended as comment lines.
type TabWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewTabWriter creates a new tab-delimited writer.
func NewTabWriter(w io.Writer) *TabWriter {
	return &TabWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"#Variant_id",
			"Gene",
			"Consequence",
			"Classification",
			"Probability",
			"Confidence",
			"Model",
			"ACMG_criteria",
			"Actionability",
			"Confidence_tier",
			"Population_AF",
			"Ancestry",
		},
	}
}

// WriteHeader writes the header line.
func (tw *TabWriter) WriteHeader() error {
	_, err := tw.w.WriteString(strings.Join(tw.columns, "\t") + "\n")
	return err
}

// Write writes a single annotation.
func (tw *TabWriter) Write(ann *clinical.Annotation) error {
	criteria := "-"
	if len(ann.ACMGCriteria) > 0 {
		criteria = strings.Join(ann.ACMGCriteria, ",")
	}

	fields := []string{
		ann.Variant.ID,
		ann.Variant.Gene,
		ann.Variant.Consequence,
		ann.Prediction.Classification,
		strconv.FormatFloat(ann.Prediction.PathogenicProbability, 'f', 3, 64),
		strconv.FormatFloat(ann.Prediction.Confidence, 'f', 3, 64),
		ann.Prediction.ModelUsed,
		criteria,
		ann.Actionability,
		ann.ConfidenceTier,
		strconv.FormatFloat(ann.PopulationData.AlleleFrequency, 'g', -1, 64),
		ann.PopulationData.PatientAncestry,
	}

	_, err := tw.w.WriteString(strings.Join(fields, "\t") + "\n")
	return err
}

// WriteReport appends the cohort summary as comment lines.
func (tw *TabWriter) WriteReport(report *clinical.Report) error {
	lines := []string{
		fmt.Sprintf("## total_variants=%d pathogenic=%d uncertain=%d benign=%d",
			report.Summary.TotalVariants, report.Summary.Pathogenic,
			report.Summary.Uncertain, report.Summary.Benign),
		fmt.Sprintf("## genetic_counseling_indicated=%t", report.GeneticCounselingIndicated),
	}
	for _, ann := range report.PriorityVariants {
		lines = append(lines, fmt.Sprintf("## priority %s %s p=%.3f",
			ann.Variant.ID, ann.Prediction.Classification,
			ann.Prediction.PathogenicProbability))
	}

	_, err := tw.w.WriteString(strings.Join(lines, "\n") + "\n")
	return err
}

// Flush flushes buffered output.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}
