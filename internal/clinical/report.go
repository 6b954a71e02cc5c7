package clinical

import (
	"sort"
	"strings"
)

// MaxPriorityVariants caps the prioritized variant list in a report.
const MaxPriorityVariants = 5

// ReportSummary counts annotations per classification bucket. Counting is by
// substring match, so "Likely Pathogenic" lands in the pathogenic bucket and
// "Likely Benign" in the benign bucket.
type ReportSummary struct {
	TotalVariants int `json:"total_variants"`
	Pathogenic    int `json:"pathogenic"`
	Uncertain     int `json:"uncertain"`
	Benign        int `json:"benign"`
}

// Report is the cohort-level reduction of a batch of annotations.
// Recomputed fresh per batch; holds no persistent identity.
type Report struct {
	Summary                    ReportSummary `json:"summary"`
	PriorityVariants           []*Annotation `json:"priority_variants"`
	GeneticCounselingIndicated bool          `json:"genetic_counseling_indicated"`
}

// Summarize reduces a batch of annotations into a clinical report.
// Priority variants are the Pathogenic / Likely Pathogenic calls sorted
// descending by probability (stable, so input order breaks ties), truncated
// to MaxPriorityVariants. An empty batch yields zero counts and no
// counseling indication.
func Summarize(annotations []*Annotation) *Report {
	summary := ReportSummary{TotalVariants: len(annotations)}
	priority := []*Annotation{}

	for _, ann := range annotations {
		class := ann.Prediction.Classification
		if strings.Contains(class, "Pathogenic") {
			summary.Pathogenic++
		}
		if strings.Contains(class, "Uncertain") {
			summary.Uncertain++
		}
		if strings.Contains(class, "Benign") {
			summary.Benign++
		}
		if isPathogenicCall(class) {
			priority = append(priority, ann)
		}
	}

	counseling := len(priority) > 0

	sort.SliceStable(priority, func(i, j int) bool {
		return priority[i].Prediction.PathogenicProbability > priority[j].Prediction.PathogenicProbability
	})
	if len(priority) > MaxPriorityVariants {
		priority = priority[:MaxPriorityVariants]
	}

	return &Report{
		Summary:                    summary,
		PriorityVariants:           priority,
		GeneticCounselingIndicated: counseling,
	}
}
