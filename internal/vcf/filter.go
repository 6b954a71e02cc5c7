package vcf

// FilterOptions holds the quality and frequency thresholds for variant
// filtering. Defaults match the upstream pipeline defaults.
type FilterOptions struct {
	MinQuality  float64
	MaxCohortAF float64
	PassOnly    bool
}

// DefaultFilterOptions returns the standard filtering thresholds.
func DefaultFilterOptions() FilterOptions {
	return FilterOptions{
		MinQuality:  20.0,
		MaxCohortAF: 0.5,
		PassOnly:    true,
	}
}

// Filter returns the variants passing all thresholds, in input order.
// A variant fails when its quality is missing or below MinQuality, when
// PassOnly is set and FILTER is neither PASS nor ".", or when its cohort
// allele frequency exceeds MaxCohortAF.
func Filter(variants []*Variant, opts FilterOptions) []*Variant {
	filtered := make([]*Variant, 0, len(variants))

	for _, v := range variants {
		// Missing quality fails; it is never coerced to 0 here.
		if !v.QualKnown || v.Qual < opts.MinQuality {
			continue
		}
		if opts.PassOnly && v.Filter != "PASS" && v.Filter != "." {
			continue
		}
		if v.CohortAF > opts.MaxCohortAF {
			continue
		}
		filtered = append(filtered, v)
	}

	return filtered
}
