package vcf

// VariantSource yields variants one at a time. Next returns nil, nil when
// the source is exhausted. Parser implements this for VCF streams; batch
// API payloads use SliceSource.
type VariantSource interface {
	Next() (*Variant, error)
}

// SliceSource adapts an in-memory variant slice to VariantSource.
type SliceSource struct {
	variants []*Variant
	pos      int
}

// NewSliceSource creates a source over the given variants.
func NewSliceSource(variants []*Variant) *SliceSource {
	return &SliceSource{variants: variants}
}

// Next returns the next variant, or nil, nil when exhausted.
func (s *SliceSource) Next() (*Variant, error) {
	if s.pos >= len(s.variants) {
		return nil, nil
	}
	v := s.variants[s.pos]
	s.pos++
	return v, nil
}
