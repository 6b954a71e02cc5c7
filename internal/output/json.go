package output

import (
	"encoding/json"
	"io"

	"github.com/genoinsight/genoinsight/internal/clinical"
)

// jsonDocument is the envelope written by JSONWriter.
type jsonDocument struct {
	TotalAnalyzed  int                    `json:"total_analyzed"`
	Annotations    []*clinical.Annotation `json:"annotations"`
	ClinicalReport *clinical.Report       `json:"clinical_report,omitempty"`
}

// JSONWriter accumulates annotations and writes a single JSON document on
// Flush, matching the batch-analysis API response shape.
type JSONWriter struct {
	w   io.Writer
	doc jsonDocument
}

// NewJSONWriter creates a new JSON writer.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w, doc: jsonDocument{Annotations: []*clinical.Annotation{}}}
}

// WriteHeader is a no-op for JSON output.
func (jw *JSONWriter) WriteHeader() error {
	return nil
}

// Write buffers a single annotation.
func (jw *JSONWriter) Write(ann *clinical.Annotation) error {
	jw.doc.Annotations = append(jw.doc.Annotations, ann)
	jw.doc.TotalAnalyzed++
	return nil
}

// WriteReport attaches the cohort report to the document.
func (jw *JSONWriter) WriteReport(report *clinical.Report) error {
	jw.doc.ClinicalReport = report
	return nil
}

// Flush writes the accumulated document.
func (jw *JSONWriter) Flush() error {
	enc := json.NewEncoder(jw.w)
	enc.SetIndent("", "  ")
	return enc.Encode(jw.doc)
}
