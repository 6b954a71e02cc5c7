// Package output provides annotation output formatters.
package output

import (
	"github.com/genoinsight/genoinsight/internal/clinical"
)

// Writer is the interface annotation formatters implement. Write is called
// once per annotation in batch order; WriteReport once at the end with the
// cohort report; Flush completes the output.
type Writer interface {
	WriteHeader() error
	Write(ann *clinical.Annotation) error
	WriteReport(report *clinical.Report) error
	Flush() error
}
