package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dshills/prcritic/internal/report"
)

// JSONWriter outputs the full report in the export format: a flat object
// with pr_data, analysis, feedback, score, exported_at, and version keys.
type JSONWriter struct{}

func (j *JSONWriter) Write(w io.Writer, rep *report.Report) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	_, err = fmt.Fprintln(w)
	return err
}
