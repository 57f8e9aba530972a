// Package export turns a rendered resume page into a single-page PDF.
package export

import "fmt"

// Export pipeline stages reported in ExportError.
const (
	StageRender    = "render"
	StageRasterize = "rasterize"
	StagePlace     = "place"
	StageWrite     = "write"
	StageVerify    = "verify"
)

// ExportError represents a failure in one stage of the export pipeline
type ExportError struct {
	Stage   string
	Message string
	Cause   error
}

func (e *ExportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("export %s failed: %s: %v", e.Stage, e.Message, e.Cause)
	}
	return fmt.Sprintf("export %s failed: %s", e.Stage, e.Message)
}

func (e *ExportError) Unwrap() error {
	return e.Cause
}
