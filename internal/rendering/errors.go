// Package rendering projects the resume document into template-specific views and output formats.
package rendering

import "fmt"

// Output formats named in rendering errors.
const (
	FormatHTML  = "html"
	FormatLaTeX = "latex"
)

// TemplateError reports a template that could not be loaded, parsed or executed.
type TemplateError struct {
	Format  string
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s template error: %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s template error: %s", e.Format, e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError reports a view that has no output for the requested template.
type RenderError struct {
	Template string
	Message  string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %s", e.Template, e.Message)
}
