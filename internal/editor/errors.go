// Package editor applies structured edits to the resume document and derives its completeness score.
package editor

import (
	"fmt"

	"github.com/jonathan/resume-builder/internal/types"
)

// SectionError reports an operation used on a section that does not support it.
type SectionError struct {
	Section types.Section
	Message string
}

func (e *SectionError) Error() string {
	return fmt.Sprintf("section %q: %s", e.Section, e.Message)
}

// FieldError reports a field that does not belong to the section.
type FieldError struct {
	Section types.Section
	Field   string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("section %q has no field %q (want one of %v)", e.Section, e.Field, e.Section.Fields())
}

// IndexError reports an index outside the current list. Indices come from
// rendering the controller's own list, so this is a caller bug.
type IndexError struct {
	Section types.Section
	Index   int
	Len     int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range for section %q (length %d)", e.Index, e.Section, e.Len)
}
