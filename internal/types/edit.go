package types

import (
	"github.com/go-playground/validator/v10"
)

// EditOp identifies a structured edit operation.
type EditOp string

// Edit operations.
const (
	EditSet    EditOp = "set"
	EditAdd    EditOp = "add"
	EditRemove EditOp = "remove"
)

// Edit is the serialized form of one structured edit, as sent by the HTTP
// surface or built by the CLI and terminal editor.
type Edit struct {
	Op      EditOp  `json:"op" validate:"required,oneof=set add remove"`
	Section Section `json:"section" validate:"required,oneof=personalInfo education workExperience skills"`
	Field   string  `json:"field,omitempty" validate:"required_if=Op set"`
	Value   string  `json:"value,omitempty"`
	Index   *int    `json:"index,omitempty" validate:"omitempty,min=0"`
}

// TemplateRequest selects the active template.
type TemplateRequest struct {
	Template string `json:"template" validate:"required"`
}

// Validate validates the Edit using the validator.
func (e *Edit) Validate() error {
	validate := validator.New()
	return validate.Struct(e)
}

// Validate validates the TemplateRequest using the validator.
func (r *TemplateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// IntPtr returns a pointer to i, for building edits with an index.
func IntPtr(i int) *int {
	return &i
}
