package types

// Template is a named layout variant used for preview and export.
type Template string

// Recognized templates.
const (
	TemplateModern  Template = "modern"
	TemplateClassic Template = "classic"

	// DefaultTemplate is used on fresh load and for any unrecognized value.
	DefaultTemplate = TemplateModern
)

// Templates lists the recognized templates.
var Templates = []Template{TemplateModern, TemplateClassic}

// Valid reports whether t is a recognized template.
func (t Template) Valid() bool {
	return t == TemplateModern || t == TemplateClassic
}

// OrDefault returns t when recognized, DefaultTemplate otherwise.
func (t Template) OrDefault() Template {
	if t.Valid() {
		return t
	}
	return DefaultTemplate
}

// ParseTemplate maps any string to a template. Unknown values become
// DefaultTemplate; the boolean reports whether s was recognized.
func ParseTemplate(s string) (Template, bool) {
	t := Template(s)
	if t.Valid() {
		return t, true
	}
	return DefaultTemplate, false
}
