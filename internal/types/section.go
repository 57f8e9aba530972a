package types

import (
	"fmt"
	"slices"
)

// Section names one of the four top-level parts of a ResumeDocument.
type Section string

// Section values. The string forms are the persisted JSON keys.
const (
	SectionPersonalInfo   Section = "personalInfo"
	SectionEducation      Section = "education"
	SectionWorkExperience Section = "workExperience"
	SectionSkills         Section = "skills"
)

// Sections lists every section in document order.
var Sections = []Section{
	SectionPersonalInfo,
	SectionEducation,
	SectionWorkExperience,
	SectionSkills,
}

// Field names, grouped by the section that owns them.
const (
	FieldName  = "name"
	FieldEmail = "email"
	FieldPhone = "phone"

	FieldInstitution = "institution"
	FieldDegree      = "degree"
	FieldYear        = "year"

	FieldCompany     = "company"
	FieldPosition    = "position"
	FieldDuration    = "duration"
	FieldDescription = "description"
)

var sectionFields = map[Section][]string{
	SectionPersonalInfo:   {FieldName, FieldEmail, FieldPhone},
	SectionEducation:      {FieldInstitution, FieldDegree, FieldYear},
	SectionWorkExperience: {FieldCompany, FieldPosition, FieldDuration, FieldDescription},
	SectionSkills:         {FieldName},
}

var sectionTitles = map[Section]string{
	SectionPersonalInfo:   "Personal Info",
	SectionEducation:      "Education",
	SectionWorkExperience: "Work Experience",
	SectionSkills:         "Skills",
}

// ParseSection converts a string to a Section.
func ParseSection(s string) (Section, error) {
	sec := Section(s)
	if !sec.Valid() {
		return "", fmt.Errorf("unknown section %q (want one of %v)", s, Sections)
	}
	return sec, nil
}

// Valid reports whether s is one of the four known sections.
func (s Section) Valid() bool {
	_, ok := sectionFields[s]
	return ok
}

// IsList reports whether the section is an ordered list of entries.
func (s Section) IsList() bool {
	return s.Valid() && s != SectionPersonalInfo
}

// Fields returns the field names of the section (or of its entries, for list sections).
func (s Section) Fields() []string {
	return slices.Clone(sectionFields[s])
}

// HasField reports whether field belongs to the section.
func (s Section) HasField(field string) bool {
	return slices.Contains(sectionFields[s], field)
}

// Title returns the human readable heading of the section.
func (s Section) Title() string {
	if t, ok := sectionTitles[s]; ok {
		return t
	}
	return string(s)
}
