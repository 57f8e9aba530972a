// Package types provides type definitions for the resume document and the edits applied to it.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ResumeDocument is the single persisted entity: personal info plus three ordered list sections.
type ResumeDocument struct {
	PersonalInfo   PersonalInfo     `json:"personalInfo"`
	Education      []EducationEntry `json:"education"`
	WorkExperience []WorkEntry      `json:"workExperience"`
	Skills         []SkillEntry     `json:"skills"`
}

// PersonalInfo holds the contact block of the resume
type PersonalInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// EducationEntry represents one education record
type EducationEntry struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Year        string `json:"year"`
}

// WorkEntry represents one work history record
type WorkEntry struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// SkillEntry represents one skill
type SkillEntry struct {
	Name string `json:"name"`
}

// NewDocument returns the empty skeleton: all personal fields empty, all lists empty (never nil).
func NewDocument() ResumeDocument {
	return ResumeDocument{
		Education:      []EducationEntry{},
		WorkExperience: []WorkEntry{},
		Skills:         []SkillEntry{},
	}
}

// Clone returns a deep copy that shares no backing arrays with d.
func (d ResumeDocument) Clone() ResumeDocument {
	out := ResumeDocument{
		PersonalInfo:   d.PersonalInfo,
		Education:      make([]EducationEntry, len(d.Education)),
		WorkExperience: make([]WorkEntry, len(d.WorkExperience)),
		Skills:         make([]SkillEntry, len(d.Skills)),
	}
	copy(out.Education, d.Education)
	copy(out.WorkExperience, d.WorkExperience)
	copy(out.Skills, d.Skills)
	return out
}

// Normalize replaces nil lists with empty ones so a decoded document
// always has every section present.
func (d *ResumeDocument) Normalize() {
	if d.Education == nil {
		d.Education = []EducationEntry{}
	}
	if d.WorkExperience == nil {
		d.WorkExperience = []WorkEntry{}
	}
	if d.Skills == nil {
		d.Skills = []SkillEntry{}
	}
}

// Len returns the number of entries in a list section, or 0 for the record section.
func (d ResumeDocument) Len(section Section) int {
	switch section {
	case SectionEducation:
		return len(d.Education)
	case SectionWorkExperience:
		return len(d.WorkExperience)
	case SectionSkills:
		return len(d.Skills)
	default:
		return 0
	}
}
