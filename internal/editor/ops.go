package editor

import (
	"slices"

	"github.com/jonathan/resume-builder/internal/types"
)

// Operations in this file are pure: they never modify their input and
// return a new snapshot that shares no backing arrays with it.

// SetField sets a field of the record section (personalInfo).
func SetField(doc types.ResumeDocument, section types.Section, field, value string) (types.ResumeDocument, error) {
	if err := checkField(section, field); err != nil {
		return doc, err
	}
	if section.IsList() {
		return doc, &SectionError{Section: section, Message: "list section requires an entry index"}
	}

	out := doc.Clone()
	switch field {
	case types.FieldName:
		out.PersonalInfo.Name = value
	case types.FieldEmail:
		out.PersonalInfo.Email = value
	case types.FieldPhone:
		out.PersonalInfo.Phone = value
	}
	return out, nil
}

// SetEntryField replaces one field of the entry at index, leaving its other fields untouched.
func SetEntryField(doc types.ResumeDocument, section types.Section, index int, field, value string) (types.ResumeDocument, error) {
	if err := checkField(section, field); err != nil {
		return doc, err
	}
	if !section.IsList() {
		return doc, &SectionError{Section: section, Message: "record section takes no entry index"}
	}
	if err := checkIndex(doc, section, index); err != nil {
		return doc, err
	}

	out := doc.Clone()
	switch section {
	case types.SectionEducation:
		e := &out.Education[index]
		switch field {
		case types.FieldInstitution:
			e.Institution = value
		case types.FieldDegree:
			e.Degree = value
		case types.FieldYear:
			e.Year = value
		}
	case types.SectionWorkExperience:
		e := &out.WorkExperience[index]
		switch field {
		case types.FieldCompany:
			e.Company = value
		case types.FieldPosition:
			e.Position = value
		case types.FieldDuration:
			e.Duration = value
		case types.FieldDescription:
			e.Description = value
		}
	case types.SectionSkills:
		out.Skills[index].Name = value
	}
	return out, nil
}

// AddEntry appends an all-empty entry to a list section.
func AddEntry(doc types.ResumeDocument, section types.Section) (types.ResumeDocument, error) {
	if err := checkList(section); err != nil {
		return doc, err
	}

	out := doc.Clone()
	switch section {
	case types.SectionEducation:
		out.Education = append(out.Education, types.EducationEntry{})
	case types.SectionWorkExperience:
		out.WorkExperience = append(out.WorkExperience, types.WorkEntry{})
	case types.SectionSkills:
		out.Skills = append(out.Skills, types.SkillEntry{})
	}
	return out, nil
}

// RemoveEntry removes the entry at index; later entries shift down by one.
func RemoveEntry(doc types.ResumeDocument, section types.Section, index int) (types.ResumeDocument, error) {
	if err := checkList(section); err != nil {
		return doc, err
	}
	if err := checkIndex(doc, section, index); err != nil {
		return doc, err
	}

	out := doc.Clone()
	switch section {
	case types.SectionEducation:
		out.Education = slices.Delete(out.Education, index, index+1)
	case types.SectionWorkExperience:
		out.WorkExperience = slices.Delete(out.WorkExperience, index, index+1)
	case types.SectionSkills:
		out.Skills = slices.Delete(out.Skills, index, index+1)
	}
	return out, nil
}

// Apply dispatches a serialized edit to the matching operation.
func Apply(doc types.ResumeDocument, edit types.Edit) (types.ResumeDocument, error) {
	if err := edit.Validate(); err != nil {
		return doc, err
	}

	switch edit.Op {
	case types.EditSet:
		if edit.Index == nil {
			return SetField(doc, edit.Section, edit.Field, edit.Value)
		}
		return SetEntryField(doc, edit.Section, *edit.Index, edit.Field, edit.Value)
	case types.EditAdd:
		return AddEntry(doc, edit.Section)
	case types.EditRemove:
		if edit.Index == nil {
			return doc, &SectionError{Section: edit.Section, Message: "remove requires an entry index"}
		}
		return RemoveEntry(doc, edit.Section, *edit.Index)
	default:
		return doc, &SectionError{Section: edit.Section, Message: "unknown operation " + string(edit.Op)}
	}
}

func checkField(section types.Section, field string) error {
	if !section.Valid() {
		return &SectionError{Section: section, Message: "unknown section"}
	}
	if !section.HasField(field) {
		return &FieldError{Section: section, Field: field}
	}
	return nil
}

func checkList(section types.Section) error {
	if !section.Valid() {
		return &SectionError{Section: section, Message: "unknown section"}
	}
	if !section.IsList() {
		return &SectionError{Section: section, Message: "not a list section"}
	}
	return nil
}

func checkIndex(doc types.ResumeDocument, section types.Section, index int) error {
	n := doc.Len(section)
	if index < 0 || index >= n {
		return &IndexError{Section: section, Index: index, Len: n}
	}
	return nil
}
