package rendering

import (
	"github.com/jonathan/resume-builder/internal/types"
)

// View is the template-specific projection of a document. Content fields
// are identical for every template; only Template and Style differ.
type View struct {
	Template  types.Template   `json:"template"`
	Style     Style            `json:"style"`
	Header    Header           `json:"header"`
	Education []EducationBlock `json:"education"`
	Work      []WorkBlock      `json:"work"`
	Skills    []string         `json:"skills"`
}

// Style carries the cosmetic differences between templates.
type Style struct {
	Background    string `json:"background"`
	CenteredTitle bool   `json:"centered_title"`
	RuledHeadings bool   `json:"ruled_headings"`
}

// Header is the contact block
type Header struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// EducationBlock is one rendered education entry
type EducationBlock struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Year        string `json:"year"`
}

// WorkBlock is one rendered work entry
type WorkBlock struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

var styles = map[types.Template]Style{
	types.TemplateModern:  {Background: "white"},
	types.TemplateClassic: {Background: "gray", CenteredTitle: true, RuledHeadings: true},
}

// Render projects doc into tmpl's layout. Unknown templates render as the default.
// Sections appear as personal info, education, work, skills, each in list order.
func Render(doc types.ResumeDocument, tmpl types.Template) View {
	tmpl = tmpl.OrDefault()

	v := View{
		Template: tmpl,
		Style:    styles[tmpl],
		Header: Header{
			Name:  doc.PersonalInfo.Name,
			Email: doc.PersonalInfo.Email,
			Phone: doc.PersonalInfo.Phone,
		},
		Education: make([]EducationBlock, 0, len(doc.Education)),
		Work:      make([]WorkBlock, 0, len(doc.WorkExperience)),
		Skills:    make([]string, 0, len(doc.Skills)),
	}

	for _, e := range doc.Education {
		v.Education = append(v.Education, EducationBlock(e))
	}
	for _, w := range doc.WorkExperience {
		v.Work = append(v.Work, WorkBlock(w))
	}
	for _, s := range doc.Skills {
		v.Skills = append(v.Skills, s.Name)
	}
	return v
}
