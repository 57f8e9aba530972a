package rendering

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
	"sync"

	"github.com/jonathan/resume-builder/internal/types"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var (
	htmlOnce      sync.Once
	htmlTemplates map[types.Template]*template.Template
	htmlErr       error
)

// ResumeElementID is the id of the element that wraps the printable resume.
const ResumeElementID = "resume"

func loadHTMLTemplates() (map[types.Template]*template.Template, error) {
	htmlOnce.Do(func() {
		htmlTemplates = make(map[types.Template]*template.Template, len(types.Templates))
		for _, t := range types.Templates {
			name := fmt.Sprintf("templates/%s.html.tmpl", t)
			tmpl, err := template.ParseFS(templateFS, name)
			if err != nil {
				htmlErr = &TemplateError{
					Format:  FormatHTML,
					Message: fmt.Sprintf("failed to parse %s", name),
					Cause:   err,
				}
				return
			}
			htmlTemplates[t] = tmpl
		}
	})
	return htmlTemplates, htmlErr
}

// HTML renders the view as a standalone HTML page. The printable area is
// the element with id "resume".
func HTML(v View) (string, error) {
	templates, err := loadHTMLTemplates()
	if err != nil {
		return "", err
	}

	v.Template = v.Template.OrDefault()
	tmpl, ok := templates[v.Template]
	if !ok {
		return "", &RenderError{Template: string(v.Template), Message: "no html template"}
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, v); err != nil {
		return "", &TemplateError{
			Format:  FormatHTML,
			Message: "failed to execute template",
			Cause:   err,
		}
	}
	return result.String(), nil
}

// RenderHTML is Render followed by HTML.
func RenderHTML(doc types.ResumeDocument, tmpl types.Template) (string, error) {
	return HTML(Render(doc, tmpl))
}
