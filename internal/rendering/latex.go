package rendering

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"text/template"
)

const defaultLaTeXTemplate = "templates/resume.tex.tmpl"

// latexFuncs are available to every LaTeX template.
var latexFuncs = template.FuncMap{
	"escape": EscapeLaTeX,
}

// LaTeX renders the view as a LaTeX source file. An empty templatePath uses
// the built-in template; otherwise the file is read from disk. Templates use
// << and >> as action delimiters and may call escape on any value.
func LaTeX(v View, templatePath string) (string, error) {
	source, err := readLaTeXTemplate(templatePath)
	if err != nil {
		return "", err
	}

	tmpl, err := template.New("resume").Delims("<<", ">>").Funcs(latexFuncs).Parse(source)
	if err != nil {
		return "", &TemplateError{Format: FormatLaTeX, Message: "failed to parse template", Cause: err}
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, v); err != nil {
		return "", &TemplateError{Format: FormatLaTeX, Message: "failed to execute template", Cause: err}
	}
	return b.String(), nil
}

func readLaTeXTemplate(path string) (string, error) {
	var (
		content []byte
		err     error
	)
	if path == "" {
		content, err = templateFS.ReadFile(defaultLaTeXTemplate)
	} else {
		content, err = os.ReadFile(path)
	}

	switch {
	case err == nil:
		return string(content), nil
	case errors.Is(err, fs.ErrNotExist):
		return "", &TemplateError{Format: FormatLaTeX, Message: "template file not found: " + path, Cause: err}
	default:
		return "", &TemplateError{Format: FormatLaTeX, Message: "failed to read template file: " + path, Cause: err}
	}
}
