package rendering

import "strings"

// latexReplacer substitutes every LaTeX special character in a single pass,
// so replacements are never escaped twice.
var latexReplacer = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`$`, `\$`,
	`&`, `\&`,
	`%`, `\%`,
	`#`, `\#`,
	`^`, `\textasciicircum{}`,
	`_`, `\_`,
	`~`, `\textasciitilde{}`,
)

// EscapeLaTeX escapes special LaTeX characters in user-entered text
// Special characters: \ { } $ & % # ^ _ ~
func EscapeLaTeX(text string) string {
	return latexReplacer.Replace(text)
}
