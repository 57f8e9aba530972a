package rendering

import (
	"fmt"
	"strings"
)

// Text renders the view as plain text for terminal previews.
func Text(v View) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", v.Header.Name)
	fmt.Fprintf(&b, "%s | %s\n", v.Header.Email, v.Header.Phone)

	b.WriteString("\nEducation\n")
	for _, e := range v.Education {
		fmt.Fprintf(&b, "  %s\n", e.Institution)
		fmt.Fprintf(&b, "  %s, %s\n", e.Degree, e.Year)
	}

	b.WriteString("\nWork Experience\n")
	for _, w := range v.Work {
		fmt.Fprintf(&b, "  %s\n", w.Company)
		fmt.Fprintf(&b, "  %s, %s\n", w.Position, w.Duration)
		if w.Description != "" {
			fmt.Fprintf(&b, "  %s\n", w.Description)
		}
	}

	b.WriteString("\nSkills\n")
	for _, s := range v.Skills {
		fmt.Fprintf(&b, "  - %s\n", s)
	}
	return b.String()
}
