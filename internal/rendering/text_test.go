package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-builder/internal/types"
)

func TestText(t *testing.T) {
	out := Text(Render(sampleDocument(), types.TemplateClassic))

	want := `Ada Lovelace
ada@example.com | 555-0100

Education
  University of London
  BSc Mathematics, 1835
  Royal Institution
  Lectures, 1840

Work Experience
  Analytical Engine Co
  Programmer, 1842-1843
  Wrote the first published algorithm & notes

Skills
  - Mathematics
  - Poetry
`
	assert.Equal(t, want, out)
}

func TestText_Empty(t *testing.T) {
	out := Text(Render(types.NewDocument(), types.TemplateModern))
	assert.Equal(t, "\n | \n\nEducation\n\nWork Experience\n\nSkills\n", out)
}
