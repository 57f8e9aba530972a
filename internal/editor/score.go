package editor

import (
	"github.com/jonathan/resume-builder/internal/types"
)

const (
	// PointsPerEntry is awarded per non-empty personal field and per list entry.
	PointsPerEntry = 10
	// MaxCountedEntries bounds how many entries of one list section count.
	// At 10 points each this equals MaxScore, so one section can saturate the score.
	MaxCountedEntries = 10
	// MaxScore caps the total.
	MaxScore = 100
)

// ComputeScore derives the completeness score in [0, 100] from the current document.
// List entries count whether or not their fields are filled in.
func ComputeScore(doc types.ResumeDocument) int {
	score := 0
	for _, section := range types.Sections {
		score += sectionScore(doc, section)
	}
	return min(score, MaxScore)
}

func sectionScore(doc types.ResumeDocument, section types.Section) int {
	if section.IsList() {
		return min(doc.Len(section), MaxCountedEntries) * PointsPerEntry
	}

	filled := 0
	for _, v := range []string{doc.PersonalInfo.Name, doc.PersonalInfo.Email, doc.PersonalInfo.Phone} {
		if v != "" {
			filled++
		}
	}
	return filled * PointsPerEntry
}
