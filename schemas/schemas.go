// Package schemas embeds the JSON Schemas of persisted artifacts.
package schemas

import _ "embed"

// ResumeDocument is the JSON Schema of the persisted resume document.
//
//go:embed resume_document.schema.json
var ResumeDocument string
