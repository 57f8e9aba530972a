package editor

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/jonathan/resume-builder/internal/types"
)

// DocumentStore is the persistence the editor writes through to.
type DocumentStore interface {
	Load(ctx context.Context) types.ResumeDocument
	Save(ctx context.Context, doc types.ResumeDocument) error
	Clear(ctx context.Context) error
}

// Snapshot is the editor state after an operation.
type Snapshot struct {
	Document types.ResumeDocument `json:"document"`
	Template types.Template       `json:"template"`
	Score    int                  `json:"score"`
}

// Editor holds the live document and applies edits to it. Every edit is
// persisted and re-scored before it returns; edits from concurrent callers
// are serialized.
type Editor struct {
	mu       sync.Mutex
	store    DocumentStore
	doc      types.ResumeDocument
	template types.Template
	score    int
}

// New loads the persisted document (or the skeleton) and starts on the default template.
func New(ctx context.Context, store DocumentStore) *Editor {
	doc := store.Load(ctx)
	return &Editor{
		store:    store,
		doc:      doc,
		template: types.DefaultTemplate,
		score:    ComputeScore(doc),
	}
}

// Snapshot returns a deep copy of the current state.
func (e *Editor) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Editor) snapshotLocked() Snapshot {
	return Snapshot{
		Document: e.doc.Clone(),
		Template: e.template,
		Score:    e.score,
	}
}

// Score returns the current completeness score.
func (e *Editor) Score() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.score
}

// Template returns the active template.
func (e *Editor) Template() types.Template {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.template
}

// SetTemplate selects a template. Unknown names select the default;
// the boolean reports whether name was recognized. Not persisted.
func (e *Editor) SetTemplate(name string) (types.Template, bool) {
	t, ok := types.ParseTemplate(name)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.template = t
	return t, ok
}

// Apply applies a serialized edit.
func (e *Editor) Apply(ctx context.Context, edit types.Edit) (Snapshot, error) {
	return e.commit(ctx, func(doc types.ResumeDocument) (types.ResumeDocument, error) {
		return Apply(doc, edit)
	})
}

// SetField sets a personalInfo field.
func (e *Editor) SetField(ctx context.Context, section types.Section, field, value string) (Snapshot, error) {
	return e.commit(ctx, func(doc types.ResumeDocument) (types.ResumeDocument, error) {
		return SetField(doc, section, field, value)
	})
}

// SetEntryField sets a field of the entry at index in a list section.
func (e *Editor) SetEntryField(ctx context.Context, section types.Section, index int, field, value string) (Snapshot, error) {
	return e.commit(ctx, func(doc types.ResumeDocument) (types.ResumeDocument, error) {
		return SetEntryField(doc, section, index, field, value)
	})
}

// AddEntry appends an empty entry to a list section.
func (e *Editor) AddEntry(ctx context.Context, section types.Section) (Snapshot, error) {
	return e.commit(ctx, func(doc types.ResumeDocument) (types.ResumeDocument, error) {
		return AddEntry(doc, section)
	})
}

// RemoveEntry removes the entry at index from a list section.
func (e *Editor) RemoveEntry(ctx context.Context, section types.Section, index int) (Snapshot, error) {
	return e.commit(ctx, func(doc types.ResumeDocument) (types.ResumeDocument, error) {
		return RemoveEntry(doc, section, index)
	})
}

// Replace swaps in a whole document, as when importing a saved resume.
func (e *Editor) Replace(ctx context.Context, doc types.ResumeDocument) (Snapshot, error) {
	return e.commit(ctx, func(types.ResumeDocument) (types.ResumeDocument, error) {
		next := doc.Clone()
		next.Normalize()
		return next, nil
	})
}

// Reset clears persisted state and returns to the empty skeleton.
func (e *Editor) Reset(ctx context.Context) (Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.store.Clear(ctx); err != nil {
		return e.snapshotLocked(), fmt.Errorf("failed to reset document: %w", err)
	}
	e.doc = types.NewDocument()
	e.score = ComputeScore(e.doc)
	return e.snapshotLocked(), nil
}

// commit applies fn to the current document, persists the result and
// re-derives the score. On any failure the current document is kept.
func (e *Editor) commit(ctx context.Context, fn func(types.ResumeDocument) (types.ResumeDocument, error)) (Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	next, err := fn(e.doc)
	if err != nil {
		return e.snapshotLocked(), err
	}

	if err := e.store.Save(ctx, next); err != nil {
		log.Printf("[editor] persist failed, edit rolled back: %v", err)
		return e.snapshotLocked(), fmt.Errorf("failed to persist edit: %w", err)
	}

	e.doc = next
	e.score = ComputeScore(next)
	return e.snapshotLocked(), nil
}
