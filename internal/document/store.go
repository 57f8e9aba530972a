// Package document owns the canonical resume document and its persistence lifecycle.
package document

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/types"
)

// StorageKey is the key the document is persisted under.
const StorageKey = "resumeData"

// Store loads and saves the single resume document in a key-value backend.
type Store struct {
	kv  storage.KV
	key string
}

// NewStore creates a store over kv using StorageKey.
func NewStore(kv storage.KV) *Store {
	return &Store{kv: kv, key: StorageKey}
}

// Load returns the persisted document. A missing, unreadable or malformed
// value degrades to the empty skeleton; Load never fails.
func (s *Store) Load(ctx context.Context) types.ResumeDocument {
	data, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("[store] read %s failed, starting from empty document: %v", s.key, err)
		}
		return types.NewDocument()
	}

	doc, err := Decode(data)
	if err != nil {
		log.Printf("[store] stored %s is malformed, starting from empty document: %v", s.key, err)
		return types.NewDocument()
	}
	return doc
}

// Save serializes the whole document and overwrites the stored value.
func (s *Store) Save(ctx context.Context, doc types.ResumeDocument) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", s.key, err)
	}
	return nil
}

// Clear removes the stored document; the next Load returns the skeleton.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("failed to clear %s: %w", s.key, err)
	}
	return nil
}

// Encode serializes a document in its persisted form. Invalid UTF-8 in a
// field is stored as U+FFFD, so such a value does not round-trip byte for byte.
func Encode(doc types.ResumeDocument) ([]byte, error) {
	doc.Normalize()
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	return data, nil
}

// Decode parses a persisted document, checking it against the document schema.
// Missing fields and lists default to empty.
func Decode(data []byte) (types.ResumeDocument, error) {
	if err := schemas.ValidateDocument(data); err != nil {
		return types.ResumeDocument{}, err
	}

	doc := types.NewDocument()
	if err := json.Unmarshal(data, &doc); err != nil {
		return types.ResumeDocument{}, fmt.Errorf("failed to unmarshal document: %w", err)
	}
	doc.Normalize()
	return doc, nil
}
