package index

import (
	"sync"

	"github.com/phil777/curiefense/internal/types"
)

// IndexEvent describes a completed index replacement.
type IndexEvent struct {
	Branch string
	Count  int
}

// OnChangeFunc is called when the index is replaced.
type OnChangeFunc func(event IndexEvent)

// Store is a concurrent-safe holder for the aggregate index: the ordered
// sequence of normalized documents for the active branch. Rebuilds replace
// the whole sequence by value; the store never mutates a published snapshot
// in place.
type Store struct {
	mu       sync.RWMutex
	branch   string
	docs     []types.NormalizedDocument
	onChange OnChangeFunc
}

// NewStore creates an empty Store with an optional change callback.
func NewStore(onChange OnChangeFunc) *Store {
	return &Store{docs: []types.NormalizedDocument{}, onChange: onChange}
}

// Replace swaps in a freshly built index for the given branch.
func (s *Store) Replace(branch string, docs []types.NormalizedDocument) {
	if docs == nil {
		docs = []types.NormalizedDocument{}
	}
	s.mu.Lock()
	s.branch = branch
	s.docs = docs
	s.mu.Unlock()

	if s.onChange != nil {
		s.onChange(IndexEvent{Branch: branch, Count: len(docs)})
	}
}

// Snapshot returns a copy of the current index in order.
func (s *Store) Snapshot() []types.NormalizedDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]types.NormalizedDocument, len(s.docs))
	copy(result, s.docs)
	return result
}

// Branch returns the branch the current index was built from. Empty until
// the first successful rebuild.
func (s *Store) Branch() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.branch
}

// Count returns the number of indexed documents.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// Get returns the document with the given type and id. Ids are only unique
// within their document type, so both are required.
func (s *Store) Get(docType types.DocType, id string) (types.NormalizedDocument, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, doc := range s.docs {
		if doc.DocType == docType && doc.ID == id {
			return doc, true
		}
	}
	return types.NormalizedDocument{}, false
}
