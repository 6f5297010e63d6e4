// Package vectorstore holds embedded document chunks in memory.
// A document exists exactly as long as it has at least one chunk.
package vectorstore

import (
	"sync"

	"github.com/tantasui/decentradocs/internal/model"
)

// Store maps document ids to their ordered chunk lists. All access goes
// through one exclusive lock, so a replacement is atomic from the point
// of view of any reader. Embedding calls must never happen under this
// lock; callers compute full chunk lists first and commit with one Put.
type Store struct {
	mu    sync.Mutex
	docs  map[string][]model.Chunk
	order []string
}

func New() *Store {
	return &Store{
		docs: make(map[string][]model.Chunk),
	}
}

// Put replaces the whole chunk list for docID. Re-ingesting an id never
// merges with the previous chunk set.
func (s *Store) Put(docID string, chunks []model.Chunk) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[docID]; !ok {
		s.order = append(s.order, docID)
	}
	copied := make([]model.Chunk, len(chunks))
	copy(copied, chunks)
	s.docs[docID] = copied
}

// Delete removes a document and returns how many chunks were dropped.
// An absent id is not an error; the count is simply zero.
func (s *Store) Delete(docID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	chunks, ok := s.docs[docID]
	if !ok {
		return 0
	}
	delete(s.docs, docID)
	for i, id := range s.order {
		if id == docID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return len(chunks)
}

func (s *Store) Get(docID string) ([]model.Chunk, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	chunks, ok := s.docs[docID]
	if !ok {
		return nil, false
	}
	copied := make([]model.Chunk, len(chunks))
	copy(copied, chunks)
	return copied, true
}

// AllChunks returns every chunk, documents in insertion order and chunks
// in sequence order within each document. The ordering carries no
// meaning but keeps iteration deterministic.
func (s *Store) AllChunks() []model.Chunk {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Chunk
	for _, id := range s.order {
		out = append(out, s.docs[id]...)
	}
	return out
}

func (s *Store) Stats() model.StoreStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := model.StoreStats{DocumentCount: len(s.order)}
	for _, chunks := range s.docs {
		stats.ChunkCount += len(chunks)
	}
	return stats
}
