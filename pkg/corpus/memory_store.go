// Package corpus keeps the in-memory book collection used by the local
// fallback path and the library endpoints.
package corpus

import (
	"strings"
	"sync"

	"ragbooks/pkg/domain"
)

const embeddingDim = 5

// Store keeps books in-process. Iteration follows insertion order.
type Store struct {
	mu     sync.RWMutex
	books  map[int]domain.Book
	order  []int
	nextID int
}

// NewStore initializes an empty store.
func NewStore() *Store {
	return &Store{books: make(map[int]domain.Book)}
}

// NewSeededStore initializes a store populated with the fixed seed set.
func NewSeededStore() *Store {
	s := NewStore()
	for _, b := range SeedBooks() {
		s.Add(b)
	}
	return s
}

// Add inserts a book, assigning the next positive id. A zero-length
// embedding is replaced with a placeholder vector.
func (s *Store) Add(b domain.Book) domain.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	b.ID = s.nextID
	if len(b.Embedding) == 0 {
		b.Embedding = placeholderEmbedding(b.Title)
	}
	s.books[b.ID] = b
	s.order = append(s.order, b.ID)
	return b
}

// Get retrieves a book by id.
func (s *Store) Get(id int) (domain.Book, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.books[id]
	return b, ok
}

// List returns books in insertion order.
func (s *Store) List() []domain.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]domain.Book, 0, len(s.order))
	for _, id := range s.order {
		if b, ok := s.books[id]; ok {
			res = append(res, b)
		}
	}
	return res
}

// Count returns the number of stored books.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.books)
}

// Search returns books whose title, content, or any tag contains the query,
// case-insensitively, in insertion order. A blank query matches nothing.
func (s *Store) Search(query string) []domain.Book {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	var res []domain.Book
	for _, b := range s.List() {
		if Matches(b, query) {
			res = append(res, b)
		}
	}
	return res
}

// Matches reports whether a lower-cased query is a substring of the book's
// title, content, or one of its tags.
func Matches(b domain.Book, loweredQuery string) bool {
	if strings.Contains(strings.ToLower(b.Title), loweredQuery) {
		return true
	}
	if strings.Contains(strings.ToLower(b.Content), loweredQuery) {
		return true
	}
	for _, tag := range b.Tags {
		if strings.Contains(strings.ToLower(tag), loweredQuery) {
			return true
		}
	}
	return false
}

// placeholderEmbedding derives a stable stand-in vector from the title. The
// values are never interpreted; they only keep the record shape complete.
func placeholderEmbedding(title string) []float64 {
	var h uint32 = 2166136261
	for _, c := range []byte(title) {
		h ^= uint32(c)
		h *= 16777619
	}
	out := make([]float64, embeddingDim)
	for i := range out {
		h = h*1664525 + 1013904223
		out[i] = float64(h%1000) / 1000
	}
	return out
}
