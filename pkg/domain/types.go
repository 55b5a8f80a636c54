package domain

import "time"

// Book is a corpus record. Embedding is a placeholder vector carried for the
// remote pipeline; nothing in this service interprets it numerically.
type Book struct {
	ID            int       `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Description   string    `json:"description"`
	Content       string    `json:"content"`
	Category      string    `json:"category"`
	PublishedYear int       `json:"publishedYear"`
	Tags          []string  `json:"tags"`
	Embedding     []float64 `json:"embedding"`
}

// Source references a book cited by an answer.
type Source struct {
	ID        int     `json:"id"`
	Title     string  `json:"title"`
	Relevance float64 `json:"relevance"`
	Excerpt   string  `json:"excerpt"`
}

// RagResult is one answered query. Sources holds at most three entries;
// Relevance and Confidence stay within [0, 1].
type RagResult struct {
	Query      string   `json:"query"`
	Response   string   `json:"response"`
	Sources    []Source `json:"sources"`
	Confidence float64  `json:"confidence"`
}

// ConversationTurn is one question/answer exchange. ID is a per-session
// sequence number, not a stable identity across sessions. Sources may
// reference book ids no longer present in the corpus.
type ConversationTurn struct {
	ID        int       `json:"id"`
	User      string    `json:"user"`
	Assistant string    `json:"assistant"`
	Sources   []int     `json:"sources"`
	Timestamp time.Time `json:"timestamp"`
}
