package rag

import (
	"strings"
	"testing"

	"ragbooks/pkg/corpus"
	"ragbooks/pkg/domain"
)

func seededBooks() []domain.Book {
	return corpus.NewSeededStore().List()
}

func TestRetrieveMachineLearningQuestion(t *testing.T) {
	result := Retrieve("What is machine learning?", seededBooks())

	if !strings.Contains(result.Response, "machine learning is a subset of AI") {
		t.Fatalf("response = %q, want canned machine-learning sentence", result.Response)
	}
	found := false
	for _, s := range result.Sources {
		if s.Title == "The Art of Machine Learning" {
			found = true
		}
	}
	if !found {
		t.Fatalf("sources = %+v, want The Art of Machine Learning among them", result.Sources)
	}
}

func TestRetrieveCapsSourcesAtThree(t *testing.T) {
	books := make([]domain.Book, 0, 5)
	for i := 1; i <= 5; i++ {
		books = append(books, domain.Book{
			ID:      i,
			Title:   "Go Notes",
			Content: "everything about go",
		})
	}
	result := Retrieve("go", books)
	if len(result.Sources) != 3 {
		t.Fatalf("len(sources) = %d, want 3", len(result.Sources))
	}
	// Corpus iteration order, not score order.
	if result.Sources[0].ID != 1 || result.Sources[2].ID != 3 {
		t.Fatalf("sources = %+v, want first three books in order", result.Sources)
	}
}

func TestRetrieveScoresWithinRange(t *testing.T) {
	result := Retrieve("quantum computing and cryptography", seededBooks())
	if result.Confidence < 0.7 || result.Confidence >= 1.0 {
		t.Fatalf("confidence = %f, want [0.7, 1.0)", result.Confidence)
	}
	for _, s := range result.Sources {
		if s.Relevance < 0.7 || s.Relevance >= 1.0 {
			t.Fatalf("relevance = %f, want [0.7, 1.0)", s.Relevance)
		}
	}
}

func TestRetrieveDeterministic(t *testing.T) {
	books := seededBooks()
	first := Retrieve("quantum computing", books)
	second := Retrieve("quantum computing", books)
	if first.Confidence != second.Confidence {
		t.Fatalf("confidence changed between runs: %f vs %f", first.Confidence, second.Confidence)
	}
	for i := range first.Sources {
		if first.Sources[i].Relevance != second.Sources[i].Relevance {
			t.Fatalf("relevance changed between runs at %d", i)
		}
	}
}

func TestRetrieveNoMatches(t *testing.T) {
	result := Retrieve("xylophone maintenance", seededBooks())
	if len(result.Sources) != 0 {
		t.Fatalf("sources = %+v, want none", result.Sources)
	}
	if result.Response != "Based on the available information, here is what I found in the knowledge base that relates to your question." {
		t.Fatalf("response = %q, want generic sentence", result.Response)
	}
	if result.Confidence < 0.7 || result.Confidence >= 1.0 {
		t.Fatalf("confidence = %f, want [0.7, 1.0) even with no matches", result.Confidence)
	}
}

func TestRetrieveMatchesTags(t *testing.T) {
	books := []domain.Book{{
		ID:      7,
		Title:   "Untitled",
		Content: "nothing relevant",
		Tags:    []string{"Statistics"},
	}}
	result := Retrieve("statistics", books)
	if len(result.Sources) != 1 || result.Sources[0].ID != 7 {
		t.Fatalf("sources = %+v, want the tag-matched book", result.Sources)
	}
}

func TestRetrieveExcerptTruncation(t *testing.T) {
	long := strings.Repeat("a", 150)
	books := []domain.Book{{ID: 1, Title: "aaa", Content: long}}
	result := Retrieve("aaa", books)
	if len(result.Sources) != 1 {
		t.Fatalf("expected one source, got %d", len(result.Sources))
	}
	want := strings.Repeat("a", 100) + "..."
	if result.Sources[0].Excerpt != want {
		t.Fatalf("excerpt = %q, want first 100 chars plus marker", result.Sources[0].Excerpt)
	}
}
