// Package app holds the session and query orchestrator: session identity,
// the conversation log, and the remote-or-fallback answer flow.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"ragbooks/internal/ragclient"
	"ragbooks/pkg/corpus"
	"ragbooks/pkg/domain"
	"ragbooks/pkg/rag"
)

const maxSources = 3

// RemoteClient answers a question for a session via the remote service.
type RemoteClient interface {
	Ask(ctx context.Context, sessionID, question string) (domain.RagResult, error)
}

// Config wires required collaborators for the orchestrator.
type Config struct {
	Corpus *corpus.Store
	Client RemoteClient
	// SeedConversation preloads the conversation log. Turn ids are
	// renumbered on load to keep the per-session sequence consistent.
	SeedConversation []domain.ConversationTurn
}

// App owns the single live session: its id, the ordered conversation log,
// and the last result and error. All mutations go through Ask and Clear.
type App struct {
	corpus *corpus.Store
	client RemoteClient

	mu           sync.Mutex
	sessionID    string
	turns        []domain.ConversationTurn
	seq          int
	lastResult   *domain.RagResult
	lastErr      string
	busy         bool
	currentQuery string
}

// New constructs the orchestrator and mints the session id synchronously,
// so no query can ever be dispatched without one.
func New(cfg Config) (*App, error) {
	if cfg.Corpus == nil {
		return nil, fmt.Errorf("corpus store required")
	}
	if cfg.Client == nil {
		return nil, fmt.Errorf("rag client required")
	}
	a := &App{
		corpus:    cfg.Corpus,
		client:    cfg.Client,
		sessionID: uuid.NewString(),
	}
	for _, turn := range cfg.SeedConversation {
		a.seq++
		turn.ID = a.seq
		a.turns = append(a.turns, turn)
	}
	return a, nil
}

// Ask dispatches the question to the remote service, falling back to local
// retrieval when it is unreachable. Exactly one conversation turn is
// appended on success (remote or degraded); none on rejection or internal
// failure. At most one query is in flight at a time.
func (a *App) Ask(ctx context.Context, question string) (*domain.RagResult, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	a.mu.Lock()
	if a.busy {
		a.mu.Unlock()
		return nil, ErrBusy
	}
	a.busy = true
	a.lastErr = ""
	a.currentQuery = question
	sessionID := a.sessionID
	a.mu.Unlock()

	result, err := a.resolve(ctx, sessionID, question)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.busy = false
	if err != nil {
		a.lastErr = queryFailedMessage
		return nil, err
	}
	a.seq++
	a.turns = append(a.turns, domain.ConversationTurn{
		ID:        a.seq,
		User:      question,
		Assistant: result.Response,
		Sources:   sourceIDs(result.Sources),
		Timestamp: time.Now().UTC(),
	})
	a.lastResult = &result
	return &result, nil
}

// resolve produces the answer: remote first, local retrieval on remote
// failure. A malformed remote success body is the one remote condition that
// propagates instead of degrading.
func (a *App) resolve(ctx context.Context, sessionID, question string) (domain.RagResult, error) {
	result, err := a.client.Ask(ctx, sessionID, question)
	if err == nil {
		return normalize(question, result), nil
	}
	if errors.Is(err, ragclient.ErrMalformedResponse) {
		return domain.RagResult{}, err
	}
	slog.Warn("rag service unavailable, answering locally", "err", err)
	return a.fallback(question)
}

func (a *App) fallback(question string) (result domain.RagResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("fallback retrieval: %v", r)
		}
	}()
	return rag.Retrieve(question, a.corpus.List()), nil
}

// Clear empties the conversation log, resets the turn sequence, drops the
// last result, and mints a fresh session id. The corpus is untouched.
func (a *App) Clear() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.turns = nil
	a.seq = 0
	a.lastResult = nil
	a.currentQuery = ""
	a.sessionID = uuid.NewString()
	return a.sessionID
}

// SetError records an error message raised outside Ask, e.g. by a
// presentation-layer validation failure.
func (a *App) SetError(msg string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastErr = msg
}

// ClearError dismisses the current error message.
func (a *App) ClearError() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastErr = ""
}

// SessionID returns the current session identifier.
func (a *App) SessionID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sessionID
}

// Conversation returns a copy of the ordered conversation log.
func (a *App) Conversation() []domain.ConversationTurn {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]domain.ConversationTurn, len(a.turns))
	copy(out, a.turns)
	return out
}

// LastResult returns the most recent RagResult, or nil.
func (a *App) LastResult() *domain.RagResult {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.lastResult == nil {
		return nil
	}
	res := *a.lastResult
	return &res
}

// LastError returns the current error message, empty when none.
func (a *App) LastError() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastErr
}

// Busy reports whether a query is in flight.
func (a *App) Busy() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.busy
}

// CurrentQuery returns the most recently submitted question.
func (a *App) CurrentQuery() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.currentQuery
}

// Books lists the corpus in insertion order.
func (a *App) Books() []domain.Book {
	return a.corpus.List()
}

// AddBook inserts a new book into the corpus.
func (a *App) AddBook(b domain.Book) (domain.Book, error) {
	if strings.TrimSpace(b.Title) == "" {
		return domain.Book{}, ErrTitleRequired
	}
	return a.corpus.Add(b), nil
}

// SearchBooks returns corpus entries matching the query.
func (a *App) SearchBooks(query string) []domain.Book {
	return a.corpus.Search(query)
}

// normalize enforces result invariants at the remote boundary: at most
// three sources and scores clamped into [0, 1].
func normalize(question string, result domain.RagResult) domain.RagResult {
	if result.Query == "" {
		result.Query = question
	}
	if len(result.Sources) > maxSources {
		result.Sources = result.Sources[:maxSources]
	}
	for i := range result.Sources {
		result.Sources[i].Relevance = clamp01(result.Sources[i].Relevance)
	}
	result.Confidence = clamp01(result.Confidence)
	return result
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func sourceIDs(sources []domain.Source) []int {
	ids := make([]int, 0, len(sources))
	for _, s := range sources {
		ids = append(ids, s.ID)
	}
	return ids
}
