package app

import "errors"

var (
	// ErrEmptyQuestion rejects blank questions before any dispatch.
	ErrEmptyQuestion = errors.New("question required")
	// ErrBusy rejects a query while a prior one is still in flight.
	ErrBusy = errors.New("query already in flight")
	// ErrTitleRequired rejects a book submission without a title.
	ErrTitleRequired = errors.New("title required")
)

// queryFailedMessage is the generic user-visible error for internal failures.
const queryFailedMessage = "RAG query failed"
