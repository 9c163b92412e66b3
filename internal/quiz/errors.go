package quiz

import "errors"

// Session protocol errors. These indicate caller misuse and are the only
// errors the engine surfaces; generation failures are absorbed upstream
// by the assembler's fallback.
var (
	// ErrSessionExhausted is returned by NextQuestion once every position
	// in the session has been answered.
	ErrSessionExhausted = errors.New("quiz session exhausted")

	// ErrNoPendingQuestion is returned by SubmitAnswer when no fetched
	// question is awaiting an answer (including a double submit).
	ErrNoPendingQuestion = errors.New("no pending question")

	// ErrEmptyHistory is returned by Result before any answer has been
	// submitted.
	ErrEmptyHistory = errors.New("no answers in session history")
)
