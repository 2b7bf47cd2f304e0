package ledger

import "errors"

// ErrorKind classifies ledger errors so callers can decide whether a failure
// is retryable (wait for a cooldown) or permanent (not authorized).
type ErrorKind string

const (
	KindValidation   ErrorKind = "VALIDATION"
	KindPrecondition ErrorKind = "PRECONDITION"
	KindUnauthorized ErrorKind = "UNAUTHORIZED"
	KindUnavailable  ErrorKind = "UNAVAILABLE"
)

// Error is a ledger-originated failure. Collaborator failures (custody or
// reward transfers) are never wrapped in this type; they propagate verbatim.
type Error struct {
	Kind ErrorKind
	Code string
	msg  string
}

func (e *Error) Error() string {
	return e.msg
}

func newError(kind ErrorKind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, msg: msg}
}

var (
	ErrInvalidCollection    = newError(KindValidation, "INVALID_COLLECTION", "collection identity is empty")
	ErrCollectionNotAllowed = newError(KindValidation, "COLLECTION_NOT_ALLOWED", "collection is not allow-listed")
	ErrItemIndexOutOfRange  = newError(KindValidation, "ITEM_INDEX_OUT_OF_RANGE", "item index is out of range")

	ErrAlreadyUnstaked    = newError(KindPrecondition, "ALREADY_UNSTAKED", "item has already been unstaked")
	ErrNotUnstaked        = newError(KindPrecondition, "NOT_UNSTAKED", "item has not been unstaked")
	ErrCooldownNotElapsed = newError(KindPrecondition, "COOLDOWN_NOT_ELAPSED", "withdrawal cooldown has not elapsed")
	ErrDelayNotElapsed    = newError(KindPrecondition, "DELAY_NOT_ELAPSED", "claim delay has not elapsed")
	ErrNothingToClaim     = newError(KindPrecondition, "NOTHING_TO_CLAIM", "no unclaimed reward")
	ErrAlreadyPaused      = newError(KindPrecondition, "ALREADY_PAUSED", "staking is already paused")
	ErrNotPaused          = newError(KindPrecondition, "NOT_PAUSED", "staking is not paused")

	ErrNotAuthorized = newError(KindUnauthorized, "NOT_AUTHORIZED", "caller is not the privileged owner")

	ErrPaused = newError(KindUnavailable, "PAUSED", "staking is paused")
)

// KindOf returns the kind of a ledger error, or the empty string for errors
// that did not originate in the ledger.
func KindOf(err error) ErrorKind {
	var lerr *Error
	if errors.As(err, &lerr) {
		return lerr.Kind
	}
	return ""
}
