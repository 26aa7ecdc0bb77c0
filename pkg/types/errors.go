package types

import (
	"errors"
	"fmt"
)

// Failure taxonomy for the usernotes store. All of these surface directly to
// the caller; only transient transport errors are retried, and only up to the
// configured budget.
var (
	// ErrSchemaMismatch reports version drift between this library and the
	// stored record. Never retried.
	ErrSchemaMismatch = errors.New("usernotes schema version mismatch")

	// ErrPermissionDenied reports that the caller's credentials are
	// insufficient for the document store operation. Never retried.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrServerUnavailable is returned after the transient-retry budget is
	// exhausted with no usable cached record.
	ErrServerUnavailable = errors.New("document store unavailable")

	// ErrRecordTooLarge reports that the serialized record exceeds the
	// maximum page size. The write is never attempted.
	ErrRecordTooLarge = errors.New("usernotes record too large")

	// ErrNotFound reports that a requested username or note index does not
	// exist in the record.
	ErrNotFound = errors.New("not found")

	// ErrPageNotFound is returned by a DocumentStore when the page does not
	// exist. The store bootstraps a fresh record instead of failing.
	ErrPageNotFound = errors.New("page not found")

	// ErrInvalidWarning reports a warning category outside the recognized
	// set on the store's index-resolution path.
	ErrInvalidWarning = errors.New("invalid warning category")

	// ErrSubredditRequired reports that an l-type shorthand was expanded
	// without a subreddit context.
	ErrSubredditRequired = errors.New("subreddit name must be provided")

	// ErrModeratorEmpty reports that a note has no author and no acting
	// moderator is configured.
	ErrModeratorEmpty = errors.New("moderator must not be empty")

	// ErrNotSynced reports a mutation attempted with SkipFetch before any
	// record was fetched or bootstrapped.
	ErrNotSynced = errors.New("no cached record; sync first")
)

// StatusError is an HTTP-like transport error raised by a DocumentStore.
type StatusError struct {
	Code int    // HTTP-like status code
	Op   string // operation that failed: read, create, update
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("document store %s failed with status %d", e.Op, e.Code)
}

// transientStatuses are the status codes retried automatically.
var transientStatuses = map[int]bool{
	502: true,
	503: true,
	504: true,
}

// IsTransient reports whether err is a transport hiccup worth retrying.
func IsTransient(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && transientStatuses[se.Code]
}

// IsPermissionDenied reports whether err is a permission failure, either the
// sentinel or a 403 status from the document store.
func IsPermissionDenied(err error) bool {
	if errors.Is(err, ErrPermissionDenied) {
		return true
	}
	var se *StatusError
	return errors.As(err, &se) && se.Code == 403
}
