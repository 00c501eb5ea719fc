package engine

import "errors"

// Error kinds, as sentinel values compared with errors.Is, following the
// teacher's convention of package-level error variables (see the original
// ErrNoPostingList / ErrNoNextElement pair in the upstream index package).
//
// Each kind maps to one of the abstract categories from the error handling
// design: Corrupt, InvalidArgument, ResourceExhausted, Io, DeadlineExceeded,
// NotFound.
var (
	// ErrCorrupt means an on-disk structure violates an invariant: a
	// missing SEALED marker, a truncated varint, a block whose declared
	// size runs past the remaining file, or an unsorted dictionary. Fatal;
	// the session that observed it is discarded.
	ErrCorrupt = errors.New("engine: corrupt on-disk structure")

	// ErrInvalidArgument covers a bad term length, a bad field id, a bad
	// wildcard pattern, or an out-of-order add_term call. The offending
	// operation has no effect; the session remains usable.
	ErrInvalidArgument = errors.New("engine: invalid argument")

	// ErrResourceExhausted covers allocation failure, a run file that
	// would exceed the platform's max file size, or a wildcard expansion
	// past its configured cap.
	ErrResourceExhausted = errors.New("engine: resource exhausted")

	// ErrIo wraps an underlying read/write/mmap failure.
	ErrIo = errors.New("engine: io failure")

	// ErrDeadlineExceeded is returned by a query operator when the
	// caller-supplied deadline has passed.
	ErrDeadlineExceeded = errors.New("engine: deadline exceeded")

	// ErrNotFound is normal control flow: a term lookup miss or a key
	// absent from the dictionary. Never logged as an error.
	ErrNotFound = errors.New("engine: not found")

	// ErrBadOrdering is a specific InvalidArgument case: add_term saw a
	// position that did not strictly increase for (doc_id, term), or a
	// doc_id that regressed.
	ErrBadOrdering = errors.New("engine: bad ordering")

	// ErrBadWildcard is a specific InvalidArgument case: a lookup_wildcard
	// pattern reduced to a bare "*".
	ErrBadWildcard = errors.New("engine: bad wildcard pattern")

	// ErrSessionClosed is returned by any build-session operation after
	// the session has sealed or aborted.
	ErrSessionClosed = errors.New("engine: session closed")
)
