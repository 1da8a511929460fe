package repositories

import "errors"

// Sentinel errors returned by the repositories and the follow service.
// Callers check them with errors.Is or the helper predicates below.
var (
	// ErrNotFound is returned when a lookup matches no document.
	ErrNotFound = errors.New("campusnet: record not found")

	// ErrDuplicateEmail is returned when a create collides with the
	// unique email index.
	ErrDuplicateEmail = errors.New("campusnet: email already registered")

	// ErrAlreadyFollowing is returned when a follow edge already exists.
	ErrAlreadyFollowing = errors.New("campusnet: already following")

	// ErrNotFollowing is returned when an unfollow targets a missing edge.
	ErrNotFollowing = errors.New("campusnet: not following")

	// ErrUnavailable is returned on store I/O failures and timeouts.
	// The operation may be retried; the follow guard makes retries safe.
	ErrUnavailable = errors.New("campusnet: store unavailable")
)

func IsNotFound(err error) bool         { return errors.Is(err, ErrNotFound) }
func IsDuplicateEmail(err error) bool   { return errors.Is(err, ErrDuplicateEmail) }
func IsAlreadyFollowing(err error) bool { return errors.Is(err, ErrAlreadyFollowing) }
func IsNotFollowing(err error) bool     { return errors.Is(err, ErrNotFollowing) }
func IsUnavailable(err error) bool      { return errors.Is(err, ErrUnavailable) }
