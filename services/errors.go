package services

import "errors"

// Error taxonomy for the RSVP flow. Controllers map these onto wire errors;
// nothing below the controller ever writes HTTP status codes.
var (
	// ErrGuestNotFound means no guest matched the submitted name. The caller
	// must answer with a generic "couldn't find your invitation" message and
	// never hint at near-matches.
	ErrGuestNotFound = errors.New("guest not found")

	// ErrLookupFailed means the guest table was unreachable or returned a
	// malformed response. Retryable, no detail leaked to the user.
	ErrLookupFailed = errors.New("lookup failed")

	// ErrSubmitFailed means persisting the RSVP record batch failed. The
	// responded flags are untouched when this is returned.
	ErrSubmitFailed = errors.New("submit failed")
)

// ValidationError is a client-rule violation detected before any record is
// built. GuestName carries which guest broke which rule so the form can point
// at the right row.
type ValidationError struct {
	GuestName string
	Reason    string
}

func (e *ValidationError) Error() string {
	if e.GuestName == "" {
		return e.Reason
	}
	return e.GuestName + ": " + e.Reason
}
