package feed

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the feed core. The HTTP adapter maps these to
// status codes with errors.Is / errors.As; the wrapped cause text travels
// with the error so callers see the underlying failure.
var (
	// ErrStoreUnavailable marks connection or query failures in the store.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrMalformedRow marks a retrieved row that failed to scan into a Post.
	ErrMalformedRow = errors.New("malformed row")

	// ErrEmptyResult marks a read-only ranking request against an empty store.
	ErrEmptyResult = errors.New("no posts available")
)

// CreateFetchError reports a create workflow that inserted its post but
// failed during the subsequent candidate fetch. The insert is not rolled
// back; PostID identifies the row that made it in.
type CreateFetchError struct {
	PostID int64
	Err    error
}

func (e *CreateFetchError) Error() string {
	return fmt.Sprintf("post %d created but ranking fetch failed: %v", e.PostID, e.Err)
}

func (e *CreateFetchError) Unwrap() error { return e.Err }

// AsCreateFetchError unwraps err to a CreateFetchError, if it is one.
func AsCreateFetchError(err error) (*CreateFetchError, bool) {
	var cfe *CreateFetchError
	if errors.As(err, &cfe) {
		return cfe, true
	}
	return nil, false
}
