// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enuvens

import (
	"errors"
	"fmt"
)

// ErrGroupsUnavailable marks the one unrecoverable dependency: when the
// groups listing cannot be fetched the whole run aborts.
var ErrGroupsUnavailable = errors.New("groups listing unavailable")

// ErrMissingConfig indicates required connection settings are absent. It is
// raised before any network call.
var ErrMissingConfig = errors.New("missing required configuration")

// RemoteError is a non-retryable API failure: the server answered, but with
// an error status.
type RemoteError struct {
	Status int
	Body   string
}

func (e *RemoteError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("API returned HTTP %d", e.Status)
	}
	return fmt.Sprintf("API returned HTTP %d: %s", e.Status, e.Body)
}

// IsRemote reports whether err carries a RemoteError and returns it.
func IsRemote(err error) (*RemoteError, bool) {
	var re *RemoteError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
