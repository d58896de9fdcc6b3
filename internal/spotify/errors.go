package spotify

import "fmt"

// AuthError reports missing credentials or a rejected token request.
// It always surfaces before any extraction begins.
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("spotify auth: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("spotify auth: %s", e.Reason)
}

func (e *AuthError) Unwrap() error { return e.Err }

// UpstreamError reports a non-success response from the Spotify API,
// carrying the status code and body for diagnosis.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("spotify API status %d: %s", e.StatusCode, e.Body)
}
