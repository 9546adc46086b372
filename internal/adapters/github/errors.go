package github

import "errors"

// Sentinel kinds for fetcher errors.
var (
	ErrFetch        = errors.New("github fetch failed")
	ErrUserNotFound = errors.New("github user not found")
)
