// Package auth implements the session controller: logging in by creating a
// remote account, hydrating a persisted session on start, and logging out.
package auth

import "errors"

// Sentinel errors for auth operations.
var (
	// ErrLoginInProgress is returned when Login is called while another login
	// is still waiting for the remote service.
	ErrLoginInProgress = errors.New("login already in progress")

	// ErrLoginAborted is returned by a Login that was overtaken by Logout
	// while the remote account was being created.
	ErrLoginAborted = errors.New("login aborted by logout")
)
