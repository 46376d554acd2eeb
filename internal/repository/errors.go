// Package repository defines error types that are reused across multiple
// repositories.  These sentinel values allow higher layers such as handlers
// to distinguish between different failure scenarios without inspecting
// driver-specific errors.
package repository

import "errors"

// ErrEmailExists is returned when a registration collides with an existing
// user email.  Handlers translate this into an HTTP 400 response with a
// duplicate-registration message.
var ErrEmailExists = errors.New("email already exists")

// ErrUserNotFound is returned when no user matches a lookup.  Login handlers
// must not expose it directly; they respond with the same invalid-credentials
// message used for a wrong password.
var ErrUserNotFound = errors.New("user not found")

// ErrMovieNotFound is returned when a movie id does not resolve to a
// document, including when the id is not a well-formed object id.  Handlers
// translate this into an HTTP 404 response.
var ErrMovieNotFound = errors.New("movie not found")
