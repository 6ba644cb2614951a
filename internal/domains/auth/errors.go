package auth

import "errors"

// ErrUnauthenticated covers every credential failure: missing, invalid,
// expired, or revoked. Callers get no finer detail.
var ErrUnauthenticated = errors.New("invalid or expired credential")
