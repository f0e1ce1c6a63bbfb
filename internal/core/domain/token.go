package domain

import "errors"

// Token verification failures. All three collapse to a single unauthenticated
// outcome at the HTTP boundary but stay distinguishable for logging.
var ErrTokenExpired = errors.New("token expired")
var ErrTokenInvalid = errors.New("token signature invalid")
var ErrTokenMalformed = errors.New("token malformed")
var ErrTokenRevoked = errors.New("token revoked")
