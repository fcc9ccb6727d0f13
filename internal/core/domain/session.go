package domain

import "errors"

// Session validation failures. All of them translate to 401 at the HTTP
// boundary but stay distinguishable for logging and tests.
var (
	// ErrNoSession means no token was presented at all.
	ErrNoSession = errors.New("no session token presented")
	// ErrInvalidToken covers bad signatures and malformed claims.
	ErrInvalidToken = errors.New("invalid session token")
	// ErrTokenExpired means the signature checked out but the token is past
	// its expiry.
	ErrTokenExpired = errors.New("session token expired")
	// ErrUnknownSession means the token verified but is not registered in
	// the session store: it was revoked or never issued here.
	ErrUnknownSession = errors.New("unknown session token")
	// ErrWrongUser means a valid session acted on a resource bound to a
	// different user.
	ErrWrongUser = errors.New("session user does not match target user")
	// ErrNotOwner / ErrNotWalker are capability gate failures.
	ErrNotOwner  = errors.New("user is not an owner")
	ErrNotWalker = errors.New("user is not a walker")
)
