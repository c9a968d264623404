// Package session models the identity attached to a caller's session and the
// ownership rule that gates access to user-owned resources.
package session

// Identity is the caller's session identity: either anonymous or a single username.
// The zero value is anonymous.
type Identity struct {
	username string
}

// Anonymous returns the identity of a caller without a session.
func Anonymous() Identity {
	return Identity{}
}

// Authenticated returns the identity of a caller logged in as username.
// An empty username yields an anonymous identity.
func Authenticated(username string) Identity {
	return Identity{username: username}
}

// Username returns the authenticated username, or "" when anonymous.
func (i Identity) Username() string {
	return i.username
}

// IsAuthenticated reports whether the identity holds a username.
func (i Identity) IsAuthenticated() bool {
	return i.username != ""
}

// Authorize reports whether identity may act on a resource owned by owner.
// It is true only for an authenticated identity whose username equals owner.
func Authorize(identity Identity, owner string) bool {
	return identity.IsAuthenticated() && identity.username == owner
}
