package feedback

// Feedback is a text entry owned by a single user.
type Feedback struct {
	ID       int64  // ID is assigned by the store, increasing and never reused
	Title    string // Title is at most 100 characters
	Content  string
	Username string // Username is the owner of the entry
}

// OwnedBy reports whether the entry belongs to username.
func (f *Feedback) OwnedBy(username string) bool {
	return f != nil && f.Username == username
}
