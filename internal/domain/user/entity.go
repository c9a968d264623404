package user

// User represents a registered account in the system.
type User struct {
	Username     string // Username is the unique, primary identity of the user
	PasswordHash string // PasswordHash is the opaque salted hash of the password
	Email        string // Email is the unique email address of the user
	FirstName    string
	LastName     string
}

// CreateOutcome is the explicit result of inserting a user into a store.
type CreateOutcome int

const (
	// CreateOK means the user was persisted.
	CreateOK CreateOutcome = iota
	// CreateConflict means the username or email is already taken; nothing was persisted.
	CreateConflict
)

// String implements fmt.Stringer
func (o CreateOutcome) String() string {
	switch o {
	case CreateOK:
		return "ok"
	case CreateConflict:
		return "conflict"
	default:
		return "unknown"
	}
}
