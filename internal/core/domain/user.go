package domain

// Roles known to the importer.
const (
	RoleUser   = "ROLE_USER"
	RoleEditor = "ROLE_EDITOR"
)

// User statuses.
const (
	UserEnabled  = "enabled"
	UserDisabled = "disabled"
)

// User is a backend user account.
// Username is unique and is the reconciliation key for imports.
type User struct {
	// ID is the unique identifier for the user.
	ID string

	Username    string
	DisplayName string
	Email       string

	// Password is stored as exported. It is never hashed or altered by import.
	Password string

	Roles []string

	// Locale is the backend interface locale.
	Locale string

	// BackendTheme names the backend theme.
	BackendTheme string

	// Status is "enabled" or "disabled".
	Status string
}

// HasRole reports whether the user holds the role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Clone returns a copy of the user with its own role slice.
func (u *User) Clone() *User {
	clone := *u
	clone.Roles = append([]string(nil), u.Roles...)
	return &clone
}
