package domain

import "time"

// Role is the closed set of identities the credential table can grant.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Session is the in-memory record of the currently authenticated identity.
// It lives for the lifetime of the process and is never persisted.
type Session struct {
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	StartedAt time.Time `json:"started_at"`
}

// Credential is one entry of the credential table.
type Credential struct {
	Password string `yaml:"password"`
	Role     Role   `yaml:"role"`
}

// CredentialTable maps usernames to their password and role.
type CredentialTable map[string]Credential

// Match returns the role for username when password matches exactly.
func (t CredentialTable) Match(username, password string) (Role, bool) {
	cred, ok := t[username]
	if !ok || cred.Password != password {
		return "", false
	}
	return cred.Role, true
}
