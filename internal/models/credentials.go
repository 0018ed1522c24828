package models

// Credentials is the username/password pair used as the only authentication factor.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// IsZero reports whether no credentials are held.
func (c Credentials) IsZero() bool {
	return c.Username == "" && c.Password == ""
}
