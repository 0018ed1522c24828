package service

import (
	"crypto/subtle"
	"errors"
)

var (
	ErrMissingCredentials = errors.New("username and password are required")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// AuthService verifies against the single configured pair. There are no
// user records and nothing is issued on success.
type AuthService struct {
	username []byte
	password []byte
}

func NewAuthService(username, password string) *AuthService {
	return &AuthService{username: []byte(username), password: []byte(password)}
}

// Verify compares both fields in constant time. Both comparisons always
// run so timing does not reveal which field differed.
func (s *AuthService) Verify(username, password string) error {
	if username == "" || password == "" {
		return ErrMissingCredentials
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), s.username)
	passOK := subtle.ConstantTimeCompare([]byte(password), s.password)
	if userOK&passOK != 1 {
		return ErrInvalidCredentials
	}
	return nil
}
