package auto_grow

// LoginPath is the unauthenticated credential verification endpoint.
const LoginPath = "/api/auth/login"

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned with 200 when the pair matches.
// The endpoint is stateless: no token is issued.
type LoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx answer from the service.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ServerInfo is served on GET /.
type ServerInfo struct {
	Message string `json:"message"`
	Version string `json:"version"`
}
