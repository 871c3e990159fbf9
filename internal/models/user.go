package models

// User is keyed by cwid, the campus-wide ID supplied by the caller at
// registration. It is never generated server-side.
type User struct {
	CWID     int    `json:"cwid"`
	Name     string `json:"name"`
	Password string `json:"-"` // hex-encoded credential, see services.HashPassword
}

type CreateUserRequest struct {
	CWID     int    `json:"cwid"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Password string `json:"password"`
}
