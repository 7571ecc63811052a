package models

// RegisterRequest is the body of POST /auth/register and the admin POST /users.
type RegisterRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Role     string  `json:"role"`
	Status   string  `json:"status"`
	Profile  Profile `json:"profile"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token string `json:"token"`
}

type UpdateUserRequest struct {
	Name    string         `json:"name"`
	Profile *ProfileUpdate `json:"profile"`
}

type UpdateUserStatusRequest struct {
	Status string `json:"status"`
}

// Caller is the authenticated identity behind a request.
type Caller struct {
	ID   string
	Role string
}

func (c Caller) IsAdmin() bool   { return c.Role == RoleAdmin }
func (c Caller) IsDoctor() bool  { return c.Role == RoleDoctor }
func (c Caller) IsPatient() bool { return c.Role == RolePatient }
