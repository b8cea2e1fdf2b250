package auth

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AdminLoginRequest carries the office email in the username field,
// matching the admin console's form.
type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type FederatedLoginRequest struct {
	Token string `json:"token" binding:"required"`
}

type UserSummary struct {
	ID      string `json:"id"`
	EmpCode string `json:"emp_code,omitempty"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Role    string `json:"role"`
	Status  string `json:"status,omitempty"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}
