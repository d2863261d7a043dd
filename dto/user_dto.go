package dto

// RegisterUserRequest is the public registration payload. Registration is
// idempotent on email: an already-registered email returns a notice, not an
// error.
type RegisterUserRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required"`
}

// UpdateUserRequest is the admin-only partial update, used to promote or
// demote a user's role. Empty fields are left untouched.
type UpdateUserRequest struct {
	Role string `json:"role,omitempty" binding:"omitempty,oneof=user admin"`
	Name string `json:"name,omitempty"`
}
