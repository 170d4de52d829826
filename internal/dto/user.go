package dto

// UpdateUserRequest represents fields allowed to update a user.
// All fields are optional; only provided ones will be updated
type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=40"`
	Email    *string `json:"email" validate:"omitempty,looseemail"`
	Password *string `json:"password" validate:"omitempty,min=6"`
}

// IsEmpty reports whether the request changes nothing
func (r UpdateUserRequest) IsEmpty() bool {
	return r.Name == nil && r.Email == nil && r.Password == nil
}

// UserResponse represents user data in API responses
type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
