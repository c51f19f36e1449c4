package request

// CreateUserRequest creates a staff member in the caller's clinic
type CreateUserRequest struct {
	FirstName string  `json:"first_name" binding:"required,min=2,max=100"`
	LastName  string  `json:"last_name" binding:"required,min=2,max=100"`
	Email     string  `json:"email" binding:"required,email"`
	Phone     *string `json:"phone" binding:"omitempty,max=50"`
	Password  string  `json:"password" binding:"required,min=8"`
	Role      string  `json:"role" binding:"required"`
}

// UpdateUserRequest updates a staff member's details
type UpdateUserRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,min=2,max=100"`
	LastName  *string `json:"last_name" binding:"omitempty,min=2,max=100"`
	Phone     *string `json:"phone" binding:"omitempty,max=50"`
}

// AssignRoleRequest grants or revokes a role on a user
type AssignRoleRequest struct {
	Role string `json:"role" binding:"required"`
}
