package request

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type RegisterRequest struct {
	Name     string  `json:"name" validate:"required,min=3,max=100"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,min=10,max=15"`
	Role     string  `json:"role,omitempty" validate:"omitempty,oneof=cliente trabajador gerente"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type UpdateProfileRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=3,max=100"`
	Phone *string `json:"phone,omitempty" validate:"omitempty,min=10,max=15"`
}
