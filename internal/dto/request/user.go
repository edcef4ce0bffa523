package request

type UserUpdateRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=3,max=100"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone *string `json:"phone,omitempty" validate:"omitempty,min=10,max=15"`
}

type UserStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active inactive"`
}

type UserFilter struct {
	Role   string
	Status string
	Search string
	Page   int
	Limit  int
}
