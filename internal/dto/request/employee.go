package request

type EmployeeRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=trabajador gerente"`
	Status   string `json:"status" validate:"required,oneof=active inactive"`
}

type EmployeeUpdateRequest struct {
	Name   *string `json:"name,omitempty" validate:"omitempty,min=3,max=100"`
	Email  *string `json:"email,omitempty" validate:"omitempty,email"`
	Role   *string `json:"role,omitempty" validate:"omitempty,oneof=trabajador gerente"`
	Status *string `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

type EmployeeFilter struct {
	Role   string
	Status string
	Page   int
	Limit  int
}
