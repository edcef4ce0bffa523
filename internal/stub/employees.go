package stub

import (
	"fmt"
	"strings"

	"cinevers-client/internal/dto/request"
	"cinevers-client/internal/dto/response"

	"github.com/google/uuid"
)

// Employees are users with a staff role; the store keeps them in the
// same table as customers.

func (st *Store) Employees(filter request.EmployeeFilter) []response.Employee {
	st.mu.Lock()
	defer st.mu.Unlock()

	var out []response.Employee
	for _, user := range st.users {
		if user.Role != "trabajador" && user.Role != "gerente" {
			continue
		}
		if filter.Role != "" && user.Role != filter.Role {
			continue
		}
		if filter.Status != "" && user.Status != filter.Status {
			continue
		}
		out = append(out, toEmployeeResponse(user))
	}
	return out
}

func (st *Store) CreateEmployee(req request.EmployeeRequest) (*response.Employee, error) {
	user, err := st.CreateUser(req.Name, req.Email, req.Password, req.Role, nil)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	user.Status = req.Status
	resp := toEmployeeResponse(user)
	st.mu.Unlock()

	return &resp, nil
}

func (st *Store) UpdateEmployee(id string, req request.EmployeeUpdateRequest) (*response.Employee, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	user, err := st.lookupEmployee(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		delete(st.byEmail, strings.ToLower(user.Email))
		user.Email = *req.Email
		st.byEmail[strings.ToLower(user.Email)] = user
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Status != nil {
		user.Status = *req.Status
	}

	resp := toEmployeeResponse(user)
	return &resp, nil
}

func (st *Store) SetEmployeeStatus(id, status string) (*response.Employee, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	user, err := st.lookupEmployee(id)
	if err != nil {
		return nil, err
	}
	user.Status = status
	resp := toEmployeeResponse(user)
	return &resp, nil
}

func (st *Store) lookupEmployee(id string) (*User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("employee not found")
	}
	user, ok := st.users[userID]
	if !ok || (user.Role != "trabajador" && user.Role != "gerente") {
		return nil, fmt.Errorf("employee not found")
	}
	return user, nil
}

func toEmployeeResponse(u *User) response.Employee {
	return response.Employee{
		ID:     u.ID.String(),
		Name:   u.Name,
		Email:  u.Email,
		Role:   u.Role,
		Status: u.Status,
	}
}
