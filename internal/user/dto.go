package user

import (
	internal "github.com/hcmteam/personnel-management/internal"
	"github.com/hcmteam/personnel-management/internal/core/common/validation"
	"github.com/hcmteam/personnel-management/internal/rbac"
)

// UserDTO carries the editable fields of a record as submitted by a caller.
// It is untrusted input and never persisted directly.
type UserDTO struct {
	ID           int64   `json:"id,omitempty"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Email        string  `json:"email"`
	JobTitle     string  `json:"job_title"`
	Salary       float64 `json:"salary"`
	Role         string  `json:"role"`
	DepartmentID int64   `json:"department_id"`
}

// UserPayload is the wire shape for create and update requests: the editable
// fields plus the plaintext credential, which is hashed before persistence.
type UserPayload struct {
	UserDTO
	Password string `json:"password"`
}

var allowedRoles = []string{
	rbac.RoleAdmin.String(),
	rbac.RoleManager.String(),
	rbac.RoleEmployee.String(),
}

// Validate checks the field-level rules shared by Create and Update. The
// department reference is checked separately by the service, which owns the
// persistence collaborator.
func (dto UserDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("first_name", dto.FirstName).Required()
	v.Field("last_name", dto.LastName).Required()
	v.Field("email", dto.Email).Required().Email()
	v.Field("job_title", dto.JobTitle).Required()
	v.Field("salary", dto.Salary).NonNegative(internal.ErrCodeInvalidSalary)
	v.Field("role", dto.Role).Required().OneOf(allowedRoles, internal.ErrCodeInvalidRole)
	v.Field("department_id", dto.DepartmentID).Required()
	return v.Validate()
}
