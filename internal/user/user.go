package user

import (
	"errors"

	userDatamodel "github.com/hcmteam/personnel-management/internal/core/datamodel/user"
	"github.com/hcmteam/personnel-management/internal/department"
	"github.com/hcmteam/personnel-management/internal/rbac"
)

// User is a personnel record. PasswordHash is write-only from the caller's
// point of view and never serialized.
type User struct {
	ID           int64                  `json:"id"`
	FirstName    string                 `json:"first_name"`
	LastName     string                 `json:"last_name"`
	Email        string                 `json:"email"`
	JobTitle     string                 `json:"job_title"`
	Salary       float64                `json:"salary"`
	Role         rbac.Role              `json:"role"`
	PasswordHash string                 `json:"-"`
	DepartmentID int64                  `json:"department_id"`
	Department   *department.Department `json:"department,omitempty"`
}

var ErrNotFound = errors.New("user not found")

func ToDataModel(u *User) *userDatamodel.User {
	return &userDatamodel.User{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		JobTitle:     u.JobTitle,
		Salary:       u.Salary,
		Role:         string(u.Role),
		PasswordHash: u.PasswordHash,
		DepartmentID: u.DepartmentID,
	}
}

func FromDataModel(dm *userDatamodel.User) *User {
	u := &User{
		ID:           dm.ID,
		FirstName:    dm.FirstName,
		LastName:     dm.LastName,
		Email:        dm.Email,
		JobTitle:     dm.JobTitle,
		Salary:       dm.Salary,
		Role:         rbac.Role(dm.Role),
		PasswordHash: dm.PasswordHash,
		DepartmentID: dm.DepartmentID,
	}
	if dm.Department != nil {
		u.Department = department.FromDataModel(dm.Department)
	}
	return u
}
