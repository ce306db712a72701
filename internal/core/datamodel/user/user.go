package user

import (
	departmentDatamodel "github.com/hcmteam/personnel-management/internal/core/datamodel/department"
)

type User struct {
	ID           int64                           `gorm:"primaryKey"`
	FirstName    string                          `gorm:"column:first_name;not null"`
	LastName     string                          `gorm:"column:last_name;not null"`
	Email        string                          `gorm:"column:email;not null"`
	JobTitle     string                          `gorm:"column:job_title;not null"`
	Salary       float64                         `gorm:"column:salary;not null"`
	Role         string                          `gorm:"column:role;not null"`
	PasswordHash string                          `gorm:"column:password_hash;not null"`
	DepartmentID int64                           `gorm:"column:department_id;not null"`
	Department   *departmentDatamodel.Department `gorm:"foreignKey:DepartmentID"`
}

func (User) TableName() string {
	return "users"
}
