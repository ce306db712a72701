package department

import (
	departmentDatamodel "github.com/hcmteam/personnel-management/internal/core/datamodel/department"
)

// Department is a read-only reference entity. User records point at one; this
// service never creates or mutates them.
type Department struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func FromDataModel(d *departmentDatamodel.Department) *Department {
	return &Department{
		ID:   d.ID,
		Name: d.Name,
	}
}

func ToDataModel(d *Department) *departmentDatamodel.Department {
	return &departmentDatamodel.Department{
		ID:   d.ID,
		Name: d.Name,
	}
}
