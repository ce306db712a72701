package postgres

import (
	"gorm.io/gorm"

	departmentDatamodel "github.com/hcmteam/personnel-management/internal/core/datamodel/department"
	"github.com/hcmteam/personnel-management/internal/department"
)

type DepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) department.Repository {
	return &DepartmentRepository{db: db}
}

func (r *DepartmentRepository) GetAll() ([]*department.Department, error) {
	var rows []*departmentDatamodel.Department
	if err := r.db.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	departments := make([]*department.Department, 0, len(rows))
	for _, row := range rows {
		departments = append(departments, department.FromDataModel(row))
	}
	return departments, nil
}

func (r *DepartmentRepository) Exists(id int64) (bool, error) {
	var count int64
	err := r.db.Model(&departmentDatamodel.Department{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
