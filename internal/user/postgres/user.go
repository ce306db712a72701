package postgres

import (
	"errors"

	"gorm.io/gorm"

	userDatamodel "github.com/hcmteam/personnel-management/internal/core/datamodel/user"
	"github.com/hcmteam/personnel-management/internal/rbac"
	"github.com/hcmteam/personnel-management/internal/user"
)

// UserRepository implements user.Repository and rbac.ActorDirectory using
// GORM.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(id int64) (*user.User, error) {
	var dm userDatamodel.User
	err := r.db.Preload("Department").Where("id = ?", id).First(&dm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	return user.FromDataModel(&dm), nil
}

func (r *UserRepository) GetAll() ([]*user.User, error) {
	var rows []*userDatamodel.User
	err := r.db.Preload("Department").Order("id ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return fromDataModels(rows), nil
}

func (r *UserRepository) GetByDepartmentAndRole(departmentID int64, role rbac.Role) ([]*user.User, error) {
	var rows []*userDatamodel.User
	err := r.db.Preload("Department").
		Where("department_id = ? AND role = ?", departmentID, string(role)).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return fromDataModels(rows), nil
}

func (r *UserRepository) Create(u *user.User) error {
	dm := user.ToDataModel(u)
	if err := r.db.Create(dm).Error; err != nil {
		return err
	}
	u.ID = dm.ID
	return nil
}

func (r *UserRepository) Update(u *user.User) error {
	return r.db.Save(user.ToDataModel(u)).Error
}

func (r *UserRepository) Delete(u *user.User) error {
	return r.db.Delete(&userDatamodel.User{}, u.ID).Error
}

// DepartmentOf satisfies rbac.ActorDirectory: the single read the policy
// needs to scope a manager's list to their own department.
func (r *UserRepository) DepartmentOf(actorID int64) (int64, error) {
	var dm userDatamodel.User
	err := r.db.Select("department_id").Where("id = ?", actorID).First(&dm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, rbac.ErrDirectoryMiss
		}
		return 0, err
	}
	return dm.DepartmentID, nil
}

func fromDataModels(rows []*userDatamodel.User) []*user.User {
	users := make([]*user.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, user.FromDataModel(row))
	}
	return users
}
