package user

import (
	"errors"
	"log/slog"

	internal "github.com/hcmteam/personnel-management/internal"
	"github.com/hcmteam/personnel-management/internal/rbac"
)

// Repository is the persistence collaborator for user records. Reads return
// records joined with their department. Missing records surface ErrNotFound;
// any other failure is a storage-layer error.
type Repository interface {
	GetByID(id int64) (*User, error)
	GetAll() ([]*User, error)
	GetByDepartmentAndRole(departmentID int64, role rbac.Role) ([]*User, error)
	Create(u *User) error
	Update(u *User) error
	Delete(u *User) error
}

// DepartmentRepository provides the existence check for department
// references.
type DepartmentRepository interface {
	Exists(id int64) (bool, error)
}

// PasswordHasher derives the stored credential hash from a plaintext.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
}

// AccessPolicy is consulted before every operation. See the rbac package for
// the rule table.
type AccessPolicy interface {
	CanList(actor rbac.Actor) (rbac.ListScope, error)
	CanRead(actor rbac.Actor, targetID int64) bool
	CanCreate(actor rbac.Actor) bool
	CanUpdate(actor rbac.Actor, targetID int64) bool
	CanDelete(actor rbac.Actor, targetID int64) bool
}

// Service orchestrates the user record use cases: policy check, validation,
// field mapping, persistence. It owns no state between calls.
type Service struct {
	repo        Repository
	departments DepartmentRepository
	policy      AccessPolicy
	hasher      PasswordHasher
	logger      *slog.Logger
}

func NewService(repo Repository, departments DepartmentRepository, policy AccessPolicy, hasher PasswordHasher, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		departments: departments,
		policy:      policy,
		hasher:      hasher,
		logger:      logger,
	}
}

// List returns the records the actor may enumerate: all of them for admins,
// the employees of their own department for managers, nothing for employees.
func (s *Service) List(actor rbac.Actor) ([]*User, error) {
	scope, err := s.policy.CanList(actor)
	if err != nil {
		s.logger.Error("list scope resolution failed", "error", err, "actor_id", actor.ID)
		return nil, err
	}

	switch scope.Kind {
	case rbac.ListAll:
		users, err := s.repo.GetAll()
		if err != nil {
			s.logger.Error("failed to list users", "error", err, "actor_id", actor.ID)
			return nil, internal.NewUnavailableError("failed to list users", err)
		}
		return users, nil
	case rbac.ListDepartment:
		users, err := s.repo.GetByDepartmentAndRole(scope.DepartmentID, scope.RoleFilter)
		if err != nil {
			s.logger.Error("failed to list department users", "error", err,
				"actor_id", actor.ID, "department_id", scope.DepartmentID)
			return nil, internal.NewUnavailableError("failed to list users", err)
		}
		return users, nil
	default:
		s.logger.Warn("list denied", "actor_id", actor.ID, "role", actor.Role)
		return nil, internal.ErrForbidden
	}
}

// Get returns a single record by id. The policy check runs before the fetch
// so a denied actor learns nothing about whether the record exists.
func (s *Service) Get(actor rbac.Actor, id int64) (*User, error) {
	if !s.policy.CanRead(actor, id) {
		s.logger.Warn("read denied", "actor_id", actor.ID, "role", actor.Role, "target_id", id)
		return nil, internal.ErrForbidden
	}

	u, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, internal.ErrUserNotFound
		}
		s.logger.Error("failed to get user", "error", err, "target_id", id)
		return nil, internal.NewUnavailableError("failed to get user", err)
	}
	return u, nil
}

// Create validates the input, maps it onto a new record and persists it. The
// plaintext credential is hashed and then dropped; it never reaches a log or
// the store.
func (s *Service) Create(actor rbac.Actor, dto UserDTO, password string) (*User, error) {
	if !s.policy.CanCreate(actor) {
		s.logger.Warn("create denied", "actor_id", actor.ID, "role", actor.Role)
		return nil, internal.ErrForbidden
	}

	if err := s.validateInput(dto); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("failed to hash credential", "error", err)
		return nil, internal.NewInternalError("failed to hash credential", err)
	}

	u := &User{
		FirstName:    dto.FirstName,
		LastName:     dto.LastName,
		Email:        dto.Email,
		JobTitle:     dto.JobTitle,
		Salary:       dto.Salary,
		Role:         rbac.Role(dto.Role),
		PasswordHash: hash,
		DepartmentID: dto.DepartmentID,
	}

	if err := s.repo.Create(u); err != nil {
		s.logger.Error("failed to create user", "error", err, "actor_id", actor.ID)
		return nil, internal.NewUnavailableError("failed to create user", err)
	}

	s.logger.Info("user created", "user_id", u.ID, "actor_id", actor.ID, "department_id", u.DepartmentID)
	return u, nil
}

// Update overwrites every editable field of an existing record with the
// input and re-hashes the supplied credential unconditionally. Callers that
// want the password unchanged must resupply the current plaintext.
func (s *Service) Update(actor rbac.Actor, dto UserDTO, password string) (*User, error) {
	if !s.policy.CanUpdate(actor, dto.ID) {
		s.logger.Warn("update denied", "actor_id", actor.ID, "role", actor.Role, "target_id", dto.ID)
		return nil, internal.ErrForbidden
	}

	existing, err := s.repo.GetByID(dto.ID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, internal.ErrUserNotFound
		}
		s.logger.Error("failed to load user for update", "error", err, "target_id", dto.ID)
		return nil, internal.NewUnavailableError("failed to load user", err)
	}

	if err := s.validateInput(dto); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("failed to hash credential", "error", err)
		return nil, internal.NewInternalError("failed to hash credential", err)
	}

	// identity stays; everything editable is overwritten
	existing.FirstName = dto.FirstName
	existing.LastName = dto.LastName
	existing.Email = dto.Email
	existing.JobTitle = dto.JobTitle
	existing.Salary = dto.Salary
	existing.Role = rbac.Role(dto.Role)
	existing.PasswordHash = hash
	existing.DepartmentID = dto.DepartmentID
	existing.Department = nil

	if err := s.repo.Update(existing); err != nil {
		s.logger.Error("failed to update user", "error", err, "target_id", dto.ID)
		return nil, internal.NewUnavailableError("failed to update user", err)
	}

	s.logger.Info("user updated", "user_id", existing.ID, "actor_id", actor.ID)
	return existing, nil
}

// Delete removes a record. Admin only.
func (s *Service) Delete(actor rbac.Actor, id int64) error {
	if !s.policy.CanDelete(actor, id) {
		s.logger.Warn("delete denied", "actor_id", actor.ID, "role", actor.Role, "target_id", id)
		return internal.ErrForbidden
	}

	existing, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return internal.ErrUserNotFound
		}
		s.logger.Error("failed to load user for delete", "error", err, "target_id", id)
		return internal.NewUnavailableError("failed to load user", err)
	}

	if err := s.repo.Delete(existing); err != nil {
		s.logger.Error("failed to delete user", "error", err, "target_id", id)
		return internal.NewUnavailableError("failed to delete user", err)
	}

	s.logger.Info("user deleted", "user_id", id, "actor_id", actor.ID)
	return nil
}

// validateInput runs the field rules and then verifies the department
// reference. A dangling department id is a validation failure, not a
// silently accepted write.
func (s *Service) validateInput(dto UserDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	exists, err := s.departments.Exists(dto.DepartmentID)
	if err != nil {
		s.logger.Error("failed to check department", "error", err, "department_id", dto.DepartmentID)
		return internal.NewUnavailableError("failed to check department", err)
	}
	if !exists {
		return internal.NewValidationFieldError("department_id",
			"department does not exist", internal.ErrCodeUnknownDepartment)
	}
	return nil
}
