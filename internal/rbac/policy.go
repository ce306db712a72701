package rbac

import (
	"errors"
	"log/slog"

	"github.com/hcmteam/personnel-management/internal"
)

// ErrDirectoryMiss is returned by ActorDirectory implementations when the
// acting user has no record of their own.
var ErrDirectoryMiss = errors.New("actor record not found")

// ActorDirectory resolves the department an actor belongs to. It is the one
// read the policy needs: a manager's list scope depends on their own record.
type ActorDirectory interface {
	DepartmentOf(actorID int64) (int64, error)
}

// ListScopeKind discriminates the three possible outcomes of CanList.
type ListScopeKind int

const (
	ListDenyAll ListScopeKind = iota
	ListAll
	ListDepartment
)

// ListScope is the decision for a list operation. For ListDepartment the
// result set must be filtered to DepartmentID and RoleFilter.
type ListScope struct {
	Kind         ListScopeKind
	DepartmentID int64
	RoleFilter   Role
}

// Policy holds every authorization rule for user records in one place so the
// rule table can be audited as a single artifact. All checks are pure except
// CanList for managers, which needs the single directory read above.
type Policy struct {
	directory ActorDirectory
	logger    *slog.Logger
}

func NewPolicy(directory ActorDirectory, logger *slog.Logger) *Policy {
	return &Policy{
		directory: directory,
		logger:    logger,
	}
}

// CanList decides what slice of the user set the actor may enumerate.
// Admins see everything, managers see the employees of their own department,
// employees must use single-record reads instead.
func (p *Policy) CanList(actor Actor) (ListScope, error) {
	switch actor.Role {
	case RoleAdmin:
		return ListScope{Kind: ListAll}, nil
	case RoleManager:
		departmentID, err := p.directory.DepartmentOf(actor.ID)
		if err != nil {
			if errors.Is(err, ErrDirectoryMiss) {
				p.logger.Warn("list scope denied: manager record missing", "actor_id", actor.ID)
				return ListScope{}, internal.ErrActorNotFound
			}
			return ListScope{}, internal.NewUnavailableError("failed to resolve manager department", err)
		}
		return ListScope{
			Kind:         ListDepartment,
			DepartmentID: departmentID,
			RoleFilter:   RoleEmployee,
		}, nil
	case RoleEmployee:
		return ListScope{Kind: ListDenyAll}, nil
	default:
		// unrecognized roles never slip through to an allow
		return ListScope{Kind: ListDenyAll}, nil
	}
}

// CanRead permits admins and managers to read any record; employees may only
// read their own.
func (p *Policy) CanRead(actor Actor, targetID int64) bool {
	switch actor.Role {
	case RoleAdmin, RoleManager:
		return true
	case RoleEmployee:
		return actor.ID == targetID
	default:
		return false
	}
}

func (p *Policy) CanCreate(actor Actor) bool {
	return actor.Role == RoleAdmin
}

// CanUpdate grants managers edit rights on any record, mirroring the narrower
// list scope asymmetrically. Kept that way deliberately until the product
// owners decide otherwise.
func (p *Policy) CanUpdate(actor Actor, targetID int64) bool {
	switch actor.Role {
	case RoleAdmin, RoleManager:
		return true
	default:
		return false
	}
}

func (p *Policy) CanDelete(actor Actor, targetID int64) bool {
	return actor.Role == RoleAdmin
}
