package rbac_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	internal "github.com/hcmteam/personnel-management/internal"
	"github.com/hcmteam/personnel-management/internal/rbac"
)

func TestRBAC(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "RBAC Suite")
}

// Mock actor directory for testing
type mockActorDirectory struct {
	departments map[int64]int64
	lookupError error
}

func newMockActorDirectory() *mockActorDirectory {
	return &mockActorDirectory{
		departments: make(map[int64]int64),
	}
}

func (m *mockActorDirectory) DepartmentOf(actorID int64) (int64, error) {
	if m.lookupError != nil {
		return 0, m.lookupError
	}
	departmentID, ok := m.departments[actorID]
	if !ok {
		return 0, rbac.ErrDirectoryMiss
	}
	return departmentID, nil
}

var _ = Describe("Policy", func() {
	var (
		policy    *rbac.Policy
		directory *mockActorDirectory
	)

	admin := rbac.Actor{ID: 1, Role: rbac.RoleAdmin}
	manager := rbac.Actor{ID: 2, Role: rbac.RoleManager}
	employee := rbac.Actor{ID: 3, Role: rbac.RoleEmployee}

	BeforeEach(func() {
		directory = newMockActorDirectory()
		directory.departments[manager.ID] = 42
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		policy = rbac.NewPolicy(directory, logger)
	})

	Describe("CanList", func() {
		It("grants admins an unfiltered scope", func() {
			scope, err := policy.CanList(admin)

			Expect(err).ToNot(HaveOccurred())
			Expect(scope.Kind).To(Equal(rbac.ListAll))
		})

		It("scopes managers to employees of their own department", func() {
			scope, err := policy.CanList(manager)

			Expect(err).ToNot(HaveOccurred())
			Expect(scope.Kind).To(Equal(rbac.ListDepartment))
			Expect(scope.DepartmentID).To(Equal(int64(42)))
			Expect(scope.RoleFilter).To(Equal(rbac.RoleEmployee))
		})

		It("denies employees outright", func() {
			scope, err := policy.CanList(employee)

			Expect(err).ToNot(HaveOccurred())
			Expect(scope.Kind).To(Equal(rbac.ListDenyAll))
		})

		It("denies unrecognized roles", func() {
			scope, err := policy.CanList(rbac.Actor{ID: 9, Role: rbac.Role("superuser")})

			Expect(err).ToNot(HaveOccurred())
			Expect(scope.Kind).To(Equal(rbac.ListDenyAll))
		})

		It("surfaces a missing manager record as actor-not-found, not a silent deny", func() {
			orphan := rbac.Actor{ID: 99, Role: rbac.RoleManager}

			_, err := policy.CanList(orphan)

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeActorNotFound))
		})

		It("surfaces directory failures as unavailable", func() {
			directory.lookupError = errors.New("connection refused")

			_, err := policy.CanList(manager)

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeUnavailable))
		})
	})

	Describe("CanRead", func() {
		It("allows admins to read any record", func() {
			Expect(policy.CanRead(admin, 123)).To(BeTrue())
		})

		It("allows managers to read any record", func() {
			Expect(policy.CanRead(manager, 123)).To(BeTrue())
		})

		It("allows employees to read only their own record", func() {
			Expect(policy.CanRead(employee, employee.ID)).To(BeTrue())
			Expect(policy.CanRead(employee, 123)).To(BeFalse())
		})

		It("denies unrecognized roles", func() {
			Expect(policy.CanRead(rbac.Actor{ID: 9, Role: rbac.Role("root")}, 9)).To(BeFalse())
		})
	})

	Describe("CanCreate", func() {
		It("allows only admins", func() {
			Expect(policy.CanCreate(admin)).To(BeTrue())
			Expect(policy.CanCreate(manager)).To(BeFalse())
			Expect(policy.CanCreate(employee)).To(BeFalse())
		})
	})

	Describe("CanUpdate", func() {
		It("allows admins and managers on any target", func() {
			Expect(policy.CanUpdate(admin, 123)).To(BeTrue())
			Expect(policy.CanUpdate(manager, 123)).To(BeTrue())
		})

		It("denies employees, even on their own record", func() {
			Expect(policy.CanUpdate(employee, employee.ID)).To(BeFalse())
		})
	})

	Describe("CanDelete", func() {
		It("allows only admins", func() {
			Expect(policy.CanDelete(admin, 123)).To(BeTrue())
			Expect(policy.CanDelete(manager, 123)).To(BeFalse())
			Expect(policy.CanDelete(employee, 123)).To(BeFalse())
		})
	})
})
