package department

import (
	"log/slog"

	internal "github.com/hcmteam/personnel-management/internal"
)

type Repository interface {
	GetAll() ([]*Department, error)
	Exists(id int64) (bool, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetAll() ([]*Department, error) {
	departments, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list departments", "error", err)
		return nil, internal.NewUnavailableError("failed to list departments", err)
	}
	return departments, nil
}

// Exists reports whether a department id references a real department. Used
// by the user service to reject dangling references.
func (s *Service) Exists(id int64) (bool, error) {
	return s.repo.Exists(id)
}
