package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"timeledger/internal/config"
	"timeledger/internal/domain"
	"timeledger/internal/errors"
	"timeledger/internal/logging"
	"timeledger/internal/repository/sqlite"
	"timeledger/internal/validation"
)

// projectServiceImpl implements the ProjectService interface
type projectServiceImpl struct {
	repo      sqlite.Repository
	mapper    *domain.Mapper
	validator *validation.ProjectValidator
	clock     Clock
	logger    *slog.Logger
}

// NewProjectService creates a new ProjectService instance
func NewProjectService(repo sqlite.Repository, cfg *config.Config, clock Clock, logger *slog.Logger) ProjectService {
	if clock == nil {
		clock = time.Now
	}
	validator := validation.NewProjectValidator()
	if cfg != nil {
		validator = validation.NewProjectValidatorWithConfig(cfg)
	}
	return &projectServiceImpl{
		repo:      repo,
		mapper:    domain.NewMapper(),
		validator: validator,
		clock:     clock,
		logger:    logging.WithComponent(logger, logging.ComponentProject),
	}
}

// CreateProject creates a project with a trimmed name and an optional target
func (s *projectServiceImpl) CreateProject(ctx context.Context, name string, monthlyTarget *float64) (*domain.Project, error) {
	trimmed, err := s.validator.ValidateProjectName(name)
	if err != nil {
		return nil, invalid("invalid project name", err)
	}
	if err := s.validator.ValidateTarget(monthlyTarget); err != nil {
		return nil, invalid("invalid monthly target", err)
	}

	project := domain.NewProject(uuid.New().String(), trimmed, monthlyTarget, s.clock())
	row := s.mapper.Project.ToDatabase(project)
	if err := s.repo.CreateProject(ctx, &row); err != nil {
		return nil, err
	}

	s.logger.Info("project created", logging.FieldProjectID, project.ID)
	return &project, nil
}

// GetProject retrieves a project by ID
func (s *projectServiceImpl) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	if err := s.validator.ValidateProjectID(id); err != nil {
		return nil, errors.NewNotFoundError("project", id)
	}

	row, err := s.repo.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	project := s.mapper.Project.FromDatabase(*row)
	return &project, nil
}

// FindProject resolves a project by ID or, failing that, by its name
// among active projects (case-insensitive).
func (s *projectServiceImpl) FindProject(ctx context.Context, ref string) (*domain.Project, error) {
	ref = strings.TrimSpace(ref)
	if s.validator.ValidateProjectID(ref) == nil {
		return s.GetProject(ctx, ref)
	}

	projects, err := s.ListProjects(ctx, false)
	if err != nil {
		return nil, err
	}

	var matches []*domain.Project
	for _, project := range projects {
		if strings.EqualFold(project.Name, ref) {
			matches = append(matches, project)
		}
	}

	switch len(matches) {
	case 0:
		return nil, errors.NewNotFoundError("project", ref)
	case 1:
		return matches[0], nil
	default:
		return nil, errors.NewInvalidInputError("project", ref, "name is ambiguous, use the project ID")
	}
}

// ListProjects returns projects newest first
func (s *projectServiceImpl) ListProjects(ctx context.Context, includeArchived bool) ([]*domain.Project, error) {
	rows, err := s.repo.ListProjects(ctx, includeArchived)
	if err != nil {
		return nil, err
	}
	return s.mapper.Project.FromDatabaseSlice(rows), nil
}

// UpdateProject renames a project and replaces its target; a nil target clears it
func (s *projectServiceImpl) UpdateProject(ctx context.Context, id string, name string, monthlyTarget *float64) (*domain.Project, error) {
	trimmed, err := s.validator.ValidateProjectName(name)
	if err != nil {
		return nil, invalid("invalid project name", err)
	}
	if err := s.validator.ValidateTarget(monthlyTarget); err != nil {
		return nil, invalid("invalid monthly target", err)
	}

	project, err := s.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	project.Name = trimmed
	project.MonthlyTargetHours = monthlyTarget

	row := s.mapper.Project.ToDatabase(*project)
	if err := s.repo.UpdateProject(ctx, &row); err != nil {
		return nil, err
	}

	s.logger.Info("project updated", logging.FieldProjectID, id)
	return project, nil
}

// DeleteProject archives a project that owns entries and hard-deletes one that owns none
func (s *projectServiceImpl) DeleteProject(ctx context.Context, id string) (bool, error) {
	if err := s.validator.ValidateProjectID(id); err != nil {
		return false, errors.NewNotFoundError("project", id)
	}

	archived := false
	err := s.repo.WithinTx(ctx, func(tx sqlite.Repository) error {
		row, err := tx.GetProject(ctx, id)
		if err != nil {
			return err
		}

		count, err := tx.CountProjectEntries(ctx, id)
		if err != nil {
			return err
		}
		if count == 0 {
			return tx.DeleteProject(ctx, id)
		}

		row.Archived = true
		archived = true
		return tx.UpdateProject(ctx, row)
	})
	if err != nil {
		return false, err
	}

	s.logger.Info("project deleted", logging.FieldProjectID, id, "archived", archived)
	return archived, nil
}
