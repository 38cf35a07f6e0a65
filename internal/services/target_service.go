package services

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"timeledger/internal/domain"
	"timeledger/internal/errors"
	"timeledger/internal/logging"
	"timeledger/internal/repository/sqlite"
	"timeledger/internal/target"
	"timeledger/internal/timecalc"
	"timeledger/internal/validation"
)

// targetConcurrency bounds the per-project work of ComputeAll.
const targetConcurrency = 4

// targetServiceImpl implements the TargetService interface
type targetServiceImpl struct {
	repo      sqlite.Repository
	mapper    *domain.Mapper
	validator *validation.ProjectValidator
	calendar  timecalc.Calendar
	clock     Clock
	logger    *slog.Logger
}

// NewTargetService creates a new TargetService instance
func NewTargetService(repo sqlite.Repository, calendar timecalc.Calendar, clock Clock, logger *slog.Logger) TargetService {
	if clock == nil {
		clock = time.Now
	}
	return &targetServiceImpl{
		repo:      repo,
		mapper:    domain.NewMapper(),
		validator: validation.NewProjectValidator(),
		calendar:  calendar,
		clock:     clock,
		logger:    logging.WithComponent(logger, logging.ComponentTarget),
	}
}

// ComputeTarget loads a project's entries and runs the carry-over calculation
func (s *targetServiceImpl) ComputeTarget(ctx context.Context, projectID string) (target.Calculation, bool, error) {
	if err := s.validator.ValidateProjectID(projectID); err != nil {
		return target.Calculation{}, false, errors.NewNotFoundError("project", projectID)
	}

	row, err := s.repo.GetProject(ctx, projectID)
	if err != nil {
		return target.Calculation{}, false, err
	}

	calculation, ok, err := s.compute(ctx, s.mapper.Project.FromDatabase(*row), s.clock())
	if err != nil {
		return target.Calculation{}, false, err
	}
	return calculation, ok, nil
}

// ComputeAll calculates every active project that has a target, concurrently.
// Results keep the store's project order and share one "now".
func (s *targetServiceImpl) ComputeAll(ctx context.Context) ([]ProjectTarget, error) {
	rows, err := s.repo.ListProjects(ctx, false)
	if err != nil {
		return nil, err
	}

	var projects []domain.Project
	for _, row := range rows {
		project := s.mapper.Project.FromDatabase(*row)
		if _, ok := project.MonthlyTarget(); ok {
			projects = append(projects, project)
		}
	}

	now := s.clock()
	results := make([]ProjectTarget, len(projects))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(targetConcurrency)
	for i, project := range projects {
		g.Go(func() error {
			calculation, _, err := s.compute(gctx, project, now)
			if err != nil {
				return err
			}
			results[i] = ProjectTarget{Project: project, Calculation: calculation}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Debug("targets computed", logging.FieldCount, len(results))
	return results, nil
}

func (s *targetServiceImpl) compute(ctx context.Context, project domain.Project, now time.Time) (target.Calculation, bool, error) {
	projectID := project.ID
	entries, err := s.repo.SearchTimeEntries(ctx, sqlite.SearchOptions{ProjectID: &projectID})
	if err != nil {
		return target.Calculation{}, false, err
	}

	calculation, ok := target.Calculate(project, s.mapper.TimeEntry.FromDatabaseSlice(entries), now, s.calendar)
	return calculation, ok, nil
}
