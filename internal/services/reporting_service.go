package services

import (
	"context"
	"log/slog"
	"time"

	"timeledger/internal/domain"
	"timeledger/internal/errors"
	"timeledger/internal/logging"
	"timeledger/internal/report"
	"timeledger/internal/repository/sqlite"
	"timeledger/internal/timecalc"
	"timeledger/internal/validation"
)

// reportingServiceImpl implements the ReportingService interface
type reportingServiceImpl struct {
	repo      sqlite.Repository
	mapper    *domain.Mapper
	validator *validation.TimeEntryValidator
	calendar  timecalc.Calendar
	clock     Clock
	logger    *slog.Logger
}

// NewReportingService creates a new ReportingService instance
func NewReportingService(repo sqlite.Repository, calendar timecalc.Calendar, clock Clock, logger *slog.Logger) ReportingService {
	if clock == nil {
		clock = time.Now
	}
	return &reportingServiceImpl{
		repo:      repo,
		mapper:    domain.NewMapper(),
		validator: validation.NewTimeEntryValidator(),
		calendar:  calendar,
		clock:     clock,
		logger:    logging.WithComponent(logger, logging.ComponentReport),
	}
}

// Aggregate loads the entries of the query's period and groups them by day
func (r *reportingServiceImpl) Aggregate(ctx context.Context, query report.Query) (report.PeriodReport, error) {
	filter, err := query.Filter(r.calendar)
	if err != nil {
		return report.PeriodReport{}, errors.NewInvalidInputError("period", query.Kind, err.Error())
	}
	if err := r.validator.ValidateEntryFilter(filter); err != nil {
		return report.PeriodReport{}, invalid("invalid report query", err)
	}

	rows, err := r.repo.SearchTimeEntries(ctx, r.mapper.EntryFilter.ToDatabase(filter))
	if err != nil {
		return report.PeriodReport{}, err
	}

	result, err := report.Aggregate(r.mapper.TimeEntry.FromDatabaseSlice(rows), query, r.calendar)
	if err != nil {
		return report.PeriodReport{}, err
	}

	r.logger.Debug("period aggregated",
		logging.FieldPeriod, string(query.Kind),
		logging.FieldCount, result.EntryCount())
	return result, nil
}

// WeeklySummary totals completed entries of the current week per project
func (r *reportingServiceImpl) WeeklySummary(ctx context.Context) (report.WeeklySummary, error) {
	now := r.clock()
	week := r.calendar.Week(now)

	rows, err := r.repo.SearchTimeEntries(ctx, sqlite.SearchOptions{
		StartedFrom:   &week.Start,
		StartedBefore: &week.End,
	})
	if err != nil {
		return report.WeeklySummary{}, err
	}

	projects, err := r.repo.ListProjects(ctx, true)
	if err != nil {
		return report.WeeklySummary{}, err
	}
	names := make(map[string]string, len(projects))
	for _, project := range projects {
		names[project.ID] = project.Name
	}

	return report.SummarizeWeek(r.mapper.TimeEntry.FromDatabaseSlice(rows), names, now, r.calendar), nil
}

// PeriodLabel names the period containing anchor relative to now
func (r *reportingServiceImpl) PeriodLabel(kind timecalc.PeriodKind, anchor time.Time) string {
	return r.calendar.PeriodLabel(kind, anchor, r.clock())
}
