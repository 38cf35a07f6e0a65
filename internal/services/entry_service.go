package services

import (
	"context"
	"log/slog"

	"timeledger/internal/config"
	"timeledger/internal/domain"
	"timeledger/internal/errors"
	"timeledger/internal/logging"
	"timeledger/internal/repository/sqlite"
	"timeledger/internal/validation"
)

// entryServiceImpl implements the EntryService interface
type entryServiceImpl struct {
	repo      sqlite.Repository
	mapper    *domain.Mapper
	validator *validation.TimeEntryValidator
	logger    *slog.Logger
}

// NewEntryService creates a new EntryService instance
func NewEntryService(repo sqlite.Repository, cfg *config.Config, logger *slog.Logger) EntryService {
	validator := validation.NewTimeEntryValidator()
	if cfg != nil {
		validator = validation.NewTimeEntryValidatorWithConfig(cfg)
	}
	return &entryServiceImpl{
		repo:      repo,
		mapper:    domain.NewMapper(),
		validator: validator,
		logger:    logging.WithComponent(logger, logging.ComponentEntry),
	}
}

// GetEntry retrieves a time entry by ID
func (s *entryServiceImpl) GetEntry(ctx context.Context, id string) (*domain.TimeEntry, error) {
	if err := s.validator.ValidateTimeEntryID(id); err != nil {
		return nil, errors.NewNotFoundError("time entry", id)
	}

	row, err := s.repo.GetTimeEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	entry := s.mapper.TimeEntry.FromDatabase(*row)
	return &entry, nil
}

// ListEntries returns the entries matching filter, newest first
func (s *entryServiceImpl) ListEntries(ctx context.Context, filter domain.EntryFilter) ([]domain.TimeEntry, error) {
	if err := s.validator.ValidateEntryFilter(filter); err != nil {
		return nil, invalid("invalid entry filter", err)
	}

	rows, err := s.repo.SearchTimeEntries(ctx, s.mapper.EntryFilter.ToDatabase(filter))
	if err != nil {
		return nil, err
	}
	return s.mapper.TimeEntry.FromDatabaseSlice(rows), nil
}

// UpdateEntry edits a completed entry. The running entry belongs to the
// timer and cannot be edited here.
func (s *entryServiceImpl) UpdateEntry(ctx context.Context, id string, changes EntryChanges) (*domain.TimeEntry, error) {
	entry, err := s.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry.IsRunning() {
		return nil, errors.NewConflictError("stop the timer before editing the running entry")
	}

	if changes.Note != nil {
		entry.Note = *changes.Note
	}
	if changes.StartedAt != nil {
		entry.StartedAt = *changes.StartedAt
	}
	if changes.EndedAt != nil {
		entry.EndedAt = changes.EndedAt
	}

	if err := s.validator.ValidateTimeRange(entry.StartedAt, entry.EndedAt); err != nil {
		return nil, invalid("invalid time entry", err)
	}

	row := s.mapper.TimeEntry.ToDatabase(*entry)
	if err := s.repo.UpdateTimeEntry(ctx, &row); err != nil {
		return nil, err
	}

	s.logger.Info("entry updated", logging.FieldEntryID, id)
	return entry, nil
}

// DeleteEntry removes a completed entry
func (s *entryServiceImpl) DeleteEntry(ctx context.Context, id string) error {
	entry, err := s.GetEntry(ctx, id)
	if err != nil {
		return err
	}
	if entry.IsRunning() {
		return errors.NewConflictError("stop the timer before deleting the running entry")
	}

	if err := s.repo.DeleteTimeEntry(ctx, id); err != nil {
		return err
	}

	s.logger.Info("entry deleted", logging.FieldEntryID, id)
	return nil
}
