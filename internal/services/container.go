package services

import (
	"log/slog"
	"time"

	"timeledger/internal/config"
	"timeledger/internal/repository/sqlite"
	"timeledger/internal/timecalc"
)

// NewServiceContainer wires every service onto one repository, calendar and clock.
func NewServiceContainer(repo sqlite.Repository, cfg *config.Config, clock Clock, logger *slog.Logger) (*ServiceContainer, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if clock == nil {
		clock = time.Now
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	calendar := timecalc.NewCalendar(loc)

	return &ServiceContainer{
		Timer:     NewTimerController(repo, clock, cfg.Timer.TickInterval, logger),
		Projects:  NewProjectService(repo, cfg, clock, logger),
		Entries:   NewEntryService(repo, cfg, logger),
		Reporting: NewReportingService(repo, calendar, clock, logger),
		Targets:   NewTargetService(repo, calendar, clock, logger),
	}, nil
}
