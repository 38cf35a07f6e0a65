package services

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"timeledger/internal/domain"
	"timeledger/internal/errors"
	"timeledger/internal/logging"
	"timeledger/internal/repository/sqlite"
	"timeledger/internal/validation"
)

// timerController implements TimerController.
//
// opMu serialises Initialize, Start, Stop and Close so the stop-then-create
// sequence is never interleaved. stateMu guards the in-memory running entry
// and is never held while waiting on the tick goroutine.
type timerController struct {
	opMu    sync.Mutex
	stateMu sync.RWMutex

	repo             sqlite.Repository
	mapper           *domain.Mapper
	projectValidator *validation.ProjectValidator
	clock            Clock
	tickInterval     time.Duration
	logger           *slog.Logger

	initialized bool
	running     *domain.TimeEntry
	listener    TickListener
	ticker      *tickLoop
}

// NewTimerController creates a TimerController. A zero tickInterval means one second.
func NewTimerController(repo sqlite.Repository, clock Clock, tickInterval time.Duration, logger *slog.Logger) TimerController {
	if clock == nil {
		clock = time.Now
	}
	if tickInterval <= 0 {
		tickInterval = time.Second
	}
	return &timerController{
		repo:             repo,
		mapper:           domain.NewMapper(),
		projectValidator: validation.NewProjectValidator(),
		clock:            clock,
		tickInterval:     tickInterval,
		logger:           logging.WithComponent(logger, logging.ComponentTimer),
	}
}

// Initialize implements TimerController. When the store holds several
// running entries the latest one (ties broken by the greatest ID) is
// adopted and every other one is closed at its own start instant.
func (c *timerController) Initialize(ctx context.Context) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	return c.initialize(ctx)
}

func (c *timerController) initialize(ctx context.Context) error {
	rows, err := c.repo.SearchTimeEntries(ctx, sqlite.SearchOptions{OnlyRunning: true})
	if err != nil {
		return err
	}
	running := c.mapper.TimeEntry.FromDatabaseSlice(rows)

	sort.SliceStable(running, func(i, j int) bool {
		if !running[i].StartedAt.Equal(running[j].StartedAt) {
			return running[i].StartedAt.After(running[j].StartedAt)
		}
		return running[i].ID > running[j].ID
	})

	if len(running) > 1 {
		stale := running[1:]
		err := c.repo.WithinTx(ctx, func(tx sqlite.Repository) error {
			for _, entry := range stale {
				entry.Stop(entry.StartedAt)
				row := c.mapper.TimeEntry.ToDatabase(entry)
				if err := tx.UpdateTimeEntry(ctx, &row); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
		c.logger.Warn("closed extra running entries",
			logging.FieldEntryID, running[0].ID,
			logging.FieldCount, len(stale))
	}

	var adopted *domain.TimeEntry
	if len(running) > 0 {
		entry := running[0]
		adopted = &entry
		c.logger.Debug("adopted running entry", logging.FieldEntryID, entry.ID)
	}

	c.setRunning(adopted)
	c.initialized = true
	return nil
}

func (c *timerController) ensureInitialized(ctx context.Context) error {
	if c.initialized {
		return nil
	}
	return c.initialize(ctx)
}

// Start implements TimerController.
func (c *timerController) Start(ctx context.Context, projectID string, note string) (*domain.TimeEntry, error) {
	if err := c.projectValidator.ValidateProjectID(projectID); err != nil {
		return nil, invalid("invalid project", err)
	}

	c.opMu.Lock()
	defer c.opMu.Unlock()

	if err := c.ensureInitialized(ctx); err != nil {
		return nil, err
	}

	now := c.clock()
	previous := c.Running()
	entry := domain.NewTimeEntry(uuid.New().String(), projectID, note, now)

	err := c.repo.WithinTx(ctx, func(tx sqlite.Repository) error {
		project, err := tx.GetProject(ctx, projectID)
		if err != nil {
			return err
		}
		if project.Archived {
			return errors.NewValidationError("project "+project.Name+" is archived", nil)
		}

		if previous != nil {
			previous.Stop(now)
			row := c.mapper.TimeEntry.ToDatabase(*previous)
			if err := tx.UpdateTimeEntry(ctx, &row); err != nil {
				return err
			}
		}

		row := c.mapper.TimeEntry.ToDatabase(entry)
		return tx.CreateTimeEntry(ctx, &row)
	})
	if err != nil {
		return nil, err
	}

	c.setRunning(&entry)
	if previous != nil {
		c.logger.Info("timer stopped", logging.FieldEntryID, previous.ID)
	}
	c.logger.Info("timer started", logging.FieldEntryID, entry.ID, logging.FieldProjectID, projectID)

	started := entry
	return &started, nil
}

// Stop implements TimerController.
func (c *timerController) Stop(ctx context.Context) (*domain.TimeEntry, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if err := c.ensureInitialized(ctx); err != nil {
		return nil, err
	}

	stopped := c.Running()
	if stopped == nil {
		return nil, nil
	}

	stopped.Stop(c.clock())
	row := c.mapper.TimeEntry.ToDatabase(*stopped)
	if err := c.repo.UpdateTimeEntry(ctx, &row); err != nil {
		return nil, err
	}

	c.setRunning(nil)
	c.logger.Info("timer stopped", logging.FieldEntryID, stopped.ID)
	return stopped, nil
}

// Running returns a copy of the running entry, or nil.
func (c *timerController) Running() *domain.TimeEntry {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	if c.running == nil {
		return nil
	}
	entry := *c.running
	return &entry
}

func (c *timerController) IsRunning() bool {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.running != nil
}

// CurrentElapsed returns the running entry's whole seconds, or 0.
func (c *timerController) CurrentElapsed() int64 {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	if c.running == nil {
		return 0
	}
	return c.running.DurationSeconds(c.clock())
}

// SetTickListener replaces the listener; it takes effect on the next tick.
func (c *timerController) SetTickListener(listener TickListener) {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	c.listener = listener
}

// Close stops the tick goroutine. The running entry stays running in the store.
func (c *timerController) Close() {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	c.stopTicking()
}

// setRunning swaps the in-memory entry and restarts ticking. Callers hold opMu.
func (c *timerController) setRunning(entry *domain.TimeEntry) {
	c.stopTicking()

	c.stateMu.Lock()
	c.running = entry
	c.stateMu.Unlock()

	if entry != nil {
		c.ticker = startTickLoop(entry.ID, entry.StartedAt, c.tickInterval, c.clock, c.currentListener)
	}
}

func (c *timerController) stopTicking() {
	if c.ticker != nil {
		c.ticker.stop()
		c.ticker = nil
	}
}

func (c *timerController) currentListener() TickListener {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.listener
}

// tickLoop publishes the elapsed seconds of one running entry. It keeps its
// own copy of the start instant and never touches controller state.
type tickLoop struct {
	quit chan struct{}
	done chan struct{}
}

func startTickLoop(entryID string, startedAt time.Time, interval time.Duration, clock Clock, listener func() TickListener) *tickLoop {
	loop := &tickLoop{quit: make(chan struct{}), done: make(chan struct{})}

	publish := func() {
		if l := listener(); l != nil {
			l(entryID, int64(clock().Sub(startedAt)/time.Second))
		}
	}

	go func() {
		defer close(loop.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		publish()
		for {
			select {
			case <-loop.quit:
				return
			case <-ticker.C:
				publish()
			}
		}
	}()

	return loop
}

// stop signals the goroutine and waits for it to exit.
func (l *tickLoop) stop() {
	close(l.quit)
	<-l.done
}
