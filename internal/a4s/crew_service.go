// Package a4s holds the application layer shared by the CLI and the TUI: the
// local mirror of backend crews, the task selection and the payload history.
package a4s

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/hay-kot/a4s/internal/core/crew"
	"github.com/hay-kot/a4s/internal/core/history"
	"github.com/hay-kot/a4s/internal/core/logging"
	"github.com/hay-kot/a4s/internal/core/validate"
	"github.com/hay-kot/a4s/pkg/kv"
)

// CrewAPI is the subset of the backend client the service depends on.
type CrewAPI interface {
	ListCrews(ctx context.Context) ([]crew.Crew, error)
	CreateCrew(ctx context.Context, payload crew.CreatePayload) (crew.Crew, error)
	ExecuteCrew(ctx context.Context, crewID string, payload json.RawMessage) (crew.Crew, error)
	CrewStatus(ctx context.Context, crewID string) (crew.Crew, error)
	ListExecutions(ctx context.Context, crewID string) ([]crew.Execution, error)
	DeleteCrew(ctx context.Context, crewID string) error
}

// Notifier receives user-facing outcome messages.
type Notifier interface {
	Info(title, message string)
	Warn(title, message string)
	Error(title, message string)
}

// CrewServiceOptions configures a CrewService.
type CrewServiceOptions struct {
	// RefreshConcurrency bounds the requests RefreshAll has in flight.
	RefreshConcurrency int
	// History records execution payloads. Optional.
	History history.Store
	// MaxPayloads is the history size passed to History.Save.
	MaxPayloads int
}

// CrewService mirrors the backend's crews locally. The backend is the source
// of truth: every mutation is a round trip whose response replaces local state.
type CrewService struct {
	api    CrewAPI
	notify Notifier
	opts   CrewServiceOptions
	log    zerolog.Logger

	mu     sync.RWMutex
	crews  []crew.Crew
	loaded bool

	executions *kv.Store[string, []crew.Execution]
	syncing    *kv.Store[string, struct{}]
}

// NewCrewService creates a CrewService.
func NewCrewService(api CrewAPI, notifier Notifier, opts CrewServiceOptions) *CrewService {
	if opts.RefreshConcurrency <= 0 {
		opts.RefreshConcurrency = 1
	}
	return &CrewService{
		api:        api,
		notify:     notifier,
		opts:       opts,
		log:        logging.Component("crews"),
		executions: kv.New[string, []crew.Execution](),
		syncing:    kv.New[string, struct{}](),
	}
}

// Fetch replaces the local collection with the backend's crews. On failure
// the collection keeps whatever it held before, which is empty on first load.
func (s *CrewService) Fetch(ctx context.Context) ([]crew.Crew, error) {
	crews, err := s.api.ListCrews(ctx)

	s.mu.Lock()
	s.loaded = true
	if err == nil {
		s.crews = crews
	}
	s.mu.Unlock()

	if err != nil {
		s.log.Error().Err(err).Msg("fetch crews")
		s.notify.Error("Error", "Failed to load crews.")
		return nil, fmt.Errorf("fetch crews: %w", err)
	}

	ids := make(map[string]struct{}, len(crews))
	for _, c := range crews {
		ids[c.ID] = struct{}{}
	}
	s.executions.Retain(func(id string, _ []crew.Execution) bool {
		_, ok := ids[id]
		return ok
	})

	s.log.Debug().Int("count", len(crews)).Msg("crews loaded")
	return slices.Clone(crews), nil
}

// Create submits a new crew built from the selected tasks. The selection is
// cleared only when the backend accepts the crew.
func (s *CrewService) Create(ctx context.Context, name, description string, sel *Selection) (crew.Crew, error) {
	name = strings.TrimSpace(name)
	if err := validate.CrewName(name); err != nil {
		return crew.Crew{}, err
	}
	if sel.Len() == 0 {
		return crew.Crew{}, ErrNoTasksSelected
	}

	payload := crew.CreatePayload{
		Name:        name,
		Description: strings.TrimSpace(description),
		TaskNames:   sel.IDs(),
	}
	if err := validate.CreatePayload(payload); err != nil {
		return crew.Crew{}, err
	}

	created, err := s.api.CreateCrew(ctx, payload)
	if err != nil {
		s.log.Error().Err(err).Str("name", name).Msg("create crew")
		s.notify.Error("Error", "Failed to create crew. Please try again.")
		return crew.Crew{}, err
	}

	sel.Clear()
	s.log.Info().Str("crew_id", created.ID).Str("name", name).Msg("crew created")
	s.notify.Info("Crew Created", fmt.Sprintf("%q is ready to execute.", name))
	return created, nil
}

// Execute starts a crew with an optional JSON payload. Malformed payload text
// and crews that cannot start right now are rejected without a request.
func (s *CrewService) Execute(ctx context.Context, crewID, payloadText string) (crew.Crew, error) {
	payload, err := crew.ParsePayload(payloadText)
	if err != nil {
		s.notify.Warn("Invalid JSON", err.Error())
		return crew.Crew{}, err
	}

	if !s.CanExecute(crewID) {
		return crew.Crew{}, ErrCrewRunning
	}

	ctx = logging.WithCrewID(ctx, crewID)
	l := logging.Ctx(ctx, s.log)

	updated, err := s.api.ExecuteCrew(ctx, crewID, payload)
	if err != nil {
		l.Error().Err(err).Msg("execute crew")
		s.notify.Error("Error", "Failed to execute crew.")
		return crew.Crew{}, err
	}

	s.replace(crewID, updated)
	s.executions.Delete(crewID)
	s.recordPayload(ctx, crewID, payload)

	l.Info().Str("status", string(updated.Status)).Msg("execution started")
	s.notify.Info("Execution Started", "The crew is now running.")
	return updated, nil
}

// Sync re-reads one crew's status and replaces the local record with it.
func (s *CrewService) Sync(ctx context.Context, crewID string) (crew.Crew, error) {
	s.syncing.Set(crewID, struct{}{})
	defer s.syncing.Delete(crewID)

	ctx = logging.WithCrewID(ctx, crewID)

	updated, err := s.api.CrewStatus(ctx, crewID)
	if err != nil {
		logging.Ctx(ctx, s.log).Error().Err(err).Msg("sync crew status")
		s.notify.Error("Error", "Failed to sync crew status.")
		return crew.Crew{}, err
	}

	s.replace(crewID, updated)
	s.notify.Info("Status Updated", updated.Status.Label())
	return updated, nil
}

// SyncExecutions fetches and stores the executions of one crew.
func (s *CrewService) SyncExecutions(ctx context.Context, crewID string) ([]crew.Execution, error) {
	execs, err := s.api.ListExecutions(ctx, crewID)
	if err != nil {
		return nil, err
	}
	s.executions.Set(crewID, execs)
	return slices.Clone(execs), nil
}

// RefreshAll syncs the executions of every known crew, with at most
// RefreshConcurrency requests in flight. One failure does not stop the others.
func (s *CrewService) RefreshAll(ctx context.Context) error {
	crews := s.Crews()

	var (
		mu   sync.Mutex
		errs []error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.RefreshConcurrency)
	for _, c := range crews {
		g.Go(func() error {
			if _, err := s.SyncExecutions(gctx, c.ID); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", c.ID, err))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	if len(errs) > 0 {
		err := errors.Join(errs...)
		s.log.Error().Err(err).Int("failed", len(errs)).Msg("refresh executions")
		s.notify.Error("Error", fmt.Sprintf("Failed to refresh %d of %d crews.", len(errs), len(crews)))
		return err
	}

	s.notify.Info("Executions Refreshed", fmt.Sprintf("Refreshed %d crews.", len(crews)))
	return nil
}

// Delete removes a crew on the backend and then locally.
func (s *CrewService) Delete(ctx context.Context, crewID string) error {
	ctx = logging.WithCrewID(ctx, crewID)

	if err := s.api.DeleteCrew(ctx, crewID); err != nil {
		logging.Ctx(ctx, s.log).Error().Err(err).Msg("delete crew")
		s.notify.Error("Error", "Failed to delete crew.")
		return err
	}

	s.mu.Lock()
	s.crews = slices.DeleteFunc(s.crews, func(c crew.Crew) bool { return c.ID == crewID })
	s.mu.Unlock()
	s.executions.Delete(crewID)

	s.notify.Info("Crew Deleted", "The crew has been removed.")
	return nil
}

// CanExecute reports whether crewID may be started now: no sync in flight,
// the crew does not report running, and no known execution is running.
func (s *CrewService) CanExecute(crewID string) bool {
	if s.syncing.Has(crewID) {
		return false
	}
	if c, ok := s.Crew(crewID); ok && c.Status.IsRunning() {
		return false
	}
	if execs, ok := s.executions.Get(crewID); ok && crew.AnyRunning(execs) {
		return false
	}
	return true
}

// Crews returns a copy of the local collection in backend order.
func (s *CrewService) Crews() []crew.Crew {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.crews)
}

// Crew returns the local record for id.
func (s *CrewService) Crew(id string) (crew.Crew, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.crews {
		if c.ID == id {
			return c, true
		}
	}
	return crew.Crew{}, false
}

// Executions returns the last fetched executions for a crew.
func (s *CrewService) Executions(crewID string) ([]crew.Execution, bool) {
	execs, ok := s.executions.Get(crewID)
	return slices.Clone(execs), ok
}

// Loaded reports whether Fetch has completed at least once.
func (s *CrewService) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Syncing reports whether a status sync is in flight for crewID.
func (s *CrewService) Syncing(crewID string) bool {
	return s.syncing.Has(crewID)
}

// LastPayload returns the most recent payload sent to crewID, or "".
func (s *CrewService) LastPayload(ctx context.Context, crewID string) string {
	if s.opts.History == nil {
		return ""
	}
	entry, err := s.opts.History.LastForCrew(ctx, crewID)
	if err != nil {
		if !errors.Is(err, history.ErrNotFound) {
			s.log.Warn().Err(err).Msg("read payload history")
		}
		return ""
	}
	return string(entry.Payload)
}

// replace swaps the local record for id with updated, as returned by the
// backend. Unknown ids are ignored.
func (s *CrewService) replace(id string, updated crew.Crew) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.crews {
		if s.crews[i].ID == id {
			s.crews[i] = updated
			return
		}
	}
}

func (s *CrewService) recordPayload(ctx context.Context, crewID string, payload json.RawMessage) {
	if s.opts.History == nil || payload == nil {
		return
	}
	entry := history.Entry{
		ID:        uuid.NewString(),
		CrewID:    crewID,
		Payload:   payload,
		Timestamp: time.Now(),
	}
	if err := s.opts.History.Save(ctx, entry, s.opts.MaxPayloads); err != nil {
		logging.Ctx(ctx, s.log).Warn().Err(err).Msg("record payload history")
	}
}
