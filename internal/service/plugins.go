package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/wprescue/wp-rescue/internal/plugin"
	"github.com/wprescue/wp-rescue/internal/storage"
	"github.com/wprescue/wp-rescue/internal/types"
	"github.com/wprescue/wp-rescue/internal/wpconfig"
)

// Action is the bulk operation an operator can apply to the selected plugins.
type Action string

const (
	ActionActivate   Action = "activate"
	ActionDeactivate Action = "deactivate"
)

func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionActivate, ActionDeactivate:
		return Action(s), nil
	default:
		return "", fmt.Errorf("unknown action %q", s)
	}
}

// Activate appends every selected key not already in current, preserving
// existing order. Applying the same selection twice is a no-op.
func Activate(current, selected []string) ([]string, bool) {
	present := make(map[string]struct{}, len(current))
	for _, k := range current {
		present[k] = struct{}{}
	}
	next := append([]string(nil), current...)
	changed := false
	for _, k := range selected {
		if _, ok := present[k]; ok {
			continue
		}
		present[k] = struct{}{}
		next = append(next, k)
		changed = true
	}
	return next, changed
}

// Deactivate removes every selected key from current, preserving the
// relative order of survivors. Keys not present are ignored.
func Deactivate(current, selected []string) ([]string, bool) {
	drop := make(map[string]struct{}, len(selected))
	for _, k := range selected {
		drop[k] = struct{}{}
	}
	next := make([]string, 0, len(current))
	changed := false
	for _, k := range current {
		if _, ok := drop[k]; ok {
			changed = true
			continue
		}
		next = append(next, k)
	}
	return next, changed
}

// Mutate applies one action to the current list. Exactly one action runs per
// submission; activate and deactivate are mutually exclusive.
func Mutate(action Action, current, selected []string) ([]string, bool) {
	switch action {
	case ActionActivate:
		return Activate(current, selected)
	case ActionDeactivate:
		return Deactivate(current, selected)
	default:
		return current, false
	}
}

// Submission is a parsed form post: one action over a set of plugin keys.
type Submission struct {
	Action Action
	Keys   []string
}

// State is everything one page render needs. It is assembled fresh per
// request and discarded afterwards.
type State struct {
	Plugins []types.PluginEntry
	Active  []string
	// Degraded is set when the database could not be reached; the page still
	// renders, every plugin shows as inactive, and writes are disabled.
	Degraded bool
	// Changed is set when a submission was applied and stored.
	Changed   bool
	Submitted bool
}

func (s *State) IsActive(key string) bool {
	for _, k := range s.Active {
		if k == key {
			return true
		}
	}
	return false
}

// PluginService runs the full per-request pipeline: read wp-config, connect,
// read the active list, scan the plugins directory, optionally apply a
// submission, and hand the result to the renderer. Nothing is cached between
// requests.
type PluginService struct {
	creds     wpconfig.Source
	scanner   plugin.Scanner
	connector storage.Connector
	logger    *logrus.Logger
}

func NewPluginService(
	creds wpconfig.Source,
	scanner plugin.Scanner,
	connector storage.Connector,
	logger *logrus.Logger,
) *PluginService {
	return &PluginService{
		creds:     creds,
		scanner:   scanner,
		connector: connector,
		logger:    logger,
	}
}

// Process handles one request. sub is nil for a plain render. Every failure
// below connect level degrades instead of erroring: the tool exists for
// situations where things are already broken.
func (s *PluginService) Process(ctx context.Context, sub *Submission) *State {
	state := &State{Submitted: sub != nil}

	creds, err := s.creds.Credentials()
	if err != nil {
		s.logger.WithError(err).Warn("failed to read wp-config credentials")
	}

	store, err := s.connector.Connect(ctx, creds)
	if err != nil {
		s.logger.WithError(err).Warn("database unreachable, entering degraded read-only mode")
		state.Degraded = true
	} else {
		defer func() {
			if err := store.Close(); err != nil {
				s.logger.WithError(err).Warn("failed to close database connection")
			}
		}()

		state.Active, err = store.ActivePlugins(ctx)
		if err != nil {
			s.logger.WithError(err).Warn("failed to read active plugin list, treating as empty")
			state.Active = nil
		}
	}

	state.Plugins, err = s.scanner.Scan()
	if err != nil {
		s.logger.WithError(err).Warn("plugin scan failed")
	}

	if sub != nil && !state.Degraded {
		s.apply(ctx, store, sub, state)
	}
	return state
}

func (s *PluginService) apply(ctx context.Context, store storage.OptionStore, sub *Submission, state *State) {
	next, changed := Mutate(sub.Action, state.Active, sub.Keys)
	if !changed {
		return
	}
	if err := store.SaveActivePlugins(ctx, next); err != nil {
		s.logger.WithError(err).Error("failed to store active plugin list")
		return
	}
	state.Active = next
	state.Changed = true
	s.logger.WithFields(logrus.Fields{
		"change_id": uuid.New().String(),
		"action":    sub.Action,
		"keys":      sub.Keys,
	}).Info("active plugin list updated")
}
