package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"audiosum/internal/logging"
)

// ErrNoSessionState reports a session-scoped access on a module that has
// no selected session.
var ErrNoSessionState = errors.New("module has no session state")

// Store reads and writes the on-disk settings blob. The blob is loaded and
// persisted whole on every access; writes take a best-effort sidecar flock
// but there is no other atomicity or versioning.
type Store struct {
	path   string
	logger *slog.Logger
}

// New returns a Store backed by the blob at path.
func New(path string, logger *slog.Logger) *Store {
	return &Store{
		path:   path,
		logger: logging.NewComponentLogger(logger, "settings"),
	}
}

type blob struct {
	Modules map[string]*moduleState `json:"modules"`
}

type moduleState struct {
	Selected string                    `json:"selected,omitempty"`
	Sessions map[string]map[string]any `json:"sessions,omitempty"`
	Global   map[string]any            `json:"global,omitempty"`
}

// SelectSession creates the named session for module if needed and marks it
// as the module's active session.
func (s *Store) SelectSession(module, session string) error {
	unlock := s.lock()
	defer unlock()

	data, err := s.load()
	if err != nil {
		return err
	}
	state := data.module(module)
	if state.Sessions == nil {
		state.Sessions = make(map[string]map[string]any)
	}
	if state.Sessions[session] == nil {
		state.Sessions[session] = make(map[string]any)
	}
	state.Selected = session
	return s.save(data)
}

// Read navigates the blob to module scope (the active session, or the
// module-global map when global is set) and returns the value under rootKey,
// or under rootKey.key when key is non-empty. Missing keys read as nil.
func (s *Store) Read(module, rootKey, key string, global bool) (any, error) {
	data, err := s.load()
	if err != nil {
		return nil, err
	}
	scope, err := data.scope(module, global)
	if err != nil {
		return nil, err
	}
	value, ok := scope[rootKey]
	if !ok || key == "" {
		return value, nil
	}
	nested, ok := value.(map[string]any)
	if !ok {
		return nil, nil
	}
	return nested[key], nil
}

// Write sets a single value in module scope and persists the whole blob.
// With a non-empty key the value lands under rootKey.key, creating the
// intermediate map when needed.
func (s *Store) Write(module, rootKey, key string, value any, global bool) error {
	unlock := s.lock()
	defer unlock()

	data, err := s.load()
	if err != nil {
		return err
	}
	scope, err := data.scope(module, global)
	if err != nil {
		return err
	}
	if key == "" {
		scope[rootKey] = value
	} else {
		nested, ok := scope[rootKey].(map[string]any)
		if !ok {
			nested = make(map[string]any)
			scope[rootKey] = nested
		}
		nested[key] = value
	}
	return s.save(data)
}

func (b *blob) module(name string) *moduleState {
	if b.Modules == nil {
		b.Modules = make(map[string]*moduleState)
	}
	state := b.Modules[name]
	if state == nil {
		state = &moduleState{}
		b.Modules[name] = state
	}
	return state
}

func (b *blob) scope(module string, global bool) (map[string]any, error) {
	state := b.module(module)
	if global {
		if state.Global == nil {
			state.Global = make(map[string]any)
		}
		return state.Global, nil
	}
	if state.Selected == "" {
		return nil, fmt.Errorf("module %s: %w", module, ErrNoSessionState)
	}
	session, ok := state.Sessions[state.Selected]
	if !ok {
		return nil, fmt.Errorf("module %s: %w", module, ErrNoSessionState)
	}
	return session, nil
}

func (s *Store) load() (*blob, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &blob{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read settings %s: %w", s.path, err)
	}
	var data blob
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode settings %s: %w", s.path, err)
	}
	return &data, nil
}

func (s *Store) save(data *blob) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("write settings %s: %w", s.path, err)
		}
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("write settings %s: %w", s.path, err)
	}
	return nil
}

// lock acquires the sidecar flock when possible. Failure to lock is logged
// and the write proceeds unguarded.
func (s *Store) lock() func() {
	fl := flock.New(s.path + ".lock")
	if err := fl.Lock(); err != nil {
		s.logger.Warn("could not lock settings file", logging.String("path", s.path), logging.Error(err))
		return func() {}
	}
	return func() {
		if err := fl.Unlock(); err != nil {
			s.logger.Warn("could not unlock settings file", logging.String("path", s.path), logging.Error(err))
		}
	}
}
