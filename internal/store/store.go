// Package store keeps hand documents on disk, one JSON file per hand.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/lox/hhcreator/internal/fileutil"
	"github.com/lox/hhcreator/internal/game"
	"github.com/lox/hhcreator/internal/phh"
)

var (
	ErrNotFound  = errors.New("hand not found")
	ErrInvalidID = errors.New("invalid hand id")
)

const (
	filePrefix = "hand_"
	jsonSuffix = ".json"
	phhSuffix  = ".phh"

	// Extra fields the store maintains on every saved hand.
	FieldID      = "id"
	FieldSavedAt = "saved_at"
)

// Store persists hand histories.
type Store interface {
	Save(hh *game.HandHistory) (string, error)
	Load(id string, opts ...game.Option) (*game.HandHistory, error)
	List() ([]string, error)
}

// Option configures a FileStore.
type Option func(*FileStore)

// WithClock sets the clock used for save and export timestamps.
func WithClock(clock quartz.Clock) Option {
	return func(s *FileStore) { s.clock = clock }
}

// WithLogger sets the logger. Loaded hands log through it too.
func WithLogger(logger *log.Logger) Option {
	return func(s *FileStore) { s.logger = logger }
}

// FileStore writes hand documents to a directory
type FileStore struct {
	directory string
	clock     quartz.Clock
	logger    *log.Logger
}

// New creates a file-based store rooted at directory.
func New(directory string, opts ...Option) *FileStore {
	s := &FileStore{
		directory: directory,
		clock:     quartz.NewReal(),
		logger:    log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the directory the store writes to.
func (s *FileStore) Dir() string {
	return s.directory
}

// Save writes the hand and returns its id. A hand without an id extra field
// gets a new one.
func (s *FileStore) Save(hh *game.HandHistory) (string, error) {
	id, _ := hh.Extra()[FieldID].(string)
	if id == "" {
		id = newID()
		hh.SetExtra(FieldID, id)
	}
	if err := validID(id); err != nil {
		return "", err
	}
	hh.SetExtra(FieldSavedAt, s.clock.Now().UTC().Format(time.RFC3339))

	data, err := json.Marshal(hh)
	if err != nil {
		return "", fmt.Errorf("failed to encode hand %s: %w", id, err)
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, "", "  "); err != nil {
		return "", fmt.Errorf("failed to encode hand %s: %w", id, err)
	}
	pretty.WriteByte('\n')

	if err := fileutil.WriteFile(s.path(id, jsonSuffix), pretty.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write hand %s: %w", id, err)
	}
	s.logger.Debug("Hand saved", "id", id, "actions", len(hh.Actions()), "pot", hh.TotalPot())
	return id, nil
}

// Load reads a hand and replays it.
func (s *FileStore) Load(id string, opts ...game.Option) (*game.HandHistory, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path(id, jsonSuffix))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read hand %s: %w", id, err)
	}
	base := []game.Option{game.WithLogger(s.logger.With("hand", id))}
	hh, err := game.FromJSON(data, append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("hand %s: %w", id, err)
	}
	return hh, nil
}

// List returns the ids of every stored hand, sorted.
func (s *FileStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.directory)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list hands: %w", err)
	}
	var ids []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, jsonSuffix) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), jsonSuffix))
	}
	slices.Sort(ids)
	return ids, nil
}

// ExportPHH writes the stored hand as a PHH file next to it and returns the
// file's path.
func (s *FileStore) ExportPHH(id string, opts ...phh.Option) (string, error) {
	hh, err := s.Load(id)
	if err != nil {
		return "", err
	}
	doc := phh.FromGame(hh, append([]phh.Option{phh.WithClock(s.clock), phh.WithHandID(id)}, opts...)...)
	path := s.path(id, phhSuffix)
	err = fileutil.WriteWith(path, 0o644, func(w io.Writer) error {
		return phh.Encode(w, doc)
	})
	if err != nil {
		return "", fmt.Errorf("failed to export hand %s: %w", id, err)
	}
	s.logger.Debug("Hand exported", "id", id, "path", path)
	return path, nil
}

func (s *FileStore) path(id, suffix string) string {
	return filepath.Join(s.directory, filePrefix+id+suffix)
}

// newID returns a UUIDv7 so ids sort in creation order.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func validID(id string) error {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

// NoOp is a store that keeps nothing, for tests
type NoOp struct{}

// Save returns the hand's id without writing anything.
func (NoOp) Save(hh *game.HandHistory) (string, error) {
	id, _ := hh.Extra()[FieldID].(string)
	if id == "" {
		id = newID()
	}
	return id, nil
}

// Load always fails with ErrNotFound.
func (NoOp) Load(id string, _ ...game.Option) (*game.HandHistory, error) {
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// List returns nothing.
func (NoOp) List() ([]string, error) {
	return nil, nil
}
