package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/hh-recruiter/internal/settings"
)

// File keeps the authoritative recruitment settings in a JSON file.
type File struct {
	path     string
	defaults settings.Snapshot
	current  settings.Snapshot
	logger   *zap.Logger
}

// NewFile creates a store backed by path. Until Load succeeds the store holds defaults.
func NewFile(path string, defaults settings.Snapshot, logger *zap.Logger) *File {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &File{
		path:     path,
		defaults: defaults,
		current:  defaults,
		logger:   logger,
	}
}

// Path returns the backing file path.
func (f *File) Path() string {
	return f.path
}

// Snapshot returns the last persisted settings.
func (f *File) Snapshot() settings.Snapshot {
	return f.current
}

// Load reads the settings file. A missing or empty file yields the defaults.
func (f *File) Load() error {
	file, err := os.Open(f.path)
	if os.IsNotExist(err) {
		f.logger.Debug("settings file does not exist, using defaults", zap.String("path", f.path))
		f.current = f.defaults
		return nil
	}
	if err != nil {
		return err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return err
	}

	if stat.Size() == 0 {
		f.current = f.defaults
		return nil
	}

	var raw map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("parsing settings file %q: %w", f.path, err)
	}

	snapshot, err := DecodeSnapshot(raw, f.defaults)
	if err != nil {
		return fmt.Errorf("decoding settings file %q: %w", f.path, err)
	}

	f.current = snapshot
	return nil
}

// Apply merges the delta into the authoritative settings and persists them.
// Failures are logged and leave the authoritative settings untouched.
func (f *File) Apply(d settings.Delta) {
	if !d.Field.Valid() {
		f.logger.Warn("dropping delta", zap.Error(fmt.Errorf("%w: %s", settings.ErrUnknownField, d.Field)))
		return
	}

	next := f.current.Apply(d)
	if err := f.write(next); err != nil {
		f.logger.Error("persisting settings",
			zap.String("path", f.path),
			zap.Stringer("field", d.Field),
			zap.Bool("value", d.Value),
			zap.Error(err),
		)
		return
	}

	f.current = next
	f.logger.Info("settings saved",
		zap.String("path", f.path),
		zap.Stringer("field", d.Field),
		zap.Bool("value", d.Value),
	)
}

// write replaces the settings file atomically: the snapshot goes to a temporary
// file in the same directory which is then renamed over the old one.
func (f *File) write(s settings.Snapshot) error {
	tmp, err := os.CreateTemp(filepath.Dir(f.path), "."+filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		tmp.Close()
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), f.path)
}

// DecodeSnapshot decodes a loosely typed map on top of base.
// Keys must be known field names and values must be booleans.
func DecodeSnapshot(raw map[string]interface{}, base settings.Snapshot) (settings.Snapshot, error) {
	if len(raw) == 0 {
		return base, nil
	}

	for key, value := range raw {
		if _, ok := value.(bool); !ok {
			return base, fmt.Errorf("%q must be a boolean, got %T", key, value)
		}
	}

	result := base
	cfg := &mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &result,
	}

	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return base, err
	}

	if err := decoder.Decode(raw); err != nil {
		return base, err
	}

	return result, nil
}
