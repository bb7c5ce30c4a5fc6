package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/hh-recruiter/internal/settings"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.json")
	s := NewFile(path, settings.Default(), nil)

	if err := s.Load(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.Snapshot(); got != settings.Default() {
		t.Fatalf("expected defaults, got %+v", got)
	}
}

func TestLoadEmptyFileUsesDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	s := NewFile(path, settings.Default(), nil)
	if err := s.Load(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.Snapshot(); got != settings.Default() {
		t.Fatalf("expected defaults, got %+v", got)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"autoScreening": true, "allowRemote": false}`), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	s := NewFile(path, settings.Default(), nil)
	if err := s.Load(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := settings.Snapshot{AutoScreening: true, AllowRemote: false, SendApplicationUpdates: true}
	if got := s.Snapshot(); got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestLoadRejectsInvalidContent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown key", content: `{"darkMode": true}`},
		{name: "non boolean", content: `{"allowRemote": "yes"}`},
		{name: "broken json", content: `{"allowRemote": tru`},
		{name: "null value", content: `{"allowRemote": null}`},
		{name: "number value", content: `{"autoScreening": 1}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "settings.json")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("writing file: %v", err)
			}

			s := NewFile(path, settings.Default(), nil)
			if err := s.Load(); err == nil {
				t.Fatalf("expected error for %s", tt.content)
			}
			if got := s.Snapshot(); got != settings.Default() {
				t.Fatalf("failed load must keep defaults, got %+v", got)
			}
		})
	}
}

func TestApplyPersistsDelta(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.json")
	s := NewFile(path, settings.Default(), nil)

	s.Apply(settings.Delta{Field: settings.AllowRemote, Value: false})
	s.Apply(settings.Delta{Field: settings.AutoScreening, Value: true})

	want := settings.Snapshot{AutoScreening: true, SendApplicationUpdates: true}
	if got := s.Snapshot(); got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading file: %v", err)
	}

	var persisted settings.Snapshot
	if err := json.Unmarshal(data, &persisted); err != nil {
		t.Fatalf("decoding file: %v", err)
	}
	if persisted != want {
		t.Fatalf("expected persisted %+v, got %+v", want, persisted)
	}

	reloaded := NewFile(path, settings.Snapshot{}, nil)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := reloaded.Snapshot(); got != want {
		t.Fatalf("expected reloaded %+v, got %+v", want, got)
	}
}

func TestApplyWriteFailureKeepsAuthoritativeSnapshot(t *testing.T) {
	t.Parallel()

	core, observed := observer.New(zapcore.InfoLevel)
	path := filepath.Join(t.TempDir(), "missing-dir", "settings.json")
	s := NewFile(path, settings.Default(), zap.New(core))

	s.Apply(settings.Delta{Field: settings.AllowRemote, Value: false})

	if got := s.Snapshot(); got != settings.Default() {
		t.Fatalf("expected defaults after failed write, got %+v", got)
	}

	entries := observed.FilterMessage("persisting settings").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 error entry, got %d", len(entries))
	}
	if entries[0].Level != zapcore.ErrorLevel {
		t.Fatalf("expected error level, got %s", entries[0].Level)
	}
}

func TestApplyCorrectsPanelThroughReplace(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing-dir", "settings.json")
	s := NewFile(path, settings.Default(), nil)
	panel := settings.NewPanel(s.Snapshot(), s, nil, nil)

	panel.Toggle(settings.AllowRemote, false)
	if panel.Snapshot().AllowRemote {
		t.Fatalf("toggle must be displayed optimistically")
	}

	panel.Replace(s.Snapshot())
	if !panel.Snapshot().AllowRemote {
		t.Fatalf("expected authoritative value to win after replace")
	}
}

func TestApplyDropsUnknownField(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.json")
	s := NewFile(path, settings.Default(), nil)

	s.Apply(settings.Delta{Field: settings.Field(99), Value: true})

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no file to be written, got %v", err)
	}
}

func TestDecodeSnapshot(t *testing.T) {
	t.Parallel()

	got, err := DecodeSnapshot(map[string]interface{}{"requireCoverLetter": true}, settings.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := settings.Default().With(settings.RequireCoverLetter, true)
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestApplyReplacesFileWithoutLeftovers(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	if err := os.WriteFile(path, []byte(`{"requireCoverLetter": true}`), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	s := NewFile(path, settings.Default(), nil)
	if err := s.Load(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s.Apply(settings.Delta{Field: settings.AutoScreening, Value: true})

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "settings.json" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("expected only settings.json, got %v", names)
	}

	reloaded := NewFile(path, settings.Snapshot{}, nil)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := settings.Default().With(settings.RequireCoverLetter, true).With(settings.AutoScreening, true)
	if got := reloaded.Snapshot(); got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestApplyWriteFailureKeepsExistingFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	original := []byte(`{"requireCoverLetter": true}`)
	if err := os.WriteFile(path, original, 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	// A directory in place of the target makes the rename fail.
	s := NewFile(path, settings.Default(), nil)
	if err := s.Load(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.path = dir

	s.Apply(settings.Delta{Field: settings.AllowRemote, Value: false})

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading file: %v", err)
	}
	if string(data) != string(original) {
		t.Fatalf("expected file to be untouched, got %s", data)
	}
	if got := s.Snapshot(); !got.AllowRemote {
		t.Fatalf("failed write must keep authoritative snapshot, got %+v", got)
	}
}

func TestDecodeSnapshotRejectsNonBoolean(t *testing.T) {
	t.Parallel()

	base := settings.Default()
	got, err := DecodeSnapshot(map[string]interface{}{"allowRemote": nil}, base)
	if err == nil {
		t.Fatalf("expected error for nil value")
	}
	if got != base {
		t.Fatalf("expected base on error, got %+v", got)
	}
}
