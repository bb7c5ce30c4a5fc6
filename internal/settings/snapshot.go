package settings

import (
	"encoding/json"
	"fmt"
)

// Snapshot is the complete state of the recruitment settings.
type Snapshot struct {
	AutoScreening          bool `json:"autoScreening" mapstructure:"autoScreening"`
	RequireCoverLetter     bool `json:"requireCoverLetter" mapstructure:"requireCoverLetter"`
	AllowRemote            bool `json:"allowRemote" mapstructure:"allowRemote"`
	SendApplicationUpdates bool `json:"sendApplicationUpdates" mapstructure:"sendApplicationUpdates"`
}

// Default is the snapshot used when no authoritative state exists yet.
func Default() Snapshot {
	return Snapshot{
		AllowRemote:            true,
		SendApplicationUpdates: true,
	}
}

// Get returns the value of the given field. Unknown fields read as false.
func (s Snapshot) Get(f Field) bool {
	switch f {
	case AutoScreening:
		return s.AutoScreening
	case RequireCoverLetter:
		return s.RequireCoverLetter
	case AllowRemote:
		return s.AllowRemote
	case SendApplicationUpdates:
		return s.SendApplicationUpdates
	default:
		return false
	}
}

// With returns a copy of s with a single field overridden.
func (s Snapshot) With(f Field, value bool) Snapshot {
	switch f {
	case AutoScreening:
		s.AutoScreening = value
	case RequireCoverLetter:
		s.RequireCoverLetter = value
	case AllowRemote:
		s.AllowRemote = value
	case SendApplicationUpdates:
		s.SendApplicationUpdates = value
	}
	return s
}

// Apply merges a delta into a copy of s.
func (s Snapshot) Apply(d Delta) Snapshot {
	return s.With(d.Field, d.Value)
}

// Delta is a single-field change reported upward after a user edit.
type Delta struct {
	Field Field
	Value bool
}

// MarshalJSON encodes the delta as a one-key object, e.g. {"allowRemote":false}.
func (d Delta) MarshalJSON() ([]byte, error) {
	if !d.Field.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, d.Field)
	}
	return json.Marshal(map[string]bool{d.Field.Key(): d.Value})
}

// UnmarshalJSON accepts exactly one known key.
func (d *Delta) UnmarshalJSON(data []byte) error {
	var raw map[string]bool
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if len(raw) != 1 {
		return fmt.Errorf("delta must contain exactly one field, got %d", len(raw))
	}

	for key, value := range raw {
		f, err := ParseField(key)
		if err != nil {
			return err
		}
		d.Field = f
		d.Value = value
	}

	return nil
}

// Notification is a human readable status message for the notification sink.
type Notification struct {
	Title       string
	Description string
}
