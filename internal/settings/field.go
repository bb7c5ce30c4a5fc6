package settings

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownField is returned when a key does not name one of the recruitment settings.
var ErrUnknownField = errors.New("unknown settings field")

// Field identifies one of the recruitment settings switches.
type Field int

const (
	AutoScreening Field = iota
	RequireCoverLetter
	AllowRemote
	SendApplicationUpdates
)

type fieldInfo struct {
	key         string
	label       string
	description string
}

var fieldInfos = map[Field]fieldInfo{
	AutoScreening: {
		key:         "autoScreening",
		label:       "Auto-Screening",
		description: "Automatically screen applications based on criteria",
	},
	RequireCoverLetter: {
		key:         "requireCoverLetter",
		label:       "Require Cover Letter",
		description: "Make cover letters mandatory for applications",
	},
	AllowRemote: {
		key:         "allowRemote",
		label:       "Allow Remote Work",
		description: "Include remote work options in job postings",
	},
	SendApplicationUpdates: {
		key:         "sendApplicationUpdates",
		label:       "Application Updates",
		description: "Send email updates to applicants about their status",
	},
}

// Fields returns all known fields in presentation order.
func Fields() []Field {
	return []Field{AutoScreening, RequireCoverLetter, AllowRemote, SendApplicationUpdates}
}

// ParseField resolves a wire key such as "allowRemote" into a Field.
// Matching ignores case and surrounding whitespace.
func ParseField(key string) (Field, error) {
	key = strings.TrimSpace(key)
	for _, f := range Fields() {
		if strings.EqualFold(f.Key(), key) {
			return f, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownField, key)
}

// Valid reports whether f is one of the known fields.
func (f Field) Valid() bool {
	_, ok := fieldInfos[f]
	return ok
}

// Key is the wire name of the field.
func (f Field) Key() string {
	return fieldInfos[f].key
}

func (f Field) Label() string {
	return fieldInfos[f].label
}

func (f Field) Description() string {
	return fieldInfos[f].description
}

func (f Field) String() string {
	if !f.Valid() {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return f.Key()
}

// notification returns the side message for fields that carry one.
// Only auto-screening does.
func (f Field) notification(value bool) (Notification, bool) {
	if f != AutoScreening {
		return Notification{}, false
	}

	if value {
		return Notification{
			Title:       "Auto-Screening Enabled",
			Description: "Applications will be automatically screened",
		}, true
	}

	return Notification{
		Title:       "Auto-Screening Disabled",
		Description: "Manual screening required",
	}, true
}
