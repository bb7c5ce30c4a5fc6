package logger

import (
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/hh-recruiter/internal/settings"
)

const (
	// FieldCommand is the structured log field key for the running CLI command.
	FieldCommand = "command"
	// FieldSettingsFile is the structured log field key for the settings store path.
	FieldSettingsFile = "settings_file"
	// FieldSetting is the structured log field key for a settings field name.
	FieldSetting = "setting"
	FieldLabel   = "label"
	FieldEnabled = "enabled"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts key/value pairs into zap fields, skipping blank keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		value := strings.TrimSpace(field.Value)
		if key == "" || value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches fields to the logger. A nil logger becomes a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// CommonFields describes the command and the settings file it works on.
func CommonFields(command, settingsFile string) []zap.Field {
	return StringFields(
		StringField{Key: FieldCommand, Value: command},
		StringField{Key: FieldSettingsFile, Value: settingsFile},
	)
}

func WithCommonFields(logger *zap.Logger, command, settingsFile string) *zap.Logger {
	return WithFields(logger, CommonFields(command, settingsFile)...)
}

// RowFields describes a rendered settings switch.
func RowFields(row settings.Row) []zap.Field {
	return []zap.Field{
		zap.String(FieldSetting, row.Field.Key()),
		zap.String(FieldLabel, row.Label),
		zap.Bool(FieldEnabled, row.Checked),
	}
}
