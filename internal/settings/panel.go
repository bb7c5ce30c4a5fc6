package settings

import (
	"fmt"

	"go.uber.org/zap"
)

// Sink receives deltas produced by the panel. It is fire-and-forget:
// an implementation that fails to store a delta corrects the panel by
// pushing a fresh snapshot through Panel.Replace.
type Sink interface {
	Apply(d Delta)
}

// Notifier shows a short status message to the user.
type Notifier interface {
	Notify(title, description string)
}

// Row is a single rendered switch.
type Row struct {
	Field       Field
	Label       string
	Description string
	Checked     bool
}

// Panel mirrors an authoritative snapshot and reports local edits as deltas.
// It is not safe for concurrent use.
type Panel struct {
	current  Snapshot
	sink     Sink
	notifier Notifier
	logger   *zap.Logger
}

// NewPanel creates a panel displaying initial. A nil logger is replaced with a no-op one.
func NewPanel(initial Snapshot, sink Sink, notifier Notifier, logger *zap.Logger) *Panel {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Panel{
		current:  initial,
		sink:     sink,
		notifier: notifier,
		logger:   logger,
	}
}

// Snapshot returns the displayed state.
func (p *Panel) Snapshot() Snapshot {
	return p.current
}

// Replace overwrites the displayed state with an externally supplied snapshot,
// including any local edits not yet confirmed.
func (p *Panel) Replace(s Snapshot) {
	p.logger.Debug("replacing displayed settings", zap.Any("settings", s))
	p.current = s
}

// Toggle records a user edit: the displayed state changes first, then the delta
// goes to the sink and, for auto-screening, a notification is sent.
// Redundant toggles are not suppressed.
func (p *Panel) Toggle(f Field, value bool) {
	if !f.Valid() {
		p.logger.Warn("ignoring toggle", zap.Error(fmt.Errorf("%w: %s", ErrUnknownField, f)))
		return
	}

	p.current = p.current.With(f, value)

	d := Delta{Field: f, Value: value}
	p.logger.Debug("settings field toggled", zap.Stringer("field", f), zap.Bool("value", value))

	if p.sink != nil {
		p.sink.Apply(d)
	}

	n, ok := f.notification(value)
	if !ok || p.notifier == nil {
		return
	}

	p.notifier.Notify(n.Title, n.Description)
}

// Rows returns one row per field in presentation order.
func (p *Panel) Rows() []Row {
	fields := Fields()
	rows := make([]Row, 0, len(fields))
	for _, f := range fields {
		rows = append(rows, Row{
			Field:       f,
			Label:       f.Label(),
			Description: f.Description(),
			Checked:     p.current.Get(f),
		})
	}
	return rows
}
