package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	applog "github.com/spigell/hh-recruiter/internal/logger"
	"github.com/spigell/hh-recruiter/internal/notify"
	"github.com/spigell/hh-recruiter/internal/settings"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current recruitment settings",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		logger, st := setup(cmd)
		panel := settings.NewPanel(st.Snapshot(), st, notify.NewLog(logger), logger)
		report(logger, panel)
	},
}

var setCmd = &cobra.Command{
	Use:   "set <field> <true|false>",
	Short: "Switch a single recruitment setting",
	Long: "Switch a single recruitment setting. Known fields: " +
		"autoScreening, requireCoverLetter, allowRemote, sendApplicationUpdates.",
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		logger, st := setup(cmd)

		field, value, err := parseToggle(args[0], args[1])
		if err != nil {
			logger.Fatal("parsing arguments", zap.Error(err))
		}

		panel := settings.NewPanel(st.Snapshot(), st, notify.NewLog(logger), logger)
		applyToggle(logger, panel, st, field, value)

		report(logger, panel)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(setCmd)
}

func parseToggle(key, raw string) (settings.Field, bool, error) {
	field, err := settings.ParseField(key)
	if err != nil {
		return 0, false, err
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		return 0, false, fmt.Errorf("invalid value for %s: %w", field, err)
	}

	return field, value, nil
}

// snapshotSource is the authoritative owner of the settings.
type snapshotSource interface {
	Snapshot() settings.Snapshot
}

// applyToggle toggles a field and then resyncs the panel from the source.
// It reports whether the source kept the new value.
func applyToggle(logger *zap.Logger, panel *settings.Panel, source snapshotSource, field settings.Field, value bool) bool {
	panel.Toggle(field, value)

	// A failed save reverts the optimistic edit here.
	panel.Replace(source.Snapshot())
	if panel.Snapshot().Get(field) != value {
		logger.Warn("setting was not saved", zap.Stringer("field", field), zap.Bool("value", value))
		return false
	}

	return true
}

func report(logger *zap.Logger, panel *settings.Panel) {
	for _, row := range panel.Rows() {
		logger.Info(row.Description, applog.RowFields(row)...)
	}
}
