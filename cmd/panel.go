package cmd

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/hh-recruiter/internal/notify"
	"github.com/spigell/hh-recruiter/internal/settings"
)

const PromptExit = "exit"

var panelCmd = &cobra.Command{
	Use:   "panel",
	Short: "Switch recruitment settings interactively",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		logger, st := setup(cmd)
		panel := settings.NewPanel(st.Snapshot(), st, notify.NewLog(logger), logger)

		for {
			rows := panel.Rows()
			items := make([]string, 0, len(rows)+1)
			for _, row := range rows {
				items = append(items, rowLabel(row))
			}

			selector := promptui.Select{
				Label: "Recruitment settings",
				Items: append(items, PromptExit),
				Size:  len(rows) + 1,
			}

			idx, _, err := selector.Run()
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return
			}
			if err != nil {
				logger.Fatal("exiting", zap.Error(err))
			}

			if idx >= len(rows) {
				logger.Info("exiting", zap.String("reason", "exit selected"))
				return
			}

			row := rows[idx]
			applyToggle(logger, panel, st, row.Field, !row.Checked)
		}
	},
}

func init() {
	rootCmd.AddCommand(panelCmd)
}

func rowLabel(row settings.Row) string {
	mark := " "
	if row.Checked {
		mark = "x"
	}
	return fmt.Sprintf("[%s] %s / %s", mark, row.Label, row.Description)
}
