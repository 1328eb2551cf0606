package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pdf3md/profilectl/cmd/profilectl/tui"
)

var manageCmd = &cobra.Command{
	Use:   "manage",
	Short: "Open the interactive profile manager",
	RunE: func(cmd *cobra.Command, args []string) error {
		// TTY guard: fall back to list when stdin is not a terminal
		// (piping, CI, scripts, etc.)
		if !interactive() {
			return listCmd.RunE(cmd, args)
		}

		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		model := tui.NewModel(cmd.Context(), a.manager())
		finalModel, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
		if err != nil {
			return err
		}
		if m, ok := finalModel.(tui.Model); ok && m.Changed() {
			fmt.Fprintln(cmd.OutOrStdout(), "Profiles updated.")
		}
		return nil
	},
}
