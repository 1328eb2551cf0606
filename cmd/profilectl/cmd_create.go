package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdf3md/profilectl/internal/editor"
)

var (
	createName        string
	createDescription string
	createSets        []string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a profile from the service template",
	Long: `Create a profile starting from the service template.

With --name (and optionally --set key=value) the profile is created directly.
Otherwise an interactive form walks through every settings tab.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		mgr := a.manager()
		if err := mgr.Open(ctx); err != nil {
			return err
		}
		ed, err := mgr.BeginCreate(ctx)
		if err != nil {
			return err
		}

		if err := fillEditor(ed, createName, createDescription, createSets); err != nil {
			return err
		}
		if err := mgr.Save(ctx); err != nil {
			return describeErr(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created profile %q\n", ed.Draft().Name)
		return nil
	},
}

// fillEditor applies flag values, or runs the interactive form when no
// name was given and a terminal is attached.
func fillEditor(ed *editor.Editor, name, description string, sets []string) error {
	flagged := name != "" || description != "" || len(sets) > 0
	if !flagged {
		if !interactive() {
			return fmt.Errorf("no terminal: pass --name and --set key=value")
		}
		return runEditorForm(ed)
	}
	if name != "" {
		if err := ed.SetName(name); err != nil {
			return err
		}
	}
	if description != "" {
		if err := ed.SetDescription(description); err != nil {
			return err
		}
	}
	return ed.Apply(sets)
}

func init() {
	createCmd.Flags().StringVar(&createName, "name", "", "profile name")
	createCmd.Flags().StringVar(&createDescription, "description", "", "profile description")
	createCmd.Flags().StringArrayVar(&createSets, "set", nil, "set a field, e.g. --set page.width=8.27 (repeatable)")
}
