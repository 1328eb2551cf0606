package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdf3md/profilectl/internal/profiles"
)

var (
	editRename      string
	editDescription string
	editSets        []string
)

var editCmd = &cobra.Command{
	Use:   "edit NAME",
	Short: "Edit a profile",
	Long: `Edit a profile's settings.

--rename gives the profile a new name. The service has no rename call, so the
profile is saved under the new name and the old one is then deleted.`,
	Args: cobra.ExactArgs(1),
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
		ed, err := mgr.BeginEdit(ctx, args[0])
		if err != nil {
			return err
		}

		if err := fillEditor(ed, editRename, editDescription, editSets); err != nil {
			return err
		}
		if !ed.Dirty() {
			fmt.Fprintln(cmd.OutOrStdout(), "No changes.")
			mgr.CancelEdit()
			return nil
		}
		newName := ed.Draft().Name
		if err := mgr.Save(ctx); err != nil {
			return describeErr(err)
		}
		if profiles.SameName(newName, args[0]) {
			fmt.Fprintf(cmd.OutOrStdout(), "Updated profile %q\n", args[0])
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed profile %q to %q\n", args[0], newName)
		}
		return nil
	},
}

func init() {
	editCmd.Flags().StringVar(&editRename, "rename", "", "new profile name")
	editCmd.Flags().StringVar(&editDescription, "description", "", "new description")
	editCmd.Flags().StringArrayVar(&editSets, "set", nil, "set a field, e.g. --set tables.border_style=double (repeatable)")
}
