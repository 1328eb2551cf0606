package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteYes bool

// confirmDelete asks before deleting. Overridden in tests.
var confirmDelete = func(name string) bool {
	var p huhPrompter
	return p.Confirm(fmt.Sprintf("Are you sure you want to delete %q?", name))
}

var deleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a profile",
	Long:  "Delete a profile after confirmation. The default profile cannot be deleted.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		name := args[0]
		mgr := a.manager()
		if err := mgr.CanDelete(name); err != nil {
			return err
		}

		if !deleteYes {
			if !interactive() {
				return fmt.Errorf("no terminal: pass --yes to delete without confirmation")
			}
			if !confirmDelete(name) {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
		}

		if err := mgr.DeleteConfirmed(ctx, name); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted profile %q\n", name)
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip the confirmation prompt")
}
