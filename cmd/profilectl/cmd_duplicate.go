package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var duplicateCmd = &cobra.Command{
	Use:   "duplicate SOURCE [NEW]",
	Short: "Copy a profile under a new name",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		source := args[0]
		mgr := a.manager()

		if len(args) == 2 {
			if err := mgr.DuplicateAs(ctx, source, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Duplicated %q as %q\n", source, args[1])
			return nil
		}

		if !interactive() {
			return fmt.Errorf("no terminal: pass the new name as the second argument")
		}
		return mgr.Duplicate(ctx, source)
	},
}
