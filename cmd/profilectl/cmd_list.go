package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdf3md/profilectl/internal/profiles"
)

var listLong bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		list, err := a.client.List(ctx)
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Fprintln(out, "No profiles found.")
			return nil
		}

		for _, s := range list {
			marker := "  "
			if profiles.SameName(s.Name, a.cfg.SelectedProfile) {
				marker = "* "
			}
			line := s.Name
			if s.Description != "" {
				line += ": " + s.Description
			}
			fmt.Fprintf(out, "%s%s\n", marker, line)

			if listLong {
				p, err := a.client.Get(ctx, s.Name)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "    %s\n", profiles.ProfileSummary(p))
			}
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVarP(&listLong, "long", "l", false, "fetch each profile and show its main settings")
}
