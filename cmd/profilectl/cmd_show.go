package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdf3md/profilectl/internal/profiles"
)

var showCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Show a profile's settings as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		p, err := a.client.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		data, err := profiles.MarshalYAML(p)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "# %s\n", profiles.ProfileSummary(p))
		_, err = out.Write(data)
		return err
	},
}
