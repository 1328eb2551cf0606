package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdf3md/profilectl/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect profilectl configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		data, err := config.Marshal(a.cfg)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "# file: %s\n", a.configFile)
		fmt.Fprintf(out, "# resolved base URL: %s\n", a.client.BaseURL())
		_, err = out.Write(data)
		return err
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
