package main

import (
	"github.com/spf13/cobra"

	"github.com/pdf3md/profilectl/internal/manager"
	"github.com/pdf3md/profilectl/internal/profiles"
)

var (
	templateName        string
	templateDescription string
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Print the service's template for a new profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		p, err := a.client.Template(cmd.Context(), templateName, templateDescription)
		if err != nil {
			return err
		}
		data, err := profiles.MarshalYAML(p)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	templateCmd.Flags().StringVar(&templateName, "name", manager.NewProfileName, "name for the new profile")
	templateCmd.Flags().StringVar(&templateDescription, "description", "", "description (service default when empty)")
}
