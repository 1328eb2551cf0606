package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdf3md/profilectl/internal/client"
	"github.com/pdf3md/profilectl/internal/manager"
	"github.com/pdf3md/profilectl/internal/profiles"
)

var (
	exportOutput  string
	importReplace bool
)

var exportCmd = &cobra.Command{
	Use:   "export NAME",
	Short: "Write a profile to a YAML file",
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
		if exportOutput == "" || exportOutput == "-" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(exportOutput, data, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", exportOutput, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %q to %s\n", p.Name, exportOutput)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Create a profile from a YAML file",
	Long: `Create a profile from a YAML file written by export. Fields missing from
the file take their default values. An existing profile with the same name is
only overwritten with --replace.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}
		p, err := profiles.ParseYAML(data)
		if err != nil {
			return err
		}
		if err := profiles.Validate(p); err != nil {
			return fmt.Errorf("invalid profile in %s: %w", args[0], err)
		}

		ctx := cmd.Context()
		_, err = a.client.Get(ctx, p.Name)
		var reqErr *client.RequestError
		exists := err == nil
		if err != nil && !(errors.As(err, &reqErr) && reqErr.NotFound()) {
			return err
		}

		switch {
		case exists && !importReplace:
			return fmt.Errorf("profile %q already exists; pass --replace to overwrite it", p.Name)
		case exists && profiles.IsProtected(p.Name):
			return fmt.Errorf("import %q: %w", p.Name, manager.ErrProtected)
		case exists:
			_, err = a.client.Update(ctx, p.Name, p)
		default:
			_, err = a.client.Create(ctx, p)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported profile %q\n", p.Name)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
	importCmd.Flags().BoolVar(&importReplace, "replace", false, "overwrite an existing profile")
}
