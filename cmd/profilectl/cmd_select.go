package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdf3md/profilectl/internal/config"
	"github.com/pdf3md/profilectl/internal/profiles"
	"github.com/pdf3md/profilectl/internal/selector"
)

var selectCmd = &cobra.Command{
	Use:   "select [NAME]",
	Short: "Choose the profile used for conversions",
	Long: `Choose the profile used for conversions and remember it in the config file.

With no selection yet, the default profile is picked (or the first profile
when there is no default).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		var saveErr error
		sel := selector.New(a.client, a.cfg.SelectedProfile, func(name string) {
			saveErr = errors.Join(saveErr, saveSelected(a.configFile, name))
		})
		if err := sel.Load(cmd.Context()); err != nil {
			return err
		}

		switch {
		case len(args) == 1:
			list := sel.Profiles()
			i := profiles.Find(list, args[0])
			if i < 0 {
				return fmt.Errorf("profile %q not found", args[0])
			}
			if err := sel.Select(list[i].Name); err != nil {
				return err
			}
		case interactive() && len(sel.Names()) > 0:
			choice, err := selectProfile(sel.Names(), sel.Selected())
			if err != nil {
				return err
			}
			if err := sel.Select(choice); err != nil {
				return err
			}
		}
		if saveErr != nil {
			return saveErr
		}

		if sel.Selected() == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "No profiles available.")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Selected profile: %s\n", sel.Selected())
		return nil
	},
}

// saveSelected records name in the config file without persisting
// environment or flag overrides.
func saveSelected(path, name string) error {
	cfg := config.Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if cfg, err = config.Parse(data); err != nil {
			return err
		}
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("reading config: %w", err)
	}
	cfg.SelectedProfile = name
	return config.Save(path, cfg)
}
