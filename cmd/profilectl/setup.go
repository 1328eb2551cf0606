package main

import (
	"net/http"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdf3md/profilectl/internal/client"
	"github.com/pdf3md/profilectl/internal/config"
	"github.com/pdf3md/profilectl/internal/logging"
	"github.com/pdf3md/profilectl/internal/manager"
	"github.com/pdf3md/profilectl/internal/paths"
)

// app bundles what most commands need.
type app struct {
	cfg        config.Config
	configFile string
	logger     *zap.Logger
	client     *client.Client
}

// interactive reports whether prompts can be shown. Overridden in tests.
var interactive = func() bool {
	return term.IsTerminal(os.Stdin.Fd())
}

func resolveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return paths.ConfigFile()
}

func newApp(cmd *cobra.Command) (*app, error) {
	file := resolveConfigPath()
	cfg, err := config.Load(file, paths.EnvFile())
	if err != nil {
		return nil, err
	}
	if baseURLFlag != "" {
		cfg.BaseURL = baseURLFlag
	}

	logger := logging.NewCLI(cmd.ErrOrStderr(), verbose)

	opts := []client.Option{client.WithLogger(logger)}
	if cfg.Timeout > 0 {
		opts = append(opts, client.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))
	}
	baseURL := cfg.ResolveBaseURL()
	logger.Debug("resolved profile service", zap.String("baseURL", baseURL))

	return &app{
		cfg:        cfg,
		configFile: file,
		logger:     logger,
		client:     client.New(baseURL, opts...),
	}, nil
}

// manager returns a Manager over the app's client with huh prompts.
func (a *app) manager(opts ...manager.Option) *manager.Manager {
	all := append([]manager.Option{
		manager.WithLogger(a.logger),
		manager.WithPrompter(huhPrompter{}),
	}, opts...)
	return manager.New(a.client, all...)
}
