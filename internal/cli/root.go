// Package cli implements the poliklinik-admin command line: the console
// server and terminal versions of every admin page.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/c14220110/poliklinik-admin/config"
	"github.com/c14220110/poliklinik-admin/internal/staff/services"
	"github.com/c14220110/poliklinik-admin/pkg/apiclient"
	"github.com/c14220110/poliklinik-admin/pkg/listctl"
	"github.com/c14220110/poliklinik-admin/pkg/logger"
)

// app holds what every subcommand shares once flags are parsed.
type app struct {
	envFile string
	apiURL  string
	yes     bool

	cfg    *config.Config
	logger zerolog.Logger
	term   *Terminal

	// interactive reports whether confirmations can be asked on stdin.
	interactive func() bool
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// newRootCommand builds the command tree around a.
func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "poliklinik-admin",
		Short:         "Hospital staff administration console",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.envFile, "env-file", config.DefaultEnvFile, "path to the .env file")
	flags.StringVar(&a.apiURL, "api-url", "", "hospital API base URL (overrides API_BASE_URL)")
	flags.BoolVarP(&a.yes, "yes", "y", false, "answer yes to every confirmation")

	root.AddCommand(
		serveCmd(a),
		entityCmd(a, doctorPage),
		entityCmd(a, nursePage),
		entityCmd(a, patientPage),
		entityCmd(a, reportPage),
		dashboardCmd(a),
		registerCmd(a),
	)
	return root
}

func (a *app) setup(logOut io.Writer) error {
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return err
	}
	if a.apiURL != "" {
		cfg.APIBaseURL = strings.TrimRight(a.apiURL, "/")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger.NewWithWriter(logOut, cfg.AppEnv, cfg.LogLevel)
	if !cfg.EnvFileLoaded {
		a.logger.Debug().Str("file", a.envFile).Msg("env file not found, using process environment")
	}
	return nil
}

func (a *app) client() (*apiclient.Client, error) {
	return apiclient.New(apiclient.Options{
		BaseURL: a.cfg.APIBaseURL,
		Timeout: a.cfg.APITimeout,
		Logger:  a.logger,
	})
}

func (a *app) catalog(notifier listctl.Notifier) (*services.Catalog, error) {
	client, err := a.client()
	if err != nil {
		return nil, err
	}
	return services.NewCatalog(client, notifier, a.logger)
}

func (a *app) terminal(out io.Writer) *Terminal {
	a.term = &Terminal{Out: out, AssumeYes: a.yes, Interactive: a.interactive()}
	return a.term
}

// Execute runs the command line and prints the final error, if any.
func Execute() error {
	a := &app{interactive: stdinIsTerminal}
	err := newRootCommand(a).Execute()
	reportError(os.Stderr, a, err)
	return err
}

// reportError prints err unless the terminal already showed it as an error
// notice.
func reportError(w io.Writer, a *app, err error) {
	if err == nil || (a.term != nil && a.term.Failed()) {
		return
	}
	fmt.Fprintln(w, errorStyle.Render("Error: ")+err.Error())
}
