// Package cli wires the cobra command tree over the client: configuration,
// the durable session store, the API wrapper, and the renderer are built
// once per invocation and shared by every subcommand.
package cli

import (
	"fmt"
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ekstre/internal/api"
	"ekstre/internal/config"
	"ekstre/internal/render"
	"ekstre/internal/session"
)

type app struct {
	cfg    *config.Config
	store  *session.SQLiteStore
	mgr    *session.Manager
	client *api.Client
	out    *render.Renderer

	verbose bool
}

// NewRootCmd builds the ekstre command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "ekstre",
		Short:         "Terminal client for the bank-statement dashboard",
		Long:          "Ekstre authenticates against the remote dashboard API, uploads bank-statement CSV files, and shows transactions, summaries, and category breakdowns.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.teardown()
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		a.loginCmd(),
		a.registerCmd(),
		a.logoutCmd(),
		a.whoamiCmd(),
		a.transactionsCmd(),
		a.summaryCmd(),
		a.convertCmd(),
		a.uploadCmd(),
		a.dashboardCmd(),
	)
	return root
}

func (a *app) setup() error {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if a.verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	a.cfg = cfg

	store, err := session.OpenSQLite(cfg.SessionPath())
	if err != nil {
		return fmt.Errorf("opening session store: %w", err)
	}
	a.store = store

	mgr, err := session.NewManager(store)
	if err != nil {
		store.Close()
		return err
	}
	a.mgr = mgr

	client, err := api.New(cfg.APIURL, mgr,
		api.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		api.WithRateLimit(cfg.RequestsPerMinute),
		api.WithUnauthorizedHandler(func() {
			mgr.Clear()
			fmt.Fprintln(os.Stderr, "Session expired. Run 'ekstre login' to sign in again.")
		}),
	)
	if err != nil {
		store.Close()
		return err
	}
	mgr.SetAPI(client)
	a.client = client

	a.out = render.New(os.Stdout, term.IsTerminal(int(os.Stdout.Fd())))
	return nil
}

func (a *app) teardown() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			log.Warn().Err(err).Msg("closing session store")
		}
	}
}
