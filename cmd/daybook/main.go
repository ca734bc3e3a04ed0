package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/amarling/daybook/internal/cli"
	"github.com/amarling/daybook/internal/cli/habits"
	"github.com/amarling/daybook/internal/cli/items"
	"github.com/amarling/daybook/internal/cli/shares"
	"github.com/amarling/daybook/internal/cli/system"
	"github.com/amarling/daybook/internal/config"
	"github.com/amarling/daybook/internal/constants"
	apperrors "github.com/amarling/daybook/internal/errors"
	"github.com/amarling/daybook/internal/logger"
	"github.com/amarling/daybook/internal/storage"
	"github.com/amarling/daybook/internal/timeline"
)

var CLI struct {
	Version kong.VersionFlag
	User    string `short:"u" env:"DAYBOOK_USER" default:"local" help:"Acting user id; all reads and writes are scoped to it."`
	Debug   bool   `help:"Enable debug logging."`

	Init     system.InitCmd   `cmd:"" help:"Initialize daybook storage."`
	Day      cli.DayCmd       `cmd:"" help:"Show the composed timeline for a day." default:"1"`
	Range    cli.RangeCmd     `cmd:"" help:"Show composed timelines for a date span."`
	Insights cli.InsightsCmd  `cmd:"" help:"Show the weekly activity rollup."`
	Item     struct {
		Add items.ItemAddCmd `cmd:"" help:"Add a new timeline item."`
	} `cmd:"" help:"Manage timeline items."`
	Habit habits.HabitCmd `cmd:"" help:"Manage habits and habit tracking."`
	Share shares.ShareCmd `cmd:"" help:"Manage event participants and invitations."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Personal timeline aggregator for events, bills, tasks, and habits"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg, err := config.Load()
	if err != nil {
		apperrors.Fatal(err)
	}
	if CLI.Debug {
		cfg.Debug = true
	}

	configDir, err := config.ConfigDir()
	if err != nil {
		apperrors.Fatal(err)
	}
	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: configDir}); err != nil {
		apperrors.Fatalf("failed to initialize logging: %v", err)
	}

	var store storage.Provider
	if cfg.Backend == "postgres" {
		if storage.HasEmbeddedCredentials(cfg.ConnectionString) {
			fmt.Fprintln(os.Stderr, "Error: PostgreSQL connection strings with embedded credentials are not allowed.")
			fmt.Fprintln(os.Stderr, "       Supply credentials via environment variables or a .pgpass file instead.")
			os.Exit(1)
		}
		store = storage.NewPostgresStore(cfg.ConnectionString)
	} else {
		store = storage.NewSQLiteStore(cfg.DatabasePath)
	}

	// Load the store before running the command (init handles its own setup)
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}

	appCtx := &cli.Context{
		Store:  store,
		Engine: timeline.NewEngine(store),
		Config: cfg,
		Owner:  CLI.User,
	}

	if err := ctx.Run(appCtx); err != nil {
		apperrors.Fatal(err)
	}
}
