package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/pkm/internal/cli"
	"github.com/julianstephens/pkm/internal/constants"
	"github.com/julianstephens/pkm/internal/errors"
	"github.com/julianstephens/pkm/internal/logger"
)

var CLI struct {
	Version   kong.VersionFlag
	DB        string `name:"db" help:"SQLite path, PostgreSQL connection string, or 'keyring' to use the connection string stored in the OS keyring. Credentials must NOT be embedded in connection strings." env:"PKM_DB" default:"${default_db}"`
	Driver    string `help:"SQLite driver: sqlite (pure Go) or sqlite3 (cgo builds only)." enum:"sqlite,sqlite3" default:"sqlite"`
	ConfigDir string `help:"Directory for logs and lockfiles." type:"path" default:"${config_dir}"`
	TZ        string `name:"tz" help:"IANA time zone used for calendar days. Defaults to the local zone."`
	Debug     bool   `help:"Enable debug logging to stderr."`

	Generate  cli.GenerateCmd  `cmd:"" help:"Generate a synthetic dataset and write it to a snapshot file."`
	Import    cli.ImportCmd    `cmd:"" help:"Generate (or read) a dataset and replace the store with it."`
	Bootstrap cli.BootstrapCmd `cmd:"" help:"Apply the schema scripts to the store."`
	Check     cli.CheckCmd     `cmd:"" help:"Show row counts and sample rows per table."`
	Validate  cli.ValidateCmd  `cmd:"" help:"Check a snapshot file against the dataset invariants."`
	Day       cli.DayCmd       `cmd:"" help:"Show the mood and energy data points of a day."`
	Browse    cli.BrowseCmd    `cmd:"" help:"Browse stored days in an interactive terminal UI."`
	Work      struct {
		Hours cli.WorkHoursCmd `cmd:"" help:"Show logged hours per project." default:"withargs"`
		Log   cli.WorkLogCmd   `cmd:"" help:"Log hours spent on a project."`
	} `cmd:"" help:"Work hours."`
	Habit struct {
		List   cli.HabitListCmd   `cmd:"" help:"List habits with their completions over the last 7 days." default:"1"`
		Log    cli.HabitLogCmd    `cmd:"" help:"Log a habit completion."`
		Delete cli.HabitDeleteCmd `cmd:"" help:"Delete a habit and its logs."`
	} `cmd:"" help:"Habit tracking."`
	Alcohol struct {
		List   cli.AlcoholListCmd   `cmd:"" help:"Show recent drinks and the units of the last 7 days." default:"1"`
		Log    cli.AlcoholLogCmd    `cmd:"" help:"Log a drink."`
		Update cli.AlcoholUpdateCmd `cmd:"" help:"Update a logged drink."`
	} `cmd:"" help:"Alcohol tracking."`
	Journal struct {
		List cli.JournalListCmd `cmd:"" help:"Show recent journal pages." default:"1"`
		Save cli.JournalSaveCmd `cmd:"" help:"Save the journal page of a date."`
	} `cmd:"" help:"Free-form daily journal."`
	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage SQLite store backups."`
	Keyring struct {
		Set    cli.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Delete cli.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status cli.KeyringStatusCmd `cmd:"" help:"Check keyring availability." default:"1"`
	} `cmd:"" help:"Manage credentials in the OS keyring."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Synthetic personal-tracking data generator and importer"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Configuration(kong.JSON, constants.DefaultConfigFile),
		kong.Vars{
			"version":    constants.Version,
			"default_db": constants.DefaultDBPath,
			"config_dir": constants.DefaultConfigDir,
		},
	)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: CLI.ConfigDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	loc := time.Local
	if CLI.TZ != "" {
		var err error
		if loc, err = time.LoadLocation(CLI.TZ); err != nil {
			errors.Fatalf("invalid time zone %q: %v", CLI.TZ, err)
		}
	}

	logger.Debug("Starting", "command", ctx.Command(), "version", constants.Version, "log", logger.Path())

	appCtx := &cli.Context{
		DB:        CLI.DB,
		Driver:    CLI.Driver,
		ConfigDir: CLI.ConfigDir,
		Location:  loc,
	}
	errors.Fatal(ctx.Run(appCtx))
}
