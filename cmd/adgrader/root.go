package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

// defaultSettingsFile is read from the working directory when present and
// --settings is not given.
const defaultSettingsFile = ".adgrader.yaml"

// app carries the state shared by all subcommands of one invocation.
type app struct {
	v      *viper.Viper
	logger *slog.Logger
	runID  string
}

func newRootCommand() *cobra.Command {
	a := &app{v: viper.New(), logger: slog.Default()}

	cmd := &cobra.Command{
		Use:   "adgrader",
		Short: "adgrader - grade Google Ads accounts from metrics snapshots",
		Long: `adgrader scores a Google Ads account across ten best-practice categories,
assigns letter grades and produces a prioritized list of recommendations.

It works offline on metrics snapshots (JSON or YAML) produced by a collector;
it never talks to the Google Ads API itself.`,
		Version:      version,
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.BoolP("verbose", "v", false, "Enable debug logging")
	flags.String("log-format", "text", "Log format: text or json")
	flags.StringP("config", "c", "", "Grading configuration YAML (defaults are used when empty)")
	flags.String("settings", "", "Settings file (default "+defaultSettingsFile+" if present)")

	a.v.SetEnvPrefix("ADGRADER")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	_ = a.v.BindPFlags(flags)

	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if err := a.readSettings(); err != nil {
			return err
		}
		logger, err := newLogger(cmd.ErrOrStderr(), a.v.GetString("log-format"), a.v.GetBool("verbose"))
		if err != nil {
			return err
		}
		a.runID = uuid.NewString()
		a.logger = logger.With("run_id", a.runID)
		return nil
	}

	cmd.AddCommand(newGradeCommand(a))
	cmd.AddCommand(newConfigCommand(a))
	cmd.AddCommand(newCriteriaCommand(a))

	return cmd
}

// readSettings loads the settings file named by --settings, or the default
// settings file when it exists in the working directory.
func (a *app) readSettings() error {
	path := a.v.GetString("settings")
	if path == "" {
		if _, err := os.Stat(defaultSettingsFile); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return fmt.Errorf("error checking settings file: %w", err)
		}
		path = defaultSettingsFile
	}

	a.v.SetConfigFile(path)
	if err := a.v.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading settings file %s: %w", path, err)
	}
	return nil
}

// newLogger builds the process logger writing to w.
func newLogger(w io.Writer, format string, verbose bool) (*slog.Logger, error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	switch format {
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unsupported log format %q: must be text or json", format)
	}
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
