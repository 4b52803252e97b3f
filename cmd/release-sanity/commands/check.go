package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/release-sanity/release-sanity/internal/catalog"
	"github.com/release-sanity/release-sanity/internal/checker"
	"github.com/release-sanity/release-sanity/internal/compare"
	"github.com/release-sanity/release-sanity/internal/constants"
	"github.com/release-sanity/release-sanity/internal/fixture"
	"github.com/release-sanity/release-sanity/internal/report"
	"github.com/release-sanity/release-sanity/internal/transport"
	"github.com/spf13/cobra"
)

// checkConfig holds the configuration of the check command.
type checkConfig struct {
	Catalog    string        `mapstructure:"catalog"`
	Fixtures   string        `mapstructure:"fixtures"`
	Mode       string        `mapstructure:"mode"`
	IgnoreFile string        `mapstructure:"ignore-file"`
	Timeout    time.Duration `mapstructure:"timeout"`
	Format     string        `mapstructure:"format"`
	DryRun     bool          `mapstructure:"dry-run"`
}

// welcomeBanner opens every text format run.
const welcomeBanner = "Welcome to the release sanity checker. This tool allows you to check for differences in endpoint responses before and after a release."

func installCheckCmd(app *App) error {
	checkCmd := &cobra.Command{
		Use:   "check [environment]",
		Short: "Check the endpoints of an environment for response changes",
		Long:  "Check sends the recorded request of every catalogued endpoint to the given environment and reports the differences between the live responses and the recorded ones.",
		Args:  cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := compare.ParseMode(app.config.Check.Mode); err != nil {
				app.cmd.SilenceUsage = false
				return err
			}
			if _, err := report.ParseFormat(app.config.Check.Format); err != nil {
				app.cmd.SilenceUsage = false
				return err
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var env string
			if len(args) > 0 {
				env = args[0]
			}
			slog.Debug("Running check command", "environment", env)

			return app.checkRun(env)
		},
	}

	checkCmd.Flags().StringVar(&app.config.Check.Catalog, "catalog", constants.DefaultCatalogFile, "path to the endpoint catalog file")
	checkCmd.Flags().StringVar(&app.config.Check.Fixtures, "fixtures", ".", "base directory holding the requests and responses fixture trees")
	checkCmd.Flags().StringVar(&app.config.Check.Mode, "mode", string(compare.ModeStructural), "comparison mode, structural or line")
	checkCmd.Flags().StringVar(&app.config.Check.IgnoreFile, "ignore-file", "", "TOML file listing response paths to ignore")
	checkCmd.Flags().DurationVar(&app.config.Check.Timeout, "timeout", 0, "per request timeout, 0 waits indefinitely")
	checkCmd.Flags().StringVar(&app.config.Check.Format, "format", string(report.FormatText), "output format, text or json")
	checkCmd.Flags().BoolVarP(&app.config.Check.DryRun, "dry-run", "d", false, "resolve catalog and fixtures without sending requests")

	app.cmd.AddCommand(checkCmd)

	// Bind the flags under the check namespace so the config file can set them.
	for _, name := range []string{"catalog", "fixtures", "mode", "ignore-file", "timeout", "format", "dry-run"} {
		if err := app.viper.BindPFlag("check."+name, checkCmd.Flags().Lookup(name)); err != nil {
			return err
		}
	}

	return nil
}

// checkRun runs a sanity check against env, prompting for an environment when
// none was given on the command line.
func (a App) checkRun(env string) error {
	mode, err := compare.ParseMode(a.config.Check.Mode)
	if err != nil {
		return err
	}
	format, err := report.ParseFormat(a.config.Check.Format)
	if err != nil {
		return err
	}

	out := a.cmd.OutOrStdout()
	if format == report.FormatText {
		fmt.Fprintln(out, welcomeBanner)
	}

	if env == "" {
		if env, err = a.promptEnvironment(); err != nil {
			return err
		}
	}

	cat, err := catalog.Load(a.config.Check.Catalog)
	if err != nil {
		return err
	}

	var rules compare.Rules
	if a.config.Check.IgnoreFile != "" {
		if rules, err = compare.LoadRules(a.config.Check.IgnoreFile); err != nil {
			return err
		}
	}

	var opts []transport.Options
	if a.config.Check.Timeout > 0 {
		opts = append(opts, transport.WithTimeout(a.config.Check.Timeout))
	}

	reporter, err := report.New(format, out)
	if err != nil {
		return err
	}

	c, err := checker.New(slog.Default(), cat, fixture.New(slog.Default(), a.config.Check.Fixtures), transport.New(slog.Default(), opts...), reporter,
		checker.WithMode(mode),
		checker.WithRules(rules),
		checker.WithDryRun(a.config.Check.DryRun))
	if err != nil {
		return err
	}

	_, err = c.Run(a.cmd.Context(), env)
	return err
}

// promptEnvironment reads the environment to check from the command input.
func (a App) promptEnvironment() (string, error) {
	fmt.Fprintf(a.cmd.ErrOrStderr(), "Environment to check (%s): ", strings.Join(constants.KnownEnvironments, ", "))

	line, err := bufio.NewReader(a.cmd.InOrStdin()).ReadString('\n')
	env := strings.TrimSpace(line)
	if err != nil && (!errors.Is(err, io.EOF) || env == "") {
		return "", fmt.Errorf("could not read environment: %w", err)
	}

	return env, nil
}
