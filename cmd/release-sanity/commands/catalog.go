package commands

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/release-sanity/release-sanity/internal/catalog"
	"github.com/release-sanity/release-sanity/internal/constants"
	"github.com/spf13/cobra"
)

func installCatalogCmd(app *App) {
	catalogCmd := &cobra.Command{
		Use:   "catalog [environment]",
		Short: "Print the endpoint catalog as resolved from the catalog file",
		Long:  "Catalog prints the environments, microservices and endpoints resolved from the catalog file, annotating the entries a check run would skip.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var env string
			if len(args) > 0 {
				env = args[0]
			}
			slog.Debug("Running catalog command", "environment", env)

			return app.catalogRun(env)
		},
	}

	catalogCmd.Flags().StringVar(&app.config.catalogPath, "catalog", constants.DefaultCatalogFile, "path to the endpoint catalog file")

	app.cmd.AddCommand(catalogCmd)
}

// catalogRun prints the resolved catalog, restricted to env when given.
func (a App) catalogRun(env string) error {
	cat, err := catalog.Load(a.config.catalogPath)
	if err != nil {
		return err
	}

	envs := cat.Environments()
	if env != "" {
		// An explicitly requested environment must resolve.
		if _, err := cat.Services(env); err != nil {
			return err
		}
		envs = []string{strings.ToLower(env)}
	}

	out := a.cmd.OutOrStdout()
	for _, e := range envs {
		fmt.Fprintf(out, "%s:\n", e)

		services, err := cat.Services(e)
		if err != nil {
			fmt.Fprintf(out, "  skipped, %v\n", err)
			continue
		}

		for _, svc := range services {
			endpoints, err := cat.Endpoints(svc.Name)
			if err != nil {
				fmt.Fprintf(out, "  %s (%s): skipped, %v\n", svc.Name, svc.BaseURL, err)
				continue
			}
			fmt.Fprintf(out, "  %s (%s): %s\n", svc.Name, svc.BaseURL, strings.Join(endpoints, ", "))
		}
	}

	return nil
}
