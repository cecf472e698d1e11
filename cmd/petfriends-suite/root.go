package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Apurer/petfriends-api-tests/internal/app/suite"
	"github.com/Apurer/petfriends-api-tests/internal/petfriends/scenarios"
)

// errScenariosFailed makes the process exit non-zero without repeating the report.
var errScenariosFailed = errors.New("one or more scenarios did not pass")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "petfriends-suite",
		Short: "Black-box checks for the PetFriends pet management API",
		Long: `petfriends-suite drives the PetFriends REST API through its public
endpoints and reports a pass or fail per scenario. Credentials come from
PETFRIENDS_EMAIL and PETFRIENDS_PASSWORD, optionally loaded from an env file.`,
		SilenceUsage: true,
	}
	root.AddCommand(newRunCmd(), newListCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var (
		names   []string
		baseURL string
		envFile string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run scenarios against the configured service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := suite.LoadConfig(envFile)
			if err != nil {
				return err
			}
			if baseURL != "" {
				cfg.BaseURL = baseURL
			}
			report, err := suite.Run(cmd.Context(), cfg, names...)
			printReport(cmd.OutOrStdout(), report)
			if err != nil {
				return err
			}
			if !report.Passed() {
				cmd.SilenceErrors = true
				return errScenariosFailed
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&names, "scenario", "s", nil, "scenario names to run (default: the whole catalog)")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "service base URL (overrides PETFRIENDS_BASE_URL)")
	cmd.Flags().StringVar(&envFile, "env-file", "", "env file to load before reading the environment")
	_ = cmd.RegisterFlagCompletionFunc("scenario", completeScenario)
	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the scenario catalog in run order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, sc := range scenarios.Catalog() {
				fmt.Fprintf(w, "%s\t%s\n", sc.Name, sc.Description)
			}
			return w.Flush()
		},
	}
}

func completeScenario(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	var names []string
	for _, sc := range scenarios.Catalog() {
		names = append(names, sc.Name)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func printReport(out io.Writer, report scenarios.Report) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, res := range report.Results {
		line := fmt.Sprintf("%s\t%s\t%s", res.Outcome, res.Name, res.Duration.Round(time.Millisecond))
		if res.Err != nil {
			line += "\t" + res.Err.Error()
		}
		fmt.Fprintln(w, line)
	}
	_ = w.Flush()
	if len(report.Results) > 0 {
		fmt.Fprintf(out, "%d scenarios, %d not passed\n", len(report.Results), len(report.Failures()))
	}
}
