// cmd/run.go

package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/ayaseen/openshift-monitor-web/pkg/manifest"
	"github.com/ayaseen/openshift-monitor-web/pkg/monitor"
	"github.com/ayaseen/openshift-monitor-web/pkg/types"
)

var (
	runGroups  []string
	runVerbose bool
	runNoSpin  bool
)

// runCmd executes the monitoring script directly from the terminal
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the monitoring script for selected categories",
	Long: `This command runs the monitoring script from the terminal without the web
API, using the same validation, filtering and bounded execution as a web run.

Categories are given as single uppercase letters matching the groups in the
commands manifest, for example: --groups A,B,G`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateRunFlags(); err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		logger, err := newLogger(cfg.Logging.Debug)
		if err != nil {
			return fmt.Errorf("failed to create logger: %v", err)
		}
		defer logger.Sync()

		store := manifest.NewStore(cfg.CommandsFilePath())
		executor := monitor.NewExecutor(cfg.Execution, store, logger.Sugar())

		mode := types.ModeActionable
		if runVerbose {
			mode = types.ModeVerbose
		}

		fmt.Printf("Running monitoring script for groups: %s (mode: %s)\n", strings.Join(runGroups, ", "), mode)

		// Spinner while the script works; runs can take many minutes
		var bar *progressbar.ProgressBar
		if !runNoSpin {
			bar = progressbar.NewOptions(-1,
				progressbar.OptionSetDescription("Collecting"),
				progressbar.OptionSpinnerType(14),
				progressbar.OptionEnableColorCodes(true),
			)
			done := make(chan struct{})
			defer close(done)
			go func() {
				for {
					select {
					case <-done:
						return
					case <-time.After(100 * time.Millisecond):
						_ = bar.Add(1)
					}
				}
			}()
		}

		result, err := executor.Run(context.Background(), types.RunRequest{
			Groups: runGroups,
			Mode:   string(mode),
		})
		if bar != nil {
			_ = bar.Finish()
			fmt.Println()
		}
		if err != nil {
			return err
		}

		if !result.Success {
			color.Red("Run failed: %s", result.Message)
			if result.Output != "" {
				fmt.Println("\nScript output (truncated):")
				fmt.Println(result.Output)
			}
			os.Exit(1)
		}

		color.Green("%s", result.Message)
		if result.ReportFile != "" {
			fmt.Printf("Report: %s\n", result.ReportFile)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Define flags for the run command
	runCmd.Flags().StringSliceVar(&runGroups, "groups", []string{}, "Category identifiers to run (comma-separated single letters)")
	runCmd.Flags().BoolVar(&runVerbose, "verbose", false, "Run in verbose mode instead of actionable")
	runCmd.Flags().BoolVar(&runNoSpin, "no-progress", false, "Disable the progress spinner")

	runCmd.MarkFlagRequired("groups")
}

// validateRunFlags validates the command line flags
func validateRunFlags() error {
	if len(runGroups) == 0 {
		return fmt.Errorf("at least one group is required")
	}

	for _, group := range runGroups {
		if !manifest.ValidGroupID(group) {
			return fmt.Errorf("invalid group name: %s (must be a single uppercase letter)", group)
		}
	}

	return nil
}
