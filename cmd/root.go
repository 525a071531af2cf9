/*
Author: Amjad Yaseen
Email: ayaseen@redhat.com
Date: 2025-06-02

This application is the web front-end for the OpenShift intelligent monitoring
script. It lets an operator:

- Browse the monitoring command categories defined in the master manifest
- Trigger a bounded run of the monitoring script for selected categories
- Browse and download the generated HTML reports

The root command starts the HTTP server. All cluster interaction is performed
by the monitoring script itself; this application only validates requests,
executes the script and serves its artifacts.
*/

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ayaseen/openshift-monitor-web/pkg/config"
	"github.com/ayaseen/openshift-monitor-web/pkg/manifest"
	"github.com/ayaseen/openshift-monitor-web/pkg/monitor"
	"github.com/ayaseen/openshift-monitor-web/pkg/server"
	"github.com/ayaseen/openshift-monitor-web/pkg/version"
)

var (
	// Config options
	cfgFile    string
	listenAddr string
	scriptDir  string
	serialRuns bool
	debugLog   bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "monitor-web",
	Short:   "Web front-end for the OpenShift intelligent monitoring script",
	Version: version.Version,
	Long: `This application serves a web API for the OpenShift intelligent monitoring
script. Operators select monitoring command categories, trigger bounded script
runs and browse the generated HTML reports.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		logger, err := newLogger(cfg.Logging.Debug)
		if err != nil {
			return fmt.Errorf("failed to create logger: %v", err)
		}
		defer logger.Sync()
		log := logger.Sugar()

		// The master manifest must be readable before the service starts
		store := manifest.NewStore(cfg.CommandsFilePath())
		if _, err := store.Categories(); err != nil {
			return fmt.Errorf("commands manifest not usable at %s: %v", cfg.CommandsFilePath(), err)
		}

		// A missing script is not fatal; runs will report the failure
		if info, err := os.Stat(cfg.ScriptPath()); err != nil {
			log.Warnw("monitoring script not found", "path", cfg.ScriptPath())
		} else if info.Mode()&0111 == 0 {
			log.Warnw("monitoring script is not executable", "path", cfg.ScriptPath())
		}

		// Ensure the reports directory exists for listing and serving
		if err := os.MkdirAll(cfg.Execution.ReportsDir, 0755); err != nil {
			return fmt.Errorf("failed to create reports directory: %v", err)
		}

		executor := monitor.NewExecutor(cfg.Execution, store, log)
		srv := server.New(cfg, store, executor, log)

		// Serve until interrupted, then drain in-flight requests
		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.ListenAndServe()
		}()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server failed: %v", err)
			}
		case sig := <-stop:
			log.Infow("shutting down", "signal", sig)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				return fmt.Errorf("shutdown failed: %v", err)
			}
		}

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()

	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Define flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to an optional YAML config file")
	rootCmd.PersistentFlags().StringVar(&scriptDir, "script-dir", "", "Monitoring script home directory")
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "Enable debug logging")
	rootCmd.Flags().StringVar(&listenAddr, "listen", "", "Address the HTTP server binds to")
	rootCmd.Flags().BoolVar(&serialRuns, "serial-runs", false, "Reject a run while another one is executing")
}

// loadConfig loads configuration and applies set command line flags
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return config.Config{}, err
	}

	// Flags override file and environment values when explicitly set
	if scriptDir != "" {
		cfg.Execution.ScriptDir = scriptDir
		cfg.Execution.ScratchDir = scriptDir
		cfg.Execution.ReportsDir = filepath.Join(scriptDir, "reports")
	}
	if listenAddr != "" {
		cfg.Server.Listen = listenAddr
	}
	if serialRuns {
		cfg.Execution.SerialRuns = true
	}
	if debugLog {
		cfg.Logging.Debug = true
	}

	return cfg, nil
}

// newLogger builds the service logger
func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
