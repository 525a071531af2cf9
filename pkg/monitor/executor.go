/*
Author: Amjad Yaseen
Email: ayaseen@redhat.com
Date: 2025-06-02

This file implements the monitoring script execution controller. It:

- Builds a filtered command manifest for the selected category groups
- Invokes the monitoring script as a single bounded subprocess per run
- Merges and captures script output up to a configurable cap
- Enforces a wall-clock timeout with forcible process termination
- Attributes the generated HTML report to the run that produced it
- Guarantees the temporary filtered manifest is removed after every run

Exactly one subprocess is spawned per call. Overlapping runs are independent
unless serial runs are enabled, in which case a second run is rejected.
*/

package monitor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/ayaseen/openshift-monitor-web/pkg/config"
	"github.com/ayaseen/openshift-monitor-web/pkg/manifest"
	"github.com/ayaseen/openshift-monitor-web/pkg/reports"
	"github.com/ayaseen/openshift-monitor-web/pkg/types"
)

// snippetLen is how much captured output is returned for diagnostics
const snippetLen = 1000

// waitDelay bounds how long Wait may linger on the output pipe after the
// process has been killed
const waitDelay = 10 * time.Second

// ErrRunInProgress indicates another run holds the single-run lock
var ErrRunInProgress = errors.New("a monitoring run is already in progress")

// Runner executes a validated monitoring run request
type Runner interface {
	// Run invokes the monitoring script once and reports the outcome
	Run(ctx context.Context, req types.RunRequest) (*types.RunResult, error)
}

// Executor runs the monitoring script as a bounded subprocess
type Executor struct {
	cfg   config.ExecutionConfig
	store *manifest.Store
	log   *zap.SugaredLogger
	sem   *semaphore.Weighted
}

// NewExecutor creates an executor bound to the given manifest store
func NewExecutor(cfg config.ExecutionConfig, store *manifest.Store, log *zap.SugaredLogger) *Executor {
	return &Executor{
		cfg:   cfg,
		store: store,
		log:   log,
		sem:   semaphore.NewWeighted(1),
	}
}

// Run executes the monitoring script for the selected groups and mode.
// The returned result carries the failure reason for script-level failures;
// an error is returned only when the run could not be set up at all.
func (e *Executor) Run(ctx context.Context, req types.RunRequest) (*types.RunResult, error) {
	if e.cfg.SerialRuns {
		if !e.sem.TryAcquire(1) {
			return nil, ErrRunInProgress
		}
		defer e.sem.Release(1)
	}

	mode := types.Mode(req.Mode)
	if mode == "" {
		mode = types.ModeActionable
	}

	runID := uuid.NewString()
	e.log.Infow("executing monitoring script",
		"run_id", runID,
		"groups", req.Groups,
		"mode", mode,
	)

	// Step 1: write the filtered manifest for this run
	tempManifest, err := e.store.WriteFiltered(req.Groups, e.cfg.ScratchDir)
	if err != nil {
		return nil, err
	}
	// The temporary manifest is always removed, whatever the outcome
	defer func() {
		if err := os.Remove(tempManifest); err != nil {
			e.log.Warnw("failed to remove temporary manifest", "run_id", runID, "path", tempManifest, "error", err)
		}
	}()

	scriptPath := e.scriptPath()
	if _, err := os.Stat(scriptPath); os.IsNotExist(err) {
		observeRun(statusFailure, 0)
		return &types.RunResult{
			Success: false,
			Message: fmt.Sprintf("Script file not found: %s", e.cfg.ScriptName),
		}, nil
	}

	// Step 2: invoke the script with a bounded wall-clock timeout
	runCtx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, "bash", scriptPath, mode.VerboseFlag())
	cmd.Dir = e.cfg.ScriptDir
	cmd.Env = append(os.Environ(),
		"COMMANDS_FILE="+tempManifest,
		"MONITOR_RUN_ID="+runID,
	)
	cmd.WaitDelay = waitDelay

	// Step 3: merge stderr into stdout behind a capped accumulator. Once
	// the cap is hit further output is discarded while the process is
	// still waited on to completion.
	capture := newCappedWriter(e.cfg.MaxOutputBytes)
	cmd.Stdout = capture
	cmd.Stderr = capture

	started := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(started)

	// Step 4: the timeout forcibly terminated the process
	if runCtx.Err() == context.DeadlineExceeded {
		observeRun(statusTimeout, elapsed)
		e.log.Errorw("monitoring script timed out", "run_id", runID, "timeout", e.cfg.Timeout)
		return &types.RunResult{
			Success: false,
			Message: fmt.Sprintf("Script execution timed out after %s", e.cfg.Timeout),
		}, nil
	}

	if capture.Truncated() {
		e.log.Warnw("script output capped", "run_id", runID, "cap_bytes", e.cfg.MaxOutputBytes)
	}

	// Step 5: classify the completion
	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			observeRun(statusFailure, elapsed)
			e.log.Warnw("monitoring script failed", "run_id", runID, "exit_code", exitErr.ExitCode())
			return &types.RunResult{
				Success: false,
				Message: fmt.Sprintf("Script execution failed with exit code: %d", exitErr.ExitCode()),
				Output:  snippet(capture.String()),
			}, nil
		}

		observeRun(statusFailure, elapsed)
		e.log.Errorw("monitoring script could not be started", "run_id", runID, "error", runErr)
		return &types.RunResult{
			Success: false,
			Message: fmt.Sprintf("Script execution failed: %v", runErr),
		}, nil
	}

	report := reports.LatestForRun(e.cfg.ReportsDir, runID)
	reportURL := ""
	if report != "" {
		reportURL = reports.URLPrefix + report
	}

	observeRun(statusSuccess, elapsed)
	e.log.Infow("monitoring script completed", "run_id", runID, "duration", elapsed, "report", report)

	return &types.RunResult{
		Success:    true,
		Message:    "Monitoring script executed successfully",
		ReportFile: report,
		ReportURL:  reportURL,
		Output:     snippet(capture.String()),
	}, nil
}

// scriptPath returns the path of the monitoring script
func (e *Executor) scriptPath() string {
	if filepath.IsAbs(e.cfg.ScriptName) {
		return e.cfg.ScriptName
	}
	return filepath.Join(e.cfg.ScriptDir, e.cfg.ScriptName)
}

// snippet returns the first snippetLen characters of the captured output
func snippet(s string) string {
	if len(s) > snippetLen {
		return s[:snippetLen]
	}
	return s
}
