/*
Author: Amjad Yaseen
Email: ayaseen@redhat.com
Date: 2025-06-02

This file implements the API request handlers and request validation. It:

- Lists the monitoring command categories derived from the master manifest
- Lists the generated HTML reports, newest first
- Validates run requests before anything reaches the execution layer
- Maps validation, resource and execution failures to their HTTP statuses

Validation is the injection-prevention boundary: a group identifier must be
exactly one uppercase ASCII letter before it can influence a subprocess.
*/

package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ayaseen/openshift-monitor-web/pkg/manifest"
	"github.com/ayaseen/openshift-monitor-web/pkg/monitor"
	"github.com/ayaseen/openshift-monitor-web/pkg/reports"
	"github.com/ayaseen/openshift-monitor-web/pkg/types"
)

// handleCategories returns the categories found in the master manifest
func (s *Server) handleCategories(c *gin.Context) {
	categories, err := s.store.Categories()
	if err != nil {
		s.log.Errorw("failed to read categories", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to read commands manifest")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "categories": categories})
}

// handleReports returns the generated reports, newest first
func (s *Server) handleReports(c *gin.Context) {
	list, err := reports.List(s.cfg.Execution.ReportsDir, s.cfg.Execution.MaxReports)
	if err != nil {
		s.log.Errorw("failed to list reports", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to list reports")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "reports": list})
}

// handleRunMonitor validates a run request and executes the script
func (s *Server) handleRunMonitor(c *gin.Context) {
	req, errMsg := parseRunRequest(c)
	if errMsg != "" {
		respondError(c, http.StatusBadRequest, errMsg)
		return
	}

	result, err := s.runner.Run(c.Request.Context(), *req)
	if err != nil {
		if errors.Is(err, monitor.ErrRunInProgress) {
			respondError(c, http.StatusConflict, "A monitoring run is already in progress")
			return
		}
		s.log.Errorw("monitor run failed", "error", err)
		respondError(c, http.StatusInternalServerError, "Script execution failed: "+err.Error())
		return
	}

	if !result.Success {
		respondError(c, http.StatusInternalServerError, result.Message)
		return
	}

	c.JSON(http.StatusOK, result)
}

// parseRunRequest deserializes and validates the run request body. It
// returns a non-empty message describing the first validation failure.
func parseRunRequest(c *gin.Context) (*types.RunRequest, string) {
	var req types.RunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, "Invalid JSON format"
	}

	if len(req.Groups) == 0 {
		return nil, "No groups selected"
	}

	for _, group := range req.Groups {
		if !manifest.ValidGroupID(group) {
			return nil, fmt.Sprintf("Invalid group name: %s", sanitize(group))
		}
	}

	if req.Mode == "" {
		req.Mode = string(types.ModeActionable)
	}
	if !types.Mode(req.Mode).Valid() {
		return nil, fmt.Sprintf("Invalid mode: %s", sanitize(req.Mode))
	}

	return &req, ""
}

// sanitize bounds and cleans user input echoed back in error messages
func sanitize(s string) string {
	s = strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, s)
	if len(s) > 64 {
		s = s[:64]
	}
	return s
}
