/*
Author: Amjad Yaseen
Email: ayaseen@redhat.com
Date: 2025-06-02

This file provides access to the HTML reports the monitoring script writes. It:

- Lists report files matching the daily_*.html naming pattern
- Sorts listings by modification time, newest first, capped at a maximum
- Detects the report produced by a specific run, preferring an embedded run
  identifier and falling back to the newest file

The reports directory is written only by the monitoring script; this package
treats it as read-only.
*/

package reports

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ayaseen/openshift-monitor-web/pkg/types"
)

// URLPrefix is the path under which report files are served
const URLPrefix = "/reports/"

// reportEntry pairs a report name with its metadata for sorting
type reportEntry struct {
	name    string
	size    int64
	modTime time.Time
}

// IsReportName reports whether the file name matches the report pattern
func IsReportName(name string) bool {
	return strings.HasPrefix(name, "daily_") && strings.HasSuffix(name, ".html")
}

// List returns up to max reports in dir, sorted by modification time
// descending. A missing or empty directory yields an empty list, not an
// error.
func List(dir string, max int) ([]types.ReportFile, error) {
	entries, err := scan(dir)
	if err != nil {
		return nil, err
	}

	if max > 0 && len(entries) > max {
		entries = entries[:max]
	}

	reports := make([]types.ReportFile, 0, len(entries))
	for _, e := range entries {
		reports = append(reports, types.ReportFile{
			Name:    e.name,
			Size:    e.size,
			Created: e.modTime.Format(time.RFC3339),
			URL:     URLPrefix + e.name,
		})
	}

	return reports, nil
}

// Latest returns the name of the most recently modified report in dir, or
// an empty string when no report exists
func Latest(dir string) string {
	entries, err := scan(dir)
	if err != nil || len(entries) == 0 {
		return ""
	}
	return entries[0].name
}

// LatestForRun returns the report attributed to the given run. A report
// whose name embeds the run identifier wins; otherwise the newest report is
// returned, preserving the original mtime heuristic for scripts that ignore
// MONITOR_RUN_ID.
func LatestForRun(dir, runID string) string {
	entries, err := scan(dir)
	if err != nil || len(entries) == 0 {
		return ""
	}

	if runID != "" {
		for _, e := range entries {
			if strings.Contains(e.name, runID) {
				return e.name
			}
		}
	}

	return entries[0].name
}

// scan lists report entries in dir sorted by modification time descending
func scan(dir string) ([]reportEntry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []reportEntry
	for _, de := range dirEntries {
		if de.IsDir() || !IsReportName(de.Name()) {
			continue
		}
		info, err := os.Stat(filepath.Join(dir, de.Name()))
		if err != nil {
			continue
		}
		entries = append(entries, reportEntry{
			name:    de.Name(),
			size:    info.Size(),
			modTime: info.ModTime(),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].modTime.After(entries[j].modTime)
	})

	return entries, nil
}
