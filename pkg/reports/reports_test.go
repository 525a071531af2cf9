package reports

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeReport(t *testing.T, dir, name string, mtime time.Time) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("<html>report</html>"), 0644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func TestListSortsByModTimeDescending(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)

	// Created out of order on purpose
	writeReport(t, dir, "daily_b.html", base.Add(10*time.Minute))
	writeReport(t, dir, "daily_c.html", base.Add(30*time.Minute))
	writeReport(t, dir, "daily_a.html", base.Add(20*time.Minute))

	list, err := List(dir, 50)
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, "daily_c.html", list[0].Name)
	assert.Equal(t, "daily_a.html", list[1].Name)
	assert.Equal(t, "daily_b.html", list[2].Name)

	assert.Equal(t, "/reports/daily_c.html", list[0].URL)
	assert.Equal(t, int64(len("<html>report</html>")), list[0].Size)
}

func TestListIgnoresNonReports(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()

	writeReport(t, dir, "daily_keep.html", now)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "weekly_skip.html"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "daily_skip.txt"), []byte("x"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "daily_dir.html"), 0755))

	list, err := List(dir, 50)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "daily_keep.html", list[0].Name)
}

func TestListCapsResults(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)
	writeReport(t, dir, "daily_1.html", base.Add(1*time.Minute))
	writeReport(t, dir, "daily_2.html", base.Add(2*time.Minute))
	writeReport(t, dir, "daily_3.html", base.Add(3*time.Minute))

	list, err := List(dir, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "daily_3.html", list[0].Name)
	assert.Equal(t, "daily_2.html", list[1].Name)
}

func TestListEmptyAndMissingDirectories(t *testing.T) {
	list, err := List(t.TempDir(), 50)
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = List(filepath.Join(t.TempDir(), "nope"), 50)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestLatest(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, "", Latest(dir))

	base := time.Now().Add(-time.Hour)
	writeReport(t, dir, "daily_old.html", base)
	writeReport(t, dir, "daily_new.html", base.Add(time.Minute))

	assert.Equal(t, "daily_new.html", Latest(dir))
}

func TestLatestForRunPrefersEmbeddedRunID(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)

	// The run's own report is older than another run's report
	writeReport(t, dir, "daily_run_abc123.html", base)
	writeReport(t, dir, "daily_other.html", base.Add(time.Minute))

	assert.Equal(t, "daily_run_abc123.html", LatestForRun(dir, "abc123"))

	// Without a matching name the newest-mtime heuristic applies
	assert.Equal(t, "daily_other.html", LatestForRun(dir, "zzz999"))
	assert.Equal(t, "daily_other.html", LatestForRun(dir, ""))
}

func TestIsReportName(t *testing.T) {
	assert.True(t, IsReportName("daily_20250601.html"))
	assert.False(t, IsReportName("daily_20250601.txt"))
	assert.False(t, IsReportName("weekly_20250601.html"))
	assert.False(t, IsReportName("daily"))
}
