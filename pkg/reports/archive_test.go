package reports

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexmullins/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveCreatesEncryptedZip(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	writeReport(t, dir, "daily_one.html", now.Add(-time.Minute))
	writeReport(t, dir, "daily_two.html", now)

	zipPath, err := Archive(dir, "secret")
	require.NoError(t, err)
	assert.FileExists(t, zipPath)

	reader, err := zip.OpenReader(zipPath)
	require.NoError(t, err)
	defer reader.Close()

	var names []string
	for _, f := range reader.File {
		names = append(names, f.Name)
		assert.True(t, f.IsEncrypted(), "entry %s should be encrypted", f.Name)
	}
	assert.ElementsMatch(t, []string{"daily_one.html", "daily_two.html"}, names)
}

func TestArchiveWithoutReports(t *testing.T) {
	_, err := Archive(t.TempDir(), "secret")
	require.Error(t, err)
}

func TestArchiveSkipsNonReports(t *testing.T) {
	dir := t.TempDir()
	writeReport(t, dir, "daily_one.html", time.Now())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	zipPath, err := Archive(dir, "secret")
	require.NoError(t, err)

	reader, err := zip.OpenReader(zipPath)
	require.NoError(t, err)
	defer reader.Close()

	require.Len(t, reader.File, 1)
	assert.Equal(t, "daily_one.html", reader.File[0].Name)
}
