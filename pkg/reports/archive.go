/*
Author: Amjad Yaseen
Email: ayaseen@redhat.com
Date: 2025-06-02

This file provides password-protected archiving of generated reports. It:

- Collects every report matching the daily_*.html pattern in a directory
- Writes them into a single encrypted ZIP archive
- Names the archive with a timestamp so repeated archives never collide

Archives allow report bundles to be handed over securely without exposing
cluster details in transit.
*/

package reports

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/alexmullins/zip"
)

// Archive writes all reports in dir into a password-protected ZIP archive
// and returns the archive path. It fails when the directory holds no
// reports.
func Archive(dir, password string) (string, error) {
	entries, err := scan(dir)
	if err != nil {
		return "", fmt.Errorf("failed to scan reports directory: %w", err)
	}
	if len(entries) == 0 {
		return "", fmt.Errorf("no reports found in %s", dir)
	}

	zipPath := filepath.Join(dir, fmt.Sprintf("reports_%s.zip", time.Now().Format("20060102_150405")))

	zipFile, err := os.Create(zipPath)
	if err != nil {
		return "", fmt.Errorf("failed to create zip file: %w", err)
	}
	defer zipFile.Close()

	zipWriter := zip.NewWriter(zipFile)
	defer zipWriter.Close()

	for _, e := range entries {
		if err := addEncrypted(zipWriter, filepath.Join(dir, e.name), e.name, password); err != nil {
			return "", err
		}
	}

	return zipPath, nil
}

// addEncrypted writes a single file into the archive as an encrypted entry
func addEncrypted(zw *zip.Writer, path, name, password string) error {
	source, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open report %s: %w", name, err)
	}
	defer source.Close()

	writer, err := zw.Encrypt(name, password)
	if err != nil {
		return fmt.Errorf("failed to create encrypted entry for %s: %w", name, err)
	}

	if _, err := io.Copy(writer, source); err != nil {
		return fmt.Errorf("failed to write %s to zip: %w", name, err)
	}

	return nil
}
