/*
Author: Amjad Yaseen
Email: ayaseen@redhat.com
Date: 2025-06-02

This file handles the master command manifest of the monitoring script. It:

- Parses the pipe-delimited manifest and derives the available categories
- Counts the commands belonging to each category identifier
- Generates the filtered manifest handed to the script for a selected run
- Preserves comments and blank lines so the script sees its native format

The manifest is the single source of truth for what the monitoring script can
collect; this package never modifies it, only reads and derives from it.
*/

package manifest

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/ayaseen/openshift-monitor-web/pkg/types"
)

// ErrManifestUnreadable indicates the master manifest could not be read
var ErrManifestUnreadable = errors.New("commands manifest unreadable")

// categoryID matches a valid category identifier: one uppercase ASCII letter
var categoryID = regexp.MustCompile(`^[A-Z]$`)

// ValidGroupID reports whether the identifier is a single uppercase letter.
// This is the injection-prevention boundary for run requests.
func ValidGroupID(id string) bool {
	return categoryID.MatchString(id)
}

// Store reads and filters the master command manifest
type Store struct {
	// Path is the absolute path of the master manifest file
	Path string
}

// NewStore creates a manifest store bound to the given file
func NewStore(path string) *Store {
	return &Store{Path: path}
}

// Categories parses the manifest and returns the categories present in it,
// with command counts, sorted by identifier
func (s *Store) Categories() ([]types.Category, error) {
	lines, err := s.readLines()
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, line := range lines {
		id, ok := entryCategory(line)
		if !ok {
			continue
		}
		counts[id]++
	}

	categories := make([]types.Category, 0, len(counts))
	for id, count := range counts {
		categories = append(categories, types.Category{
			ID:           id,
			Name:         types.CategoryName(id),
			CommandCount: count,
		})
	}

	sort.Slice(categories, func(i, j int) bool {
		return categories[i].ID < categories[j].ID
	})

	return categories, nil
}

// Filter returns the manifest lines to hand to the script for the selected
// groups: a header block, every comment and blank line verbatim, and every
// command line whose category is selected, in original order
func (s *Store) Filter(groups []string) ([]string, error) {
	lines, err := s.readLines()
	if err != nil {
		return nil, err
	}

	selected := make(map[string]bool, len(groups))
	for _, g := range groups {
		selected[g] = true
	}

	filtered := []string{
		"#!/bin/bash",
		"# Filtered monitoring commands",
		"# Generated by OpenShift Monitor Web App",
		"# Groups: " + strings.Join(groups, ", "),
		"# Timestamp: " + time.Now().Format(time.RFC1123),
		"",
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			filtered = append(filtered, line)
			continue
		}
		if id, ok := entryCategory(line); ok && selected[id] {
			filtered = append(filtered, line)
		}
	}

	return filtered, nil
}

// WriteFiltered writes the filtered manifest for the selected groups to a
// uniquely named file in dir and returns its absolute path. The caller owns
// the file and is responsible for deleting it after the run.
func (s *Store) WriteFiltered(groups []string, dir string) (string, error) {
	lines, err := s.Filter(groups)
	if err != nil {
		return "", err
	}

	// Millisecond timestamp keeps concurrent runs from colliding
	name := fmt.Sprintf("temp_commands_%d.list", time.Now().UnixMilli())
	path := filepath.Join(dir, name)

	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write filtered manifest: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return path, nil
	}
	return abs, nil
}

// readLines reads the manifest file as a slice of lines
func (s *Store) readLines() ([]string, error) {
	file, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrManifestUnreadable, s.Path)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrManifestUnreadable, s.Path)
	}

	return lines, nil
}

// entryCategory extracts the category identifier from a command line. It
// returns false for comments, blank lines and lines without a valid leading
// identifier field.
func entryCategory(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") || !strings.Contains(line, "|") {
		return "", false
	}

	parts := strings.SplitN(line, "|", 2)
	id := strings.TrimSpace(parts[0])
	if !categoryID.MatchString(id) {
		return "", false
	}

	return id, true
}
