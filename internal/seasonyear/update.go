package seasonyear

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrFileNotFound is returned when a step's file does not exist
var ErrFileNotFound = errors.New("file not found")

// Change records how often one replacement matched
type Change struct {
	Old   string `json:"old"`
	New   string `json:"new"`
	Count int    `json:"count"`
}

// StepResult is the outcome of one step
type StepResult struct {
	Title   string   `json:"title"`
	File    string   `json:"file"`
	Note    string   `json:"note,omitempty"`
	Changes []Change `json:"changes,omitempty"`
	Err     error    `json:"-"`
	Error   string   `json:"error,omitempty"`
}

// Updated reports whether the step changed (or would change) its file
func (r StepResult) Updated() bool {
	return len(r.Changes) > 0
}

// UpdateFile applies replacements in order to the file at path. Replacements
// see the output of the ones before them. Nothing is written when dryRun is
// set or when no replacement matched.
func UpdateFile(path string, replacements []Replacement, dryRun bool) ([]Change, error) {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	content := string(data)

	var changes []Change
	for _, r := range replacements {
		count := strings.Count(content, r.Old)
		if r.Old == "" || count == 0 {
			continue
		}
		content = strings.ReplaceAll(content, r.Old, r.New)
		changes = append(changes, Change{Old: r.Old, New: r.New, Count: count})
	}

	if len(changes) == 0 || dryRun {
		return changes, nil
	}

	if err := os.WriteFile(path, []byte(content), info.Mode().Perm()); err != nil {
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}
	return changes, nil
}

// Updater runs a plan against a site checkout
type Updater struct {
	Root   string
	DryRun bool
}

// Report summarizes a plan run
type Report struct {
	OldYear      int          `json:"old_year"`
	NewYear      int          `json:"new_year"`
	DryRun       bool         `json:"dry_run"`
	Steps        []StepResult `json:"steps"`
	FilesUpdated int          `json:"files_updated"`
}

// Run applies every step. A failing step is recorded and the rest still run.
// FilesUpdated counts steps that changed a file, as the same file may be
// touched by several steps.
func (u *Updater) Run(oldYear, newYear int, steps []Step) Report {
	report := Report{OldYear: oldYear, NewYear: newYear, DryRun: u.DryRun}

	for _, step := range steps {
		res := StepResult{Title: step.Title, File: step.File, Note: step.Note}

		changes, err := UpdateFile(filepath.Join(u.Root, step.File), step.Replacements, u.DryRun)
		if err != nil {
			res.Err = err
			res.Error = err.Error()
		}
		res.Changes = changes

		if res.Updated() {
			report.FilesUpdated++
		}
		report.Steps = append(report.Steps, res)
	}

	return report
}
