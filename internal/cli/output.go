package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/redsoxbot/soxbot/internal/poster"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// OutputResult contains data to be output
type OutputResult struct {
	CheckedAt time.Time       `json:"checked_at"`
	Team      string          `json:"team"`
	Results   []poster.Result `json:"results"`
	Batch     bool            `json:"-"`
	Pending   int             `json:"pending,omitempty"`
	Posted    int             `json:"posted"`
	Failed    int             `json:"failed"`
	Reason    string          `json:"reason,omitempty"`
	Error     string          `json:"error,omitempty"`
}

func newOutput(rt *runtime, at time.Time, res poster.Result) *OutputResult {
	out := &OutputResult{
		CheckedAt: at.In(rt.loc),
		Team:      rt.cfg.Team.FullName,
		Results:   []poster.Result{res},
	}
	switch res.Status {
	case poster.StatusPosted, poster.StatusDryRun:
		out.Posted = 1
	case poster.StatusFailed:
		out.Failed = 1
	}
	return out
}

func newBatchOutput(rt *runtime, at time.Time, b poster.BatchResult) *OutputResult {
	out := &OutputResult{
		CheckedAt: at.In(rt.loc),
		Team:      rt.cfg.Team.FullName,
		Results:   b.Results,
		Batch:     true,
		Pending:   b.Pending,
		Posted:    b.Posted,
		Failed:    b.Failed,
		Reason:    b.Reason,
	}
	if b.Err != nil {
		out.Error = b.Err.Error()
	}
	if out.Results == nil {
		out.Results = []poster.Result{}
	}
	return out
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	if result.Error != "" {
		fmt.Fprintf(w, "Error: %s\n", result.Error)
	}

	if len(result.Results) == 0 {
		reason := result.Reason
		if reason == "" {
			reason = poster.ReasonNothingPending
		}
		fmt.Fprintf(w, "Nothing posted: %s\n", reason)
		return nil
	}

	for _, res := range result.Results {
		label := strings.ToUpper(res.Status.String())
		switch res.Status {
		case poster.StatusPosted:
			fmt.Fprintf(w, "%s: %s (%s)\n", label, res.Type, res.PostID)
		case poster.StatusSkipped, poster.StatusFailed:
			fmt.Fprintf(w, "%s: %s: %s\n", label, res.Type, res.Reason)
		default:
			fmt.Fprintf(w, "%s: %s\n", label, res.Type)
		}

		if verbose {
			if res.TransactionID != "" {
				fmt.Fprintf(w, "     ID: %s\n", res.TransactionID)
			}
			if res.Text != "" {
				fmt.Fprintf(w, "     Text: %s\n", strings.ReplaceAll(res.Text, "\n", "\n           "))
			}
		}
	}

	if result.Batch {
		fmt.Fprintf(w, "\nTotal: %d posted, %d failed of %d pending\n", result.Posted, result.Failed, result.Pending)
	}

	return nil
}
