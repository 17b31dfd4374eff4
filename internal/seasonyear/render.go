package seasonyear

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
)

const previewLength = 60

var (
	bold   = color.New(color.Bold).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	blue   = color.New(color.FgBlue).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
)

func preview(s string) string {
	r := []rune(s)
	if len(r) > previewLength {
		return string(r[:previewLength]) + "..."
	}
	return s
}

// Render writes a human-readable report with one table per updated step
func Render(w io.Writer, r Report) {
	mode := green("LIVE")
	if r.DryRun {
		mode = yellow("DRY RUN")
	}

	fmt.Fprintf(w, "\n%s\n", bold(fmt.Sprintf("Season Year Update: %d → %d", r.OldYear, r.NewYear)))
	fmt.Fprintf(w, "Mode: %s\n", mode)
	fmt.Fprintln(w, strings.Repeat("=", 60))

	for i, step := range r.Steps {
		fmt.Fprintf(w, "\n%s\n", bold(fmt.Sprintf("%d. %s", i+1, step.Title)))
		if step.Note != "" {
			fmt.Fprintf(w, "%s  %s\n", yellow("⚠"), step.Note)
		}

		switch {
		case step.Err != nil:
			fmt.Fprintf(w, "%s %s\n", red("✗"), step.Error)
			continue
		case !step.Updated():
			fmt.Fprintf(w, "%s No changes needed in %s\n", blue("○"), step.File)
			continue
		case r.DryRun:
			fmt.Fprintf(w, "%s Would update %s\n", yellow("[DRY RUN]"), bold(step.File))
		default:
			fmt.Fprintf(w, "%s Updated %s\n", green("✓"), bold(step.File))
		}

		t := table.NewWriter()
		t.SetStyle(table.StyleRounded)
		t.SetOutputMirror(w)
		t.AppendHeader(table.Row{"Count", "Old", "New"})
		for _, c := range step.Changes {
			t.AppendRow(table.Row{fmt.Sprintf("%d×", c.Count), preview(c.Old), preview(c.New)})
		}
		t.Render()
	}

	fmt.Fprintln(w, "\n"+strings.Repeat("=", 60))
	if r.DryRun {
		fmt.Fprintln(w, bold(yellow("DRY RUN COMPLETE")))
		fmt.Fprintf(w, "%d file(s) would be updated\n", r.FilesUpdated)
		fmt.Fprintf(w, "\nTo apply changes, run without --dry-run:\n  soxbot season-year --old-year %d --new-year %d\n", r.OldYear, r.NewYear)
	} else {
		fmt.Fprintln(w, bold(green("UPDATE COMPLETE")))
		fmt.Fprintf(w, "%d file(s) updated\n", r.FilesUpdated)
		fmt.Fprintf(w, "\n%s\n1. Review changes: git diff\n2. Commit changes: git commit -am 'Update to %d season'\n", bold("Next steps:"), r.NewYear)
	}
}
