package notifier

import (
	"context"
	"fmt"
	"io"
	"unicode/utf8"
)

// DryRunNotifier prints what would be posted without actually posting
type DryRunNotifier struct {
	out   io.Writer
	count int
}

// NewDryRunNotifierTo creates a dry-run notifier writing to out
func NewDryRunNotifierTo(out io.Writer) *DryRunNotifier {
	return &DryRunNotifier{out: out}
}

// Post prints the post that would be published
func (n *DryRunNotifier) Post(_ context.Context, text string) (string, error) {
	n.count++
	fmt.Fprintf(n.out, "--- Post %d ---\n", n.count)
	fmt.Fprintln(n.out, text)
	fmt.Fprintf(n.out, "\n(Length: %d characters)\n\n", utf8.RuneCountInString(text))
	return fmt.Sprintf("dry-run-%d", n.count), nil
}
