package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
)

// WriteSummary prints the fixed summary: one line per core metric, the
// verdict and the issue count.
func (r *Report) WriteSummary(w io.Writer) error {
	var b strings.Builder
	for _, c := range r.Checks {
		status := "missed"
		if c.Met {
			status = "met"
		}
		fmt.Fprintf(&b, "%-10s %.4f (threshold %.2f, %s)\n", c.Label+":", c.Value, c.Threshold, status)
	}
	fmt.Fprintf(&b, "%-10s %s (%d of %d thresholds met, %d required)\n", "Verdict:", r.Verdict, r.ThresholdsMet, len(r.Checks), r.Thresholds.MinMet)
	fmt.Fprintf(&b, "%-10s %d\n", "Issues:", len(r.Issues))

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteTable prints every metric mean and, when present, the per-query rows.
func (r *Report) WriteTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	names := make([]string, 0, len(r.Metrics))
	for name := range r.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintf(tw, "\n=== Aggregate (mean across %d queries) ===\n\n", r.QueryCount)
	fmt.Fprintln(tw, "Metric\tValue")
	fmt.Fprintln(tw, "---\t---")
	for _, name := range names {
		fmt.Fprintf(tw, "%s\t%.4f\n", name, r.Metrics[name])
	}
	fmt.Fprintln(tw)

	if len(r.PerQuery) > 0 {
		fmt.Fprintf(tw, "=== Per-Query Results ===\n\n")

		header := append([]string{"Query", "Relevant"}, names...)
		fmt.Fprintln(tw, strings.Join(header, "\t"))

		sep := make([]string, len(header))
		for i := range sep {
			sep[i] = "---"
		}
		fmt.Fprintln(tw, strings.Join(sep, "\t"))

		for _, qr := range r.PerQuery {
			row := []string{qr.QueryID, fmt.Sprintf("%d", qr.Relevant)}
			for _, name := range names {
				row = append(row, fmt.Sprintf("%.4f", qr.Scores[name]))
			}
			fmt.Fprintln(tw, strings.Join(row, "\t"))
		}
		fmt.Fprintln(tw)
	}

	if len(r.Issues) > 0 {
		fmt.Fprintf(tw, "=== Issues ===\n\n")
		fmt.Fprintln(tw, "Kind\tQuery\tDetail")
		fmt.Fprintln(tw, "---\t---\t---")
		for _, is := range r.Issues {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", is.Kind, is.QueryID, is.Detail)
		}
		fmt.Fprintln(tw)
	}

	return tw.Flush()
}
