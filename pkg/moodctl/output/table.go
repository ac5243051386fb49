package output

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/telekom/moodmail/pkg/dispatch"
)

// WriteReportTable renders a dispatch report as a short human-readable
// summary followed by one line per failed recipient.
func WriteReportTable(w io.Writer, report *dispatch.Report) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "STATUS\tSENT\tFAILED")
	_, _ = fmt.Fprintf(tw, "%s\t%d\t%d\n", report.Status, report.SentCount, report.FailedCount)
	_ = tw.Flush()

	if len(report.Errors) > 0 {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, "FAILURES")
		for _, e := range report.Errors {
			_, _ = fmt.Fprintf(w, "  %s\n", e)
		}
	}
}

func WriteTemplateTable(w io.Writer, templates []string) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "NAME")
	for _, name := range templates {
		_, _ = fmt.Fprintln(tw, name)
	}
	_ = tw.Flush()
}
