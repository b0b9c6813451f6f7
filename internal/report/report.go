// Package report prints the per-host results and the final summary.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/Notherbood/set-port-descriptions-from-csv/internal/configure"
)

// Write prints each host's verification or error block in host order,
// a success marker for the hosts that made it, and the aggregate
// summary. It returns the number of failed hosts so the caller can
// pick an exit code.
func Write(w io.Writer, results map[string]configure.Outcome) int {
	hosts := make([]string, 0, len(results))
	for host := range results {
		hosts = append(hosts, host)
	}
	sort.Strings(hosts)

	for _, host := range hosts {
		out := results[host]
		if out.Message != "" {
			fmt.Fprintln(w, out.Message)
		}
		if out.Success {
			fmt.Fprintf(w, ">>> SUCCESS: %s\n", host)
		}
		fmt.Fprintln(w)
	}

	var failures []string
	for _, host := range hosts {
		if !results[host].Success {
			failures = append(failures, host)
		}
	}
	successes := len(results) - len(failures)

	fmt.Fprintln(w, "========== SUMMARY ==========")
	fmt.Fprintf(w, "Total switches:  %d\n", len(results))
	fmt.Fprintf(w, "Successful:      %d\n", successes)
	fmt.Fprintf(w, "Failed:          %d\n", len(failures))

	if len(failures) > 0 {
		fmt.Fprintln(w, "\nFailed hosts:")
		for _, host := range failures {
			fmt.Fprintf(w, " - %s\n", host)
		}
	}

	return len(failures)
}
