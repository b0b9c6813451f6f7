package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Notherbood/set-port-descriptions-from-csv/internal/configure"
)

func TestWriteSortsHostsAndCounts(t *testing.T) {
	results := map[string]configure.Outcome{
		"10.0.0.3": {Host: "10.0.0.3", Success: true, Message: ">>> Verifying interface descriptions on 10.0.0.3:"},
		"10.0.0.1": {Host: "10.0.0.1", Message: "XXX ERROR on 10.0.0.1: timeout"},
		"10.0.0.2": {Host: "10.0.0.2", Success: true, Message: ">>> Verifying interface descriptions on 10.0.0.2:"},
	}

	var buf bytes.Buffer
	failed := Write(&buf, results)

	if failed != 1 {
		t.Fatalf("expected 1 failure, got %d", failed)
	}

	out := buf.String()

	// Hosts print in lexicographic order regardless of completion order.
	i1 := strings.Index(out, "XXX ERROR on 10.0.0.1")
	i2 := strings.Index(out, ">>> SUCCESS: 10.0.0.2")
	i3 := strings.Index(out, ">>> SUCCESS: 10.0.0.3")
	if i1 == -1 || i2 == -1 || i3 == -1 || !(i1 < i2 && i2 < i3) {
		t.Fatalf("hosts not printed in sorted order:\n%s", out)
	}

	if !strings.Contains(out, "Total switches:  3") {
		t.Fatalf("missing total count:\n%s", out)
	}
	if !strings.Contains(out, "Successful:      2") {
		t.Fatalf("missing success count:\n%s", out)
	}
	if !strings.Contains(out, "Failed:          1") {
		t.Fatalf("missing failure count:\n%s", out)
	}
	if !strings.Contains(out, "Failed hosts:") || !strings.Contains(out, " - 10.0.0.1") {
		t.Fatalf("missing failed host list:\n%s", out)
	}
}

func TestWriteNoSuccessMarkerForFailedHost(t *testing.T) {
	results := map[string]configure.Outcome{
		"10.0.0.1": {Host: "10.0.0.1", Message: "XXX ERROR on 10.0.0.1: auth failed"},
	}

	var buf bytes.Buffer
	Write(&buf, results)

	if strings.Contains(buf.String(), ">>> SUCCESS") {
		t.Fatalf("failed host got a success marker:\n%s", buf.String())
	}
}

func TestWriteAllSucceededOmitsFailedList(t *testing.T) {
	results := map[string]configure.Outcome{
		"10.0.0.1": {Host: "10.0.0.1", Success: true},
		"10.0.0.2": {Host: "10.0.0.2", Success: true},
	}

	var buf bytes.Buffer
	failed := Write(&buf, results)

	if failed != 0 {
		t.Fatalf("expected 0 failures, got %d", failed)
	}
	if strings.Contains(buf.String(), "Failed hosts:") {
		t.Fatalf("failed-host list printed with no failures:\n%s", buf.String())
	}
}
