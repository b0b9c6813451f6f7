// Package configure pushes interface descriptions to a single switch
// and reports a per-host outcome. Faults never escape: any error from
// dial, apply, save, or verify becomes a failure Outcome.
package configure

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/Notherbood/set-port-descriptions-from-csv/internal/device"
	"github.com/Notherbood/set-port-descriptions-from-csv/internal/plan"
)

// BlankSentinel in the description column means "remove the
// description" instead of setting that literal text.
const BlankSentinel = "blank"

// Outcome is the result of configuring one host. Message holds the
// verification block on success and the error text on failure.
type Outcome struct {
	Host    string
	Success bool
	Message string
}

// Options controls one configuration run.
type Options struct {
	// Verify re-reads each interface's description after saving and
	// includes the switch's own view in the outcome.
	Verify bool
}

// BuildBatch turns the entries for one host into the configuration
// lines submitted in a single transaction.
func BuildBatch(entries []plan.Entry) []string {
	lines := make([]string, 0, len(entries)*2)
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("interface %s", e.Interface))
		if strings.EqualFold(strings.TrimSpace(e.Description), BlankSentinel) {
			lines = append(lines, "no description")
		} else {
			lines = append(lines, fmt.Sprintf("description %s", e.Description))
		}
	}
	return lines
}

// Configure opens one session to host, applies the batched
// description changes, saves the configuration, and optionally
// verifies the result. The session is closed on every exit path.
func Configure(dial device.Dialer, host string, entries []plan.Entry, creds device.Credentials, opts Options) Outcome {
	sess, err := dial(host, creds)
	if err != nil {
		return failure(host, err)
	}
	defer sess.Close()

	if err := sess.Apply(BuildBatch(entries)); err != nil {
		return failure(host, err)
	}

	if err := sess.Persist(); err != nil {
		return failure(host, err)
	}

	if !opts.Verify {
		log.Debugf("%s :: configured %d interfaces, verification skipped", host, len(entries))
		return Outcome{Host: host, Success: true}
	}

	block, err := verify(sess, host, entries)
	if err != nil {
		return failure(host, err)
	}

	return Outcome{Host: host, Success: true, Message: block}
}

// verify re-reads every configured interface's description and builds
// one printable block from the switch's answers.
func verify(sess device.Session, host string, entries []plan.Entry) (string, error) {
	outLines := []string{fmt.Sprintf(">>> Verifying interface descriptions on %s:", host)}

	for _, e := range entries {
		output, err := sess.Query(fmt.Sprintf("show interface %s description", e.Interface))
		if err != nil {
			return "", err
		}
		outLines = append(outLines, device.VerificationLines(output)...)
	}

	return strings.Join(outLines, "\n"), nil
}

func failure(host string, err error) Outcome {
	log.Debugf("%s :: configuration failed :: %v", host, err)
	return Outcome{
		Host:    host,
		Message: fmt.Sprintf("XXX ERROR on %s: %v", host, err),
	}
}
