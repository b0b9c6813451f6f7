// Package dispatch fans the per-host configuration tasks out over a
// fixed-width worker pool and collects one Outcome per host.
package dispatch

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/Notherbood/set-port-descriptions-from-csv/internal/configure"
	"github.com/Notherbood/set-port-descriptions-from-csv/internal/device"
	"github.com/Notherbood/set-port-descriptions-from-csv/internal/plan"
)

// DefaultWorkers is how many switches are configured in parallel when
// no width is given.
const DefaultWorkers = 10

// Task is the per-host function a worker runs. It matches
// configure.Configure with the dialer and credentials already bound.
type Task func(host string, entries []plan.Entry) configure.Outcome

// Run processes every host in the plan with at most workers tasks in
// flight. Each host is submitted exactly once; results arrive in
// completion order and are keyed by host, so no host blocks another.
func Run(p *plan.HostPlan, workers int, task Task) map[string]configure.Outcome {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	hosts := p.Hosts()
	hostChan := make(chan string, len(hosts))
	resultChan := make(chan configure.Outcome, len(hosts))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for host := range hostChan {
				resultChan <- task(host, p.Entries(host))
			}
		}()
	}

	for _, host := range hosts {
		hostChan <- host
	}
	close(hostChan)

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	results := make(map[string]configure.Outcome, len(hosts))
	for out := range resultChan {
		results[out.Host] = out
		status := "SUCCESS"
		if !out.Success {
			status = "FAILED"
		}
		log.Infof("%s :: %s", out.Host, status)
	}

	return results
}

// ConfigureTask binds the production Configurator to a dialer and
// credentials so Run only sees hosts and entries.
func ConfigureTask(dial device.Dialer, creds device.Credentials, opts configure.Options) Task {
	return func(host string, entries []plan.Entry) configure.Outcome {
		return configure.Configure(dial, host, entries, creds, opts)
	}
}
