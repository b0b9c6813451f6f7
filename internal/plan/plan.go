package plan

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrNoUsableRows is returned when the CSV parses but every row was
// dropped for missing a host, interface, or description.
var ErrNoUsableRows = errors.New("no usable rows found in CSV")

// ConfigRow is one parsed CSV row: which interface on which host gets
// which description.
type ConfigRow struct {
	Host        string
	Interface   string
	Description string
}

// Entry is one (interface, description) pair for a host.
type Entry struct {
	Interface   string
	Description string
}

// HostPlan groups entries by host. Entry order within a host matches
// CSV row order, and Hosts() preserves first-seen host order.
type HostPlan struct {
	entries map[string][]Entry
	order   []string
}

func NewHostPlan() *HostPlan {
	return &HostPlan{entries: make(map[string][]Entry)}
}

// Add appends an entry to the host's list, creating the list on first
// reference to that host.
func (p *HostPlan) Add(host, iface, desc string) {
	if _, ok := p.entries[host]; !ok {
		p.order = append(p.order, host)
	}
	p.entries[host] = append(p.entries[host], Entry{Interface: iface, Description: desc})
}

// Hosts returns the host identifiers in first-seen order.
func (p *HostPlan) Hosts() []string {
	hosts := make([]string, len(p.order))
	copy(hosts, p.order)
	return hosts
}

// Entries returns the ordered entry list for a host, nil if unknown.
func (p *HostPlan) Entries(host string) []Entry {
	return p.entries[host]
}

func (p *HostPlan) Len() int {
	return len(p.order)
}

// Load reads a CSV with header host,interface,description and groups
// the rows into a HostPlan. Fields are trimmed and rows missing any
// field after trimming are skipped. Columns are located by header name
// so their order in the file does not matter.
func Load(path string) (*HostPlan, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV %s: %w", path, err)
	}
	defer file.Close()

	return Read(file)
}

// Read parses CSV content from r. See Load.
func Read(r io.Reader) (*HostPlan, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoUsableRows
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range []string{"host", "interface", "description"} {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("CSV header is missing %q column", name)
		}
	}

	p := NewHostPlan()
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		host := field(record, cols["host"])
		iface := field(record, cols["interface"])
		desc := field(record, cols["description"])

		// Skip incomplete rows rather than failing the whole file.
		if host == "" || iface == "" || desc == "" {
			continue
		}

		p.Add(host, iface, desc)
	}

	if p.Len() == 0 {
		return nil, ErrNoUsableRows
	}

	return p, nil
}

func field(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
