package device

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
)

// InterfaceStatus defines the structure for a single network interface entry.
type InterfaceStatus struct {
	Interface   string
	Description string
	Status      string
	VlanID      string
	Duplex      string
	Speed       string
	Type        string
}

// ShowInterfaceStatus runs "show interface status" on the session and
// returns the parsed table.
func ShowInterfaceStatus(sess Session) ([]InterfaceStatus, error) {
	outputString, err := sess.Query("show interface status")
	if err != nil {
		return nil, err
	}

	statuses, err := parseInterfaceStatus(outputString)
	if err != nil {
		return nil, err
	}

	if len(statuses) == 0 {
		log.Warn("Show Interface Status :: parsing completed, but no interfaces were found")
		return nil, nil
	}

	for i := range statuses {
		statuses[i].Interface = normalizeInterfaceName(statuses[i].Interface)
	}

	return statuses, nil
}

// parseInterfaceStatus processes the raw CLI output and converts it into a list of InterfaceStatus structs.
// It locates the 'Status' field first, which correctly handles variable-length
// Description and Type fields.
func parseInterfaceStatus(rawOutput string) ([]InterfaceStatus, error) {
	var interfaces []InterfaceStatus
	lines := strings.Split(rawOutput, "\n")

	dataStartIndex := -1
	for i := 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if strings.Contains(line, "Port") && strings.Contains(line, "Vlan") {
			dataStartIndex = i + 1
			break
		}
	}

	if dataStartIndex == -1 || dataStartIndex >= len(lines) {
		return nil, fmt.Errorf("could not find interface status header in output")
	}

	for i := dataStartIndex; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		if line == "" || strings.HasPrefix(line, "----") || strings.HasPrefix(line, "Name") {
			continue // Skip blank lines, separators, or secondary headers
		}

		fields := strings.Fields(line)

		// A line must have at least 6 fields:
		// Port, Status, Vlan, Duplex, Speed, Type (Type can be multi-word)
		if len(fields) < 6 {
			continue
		}

		status := InterfaceStatus{}
		status.Interface = fields[0]

		// Find the Status field. It's the first field after the Interface
		// that is a known status keyword. We must leave at least 4 fields
		// after it (Vlan, Duplex, Speed, Type).
		statusIndex := -1
		maxSearchIndex := len(fields) - 5
		for j := 1; j <= maxSearchIndex; j++ {
			s := fields[j]
			if s == "connected" || s == "notconnect" || s == "disabled" || s == "err-disabled" || s == "suspended" || s == "monitoring" {
				statusIndex = j
				break
			}
		}

		// If we didn't find a status, this line is malformed.
		if statusIndex == -1 {
			continue
		}

		// Description is everything between Interface (fields[0]) and Status (fields[statusIndex])
		status.Description = strings.Join(fields[1:statusIndex], " ")

		status.Status = fields[statusIndex]
		status.VlanID = fields[statusIndex+1]
		status.Duplex = fields[statusIndex+2]
		status.Speed = fields[statusIndex+3]

		// Type is everything that remains
		status.Type = strings.Join(fields[statusIndex+4:], " ")

		interfaces = append(interfaces, status)
	}

	return interfaces, nil
}
