package device

import "strings"

// VerificationLines reduces the raw output of
// "show interface <x> description" to just the data lines: blank
// lines, the echoed command, the column header, and prompt lines are
// dropped.
func VerificationLines(rawOutput string) []string {
	var lines []string
	for _, line := range strings.Split(rawOutput, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		// Skip the header line (starts with "Interface")
		if strings.HasPrefix(strings.ToLower(trimmed), "interface") {
			continue
		}
		if strings.HasPrefix(trimmed, "show ") || strings.Contains(trimmed, "#show ") {
			continue
		}
		if strings.HasPrefix(trimmed, "terminal length") {
			continue
		}
		// Skip standalone prompts like "Switch1#"
		if strings.HasSuffix(trimmed, "#") || strings.HasSuffix(trimmed, ">") {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// normalizeInterfaceName shortens interface names to a standard format.
func normalizeInterfaceName(name string) string {
	name = strings.ReplaceAll(name, " ", "")

	// Using strings.NewReplacer is the most efficient way to do multiple replacements.
	replacer := strings.NewReplacer(
		"AppGigabitEthernet", "Ap",
		"FastEthernet", "Fa",
		"GigabitEthernet", "Gi",
		"FiveGigabitEthernet", "Fi",
		"FiveGi", "Fi",
		"TenGigabitEthernet", "Te",
		"TenGi", "Te",
		"Ten", "Te",
		"TwentyGigabitEthernet", "Twe",
		"TwentyFiveGigE", "Twe",
		"FortyGigabitEthernet", "Fo",
		"FortyGi", "Fo",
		"HundredGigE", "Hu",
		"Gig", "Gi", // In case "Gig" is used instead of "GigabitEthernet"
	)
	return replacer.Replace(name)
}
