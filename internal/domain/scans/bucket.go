package scans

import "strings"

// BucketViolationType maps a raw violation type string from the platform to
// a human-readable category. Matching is case-insensitive; unrecognized
// types come back title-cased verbatim.
func BucketViolationType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "sca", "dependency", "dependencies":
		return "Dependency Issues"
	case "sast", "agentic_sast", "agentic sast":
		return "Security Issues"
	case "secret", "secrets":
		return "Secret Exposure"
	case "iac":
		return "Infrastructure-as-Code Issues"
	case "sbom":
		return "Software Bill of Materials"
	}
	return titleCase(raw)
}

func titleCase(s string) string {
	words := strings.Fields(strings.TrimSpace(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
