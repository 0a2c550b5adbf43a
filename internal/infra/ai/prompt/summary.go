package prompt

import (
	"fmt"
	"sort"
	"strings"
)

// GetSystemPrompt returns the fixed system instruction for the remediation
// summary.
func GetSystemPrompt() string {
	return strings.TrimSpace(`
You are a security engineer reviewing the summary of an automated scan that
ran in a CI pipeline. Given severity counts and a violation-category
breakdown, write a short remediation summary for the team: which category to
fix first and why, in at most five sentences. Plain text only.`)
}

// GetUserPrompt renders the scan summary as the user message. Breakdown keys
// are sorted so the prompt is deterministic.
func GetUserPrompt(critical, high, medium, low, total int, breakdown map[string]int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Severity counts: critical=%d high=%d medium=%d low=%d total=%d\n",
		critical, high, medium, low, total)
	if len(breakdown) > 0 {
		keys := make([]string, 0, len(breakdown))
		for k := range breakdown {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString("Violations by category:\n")
		for _, k := range keys {
			fmt.Fprintf(&b, "- %s: %d\n", k, breakdown[k])
		}
	}
	return b.String()
}
