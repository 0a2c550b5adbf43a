package codescanning

import (
	"encoding/json"
	"fmt"

	domain "github.com/bryanwahyu/scanbridge/internal/domain/scans"
)

// ValidateSARIF checks the shape invariants the ingestion endpoint cares
// about before any network call: a schema identifier, a version field, and a
// "runs" list. An empty runs list is legal and only worth a warning.
func ValidateSARIF(data []byte) ([]string, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: not a JSON object: %v", domain.ErrFormat, err)
	}
	if _, ok := doc["$schema"]; !ok {
		return nil, fmt.Errorf("%w: missing $schema field", domain.ErrFormat)
	}
	if _, ok := doc["version"]; !ok {
		return nil, fmt.Errorf("%w: missing version field", domain.ErrFormat)
	}
	rawRuns, ok := doc["runs"]
	if !ok {
		return nil, fmt.Errorf("%w: missing runs field", domain.ErrFormat)
	}
	var runs []json.RawMessage
	if err := json.Unmarshal(rawRuns, &runs); err != nil {
		return nil, fmt.Errorf("%w: runs field is not a list", domain.ErrFormat)
	}

	var warnings []string
	if len(runs) == 0 {
		warnings = append(warnings, "SARIF document has an empty runs list; nothing will appear in code scanning")
	}
	return warnings, nil
}
