package scans

import (
	"fmt"
	"strings"
)

// DashboardURL rewrites the API server URL into its user-facing equivalent
// and appends the organization and scan identifiers.
//
//	https://api.scanplatform.io/api -> https://app.scanplatform.io/orgs/{org}/scans/{id}
func DashboardURL(serverURL, org string, id ScanID) string {
	u := strings.TrimSuffix(strings.TrimSpace(serverURL), "/")
	u = strings.TrimSuffix(u, "/api")
	u = strings.Replace(u, "://api.", "://app.", 1)
	return fmt.Sprintf("%s/orgs/%s/scans/%s", u, org, id)
}
