package odata

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var segmentTitle = cases.Title(language.English, cases.NoLower)

// ToCamel converts a registry snake_case name to the remote API's
// camelCase spelling: "received_date_time" becomes "receivedDateTime".
// Names without underscores pass through with their first segment
// lowercased, so an already-camelCase name is left intact.
func ToCamel(name string) string {
	parts := strings.Split(name, "_")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		if len(out) == 0 {
			out = append(out, part)
			continue
		}
		out = append(out, segmentTitle.String(part))
	}
	return strings.Join(out, "")
}
