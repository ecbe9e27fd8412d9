package extdb

import (
	"fmt"
	"strings"
)

// deniedKeywords is the substring denylist applied to the ad-hoc admin query
// endpoint. It is not a security boundary (case tricks, comments and
// equivalent DDL slip through) and it intentionally guards only the one
// endpoint the source system guarded; see DESIGN.md.
var deniedKeywords = []string{"drop", "delete", "truncate"}

// GuardStatement rejects statements containing a denied keyword.
func GuardStatement(query string) error {
	lower := strings.ToLower(query)
	for _, kw := range deniedKeywords {
		if strings.Contains(lower, kw) {
			return fmt.Errorf("statement contains forbidden keyword %q", kw)
		}
	}
	return nil
}
