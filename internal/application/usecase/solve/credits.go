package solve

import "strings"

var creditKeywords = []string{"credits", "billing", "team"}

// IsCreditsError reports whether a provider failure looks like exhausted
// credits or a billing problem on the account.
func IsCreditsError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, kw := range creditKeywords {
		if strings.Contains(msg, kw) {
			return true
		}
	}
	return false
}
