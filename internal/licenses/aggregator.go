// internal/licenses/aggregator.go
package licenses

import (
	"strings"

	"adobe-license-monitor/internal/common/adobe"
	"adobe-license-monitor/internal/common/config"
)

// cleanupReplacements are the provisioning suffixes and tiers stripped from
// raw license group names, applied in order.
var cleanupReplacements = []string{
	"Default ",
	"configuration",
	" plan with 1TB",
	" - 100 GB",
	" - 1024 GB",
	"Single App",
	" DC",
	" 3D Collection Configuration",
}

// Normalize derives the canonical product name from a raw license group name.
// Applying it twice yields the same result as once.
func Normalize(group string) string {
	cleaned := group
	for _, noise := range cleanupReplacements {
		cleaned = strings.ReplaceAll(cleaned, noise, "")
	}
	return strings.TrimSpace(cleaned)
}

// ProductCount is the usage tally for one canonical product name.
type ProductCount struct {
	Product string
	Used    int
}

// Count tallies license-group memberships per canonical product name across
// all users. Groups on the exclusion list are matched raw, before cleanup.
// Products are returned in first-seen order so output stays deterministic
// for a given user list.
func Count(users []adobe.User, cfg config.LicenseConfig) []ProductCount {
	counts := make(map[string]int)
	var order []string

	for _, user := range users {
		for _, group := range user.Groups {
			if cfg.IsExcluded(group) {
				continue
			}
			name := Normalize(group)
			if _, seen := counts[name]; !seen {
				order = append(order, name)
			}
			counts[name]++
		}
	}

	result := make([]ProductCount, 0, len(order))
	for _, name := range order {
		result = append(result, ProductCount{Product: name, Used: counts[name]})
	}
	return result
}
