// internal/licenses/report.go
package licenses

import (
	"fmt"
	"strconv"
	"strings"

	"adobe-license-monitor/internal/common/config"
)

const (
	// ReportHeader prefixes the Slack message.
	ReportHeader = ":adobe: *Adobe License Report* :adobe:"

	// creditProduct is counted in credits rather than seat licenses.
	creditProduct = "Adobe Stock Credits"
)

// unitLabel returns the unit for a product, pluralized when used > 1.
// Stock credits already read as a plural quantity and stay as-is.
func unitLabel(product string, used int) string {
	if product == creditProduct {
		return "Credits"
	}
	if used > 1 {
		return "Licenses"
	}
	return "License"
}

// FormatSummary renders one line per counted product against the allocation
// table. Products missing from the table report an Unknown total.
func FormatSummary(counts []ProductCount, lic config.LicenseConfig) string {
	lines := make([]string, 0, len(counts))
	for _, pc := range counts {
		total := "Unknown"
		if t, ok := lic.Total(pc.Product); ok {
			total = strconv.Itoa(t)
		}
		lines = append(lines, fmt.Sprintf("%s: %d of %s %s", pc.Product, pc.Used, total, unitLabel(pc.Product, pc.Used)))
	}
	return strings.Join(lines, "\n")
}

// FormatMessage prepends the report header to a summary.
func FormatMessage(summary string) string {
	return ReportHeader + "\n" + summary
}
