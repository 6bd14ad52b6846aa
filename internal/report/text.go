package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/Simplici0/groentetuin/internal/harvest"
)

const numberFormat = "#,###.##"

// WriteText renders result as a plain-text summary.
func WriteText(w io.Writer, title string, result Result, currency string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", title)
	fmt.Fprintf(&b, "Omstandigheden: %s\n\n", describeEnvironment(result.Environment))

	for _, line := range result.Lines {
		fmt.Fprintf(&b, "%s x%d\n", line.Crop, line.NumCrops)
		fmt.Fprintf(&b, "  Opbrengst per plant: %s kg\n", formatNumber(line.PlantYield))
		fmt.Fprintf(&b, "  Opbrengst: %s kg\n", formatNumber(line.Yield))
		fmt.Fprintf(&b, "  Kosten: %s %s\n", formatNumber(line.Costs), currency)
		fmt.Fprintf(&b, "  Omzet: %s %s\n", formatNumber(line.Revenue), currency)
		fmt.Fprintf(&b, "  Winst: %s %s\n", formatNumber(line.Profit), currency)
	}

	fmt.Fprintf(&b, "\nTotaal opbrengst: %s kg\n", formatNumber(result.Totals.Yield))
	fmt.Fprintf(&b, "Totaal kosten: %s %s\n", formatNumber(result.Totals.Costs), currency)
	fmt.Fprintf(&b, "Totaal omzet: %s %s\n", formatNumber(result.Totals.Revenue), currency)
	fmt.Fprintf(&b, "Totaal winst: %s %s\n", formatNumber(result.Totals.Profit), currency)

	_, err := io.WriteString(w, b.String())
	return err
}

func formatNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	return humanize.FormatFloat(numberFormat, v)
}

func describeEnvironment(env harvest.Environment) string {
	parts := make([]string, 0, len(harvest.Categories))
	for _, category := range harvest.Categories {
		if level, ok := env[category]; ok {
			parts = append(parts, fmt.Sprintf("%s=%s", category, level))
		}
	}
	if len(parts) == 0 {
		return "geen"
	}
	return strings.Join(parts, ", ")
}
