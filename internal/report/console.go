package report

import (
	"bufio"
	"fmt"
	"io"
	"route-fare-planner/internal/domain"
	"strings"
)

// Full-width semicolon, as used between risk notes and leg details.
const riskSeparator = "；"

// PrintPlans writes a numbered, human-readable listing of plans to w.
func PrintPlans(w io.Writer, plans []domain.RoutePlan) error {
	bw := bufio.NewWriter(w)

	for i, p := range plans {
		fmt.Fprintf(bw, "\n[%d] %s\n", i+1, p.Strategy)
		for _, l := range p.Legs {
			line := fmt.Sprintf("  - %-6s %s -> %s | ¥%.2f | %.2fh %s",
				l.Mode, l.Origin, l.Destination, l.Cost, l.Duration, l.Notes)
			fmt.Fprintln(bw, strings.TrimRight(line, " "))
		}
		fmt.Fprintf(bw, "  total: ¥%.2f | duration: %.2fh\n", p.TotalCost(), p.TotalDuration())
		if len(p.Risks) > 0 {
			fmt.Fprintln(bw, "  risks: "+strings.Join(p.Risks, riskSeparator))
		}
	}

	return bw.Flush()
}
