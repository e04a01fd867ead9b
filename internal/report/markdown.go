package report

import (
	"fmt"
	"regexp"
	"route-fare-planner/internal/domain"
	"strings"
)

const noDate = "-"

var (
	compactDate = regexp.MustCompile(`_(20\d{6})\b`)
	isoDate     = regexp.MustCompile(`20\d{2}-\d{2}-\d{2}`)
)

// ExtractDate finds a travel date in text: first a _YYYYMMDD suffix such as
// the one in price keys, then an ISO YYYY-MM-DD substring. Returns "-" if none.
func ExtractDate(text string) string {
	if text == "" {
		return noDate
	}
	if m := compactDate.FindStringSubmatch(text); m != nil {
		ymd := m[1]
		return ymd[0:4] + "-" + ymd[4:6] + "-" + ymd[6:8]
	}
	if m := isoDate.FindString(text); m != "" {
		return m
	}
	return noDate
}

// PlanDate looks in price keys, then the plan name, then leg notes.
func PlanDate(p domain.RoutePlan) string {
	for _, k := range p.PriceKeys() {
		if d := ExtractDate(k); d != noDate {
			return d
		}
	}
	if d := ExtractDate(p.Strategy); d != noDate {
		return d
	}
	for _, l := range p.Legs {
		if d := ExtractDate(l.Notes); d != noDate {
			return d
		}
	}
	return noDate
}

func money(x float64) string { return fmt.Sprintf("¥%.2f", x) }
func hours(x float64) string { return fmt.Sprintf("%.2fh", x) }

func legDetail(l domain.Leg) string {
	var extras []string
	if l.PriceKey != "" {
		extras = append(extras, "key="+l.PriceKey)
	}
	if l.Notes != "" {
		extras = append(extras, l.Notes)
	}

	s := fmt.Sprintf("%s:%s→%s (%s, %s)", l.Mode, l.Origin, l.Destination, money(l.Cost), hours(l.Duration))
	if len(extras) > 0 {
		s += " [" + strings.Join(extras, " / ") + "]"
	}
	return s
}

// cell keeps a value from breaking the table row.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

// Markdown renders already-ranked plans as a table, one row per plan in order.
func Markdown(plans []domain.RoutePlan) string {
	var b strings.Builder
	b.WriteString("| rank | date | plan | total cost | total duration | detail |\n")
	b.WriteString("|---:|---|---|---:|---:|---|\n")

	for i, p := range plans {
		details := make([]string, 0, len(p.Legs))
		for _, l := range p.Legs {
			details = append(details, legDetail(l))
		}

		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s |\n",
			i+1,
			PlanDate(p),
			cell(p.Strategy),
			money(p.TotalCost()),
			hours(p.TotalDuration()),
			cell(strings.Join(details, riskSeparator+" ")),
		)
	}

	return b.String()
}
