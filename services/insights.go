package services

import (
	"fmt"
	"io"
	"strings"

	"quote-insights/models"
)

// InsightPrinter writes a console digest of a run's statistics.
type InsightPrinter struct {
	out io.Writer
}

func NewInsightPrinter(out io.Writer) *InsightPrinter {
	return &InsightPrinter{out: out}
}

func (p *InsightPrinter) Print(source string, s *models.Statistics) {
	sep := strings.Repeat("═", 58)
	thin := strings.Repeat("─", 58)
	w := p.out

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(w, "\033[1;35m  📊 QUOTE INSIGHTS: %s\033[0m\n", shorten(source, 40))
	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)

	// Overview
	fmt.Fprintf(w, "\033[1;33m  Overview\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	fmt.Fprintf(w, "  Records          : \033[1m%d\033[0m (%d outside TPL/Comprehensive)\n", s.TotalRecords, s.UngroupedRecords)
	fmt.Fprintf(w, "  Quotes           : \033[1m%d\033[0m\n", s.Overall.Total)
	fmt.Fprintf(w, "  Successful       : \033[1;32m%d\033[0m\n", s.Overall.Pass)
	fmt.Fprintf(w, "  Failed           : \033[1;31m%d\033[0m\n", s.Overall.Fail)
	fmt.Fprintf(w, "  Skipped          : \033[1m%d\033[0m\n", s.Overall.Skip)
	fmt.Fprintf(w, "  Unique requests  : \033[1m%d\033[0m\n", s.UniqueRequests.Total)
	fmt.Fprintf(w, "  Unique chassis   : \033[1m%d\033[0m\n", s.UniqueChassis.Total)
	if s.RequestedRange.Valid() {
		fmt.Fprintf(w, "  Requested        : %s → %s\n",
			s.RequestedRange.From.Format("2006-01-02"), s.RequestedRange.To.Format("2006-01-02"))
	}
	fmt.Fprintln(w)

	// Groups
	for _, g := range []models.GroupStats{s.ThirdParty, s.Comprehensive} {
		fmt.Fprintf(w, "\033[1;33m  %s\033[0m\n", g.Group.Label())
		fmt.Fprintf(w, "  %s\n", thin)
		fmt.Fprintf(w, "  Quotes %d | pass %d | fail %d | skip %d | failure rate \033[1;31m%.2f%%\033[0m\n",
			g.TotalQuotes, g.PassCount, g.FailCount, g.SkipCount, g.FailurePercentage)
		if g.Group == models.GroupComprehensive {
			fmt.Fprintf(w, "  Blocked estimated value : %s\n", g.BlockedEstimatedValue.StringFixed(2))
		}
		if len(g.FailureReasons) == 0 {
			fmt.Fprintf(w, "  No failures\n")
		}
		for i, r := range g.FailureReasons {
			if i == 5 {
				break
			}
			fmt.Fprintf(w, "  \033[1m%d.\033[0m %-44s %d\n", i+1, shorten(r.Label, 42), r.Count)
		}
		fmt.Fprintln(w)
	}

	// Top requested
	fmt.Fprintf(w, "\033[1;33m  Top 5 Requested Make/Model\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if len(s.TopRequestedMakeModels) == 0 {
		fmt.Fprintf(w, "  No chassis data\n")
	}
	for i, m := range s.TopRequestedMakeModels {
		if i == 5 {
			break
		}
		name := shorten(m.Make+" "+m.Model, 38)
		fmt.Fprintf(w, "  \033[1m%d.\033[0m %-40s %s (%d)\n",
			i+1, name, strings.Repeat("█", barLength(m.UniqueChassis, s.TopRequestedMakeModels[0].UniqueChassis)), m.UniqueChassis)
	}

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n\n", sep)
}

// barLength scales n against peak onto at most 12 blocks.
func barLength(n, peak int) int {
	if peak <= 0 || n <= 0 {
		return 0
	}
	if l := n * 12 / peak; l > 0 {
		return l
	}
	return 1
}

func shorten(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
