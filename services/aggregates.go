package services

import (
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"quote-insights/models"
)

type labelFunc func(*models.QuoteRecord) string

func groupStats(group models.Group, records []*models.QuoteRecord) models.GroupStats {
	gs := models.GroupStats{Group: group, TotalQuotes: len(records)}

	reasons := make(map[string]int)
	years := make(map[string]int)
	blocked := decimal.Zero

	for _, r := range records {
		switch r.Outcome {
		case models.OutcomeSuccess:
			gs.PassCount++
		case models.OutcomeFailure:
			gs.FailCount++
			reasons[r.FailureReason()]++
			years[r.ManufactureYearLabel()]++
			blocked = blocked.Add(r.EstimatedValue)
		default:
			gs.SkipCount++
		}
	}

	gs.FailurePercentage = percentage(gs.FailCount, gs.PassCount+gs.FailCount)
	gs.FailureReasons = sortedByCount(reasons)
	gs.FailuresByYear = sortedByNumericLabel(years)
	gs.BlockedEstimatedValue = blocked.Round(2)
	return gs
}

type outcomeFlags struct {
	success bool
	failure bool
}

func (f *outcomeFlags) observe(r *models.QuoteRecord) {
	switch r.Outcome {
	case models.OutcomeSuccess:
		f.success = true
	case models.OutcomeFailure:
		f.failure = true
	}
}

func summarize(flags map[string]*outcomeFlags) models.UniqueSummary {
	sum := models.UniqueSummary{Total: len(flags)}
	for _, f := range flags {
		if f.success {
			sum.Success++
		}
		if f.failure {
			sum.Failure++
		}
	}
	return sum
}

// uniqueRequests counts distinct request keys. A key counts as a success if
// any of its rows succeeded and as a failure if any of its rows failed.
func uniqueRequests(records []*models.QuoteRecord, keys map[*models.QuoteRecord]string) models.UniqueSummary {
	flags := make(map[string]*outcomeFlags)
	for _, r := range records {
		k := keys[r]
		f, ok := flags[k]
		if !ok {
			f = &outcomeFlags{}
			flags[k] = f
		}
		f.observe(r)
	}
	return summarize(flags)
}

func uniqueChassis(records []*models.QuoteRecord) models.UniqueSummary {
	flags := make(map[string]*outcomeFlags)
	for _, r := range records {
		if !r.HasChassis() {
			continue
		}
		f, ok := flags[r.Chassis]
		if !ok {
			f = &outcomeFlags{}
			flags[r.Chassis] = f
		}
		f.observe(r)
	}
	return summarize(flags)
}

func eidChassis(records []*models.QuoteRecord) models.EIDChassisSummary {
	var sum models.EIDChassisSummary
	pairs := make(map[string]struct{})
	for _, r := range records {
		if !r.HasEID() || !r.HasChassis() {
			continue
		}
		sum.Total++
		pairs[r.EID+"::"+r.Chassis] = struct{}{}
	}
	sum.Unique = len(pairs)
	if d := sum.Total - sum.Unique; d > 0 {
		sum.Duplicate = d
	}
	return sum
}

// outcomeBreakdown counts successes and failures per label, largest first.
func outcomeBreakdown(records []*models.QuoteRecord, label labelFunc) []models.OutcomeBreakdown {
	acc := make(map[string]*models.OutcomeBreakdown)
	for _, r := range records {
		if !r.Processed() {
			continue
		}
		l := strings.TrimSpace(label(r))
		if l == "" {
			l = models.UnknownLabel
		}
		b, ok := acc[l]
		if !ok {
			b = &models.OutcomeBreakdown{Label: l}
			acc[l] = b
		}
		if r.IsSuccess() {
			b.Success++
		} else {
			b.Failure++
		}
	}

	out := make([]models.OutcomeBreakdown, 0, len(acc))
	for _, b := range acc {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total() != out[j].Total() {
			return out[i].Total() > out[j].Total()
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// sortedByCount orders a frequency map by count desc, then label asc.
func sortedByCount(counts map[string]int) []models.LabelCount {
	out := toLabelCounts(counts)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// sortedByNumericLabel orders a frequency map by numeric label, with
// non-numeric labels such as Unknown last.
func sortedByNumericLabel(counts map[string]int) []models.LabelCount {
	out := toLabelCounts(counts)
	sort.Slice(out, func(i, j int) bool {
		return numericLabelLess(out[i].Label, out[j].Label)
	})
	return out
}

func toLabelCounts(counts map[string]int) []models.LabelCount {
	out := make([]models.LabelCount, 0, len(counts))
	for l, c := range counts {
		out = append(out, models.LabelCount{Label: l, Count: c})
	}
	return out
}

func numericLabelLess(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		if na != nb {
			return na < nb
		}
		return a < b
	case errA == nil:
		return true
	case errB == nil:
		return false
	}
	return a < b
}
