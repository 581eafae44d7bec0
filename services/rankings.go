package services

import (
	"sort"
	"strings"

	"quote-insights/models"
)

type makeModelKey struct {
	make  string
	model string
}

// topMakeModels ranks make/model pairs by distinct chassis. Each chassis is
// flagged independently for success and failure, so one chassis can count
// toward both.
func topMakeModels(records []*models.QuoteRecord, n int) []models.MakeModelStat {
	pairs := make(map[makeModelKey]map[string]*outcomeFlags)
	for _, r := range records {
		if !r.HasChassis() {
			continue
		}
		k := makeModelKey{make: r.MakeLabel(), model: r.ModelLabel()}
		chassis, ok := pairs[k]
		if !ok {
			chassis = make(map[string]*outcomeFlags)
			pairs[k] = chassis
		}
		f, ok := chassis[r.Chassis]
		if !ok {
			f = &outcomeFlags{}
			chassis[r.Chassis] = f
		}
		f.observe(r)
	}

	out := make([]models.MakeModelStat, 0, len(pairs))
	for k, chassis := range pairs {
		sum := summarize(chassis)
		out = append(out, models.MakeModelStat{
			Make:           k.make,
			Model:          k.model,
			UniqueChassis:  sum.Total,
			SuccessChassis: sum.Success,
			FailureChassis: sum.Failure,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UniqueChassis != out[j].UniqueChassis {
			return out[i].UniqueChassis > out[j].UniqueChassis
		}
		if out[i].Make != out[j].Make {
			return out[i].Make < out[j].Make
		}
		return out[i].Model < out[j].Model
	})
	return truncate(out, n)
}

// topRejectedModels ranks models, regardless of make, by distinct chassis
// among failed records.
func topRejectedModels(records []*models.QuoteRecord, n int) []models.ModelStat {
	byModel := make(map[string]map[string]struct{})
	for _, r := range records {
		if !r.IsFailure() || !r.HasChassis() {
			continue
		}
		m := r.ModelLabel()
		set, ok := byModel[m]
		if !ok {
			set = make(map[string]struct{})
			byModel[m] = set
		}
		set[r.Chassis] = struct{}{}
	}

	out := make([]models.ModelStat, 0, len(byModel))
	for m, set := range byModel {
		out = append(out, models.ModelStat{Model: m, UniqueChassis: len(set)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UniqueChassis != out[j].UniqueChassis {
			return out[i].UniqueChassis > out[j].UniqueChassis
		}
		return out[i].Model < out[j].Model
	})
	return truncate(out, n)
}

// categoryCounts counts distinct chassis per label across every outcome.
func categoryCounts(records []*models.QuoteRecord, label labelFunc) []models.LabelCount {
	sets := make(map[string]map[string]struct{})
	for _, r := range records {
		if !r.HasChassis() {
			continue
		}
		l := strings.TrimSpace(label(r))
		if l == "" {
			l = models.UnknownLabel
		}
		set, ok := sets[l]
		if !ok {
			set = make(map[string]struct{})
			sets[l] = set
		}
		set[r.Chassis] = struct{}{}
	}

	counts := make(map[string]int, len(sets))
	for l, set := range sets {
		counts[l] = len(set)
	}
	out := sortedByCount(counts)
	if len(out) == 0 {
		return []models.LabelCount{{Label: models.NoDataLabel}}
	}
	return out
}

// errorCounts tallies the raw error text of failed records. Only text that is
// actually present is counted; dropNullText additionally drops the literal
// "null", which only the Comprehensive table does.
func errorCounts(records []*models.QuoteRecord, dropNullText bool) []models.LabelCount {
	counts := make(map[string]int)
	for _, r := range records {
		if !r.IsFailure() {
			continue
		}
		text := rawErrorText(r)
		if text == "" {
			continue
		}
		if dropNullText && strings.EqualFold(text, "null") {
			continue
		}
		counts[text]++
	}
	return sortedByCount(counts)
}

// rawErrorText is the error column as exported, "null" included.
func rawErrorText(r *models.QuoteRecord) string {
	for _, alias := range models.ColErrorText {
		if v, ok := r.Raw.Get(alias); ok {
			if t := strings.TrimSpace(v); t != "" {
				return t
			}
		}
	}
	return ""
}

func truncate[T any](rows []T, n int) []T {
	if n >= 0 && len(rows) > n {
		return rows[:n]
	}
	return rows
}
