package services

import (
	"sort"
	"time"

	"quote-insights/models"
)

type trendRequest struct {
	label  string
	failed bool
}

// trendPoints deduplicates records by request key, picks one label per
// request (the first non-Unknown one seen) and counts requests and failed
// requests per label.
func trendPoints(records []*models.QuoteRecord, keys map[*models.QuoteRecord]string, label labelFunc) []models.TrendPoint {
	requests := make(map[string]*trendRequest)
	var order []string
	for _, r := range records {
		k := keys[r]
		req, ok := requests[k]
		if !ok {
			req = &trendRequest{label: models.UnknownLabel}
			requests[k] = req
			order = append(order, k)
		}
		if l := label(r); req.label == models.UnknownLabel && l != "" && l != models.UnknownLabel {
			req.label = l
		}
		if r.IsFailure() {
			req.failed = true
		}
	}

	points := make(map[string]*models.TrendPoint)
	for _, k := range order {
		req := requests[k]
		p, ok := points[req.label]
		if !ok {
			p = &models.TrendPoint{Label: req.label}
			points[req.label] = p
		}
		p.Requests++
		if req.failed {
			p.Failed++
		}
	}

	out := make([]models.TrendPoint, 0, len(points))
	for _, p := range points {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		return numericLabelLess(out[i].Label, out[j].Label)
	})
	return out
}

func requestedRange(records []*models.QuoteRecord) models.DateRange {
	var from, to time.Time
	for _, r := range records {
		if r.RequestedAt.IsZero() {
			continue
		}
		if from.IsZero() || r.RequestedAt.Before(from) {
			from = r.RequestedAt
		}
		if to.IsZero() || r.RequestedAt.After(to) {
			to = r.RequestedAt
		}
	}
	return models.DateRange{From: from, To: to}
}
