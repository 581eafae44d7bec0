package services

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"quote-insights/models"
)

type salesAcc struct {
	requests   int
	successful int
	sold       int
	premium    decimal.Decimal
}

// add books one record. A policy number means the quote was sold; when such
// a record had no recognized outcome it still counts as a successful request.
func (a *salesAcc) add(r *models.QuoteRecord) {
	switch r.Outcome {
	case models.OutcomeSuccess:
		a.requests++
		a.successful++
	case models.OutcomeFailure:
		a.requests++
	}
	if r.HasPolicy() {
		a.sold++
		if r.PolicyPremium.Valid {
			a.premium = a.premium.Add(r.PolicyPremium.Decimal)
		}
		if !r.Processed() {
			a.requests++
			a.successful++
		}
	}
}

func contributesToSales(r *models.QuoteRecord) bool {
	return r.Processed() || r.HasPolicy()
}

func (a *salesAcc) result(label string) models.SalesConversion {
	return models.SalesConversion{
		Label:           label,
		Requests:        a.requests,
		Successful:      a.successful,
		Sold:            a.sold,
		Premium:         a.premium.Round(2),
		QuoteRatio:      percentage(a.successful, a.requests),
		ConversionRatio: percentage(a.sold, a.successful),
	}
}

// salesByLabel builds conversion rows per classifier label, busiest first.
func salesByLabel(records []*models.QuoteRecord, label labelFunc) []models.SalesConversion {
	accs := accumulateSales(records, func(r *models.QuoteRecord) string {
		l := strings.TrimSpace(label(r))
		if l == "" {
			return models.UnknownLabel
		}
		return l
	})

	out := make([]models.SalesConversion, 0, len(accs))
	for l, a := range accs {
		out = append(out, a.result(l))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Requests != out[j].Requests {
			return out[i].Requests > out[j].Requests
		}
		return out[i].Label < out[j].Label
	})
	return orNoData(out)
}

// salesByAgeRange keeps the age buckets in their natural order and drops the
// empty ones.
func salesByAgeRange(records []*models.QuoteRecord) []models.SalesConversion {
	accs := accumulateSales(records, func(r *models.QuoteRecord) string {
		return AgeRange(r.DriverAge)
	})

	var out []models.SalesConversion
	for _, l := range AgeRangeLabels() {
		if a, ok := accs[l]; ok {
			out = append(out, a.result(l))
		}
	}
	return orNoData(out)
}

func accumulateSales(records []*models.QuoteRecord, label labelFunc) map[string]*salesAcc {
	accs := make(map[string]*salesAcc)
	for _, r := range records {
		if !contributesToSales(r) {
			continue
		}
		l := label(r)
		a, ok := accs[l]
		if !ok {
			a = &salesAcc{premium: decimal.Zero}
			accs[l] = a
		}
		a.add(r)
	}
	return accs
}

func orNoData(rows []models.SalesConversion) []models.SalesConversion {
	if len(rows) == 0 {
		return []models.SalesConversion{{Label: models.NoDataLabel, Premium: decimal.Zero}}
	}
	return rows
}
