package services

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"quote-insights/models"
)

// OtherBucket collects values that fall outside every fixed range.
const OtherBucket = "Other/Unknown"

// BeforeYear2000 is the catch-all manufacture-year bucket for old vehicles.
const BeforeYear2000 = "<2000"

type ageBand struct{ lo, hi int }

var ageBands = []ageBand{
	{18, 24}, {25, 29}, {30, 34}, {35, 39}, {40, 44},
	{45, 49}, {50, 54}, {55, 59}, {60, 64}, {65, 70},
}

// valueBounds delimit the estimated-value bands: 5K-50K then 50K steps up
// to 500K. The top bound is inclusive.
var valueBounds = []int64{5000, 50000, 100000, 150000, 200000, 250000, 300000, 350000, 400000, 450000, 500000}

// AgeRangeLabels lists the age buckets in display order.
func AgeRangeLabels() []string {
	labels := make([]string, 0, len(ageBands)+1)
	for _, b := range ageBands {
		labels = append(labels, fmt.Sprintf("%d-%d", b.lo, b.hi))
	}
	return append(labels, OtherBucket)
}

// AgeRange maps a driver age to its bucket label.
func AgeRange(age *int) string {
	if age == nil {
		return OtherBucket
	}
	for _, b := range ageBands {
		if *age >= b.lo && *age <= b.hi {
			return fmt.Sprintf("%d-%d", b.lo, b.hi)
		}
	}
	return OtherBucket
}

// ValueRangeLabels lists the estimated-value buckets in display order.
func ValueRangeLabels() []string {
	labels := make([]string, 0, len(valueBounds))
	for i := 0; i+1 < len(valueBounds); i++ {
		labels = append(labels, kLabel(valueBounds[i])+"-"+kLabel(valueBounds[i+1]))
	}
	return append(labels, OtherBucket)
}

// ValueRange maps an estimated value to its bucket label.
func ValueRange(v decimal.Decimal) string {
	last := len(valueBounds) - 1
	for i := 0; i < last; i++ {
		lo := decimal.NewFromInt(valueBounds[i])
		hi := decimal.NewFromInt(valueBounds[i+1])
		if v.LessThan(lo) {
			break
		}
		if v.LessThan(hi) || (i+1 == last && v.Equal(hi)) {
			return kLabel(valueBounds[i]) + "-" + kLabel(valueBounds[i+1])
		}
	}
	return OtherBucket
}

func kLabel(v int64) string {
	return strconv.FormatInt(v/1000, 10) + "K"
}

// ManufactureYearBucket maps a year to "<2000", the year itself, or Unknown.
func ManufactureYearBucket(year *int) string {
	if year == nil {
		return models.UnknownLabel
	}
	if *year < 2000 {
		return BeforeYear2000
	}
	return strconv.Itoa(*year)
}

// ManufactureYearLabels lists the fixed year buckets: <2000, 2000 through
// currentYear+1, Unknown.
func ManufactureYearLabels(currentYear int) []string {
	labels := []string{BeforeYear2000}
	for y := 2000; y <= currentYear+1; y++ {
		labels = append(labels, strconv.Itoa(y))
	}
	return append(labels, models.UnknownLabel)
}

func ageRangeStats(records []*models.QuoteRecord) []models.RangeStat {
	return rangeStats(records, AgeRangeLabels(), func(r *models.QuoteRecord) string {
		return AgeRange(r.DriverAge)
	})
}

func valueRangeStats(records []*models.QuoteRecord) []models.RangeStat {
	return rangeStats(records, ValueRangeLabels(), func(r *models.QuoteRecord) string {
		return ValueRange(r.EstimatedValue)
	})
}

// manufactureYearStats uses the fixed year buckets, inserting a bucket for
// every later year actually seen just before Unknown.
func manufactureYearStats(records []*models.QuoteRecord, currentYear int) []models.RangeStat {
	fixed := ManufactureYearLabels(currentYear)
	var extra []int
	seen := make(map[int]bool)
	for _, r := range records {
		if r.Processed() && r.ManufactureYear != nil && *r.ManufactureYear > currentYear+1 && !seen[*r.ManufactureYear] {
			seen[*r.ManufactureYear] = true
			extra = append(extra, *r.ManufactureYear)
		}
	}
	sort.Ints(extra)

	labels := make([]string, 0, len(fixed)+len(extra))
	labels = append(labels, fixed[:len(fixed)-1]...)
	for _, y := range extra {
		labels = append(labels, strconv.Itoa(y))
	}
	labels = append(labels, models.UnknownLabel)

	return rangeStats(records, labels, func(r *models.QuoteRecord) string {
		return ManufactureYearBucket(r.ManufactureYear)
	})
}

// rangeStats fills every bucket in labels, including empty ones, from the
// processed records.
func rangeStats(records []*models.QuoteRecord, labels []string, bucket labelFunc) []models.RangeStat {
	index := make(map[string]int, len(labels))
	out := make([]models.RangeStat, len(labels))
	for i, l := range labels {
		index[l] = i
		out[i].Label = l
	}

	for _, r := range records {
		if !r.Processed() {
			continue
		}
		i, ok := index[bucket(r)]
		if !ok {
			continue
		}
		if r.IsSuccess() {
			out[i].Success++
		} else {
			out[i].Failure++
		}
	}

	for i := range out {
		out[i].SuccessRatio = percentage(out[i].Success, out[i].Total())
		out[i].FailureRatio = percentage(out[i].Failure, out[i].Total())
	}
	return out
}
