package services

import (
	"errors"
	"fmt"
	"time"

	"quote-insights/models"
	"quote-insights/utils"
)

// ErrNilRecords is returned when Calculate is handed a nil record list.
var ErrNilRecords = errors.New("stats: record list is nil")

// Limits caps the top-N tables.
type Limits struct {
	TopRequested         int
	TopCompRejected      int
	TopTPLRejectedModels int
}

// DefaultLimits are the table sizes used by the dashboard.
func DefaultLimits() Limits {
	return Limits{TopRequested: 20, TopCompRejected: 20, TopTPLRejectedModels: 10}
}

// StatisticsService aggregates normalized quotes into report statistics.
// It holds no state between calls.
type StatisticsService struct {
	logger *utils.Logger
	limits Limits
	// now anchors the manufacture-year buckets; tests pin it.
	now func() time.Time
}

// NewStatisticsService creates a StatisticsService. Non-positive limits fall
// back to the defaults.
func NewStatisticsService(logger *utils.Logger, limits Limits) *StatisticsService {
	def := DefaultLimits()
	if limits.TopRequested <= 0 {
		limits.TopRequested = def.TopRequested
	}
	if limits.TopCompRejected <= 0 {
		limits.TopCompRejected = def.TopCompRejected
	}
	if limits.TopTPLRejectedModels <= 0 {
		limits.TopTPLRejectedModels = def.TopTPLRejectedModels
	}
	return &StatisticsService{logger: logger, limits: limits, now: time.Now}
}

// Calculate computes every aggregate from records in one call. The result is
// fully determined by the records and their order.
func (s *StatisticsService) Calculate(records []*models.QuoteRecord) (*models.Statistics, error) {
	if records == nil {
		return nil, ErrNilRecords
	}

	all := make([]*models.QuoteRecord, 0, len(records))
	for _, r := range records {
		if r != nil {
			all = append(all, r)
		}
	}

	var tpl, comp []*models.QuoteRecord
	for _, r := range all {
		switch r.Group() {
		case models.GroupThirdParty:
			tpl = append(tpl, r)
		case models.GroupComprehensive:
			comp = append(comp, r)
		}
	}

	keys := requestKeys(all)
	currentYear := s.now().Year()

	st := &models.Statistics{
		TotalRecords:     len(all),
		UngroupedRecords: len(all) - len(tpl) - len(comp),

		ThirdParty:    groupStats(models.GroupThirdParty, tpl),
		Comprehensive: groupStats(models.GroupComprehensive, comp),

		UniqueRequests:     uniqueRequests(all, keys),
		TPLUniqueRequests:  uniqueRequests(tpl, keys),
		CompUniqueRequests: uniqueRequests(comp, keys),

		UniqueChassis:     uniqueChassis(all),
		TPLUniqueChassis:  uniqueChassis(tpl),
		CompUniqueChassis: uniqueChassis(comp),

		TPLEIDChassis: eidChassis(tpl),

		TPLBodyOutcomes:  outcomeBreakdown(tpl, (*models.QuoteRecord).BodyLabel),
		CompBodyOutcomes: outcomeBreakdown(comp, (*models.QuoteRecord).BodyLabel),
		TPLSpecOutcomes:  outcomeBreakdown(tpl, (*models.QuoteRecord).SpecLabel),
		CompSpecOutcomes: outcomeBreakdown(comp, (*models.QuoteRecord).SpecLabel),
		ChineseOutcomes:  outcomeBreakdown(all, (*models.QuoteRecord).ChineseLabel),
		ElectricOutcomes: outcomeBreakdown(all, (*models.QuoteRecord).FuelLabel),
		SegmentOutcomes:  outcomeBreakdown(all, (*models.QuoteRecord).SegmentLabel),

		TPLAgeRanges:         ageRangeStats(tpl),
		CompAgeRanges:        ageRangeStats(comp),
		TPLManufactureYears:  manufactureYearStats(tpl, currentYear),
		CompManufactureYears: manufactureYearStats(comp, currentYear),
		CompValueRanges:      valueRangeStats(comp),

		SalesByBodyType: salesByLabel(all, (*models.QuoteRecord).BodyLabel),
		SalesByAgeRange: salesByAgeRange(all),
		SalesByChinese:  salesByLabel(all, (*models.QuoteRecord).ChineseLabel),
		SalesByFuel:     salesByLabel(all, (*models.QuoteRecord).FuelLabel),

		TopRequestedMakeModels:    topMakeModels(all, s.limits.TopRequested),
		TopCompRejectedMakeModels: topMakeModels(failedOnly(comp), s.limits.TopCompRejected),
		TopTPLRejectedModels:      topRejectedModels(tpl, s.limits.TopTPLRejectedModels),

		PurposeCounts:  categoryCounts(all, (*models.QuoteRecord).PurposeLabel),
		BodyTypeCounts: categoryCounts(all, (*models.QuoteRecord).BodyLabel),
		SpecCounts:     categoryCounts(all, (*models.QuoteRecord).SpecLabel),

		ManufactureYearTrend: trendPoints(all, keys, (*models.QuoteRecord).ManufactureYearLabel),
		CustomerAgeTrend:     trendPoints(all, keys, (*models.QuoteRecord).AgeLabel),

		TPLErrorCounts:  errorCounts(tpl, false),
		CompErrorCounts: errorCounts(comp, true),

		RequestedRange: requestedRange(all),
	}

	st.Overall = models.OutcomeCounts{
		Total: st.ThirdParty.TotalQuotes + st.Comprehensive.TotalQuotes,
		Pass:  st.ThirdParty.PassCount + st.Comprehensive.PassCount,
		Fail:  st.ThirdParty.FailCount + st.Comprehensive.FailCount,
		Skip:  st.ThirdParty.SkipCount + st.Comprehensive.SkipCount,
	}

	s.logger.Info("[stats] Aggregated %d records (TPL %d, Comprehensive %d, other %d)",
		st.TotalRecords, len(tpl), len(comp), st.UngroupedRecords)
	s.logger.Debug("[stats] %d unique requests, %d unique chassis",
		st.UniqueRequests.Total, st.UniqueChassis.Total)
	return st, nil
}

// requestKeys assigns each record its deduplication key:
// EID+chassis, then chassis, then EID, then quote number. Records with none
// of these get a key of their own.
func requestKeys(records []*models.QuoteRecord) map[*models.QuoteRecord]string {
	keys := make(map[*models.QuoteRecord]string, len(records))
	for i, r := range records {
		keys[r] = requestKey(r, i)
	}
	return keys
}

func requestKey(r *models.QuoteRecord, idx int) string {
	switch {
	case r.HasEID() && r.HasChassis():
		return "eid+chassis:" + r.EID + "::" + r.Chassis
	case r.HasChassis():
		return "chassis:" + r.Chassis
	case r.HasEID():
		return "eid:" + r.EID
	case r.QuoteNumber != "":
		return "quote:" + r.QuoteNumber
	}
	return fmt.Sprintf("row:%d", idx)
}

func failedOnly(records []*models.QuoteRecord) []*models.QuoteRecord {
	var out []*models.QuoteRecord
	for _, r := range records {
		if r.IsFailure() {
			out = append(out, r)
		}
	}
	return out
}

func percentage(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
