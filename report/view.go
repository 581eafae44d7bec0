package report

import (
	"quote-insights/models"
)

// dashboard is the template's view of Data: headline figures, prebuilt
// charts and the record rows.
type dashboard struct {
	Title       string
	RunID       string
	Source      string
	GeneratedAt string
	From        string
	To          string

	Stats *models.Statistics

	Cards  []card
	Groups []groupView

	Unique []uniqueRow

	OutcomeCharts  []chart
	RangeCharts    []chart
	CategoryCharts []chart
	TrendCharts    []chart

	Sales []salesTable

	Records      []recordRow
	RecordsShown int
	RecordsTotal int
	ShowRecords  bool
}

type card struct {
	Label string
	Value string
	Note  string
	Class string
}

type groupView struct {
	Name     string
	Stats    models.GroupStats
	Failure  string
	Blocked  string
	Reasons  []models.LabelCount
	ByYear   []models.LabelCount
	Errors   []models.LabelCount
	Requests models.UniqueSummary
	Chassis  models.UniqueSummary
}

type uniqueRow struct {
	Scope    string
	Requests models.UniqueSummary
	Chassis  models.UniqueSummary
}

type salesTable struct {
	Title string
	Rows  []salesRow
}

type salesRow struct {
	Label      string
	Requests   string
	Successful string
	Sold       string
	Premium    string
	QuoteRatio string
	Conversion string
}

type recordRow struct {
	RequestedAt string
	Type        string
	Outcome     string
	OutcomeCSS  string
	Company     string
	Make        string
	Model       string
	Year        string
	Body        string
	Chassis     string
	Premium     string
	Error       string
}

func buildDashboard(d Data) dashboard {
	s := d.Stats
	v := dashboard{
		Title:       d.Title,
		RunID:       d.RunID,
		Source:      d.Source,
		GeneratedAt: formatDateTime(d.GeneratedAt),
		From:        formatDate(s.RequestedRange.From),
		To:          formatDate(s.RequestedRange.To),
		Stats:       s,
	}

	v.Cards = []card{
		{Label: "Records", Value: formatInt(s.TotalRecords), Note: formatInt(s.UngroupedRecords) + " ungrouped"},
		{Label: "Quotes", Value: formatInt(s.Overall.Total), Note: "TPL + Comprehensive"},
		{Label: "Successful", Value: formatInt(s.Overall.Pass), Class: "pass"},
		{Label: "Failed", Value: formatInt(s.Overall.Fail), Class: "fail"},
		{Label: "Skipped", Value: formatInt(s.Overall.Skip)},
		{Label: "Unique requests", Value: formatInt(s.UniqueRequests.Total)},
		{Label: "Unique chassis", Value: formatInt(s.UniqueChassis.Total)},
	}

	v.Groups = []groupView{
		newGroupView("Third Party (TPL)", s.ThirdParty, s.TPLErrorCounts, s.TPLUniqueRequests, s.TPLUniqueChassis),
		newGroupView("Comprehensive", s.Comprehensive, s.CompErrorCounts, s.CompUniqueRequests, s.CompUniqueChassis),
	}

	v.Unique = []uniqueRow{
		{Scope: "Overall", Requests: s.UniqueRequests, Chassis: s.UniqueChassis},
		{Scope: "TPL", Requests: s.TPLUniqueRequests, Chassis: s.TPLUniqueChassis},
		{Scope: "Comprehensive", Requests: s.CompUniqueRequests, Chassis: s.CompUniqueChassis},
	}

	v.OutcomeCharts = nonEmpty(
		outcomeChart("TPL by body category", s.TPLBodyOutcomes),
		outcomeChart("Comprehensive by body category", s.CompBodyOutcomes),
		outcomeChart("TPL by GCC spec", s.TPLSpecOutcomes),
		outcomeChart("Comprehensive by GCC spec", s.CompSpecOutcomes),
		outcomeChart("Chinese vs non-Chinese", s.ChineseOutcomes),
		outcomeChart("Electric vs non-electric", s.ElectricOutcomes),
		outcomeChart("Segment", s.SegmentOutcomes),
	)
	v.RangeCharts = nonEmpty(
		rangeChart("TPL by driver age", s.TPLAgeRanges),
		rangeChart("Comprehensive by driver age", s.CompAgeRanges),
		rangeChart("TPL by manufacture year", s.TPLManufactureYears),
		rangeChart("Comprehensive by manufacture year", s.CompManufactureYears),
		rangeChart("Comprehensive by estimated value", s.CompValueRanges),
	)
	v.CategoryCharts = nonEmpty(
		countChart("Insurance purpose", s.PurposeCounts),
		countChart("Body type", s.BodyTypeCounts),
		countChart("GCC spec", s.SpecCounts),
	)
	v.TrendCharts = nonEmpty(
		trendChart("Requests by manufacture year", s.ManufactureYearTrend),
		trendChart("Requests by customer age", s.CustomerAgeTrend),
	)

	v.Sales = []salesTable{
		newSalesTable("Sales by body type", s.SalesByBodyType),
		newSalesTable("Sales by age range", s.SalesByAgeRange),
		newSalesTable("Sales by origin", s.SalesByChinese),
		newSalesTable("Sales by fuel type", s.SalesByFuel),
	}

	v.RecordsTotal = len(d.Records)
	if d.MaxRecordRows > 0 {
		v.ShowRecords = true
		limit := d.MaxRecordRows
		if limit > len(d.Records) {
			limit = len(d.Records)
		}
		v.Records = make([]recordRow, 0, limit)
		for _, r := range d.Records[:limit] {
			v.Records = append(v.Records, newRecordRow(r))
		}
		v.RecordsShown = limit
	}
	return v
}

func newGroupView(name string, g models.GroupStats, errs []models.LabelCount, req, chassis models.UniqueSummary) groupView {
	return groupView{
		Name:     name,
		Stats:    g,
		Failure:  formatPercent(g.FailurePercentage),
		Blocked:  formatMoney(g.BlockedEstimatedValue),
		Reasons:  headOf(g.FailureReasons, 10),
		ByYear:   g.FailuresByYear,
		Errors:   headOf(errs, 10),
		Requests: req,
		Chassis:  chassis,
	}
}

func newSalesTable(title string, items []models.SalesConversion) salesTable {
	t := salesTable{Title: title, Rows: make([]salesRow, 0, len(items))}
	for _, it := range items {
		t.Rows = append(t.Rows, salesRow{
			Label:      it.Label,
			Requests:   formatInt(it.Requests),
			Successful: formatInt(it.Successful),
			Sold:       formatInt(it.Sold),
			Premium:    formatMoney(it.Premium),
			QuoteRatio: formatPercent(it.QuoteRatio),
			Conversion: formatPercent(it.ConversionRatio),
		})
	}
	return t
}

func newRecordRow(r *models.QuoteRecord) recordRow {
	row := recordRow{
		RequestedAt: formatDateTime(r.RequestedAt),
		Type:        r.InsuranceType,
		Outcome:     r.Outcome.Label(),
		Company:     r.CompanyName,
		Make:        r.Make,
		Model:       r.Model,
		Year:        r.ManufactureYearLabel(),
		Body:        r.BodyCategory,
		Chassis:     r.Chassis,
		Error:       r.ErrorText,
	}
	switch {
	case r.IsSuccess():
		row.OutcomeCSS = "pass"
	case r.IsFailure():
		row.OutcomeCSS = "fail"
	}
	if r.PolicyPremium.Valid {
		row.Premium = formatMoney(r.PolicyPremium.Decimal)
	}
	return row
}

func nonEmpty(charts ...chart) []chart {
	out := charts[:0]
	for _, c := range charts {
		if !c.Empty() {
			out = append(out, c)
		}
	}
	return out
}

func headOf(items []models.LabelCount, n int) []models.LabelCount {
	if len(items) > n {
		return items[:n]
	}
	return items
}
