package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// NoDataLabel is the placeholder row emitted when a whole dimension is empty.
const NoDataLabel = "No Data"

// LabelCount is a label with a count, used by every simple frequency table.
type LabelCount struct {
	Label string
	Count int
}

// OutcomeCounts tallies outcomes.
type OutcomeCounts struct {
	Total int
	Pass  int
	Fail  int
	Skip  int
}

// GroupStats summarizes one insurance group.
type GroupStats struct {
	Group             Group
	TotalQuotes       int
	PassCount         int
	FailCount         int
	SkipCount         int
	FailurePercentage float64
	// FailureReasons is sorted by count desc, then label.
	FailureReasons []LabelCount
	// FailuresByYear is sorted by year, Unknown last.
	FailuresByYear        []LabelCount
	BlockedEstimatedValue decimal.Decimal
}

// Counts returns the group's outcome tallies.
func (g GroupStats) Counts() OutcomeCounts {
	return OutcomeCounts{Total: g.TotalQuotes, Pass: g.PassCount, Fail: g.FailCount, Skip: g.SkipCount}
}

// UniqueSummary counts distinct keys, and distinct keys seen with at least
// one success / failure. A key may count toward both.
type UniqueSummary struct {
	Total   int
	Success int
	Failure int
}

// EIDChassisSummary measures EID+chassis duplication.
type EIDChassisSummary struct {
	Total     int
	Unique    int
	Duplicate int
}

// OutcomeBreakdown is success/failure counts for one classifier label.
type OutcomeBreakdown struct {
	Label   string
	Success int
	Failure int
}

func (b OutcomeBreakdown) Total() int { return b.Success + b.Failure }

// RangeStat is one fixed bucket of a bucketed dimension.
type RangeStat struct {
	Label        string
	Success      int
	Failure      int
	SuccessRatio float64
	FailureRatio float64
}

func (r RangeStat) Total() int { return r.Success + r.Failure }

// SalesConversion tracks requests, quoted and sold policies for a segment.
type SalesConversion struct {
	Label      string
	Requests   int
	Successful int
	Sold       int
	Premium    decimal.Decimal
	// QuoteRatio is Successful/Requests, ConversionRatio is Sold/Successful,
	// both as percentages.
	QuoteRatio      float64
	ConversionRatio float64
}

// MakeModelStat counts distinct chassis for a make/model pair.
type MakeModelStat struct {
	Make           string
	Model          string
	UniqueChassis  int
	SuccessChassis int
	FailureChassis int
}

// ModelStat counts distinct chassis for a model.
type ModelStat struct {
	Model         string
	UniqueChassis int
}

// TrendPoint is the number of distinct requests, and failed ones, for a label.
type TrendPoint struct {
	Label    string
	Requests int
	Failed   int
}

// DateRange spans the QuoteRequestedOn values seen.
type DateRange struct {
	From time.Time
	To   time.Time
}

func (d DateRange) Valid() bool { return !d.From.IsZero() && !d.To.IsZero() }

// Statistics is the full aggregation result handed to the report renderer.
type Statistics struct {
	TotalRecords     int
	UngroupedRecords int

	ThirdParty    GroupStats
	Comprehensive GroupStats
	// Overall is ThirdParty plus Comprehensive.
	Overall OutcomeCounts

	UniqueRequests     UniqueSummary
	TPLUniqueRequests  UniqueSummary
	CompUniqueRequests UniqueSummary

	UniqueChassis     UniqueSummary
	TPLUniqueChassis  UniqueSummary
	CompUniqueChassis UniqueSummary

	TPLEIDChassis EIDChassisSummary

	TPLBodyOutcomes  []OutcomeBreakdown
	CompBodyOutcomes []OutcomeBreakdown
	TPLSpecOutcomes  []OutcomeBreakdown
	CompSpecOutcomes []OutcomeBreakdown
	ChineseOutcomes  []OutcomeBreakdown
	ElectricOutcomes []OutcomeBreakdown
	SegmentOutcomes  []OutcomeBreakdown

	TPLAgeRanges         []RangeStat
	CompAgeRanges        []RangeStat
	TPLManufactureYears  []RangeStat
	CompManufactureYears []RangeStat
	CompValueRanges      []RangeStat

	SalesByBodyType []SalesConversion
	SalesByAgeRange []SalesConversion
	SalesByChinese  []SalesConversion
	SalesByFuel     []SalesConversion

	TopRequestedMakeModels    []MakeModelStat
	TopCompRejectedMakeModels []MakeModelStat
	TopTPLRejectedModels      []ModelStat

	PurposeCounts  []LabelCount
	BodyTypeCounts []LabelCount
	SpecCounts     []LabelCount

	ManufactureYearTrend []TrendPoint
	CustomerAgeTrend     []TrendPoint

	TPLErrorCounts  []LabelCount
	CompErrorCounts []LabelCount

	RequestedRange DateRange
}
