package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// UnknownLabel is shown wherever a categorical value is absent.
const UnknownLabel = "Unknown"

// Outcome is the tri-state result of one quote attempt.
type Outcome int

const (
	OutcomeSkipped Outcome = iota
	OutcomeSuccess
	OutcomeFailure
)

// Label is the canonical display label written back into the Status column.
func (o Outcome) Label() string {
	switch o {
	case OutcomeSuccess:
		return "Success"
	case OutcomeFailure:
		return "Failed"
	default:
		return "Skipped"
	}
}

func (o Outcome) String() string { return o.Label() }

// Spec is the GCC specification flag.
type Spec int

const (
	SpecUnknown Spec = iota
	SpecGCC
	SpecNonGCC
)

// Spec labels as they appear in reports.
const (
	SpecLabelGCC    = "GCC"
	SpecLabelNonGCC = "None GCC"
)

func (s Spec) Label() string {
	switch s {
	case SpecGCC:
		return SpecLabelGCC
	case SpecNonGCC:
		return SpecLabelNonGCC
	default:
		return UnknownLabel
	}
}

// Group is the insurance-type partition a quote belongs to.
type Group int

const (
	GroupNone Group = iota
	GroupThirdParty
	GroupComprehensive
)

// Insurance type values that select a group (compared ignoring case).
const (
	InsuranceTypeThirdParty    = "Third Party"
	InsuranceTypeComprehensive = "Comprehensive"
)

func (g Group) Label() string {
	switch g {
	case GroupThirdParty:
		return "TPL"
	case GroupComprehensive:
		return "Comprehensive"
	default:
		return "Other"
	}
}

// QuoteRecord is one normalized insurance quote attempt. Records are built by
// the cleaner and treated as read-only afterwards.
type QuoteRecord struct {
	Raw RawRow

	InsuranceType    string
	Outcome          Outcome
	InsurancePurpose string
	CompanyName      string
	ErrorText        string
	QuoteNumber      string
	PolicyNumber     string
	ManufactureYear  *int
	EstimatedValue   decimal.Decimal
	Chassis          string
	PolicyPremium    decimal.NullDecimal
	EID              string
	BodyCategory     string
	Spec             Spec
	OverrideSpec     string
	Model            string
	Make             string
	DriverAge        *int
	RequestedAt      time.Time
	Chinese          bool
	Electric         bool
}

// Group derives the partition from the insurance type.
func (q *QuoteRecord) Group() Group {
	t := strings.TrimSpace(q.InsuranceType)
	switch {
	case strings.EqualFold(t, InsuranceTypeThirdParty):
		return GroupThirdParty
	case strings.EqualFold(t, InsuranceTypeComprehensive):
		return GroupComprehensive
	}
	return GroupNone
}

func (q *QuoteRecord) IsSuccess() bool { return q.Outcome == OutcomeSuccess }
func (q *QuoteRecord) IsFailure() bool { return q.Outcome == OutcomeFailure }
func (q *QuoteRecord) IsSkipped() bool { return q.Outcome == OutcomeSkipped }

// Processed is true for records that reached an answer (success or failure).
func (q *QuoteRecord) Processed() bool { return q.IsSuccess() || q.IsFailure() }

func (q *QuoteRecord) HasChassis() bool { return q.Chassis != "" }
func (q *QuoteRecord) HasEID() bool     { return q.EID != "" }
func (q *QuoteRecord) HasPolicy() bool  { return q.PolicyNumber != "" }

// FailureReason is the error text, or Unknown.
func (q *QuoteRecord) FailureReason() string { return labelOrUnknown(q.ErrorText) }

func (q *QuoteRecord) PurposeLabel() string { return labelOrUnknown(q.InsurancePurpose) }
func (q *QuoteRecord) CompanyLabel() string { return labelOrUnknown(q.CompanyName) }
func (q *QuoteRecord) BodyLabel() string    { return labelOrUnknown(q.BodyCategory) }
func (q *QuoteRecord) MakeLabel() string    { return labelOrUnknown(q.Make) }
func (q *QuoteRecord) ModelLabel() string   { return labelOrUnknown(q.Model) }
func (q *QuoteRecord) SpecLabel() string    { return q.Spec.Label() }

// ManufactureYearLabel is the year as text, or Unknown.
func (q *QuoteRecord) ManufactureYearLabel() string { return intLabel(q.ManufactureYear) }

// AgeLabel is the driver age as text, or Unknown.
func (q *QuoteRecord) AgeLabel() string { return intLabel(q.DriverAge) }

// ChineseLabel classifies the quote by the IsChinese column.
func (q *QuoteRecord) ChineseLabel() string {
	if q.Chinese {
		return "Chinese"
	}
	return "Non-Chinese"
}

// FuelLabel classifies the quote by fuel type.
func (q *QuoteRecord) FuelLabel() string {
	if q.Electric {
		return "Electric"
	}
	return "Non-Electric"
}

// SegmentLabel crosses the Chinese and electric classifications.
func (q *QuoteRecord) SegmentLabel() string {
	origin := "Non-Chinese"
	if q.Chinese {
		origin = "Chinese"
	}
	if q.Electric {
		return origin + " EV"
	}
	return origin + " Non-EV"
}

func labelOrUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return UnknownLabel
	}
	return s
}

func intLabel(v *int) string {
	if v == nil {
		return UnknownLabel
	}
	return strconv.Itoa(*v)
}
