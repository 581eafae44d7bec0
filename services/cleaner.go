package services

import (
	"strings"

	"quote-insights/models"
	"quote-insights/normalize"
	"quote-insights/utils"
)

// ElectricFuel is the FuelType value that marks an electric vehicle.
const ElectricFuel = "ELECTRIC POWER"

// Cleaner turns raw export rows into typed QuoteRecords.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean normalizes every row. Rows are never dropped; a row that carries no
// usable signal still becomes a Skipped record.
func (c *Cleaner) Clean(rows []models.RawRow) []*models.QuoteRecord {
	result := make([]*models.QuoteRecord, 0, len(rows))
	var noChassis, noType int

	for _, row := range rows {
		rec := c.FromValues(row)
		if !rec.HasChassis() {
			noChassis++
		}
		if rec.Group() == models.GroupNone {
			noType++
		}
		result = append(result, rec)
	}

	c.logger.Info("[cleaner] Normalized %d rows", len(result))
	c.logger.Debug("[cleaner] %d rows without chassis, %d rows outside TPL/Comprehensive", noChassis, noType)
	return result
}

// FromValues builds a QuoteRecord from one raw row. It never fails: anything
// unparsable degrades to an absent or zero value.
func (c *Cleaner) FromValues(row models.RawRow) *models.QuoteRecord {
	fields := trimFields(row.Fields())

	errorText, _ := lookupFields(fields, models.ColErrorText)
	quoteNumber, hasQuote := lookupFields(fields, models.ColQuoteNumber)
	status := fieldValue(fields, "Status")

	outcome := DetermineOutcome(status, errorText, quoteNumber)
	fields = setField(fields, "Status", outcome.Label())

	if i := fieldIndex(fields, "OverrideIsGccSpec"); i >= 0 {
		fields[i].Value = NormalizeOverrideSpec(fields[i].Value)
	}

	raw := models.NewRawRow(fields)
	rec := &models.QuoteRecord{
		Raw:           raw,
		InsuranceType: strings.TrimSpace(first(raw, models.ColInsuranceType)),
		Outcome:       outcome,
	}

	if hasQuote {
		rec.QuoteNumber = quoteNumber
	}
	if !isNull(errorText) {
		rec.ErrorText = errorText
	}
	rec.PolicyNumber = first(raw, models.ColPolicyNumber)
	if ch, ok := normalize.Chassis(first(raw, models.ColChassis)); ok {
		rec.Chassis = ch
	}
	rec.EID = lookupEID(raw)

	rec.ManufactureYear = optionalInt(first(raw, models.ColManufactureYear))
	rec.DriverAge = optionalInt(first(raw, models.ColAge))
	rec.EstimatedValue = normalize.Amount(first(raw, models.ColEstimatedValue))
	if p, ok := normalize.Premium(first(raw, models.ColPremium)); ok {
		rec.PolicyPremium.Decimal = p
		rec.PolicyPremium.Valid = true
	}

	rec.InsurancePurpose = category(raw, models.ColInsurancePurpose)
	rec.CompanyName = category(raw, models.ColCompany)
	rec.BodyCategory = category(raw, models.ColBodyCategory)
	rec.Make = category(raw, models.ColMake)
	rec.Model = category(raw, models.ColModel)
	rec.OverrideSpec = category(raw, models.ColOverrideSpec)
	rec.Spec = ClassifySpec(rec.OverrideSpec)

	if t, ok := normalize.ParseDate(first(raw, models.ColRequestedOn)); ok {
		rec.RequestedAt = t
	}

	rec.Chinese = normalize.Truthy(first(raw, models.ColIsChinese))
	rec.Electric = strings.EqualFold(first(raw, models.ColFuelType), ElectricFuel)

	return rec
}

func trimFields(in []models.Field) []models.Field {
	out := make([]models.Field, 0, len(in)+1)
	for _, f := range in {
		out = append(out, models.Field{
			Name:  strings.TrimSpace(f.Name),
			Value: strings.TrimSpace(f.Value),
		})
	}
	if fieldIndex(out, "Status") < 0 {
		out = append(out, models.Field{Name: "Status"})
	}
	return out
}

func fieldIndex(fields []models.Field, name string) int {
	for i := len(fields) - 1; i >= 0; i-- {
		if strings.EqualFold(fields[i].Name, name) {
			return i
		}
	}
	return -1
}

func fieldValue(fields []models.Field, name string) string {
	if i := fieldIndex(fields, name); i >= 0 {
		return fields[i].Value
	}
	return ""
}

func setField(fields []models.Field, name, value string) []models.Field {
	if i := fieldIndex(fields, name); i >= 0 {
		fields[i].Value = value
		return fields
	}
	return append(fields, models.Field{Name: name, Value: value})
}

// lookupFields returns the first aliased column holding a non-null value.
func lookupFields(fields []models.Field, aliases []string) (string, bool) {
	for _, alias := range aliases {
		if v := fieldValue(fields, alias); !isNull(v) {
			return v, true
		}
	}
	return "", false
}

// Lookup returns the first aliased column of row holding a non-null value.
func Lookup(row models.RawRow, aliases []string) (string, bool) {
	for _, alias := range aliases {
		if v, ok := row.Get(alias); ok && !isNull(v) {
			return strings.TrimSpace(v), true
		}
	}
	return "", false
}

func first(row models.RawRow, aliases []string) string {
	v, _ := Lookup(row, aliases)
	return v
}

func category(row models.RawRow, aliases []string) string {
	v, ok := normalize.Category(first(row, aliases))
	if !ok {
		return ""
	}
	return v
}

// lookupEID tries the known EID headers, then any header that looks like an
// EID or national id column.
func lookupEID(row models.RawRow) string {
	if v, ok := normalize.EID(first(row, models.ColEID)); ok {
		return v
	}
	for _, f := range row.Fields() {
		key := normalize.HeaderKey(f.Name)
		if !strings.Contains(key, "eid") && !strings.Contains(key, "nationalid") {
			continue
		}
		if v, ok := normalize.EID(f.Value); ok {
			return v
		}
	}
	return ""
}

func optionalInt(s string) *int {
	n, ok := normalize.Int(s)
	if !ok {
		return nil
	}
	return &n
}

func isNull(s string) bool { return normalize.IsNullLiteral(s) }
