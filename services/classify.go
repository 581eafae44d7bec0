package services

import (
	"strings"

	"quote-insights/models"
)

var (
	successLabels = setOf("success", "successful", "pass", "passed", "approved", "complete", "completed", "done")
	failureLabels = setOf("fail", "failed", "failure", "error", "declined", "rejected", "denied")
	skipLabels    = setOf("skip", "skipped", "pending", "not processed", "incomplete", "cancelled", "canceled", "void", "abandoned")

	successPrefixes = []string{"success", "pass"}
	failurePrefixes = []string{"fail", "error", "declin", "reject"}
	skipPrefixes    = []string{"skip", "pending", "cancel", "void"}
)

// ClassifyStatus maps free status text onto an outcome. ok is false when the
// text is not a recognized label.
func ClassifyStatus(status string) (models.Outcome, bool) {
	s := strings.ToLower(strings.TrimSpace(status))
	if s == "" {
		return models.OutcomeSkipped, false
	}
	switch {
	case matches(s, successLabels, successPrefixes):
		return models.OutcomeSuccess, true
	case matches(s, failureLabels, failurePrefixes):
		return models.OutcomeFailure, true
	case matches(s, skipLabels, skipPrefixes):
		return models.OutcomeSkipped, true
	}
	return models.OutcomeSkipped, false
}

// DetermineOutcome resolves the outcome of a row: a recognized status label
// wins, then error text implies failure, then a quotation number implies
// success, otherwise the row was skipped.
func DetermineOutcome(status, errorText, quoteNumber string) models.Outcome {
	if o, ok := ClassifyStatus(status); ok {
		return o
	}
	if !isNull(errorText) {
		return models.OutcomeFailure
	}
	if !isNull(quoteNumber) {
		return models.OutcomeSuccess
	}
	return models.OutcomeSkipped
}

// NormalizeOverrideSpec rewrites the 1/0 flag into its label and leaves
// anything else alone.
func NormalizeOverrideSpec(v string) string {
	switch strings.TrimSpace(v) {
	case "1":
		return models.SpecLabelGCC
	case "0":
		return models.SpecLabelNonGCC
	}
	return v
}

// ClassifySpec reads a normalized OverrideIsGccSpec value. Only the two
// labels NormalizeOverrideSpec produces are recognized.
func ClassifySpec(v string) models.Spec {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case strings.ToLower(models.SpecLabelGCC):
		return models.SpecGCC
	case strings.ToLower(models.SpecLabelNonGCC):
		return models.SpecNonGCC
	}
	return models.SpecUnknown
}

func matches(s string, labels map[string]struct{}, prefixes []string) bool {
	if _, ok := labels[s]; ok {
		return true
	}
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func setOf(values ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(values))
	for _, v := range values {
		m[v] = struct{}{}
	}
	return m
}
