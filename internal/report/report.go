// Package report assembles the labeled metric strings handed to a document
// renderer and renders them as a PDF.
package report

import (
	"fmt"
	"math"

	"github.com/iwvelando/invoice-roi/internal/calculator"
	"github.com/iwvelando/invoice-roi/pkg/constants"
	"github.com/iwvelando/invoice-roi/pkg/format"
)

// Report entry labels, in output order.
const (
	LabelScenario          = "Scenario"
	LabelMonthlySavings    = "Monthly Savings"
	LabelPaybackPeriod     = "Payback Period"
	LabelCumulativeSavings = "Cumulative Savings"
)

// Entry is one labeled, pre-formatted line of the report.
type Entry struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// String renders the entry as "Label: Text".
func (e Entry) String() string {
	return e.Label + ": " + e.Text
}

// ROILabel returns the label of the ROI entry, which names the horizon.
func ROILabel(horizonMonths int) string {
	return fmt.Sprintf("Total ROI (%d months)", horizonMonths)
}

// ScenarioName returns the display name of the input, "Unsaved" when empty.
func ScenarioName(in calculator.ScenarioInput) string {
	if in.ScenarioName == "" {
		return constants.UnsavedScenarioName
	}
	return in.ScenarioName
}

// Format returns the report entries for an input and its result: scenario
// name, monthly savings, payback period, ROI over the horizon and cumulative
// savings. Unbounded values render as "N/A".
func Format(in calculator.ScenarioInput, result calculator.Result) []Entry {
	payback := constants.NotAvailable
	if !math.IsInf(result.PaybackMonths, 1) {
		payback = format.Months(result.PaybackMonths)
	}

	roi := constants.NotAvailable
	if !math.IsInf(result.ROIPercentage, 1) {
		roi = format.Percent(result.ROIPercentage)
	}

	return []Entry{
		{Label: LabelScenario, Text: ScenarioName(in)},
		{Label: LabelMonthlySavings, Text: format.Currency(result.MonthlySavings)},
		{Label: LabelPaybackPeriod, Text: payback},
		{Label: ROILabel(in.TimeHorizonMonths), Text: roi},
		{Label: LabelCumulativeSavings, Text: format.Currency(result.CumulativeSavings)},
	}
}

// FileName returns the download name of the report for the input.
func FileName(in calculator.ScenarioInput) string {
	return fmt.Sprintf("ROI_Report_%s.pdf", ScenarioName(in))
}
