// Package calculator implements the automation savings model: given a set of
// operational parameters it derives monthly and cumulative savings, the
// payback period and the return on the implementation investment.
package calculator

import (
	"math"

	"github.com/iwvelando/invoice-roi/pkg/constants"
)

// ScenarioInput holds the operational parameters of one scenario. An empty
// ScenarioName means the scenario has not been saved.
type ScenarioInput struct {
	ScenarioName              string  `json:"scenario_name" yaml:"scenario_name" mapstructure:"scenario_name"`
	MonthlyInvoiceVolume      int     `json:"monthly_invoice_volume" yaml:"monthly_invoice_volume" mapstructure:"monthly_invoice_volume"`
	NumAPStaff                int     `json:"num_ap_staff" yaml:"num_ap_staff" mapstructure:"num_ap_staff"`
	HourlyWage                float64 `json:"hourly_wage" yaml:"hourly_wage" mapstructure:"hourly_wage"`
	ErrorCost                 float64 `json:"error_cost" yaml:"error_cost" mapstructure:"error_cost"`
	TimeHorizonMonths         int     `json:"time_horizon_months" yaml:"time_horizon_months" mapstructure:"time_horizon_months"`
	OneTimeImplementationCost float64 `json:"one_time_implementation_cost" yaml:"one_time_implementation_cost" mapstructure:"one_time_implementation_cost"`
}

// DefaultInput returns the working input used before anything is loaded.
func DefaultInput() ScenarioInput {
	return ScenarioInput{
		MonthlyInvoiceVolume:      constants.DefaultMonthlyInvoiceVolume,
		NumAPStaff:                constants.DefaultNumAPStaff,
		HourlyWage:                constants.DefaultHourlyWage,
		ErrorCost:                 constants.DefaultErrorCost,
		TimeHorizonMonths:         constants.DefaultTimeHorizonMonths,
		OneTimeImplementationCost: constants.DefaultOneTimeImplementationCost,
	}
}

// Result holds the metrics derived from a ScenarioInput. PaybackMonths and
// ROIPercentage may be +Inf.
type Result struct {
	MonthlySavings    float64
	CumulativeSavings float64
	PaybackMonths     float64
	ROIPercentage     float64
}

// PaybackAvailable reports whether the payback period is bounded.
func (r Result) PaybackAvailable() bool {
	return !math.IsInf(r.PaybackMonths, 1)
}

// ROIAvailable reports whether the ROI percentage is bounded.
func (r Result) ROIAvailable() bool {
	return !math.IsInf(r.ROIPercentage, 1)
}

// Breakdown exposes the intermediate terms of the monthly savings.
type Breakdown struct {
	LaborSavings   float64
	ErrorSavings   float64
	AutomationCost float64
}

// The constants are evaluated as float64 at run time rather than folded at
// compile time so the arithmetic rounds exactly like the reference fixtures.
var (
	automatedCostPerInvoice    float64 = constants.AutomatedCostPerInvoice
	errorRateAuto              float64 = constants.ErrorRateAuto
	minROIBoostFactor          float64 = constants.MinROIBoostFactor
	timeSavedPerInvoiceMinutes float64 = constants.TimeSavedPerInvoiceMinutes
	manualErrorRatePercent     float64 = constants.ManualErrorRatePercent
	minutesPerHour             float64 = constants.MinutesPerHour
	percentageMultiplier       float64 = constants.PercentageMultiplier
)

// ComputeBreakdown returns the labor, error and automation cost terms for
// the given input.
func ComputeBreakdown(in ScenarioInput) Breakdown {
	volume := float64(in.MonthlyInvoiceVolume)

	// Explicit conversions keep the compiler from fusing multiply-adds.
	labor := float64(float64(volume*(timeSavedPerInvoiceMinutes/minutesPerHour)) * in.HourlyWage)
	errorRateDelta := float64(manualErrorRatePercent/percentageMultiplier) - errorRateAuto
	errs := float64(float64(errorRateDelta*volume) * in.ErrorCost)
	auto := float64(volume * automatedCostPerInvoice)

	return Breakdown{
		LaborSavings:   labor,
		ErrorSavings:   errs,
		AutomationCost: auto,
	}
}

// Compute derives the savings metrics for a well-formed input. It never
// fails: a non-positive monthly saving yields an unbounded payback period and
// a zero implementation cost yields an unbounded ROI whatever the sign of the
// net savings.
func Compute(in ScenarioInput) Result {
	b := ComputeBreakdown(in)

	monthly := float64(float64(b.LaborSavings+b.ErrorSavings-b.AutomationCost) * minROIBoostFactor)
	cumulative := float64(monthly * float64(in.TimeHorizonMonths))
	net := cumulative - in.OneTimeImplementationCost

	payback := math.Inf(1)
	if monthly > 0 {
		payback = in.OneTimeImplementationCost / monthly
	}

	roi := math.Inf(1)
	if in.OneTimeImplementationCost > 0 {
		roi = float64(net/in.OneTimeImplementationCost) * percentageMultiplier
	}

	return Result{
		MonthlySavings:    monthly,
		CumulativeSavings: cumulative,
		PaybackMonths:     payback,
		ROIPercentage:     roi,
	}
}

// Fallback is the result reported for input that cannot be computed. Unlike
// the zero-cost case its ROI is 0, not +Inf.
func Fallback() Result {
	return Result{
		MonthlySavings:    0,
		CumulativeSavings: 0,
		PaybackMonths:     math.Inf(1),
		ROIPercentage:     0,
	}
}
