package calculator

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is returned when a field map is missing a required field or
// carries a value of the wrong kind.
var ErrInvalidInput = errors.New("invalid input")

// Field names of the engine input contract. They match the persisted columns.
const (
	FieldScenarioName              = "scenario_name"
	FieldMonthlyInvoiceVolume      = "monthly_invoice_volume"
	FieldNumAPStaff                = "num_ap_staff"
	FieldHourlyWage                = "hourly_wage"
	FieldErrorCost                 = "error_cost"
	FieldTimeHorizonMonths         = "time_horizon_months"
	FieldOneTimeImplementationCost = "one_time_implementation_cost"
)

// ParseInput decodes a field map into a ScenarioInput. All seven fields must
// be present; numeric fields must be finite numbers and integer fields must
// hold integral values.
func ParseInput(fields map[string]interface{}) (ScenarioInput, error) {
	var in ScenarioInput
	var err error

	rawName, ok := fields[FieldScenarioName]
	if !ok || rawName == nil {
		return ScenarioInput{}, missingField(FieldScenarioName)
	}
	name, ok := rawName.(string)
	if !ok {
		return ScenarioInput{}, fmt.Errorf("%w: field %q must be text, got %T", ErrInvalidInput, FieldScenarioName, rawName)
	}
	in.ScenarioName = name

	if in.MonthlyInvoiceVolume, err = intField(fields, FieldMonthlyInvoiceVolume); err != nil {
		return ScenarioInput{}, err
	}
	if in.NumAPStaff, err = intField(fields, FieldNumAPStaff); err != nil {
		return ScenarioInput{}, err
	}
	if in.HourlyWage, err = floatField(fields, FieldHourlyWage); err != nil {
		return ScenarioInput{}, err
	}
	if in.ErrorCost, err = floatField(fields, FieldErrorCost); err != nil {
		return ScenarioInput{}, err
	}
	if in.TimeHorizonMonths, err = intField(fields, FieldTimeHorizonMonths); err != nil {
		return ScenarioInput{}, err
	}
	if in.OneTimeImplementationCost, err = floatField(fields, FieldOneTimeImplementationCost); err != nil {
		return ScenarioInput{}, err
	}

	return in, nil
}

// ComputeFields parses a field map and computes its result. Invalid input is
// reported as an error wrapping ErrInvalidInput.
func ComputeFields(fields map[string]interface{}) (Result, error) {
	in, err := ParseInput(fields)
	if err != nil {
		return Result{}, err
	}
	return Compute(in), nil
}

// ComputeOrFallback computes a field map, substituting Fallback for invalid
// input. The returned bool is false when the fallback was used.
func ComputeOrFallback(fields map[string]interface{}) (Result, bool) {
	result, err := ComputeFields(fields)
	if err != nil {
		return Fallback(), false
	}
	return result, true
}

// Fields returns the input as a field map keyed by the contract field names.
func (in ScenarioInput) Fields() map[string]interface{} {
	return map[string]interface{}{
		FieldScenarioName:              in.ScenarioName,
		FieldMonthlyInvoiceVolume:      in.MonthlyInvoiceVolume,
		FieldNumAPStaff:                in.NumAPStaff,
		FieldHourlyWage:                in.HourlyWage,
		FieldErrorCost:                 in.ErrorCost,
		FieldTimeHorizonMonths:         in.TimeHorizonMonths,
		FieldOneTimeImplementationCost: in.OneTimeImplementationCost,
	}
}

// BoundWarnings lists fields outside the ranges the input form allows. The
// engine computes such input regardless.
func (in ScenarioInput) BoundWarnings() []string {
	var warnings []string
	if in.MonthlyInvoiceVolume < 0 {
		warnings = append(warnings, fmt.Sprintf("%s is negative (%d)", FieldMonthlyInvoiceVolume, in.MonthlyInvoiceVolume))
	}
	if in.NumAPStaff < 0 {
		warnings = append(warnings, fmt.Sprintf("%s is negative (%d)", FieldNumAPStaff, in.NumAPStaff))
	}
	if in.HourlyWage < 0 {
		warnings = append(warnings, fmt.Sprintf("%s is negative (%.2f)", FieldHourlyWage, in.HourlyWage))
	}
	if in.ErrorCost < 0 {
		warnings = append(warnings, fmt.Sprintf("%s is negative (%.2f)", FieldErrorCost, in.ErrorCost))
	}
	if in.TimeHorizonMonths < 1 {
		warnings = append(warnings, fmt.Sprintf("%s is below 1 (%d)", FieldTimeHorizonMonths, in.TimeHorizonMonths))
	}
	if in.OneTimeImplementationCost < 0 {
		warnings = append(warnings, fmt.Sprintf("%s is negative (%.2f)", FieldOneTimeImplementationCost, in.OneTimeImplementationCost))
	}
	return warnings
}

func missingField(name string) error {
	return fmt.Errorf("%w: missing field %q", ErrInvalidInput, name)
}

func floatField(fields map[string]interface{}, name string) (float64, error) {
	raw, ok := fields[name]
	if !ok || raw == nil {
		return 0, missingField(name)
	}
	value, ok := toFloat(raw)
	if !ok {
		return 0, fmt.Errorf("%w: field %q must be numeric, got %T", ErrInvalidInput, name, raw)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%w: field %q must be finite", ErrInvalidInput, name)
	}
	return value, nil
}

func intField(fields map[string]interface{}, name string) (int, error) {
	value, err := floatField(fields, name)
	if err != nil {
		return 0, err
	}
	if value != math.Trunc(value) {
		return 0, fmt.Errorf("%w: field %q must be a whole number, got %v", ErrInvalidInput, name, value)
	}
	if value > math.MaxInt32 || value < math.MinInt32 {
		return 0, fmt.Errorf("%w: field %q is out of range", ErrInvalidInput, name)
	}
	return int(value), nil
}

func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return parsed, true
	}
	return 0, false
}
