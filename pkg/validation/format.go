// Package validation provides common validation utilities.
package validation

import (
	"errors"
	"fmt"

	"github.com/iwvelando/invoice-roi/pkg/constants"
)

// ErrEmptyScenarioName is returned when a scenario is saved without a name.
var ErrEmptyScenarioName = errors.New("please enter a scenario name to save")

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON:
		return nil
	}
	return fmt.Errorf("expected output format of %s, %s or %s, got %s",
		constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON, format)
}

// ValidateScenarioName rejects an empty scenario name.
func ValidateScenarioName(name string) error {
	if name == "" {
		return ErrEmptyScenarioName
	}
	return nil
}
