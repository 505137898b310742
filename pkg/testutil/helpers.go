// Package testutil provides common utility functions for testing.
package testutil

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/iwvelando/invoice-roi/internal/calculator"
	"github.com/iwvelando/invoice-roi/internal/scenario"
	"go.uber.org/zap"
)

// PilotInput returns the reference scenario whose results are documented:
// 2000 invoices, 3 staff, $30/h, $100 per error, 36 months, $50,000 upfront.
func PilotInput() calculator.ScenarioInput {
	return calculator.ScenarioInput{
		ScenarioName:              "Q4 Pilot",
		MonthlyInvoiceVolume:      2000,
		NumAPStaff:                3,
		HourlyWage:                30.0,
		ErrorCost:                 100.0,
		TimeHorizonMonths:         36,
		OneTimeImplementationCost: 50000.0,
	}
}

// OpenStore opens a scenario store in a temporary directory that is closed
// when the test ends.
func OpenStore(tb testing.TB) *scenario.Store {
	tb.Helper()
	store, err := scenario.Open(context.Background(), filepath.Join(tb.TempDir(), "scenarios.db"), zap.NewNop())
	if err != nil {
		tb.Fatalf("failed to open scenario store: %v", err)
	}
	tb.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}
