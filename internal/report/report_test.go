package report

import (
	"bytes"
	"math"
	"testing"

	"github.com/iwvelando/invoice-roi/internal/calculator"
)

func pilotInput() calculator.ScenarioInput {
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

func TestFormatReferenceScenario(t *testing.T) {
	in := pilotInput()
	entries := Format(in, calculator.Compute(in))

	want := []Entry{
		{"Scenario", "Q4 Pilot"},
		{"Monthly Savings", "$8,000.30"},
		{"Payback Period", "6.2 months"},
		{"Total ROI (36 months)", "476.0%"},
		{"Cumulative Savings", "$288,010.80"},
	}

	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d: %v", len(want), len(entries), entries)
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, entries[i], want[i])
		}
	}
}

func TestFormatUnboundedValues(t *testing.T) {
	in := pilotInput()
	in.ScenarioName = ""
	in.TimeHorizonMonths = 12

	entries := Format(in, calculator.Fallback())
	if entries[0].Text != "Unsaved" {
		t.Errorf("scenario text = %q, want Unsaved", entries[0].Text)
	}
	if entries[1].Text != "$0.00" {
		t.Errorf("monthly savings text = %q", entries[1].Text)
	}
	if entries[2].Text != "N/A" {
		t.Errorf("payback text = %q, want N/A", entries[2].Text)
	}
	if entries[3].Label != "Total ROI (12 months)" || entries[3].Text != "0.0%" {
		t.Errorf("ROI entry = %+v", entries[3])
	}

	zeroCost := calculator.Result{MonthlySavings: -110, CumulativeSavings: -1320, PaybackMonths: math.Inf(1), ROIPercentage: math.Inf(1)}
	entries = Format(in, zeroCost)
	if entries[3].Text != "N/A" {
		t.Errorf("ROI text = %q, want N/A", entries[3].Text)
	}
	if entries[4].Text != "$-1,320.00" {
		t.Errorf("cumulative text = %q", entries[4].Text)
	}
}

func TestEntryString(t *testing.T) {
	if got := (Entry{Label: "Payback Period", Text: "N/A"}).String(); got != "Payback Period: N/A" {
		t.Errorf("String() = %q", got)
	}
}

func TestFileName(t *testing.T) {
	if got := FileName(pilotInput()); got != "ROI_Report_Q4 Pilot.pdf" {
		t.Errorf("FileName() = %q", got)
	}
	if got := FileName(calculator.ScenarioInput{}); got != "ROI_Report_Unsaved.pdf" {
		t.Errorf("FileName() = %q", got)
	}
}

func TestRenderPDF(t *testing.T) {
	in := pilotInput()
	doc, err := RenderPDF(Format(in, calculator.Compute(in)))
	if err != nil {
		t.Fatalf("RenderPDF() error = %v", err)
	}
	if !bytes.HasPrefix(doc, []byte("%PDF-")) {
		t.Errorf("expected PDF header, got %q", doc[:min(len(doc), 8)])
	}
}

func TestRenderPDFRequiresEntries(t *testing.T) {
	if _, err := RenderPDF(nil); err == nil {
		t.Fatal("expected error for empty report")
	}
}
