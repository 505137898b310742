// Package output provides utilities for formatting and displaying ROI results.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/iwvelando/invoice-roi/internal/calculator"
	"github.com/iwvelando/invoice-roi/internal/report"
	"github.com/iwvelando/invoice-roi/internal/scenario"
	"github.com/iwvelando/invoice-roi/pkg/constants"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Results bundles everything printed for one calculation.
type Results struct {
	Input      calculator.ScenarioInput     `json:"input"`
	Result     calculator.Result            `json:"result"`
	Report     []report.Entry               `json:"report"`
	Projection []calculator.ProjectionPoint `json:"projection"`
	Warnings   []string                     `json:"warnings,omitempty"`
}

// NewResults computes the report and projection for an input.
func NewResults(in calculator.ScenarioInput) Results {
	result := calculator.Compute(in)
	return Results{
		Input:      in,
		Result:     result,
		Report:     report.Format(in, result),
		Projection: calculator.Projection(in, result),
		Warnings:   in.BoundWarnings(),
	}
}

// Write renders results in the named output format.
func Write(w io.Writer, format string, results Results) error {
	switch format {
	case constants.OutputFormatPretty:
		return PrettyFormat(w, results)
	case constants.OutputFormatCSV:
		return CsvFormat(w, results)
	case constants.OutputFormatJSON:
		return JSONFormat(w, results)
	}
	return fmt.Errorf("unsupported output format %q", format)
}

// PrettyFormat outputs a human-readable report followed by the savings
// projection table.
func PrettyFormat(w io.Writer, results Results) error {
	p := message.NewPrinter(language.English)

	if _, err := fmt.Fprintf(w, "--- %s ---\n", constants.ReportTitle); err != nil {
		return err
	}
	for _, entry := range results.Report {
		if _, err := fmt.Fprintln(w, entry.String()); err != nil {
			return err
		}
	}
	for _, warning := range results.Warnings {
		if _, err := fmt.Fprintf(w, "warning: %s\n", warning); err != nil {
			return err
		}
	}

	if len(results.Projection) == 0 {
		return nil
	}

	if _, err := fmt.Fprintf(w, "\nMonth | Cumulative Savings | Implementation Cost\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "_____ | __________________ | ___________________\n"); err != nil {
		return err
	}
	for _, point := range results.Projection {
		if _, err := p.Fprintf(w, "%5d | $%.2f | $%.2f\n", point.Month, point.CumulativeSavings, point.ImplementationCost); err != nil {
			return err
		}
	}
	return nil
}

// CsvFormat outputs the report entries and then the projection in
// comma-separated value format.
func CsvFormat(w io.Writer, results Results) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"label", "value"}); err != nil {
		return err
	}
	for _, entry := range results.Report {
		if err := cw.Write([]string{entry.Label, entry.Text}); err != nil {
			return err
		}
	}
	if err := cw.Write(nil); err != nil {
		return err
	}

	if err := cw.Write([]string{"month", "cumulative savings", "implementation cost"}); err != nil {
		return err
	}
	for _, point := range results.Projection {
		record := []string{
			strconv.Itoa(point.Month),
			strconv.FormatFloat(point.CumulativeSavings, 'f', 2, 64),
			strconv.FormatFloat(point.ImplementationCost, 'f', 2, 64),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// JSONFormat outputs the results as an indented JSON document.
func JSONFormat(w io.Writer, results Results) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

// ScenarioList prints saved scenarios one per line in creation order.
func ScenarioList(w io.Writer, summaries []scenario.Summary) error {
	if len(summaries) == 0 {
		_, err := fmt.Fprintln(w, "no saved scenarios")
		return err
	}
	if _, err := fmt.Fprintf(w, "ID    | Scenario\n____  | ________\n"); err != nil {
		return err
	}
	for _, s := range summaries {
		if _, err := fmt.Fprintf(w, "%-5d | %s\n", s.ID, s.ScenarioName); err != nil {
			return err
		}
	}
	return nil
}
