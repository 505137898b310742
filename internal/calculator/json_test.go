package calculator

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func TestResultJSONEncodesInfinityAsNull(t *testing.T) {
	data, err := json.Marshal(Fallback())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	got := string(data)
	if !strings.Contains(got, `"payback_months":null`) {
		t.Errorf("expected null payback, got %s", got)
	}
	if !strings.Contains(got, `"roi_percentage":0`) {
		t.Errorf("expected zero ROI, got %s", got)
	}

	var decoded Result
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !math.IsInf(decoded.PaybackMonths, 1) || decoded.ROIPercentage != 0 {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestResultJSONBoundedValues(t *testing.T) {
	result := Compute(referenceInput())
	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded Result
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded != result {
		t.Errorf("decoded = %+v, want %+v", decoded, result)
	}
}
