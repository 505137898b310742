package calculator

import (
	"encoding/json"
	"math"
)

type resultJSON struct {
	MonthlySavings    float64  `json:"monthly_savings"`
	CumulativeSavings float64  `json:"cumulative_savings"`
	PaybackMonths     *float64 `json:"payback_months"`
	ROIPercentage     *float64 `json:"roi_percentage"`
}

// MarshalJSON encodes unbounded payback and ROI values as null, since JSON
// has no representation for infinity.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(resultJSON{
		MonthlySavings:    r.MonthlySavings,
		CumulativeSavings: r.CumulativeSavings,
		PaybackMonths:     boundedOrNil(r.PaybackMonths),
		ROIPercentage:     boundedOrNil(r.ROIPercentage),
	})
}

// UnmarshalJSON decodes null payback and ROI values as +Inf.
func (r *Result) UnmarshalJSON(data []byte) error {
	var raw resultJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.MonthlySavings = raw.MonthlySavings
	r.CumulativeSavings = raw.CumulativeSavings
	r.PaybackMonths = nilToInf(raw.PaybackMonths)
	r.ROIPercentage = nilToInf(raw.ROIPercentage)
	return nil
}

func boundedOrNil(v float64) *float64 {
	if math.IsInf(v, 1) {
		return nil
	}
	return &v
}

func nilToInf(v *float64) float64 {
	if v == nil {
		return math.Inf(1)
	}
	return *v
}
