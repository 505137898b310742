package calculator

// ProjectionPoint is one month of the savings-over-time series.
type ProjectionPoint struct {
	Month              int     `json:"month"`
	CumulativeSavings  float64 `json:"cumulative_savings"`
	ImplementationCost float64 `json:"implementation_cost"`
}

// Projection returns the cumulative savings at the end of each month of the
// horizon alongside the flat implementation cost line. The series is empty
// when the horizon is below one month.
func Projection(in ScenarioInput, result Result) []ProjectionPoint {
	if in.TimeHorizonMonths < 1 {
		return nil
	}

	points := make([]ProjectionPoint, 0, in.TimeHorizonMonths)
	for m := 1; m <= in.TimeHorizonMonths; m++ {
		points = append(points, ProjectionPoint{
			Month:              m,
			CumulativeSavings:  float64(result.MonthlySavings * float64(m)),
			ImplementationCost: in.OneTimeImplementationCost,
		})
	}
	return points
}

// BreakEvenMonth returns the first projected month whose cumulative savings
// cover the implementation cost, or 0 when none does.
func BreakEvenMonth(points []ProjectionPoint) int {
	for _, p := range points {
		if p.CumulativeSavings >= p.ImplementationCost {
			return p.Month
		}
	}
	return 0
}
