package evolution

import (
	"sort"

	"github.com/personalplanner/planner/internal/students"
)

// Point is a single plotted weight measurement.
type Point struct {
	Date   students.Day `json:"date"`
	Weight float64      `json:"weight"`
}

// Normalize turns raw evolution records into a weight series ordered by date.
// Records without a numeric weight are dropped, never coerced to zero.
// Records with unparseable dates are kept and sort after all valid dates, in fetch order.
func Normalize(records []students.EvolutionRecord) []Point {
	series := make([]Point, 0, len(records))
	for _, rec := range records {
		weight, ok := rec.CurrentWeight.Get()
		if !ok {
			continue
		}
		series = append(series, Point{
			Date:   rec.Date,
			Weight: weight,
		})
	}

	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Date.Before(series[j].Date)
	})

	return series
}
