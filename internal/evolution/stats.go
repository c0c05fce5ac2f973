package evolution

import (
	"errors"
	"math"
	"strconv"
)

var ErrEmptySeries = errors.New("weight series is empty")

// Summary holds the derived statistics of a normalized weight series.
type Summary struct {
	First       Point   `json:"first"`
	Last        Point   `json:"last"`
	FirstWeight float64 `json:"firstWeight"`
	LastWeight  float64 `json:"lastWeight"`
	// Delta is exactly LastWeight - FirstWeight; use DeltaRounded for display.
	Delta float64 `json:"delta"`
	// DeltaPercent is rounded to one decimal and only meaningful when PercentComputable is set
	// (a zero first weight makes it undefined).
	DeltaPercent      float64 `json:"deltaPercent"`
	PercentComputable bool    `json:"percentComputable"`
	ElapsedDays       int     `json:"elapsedDays"`
	// ElapsedKnown is false when the first or last date could not be parsed.
	ElapsedKnown bool `json:"elapsedKnown"`
}

// Summarize expects a non-empty series, as produced by Normalize.
func Summarize(series []Point) (Summary, error) {
	if len(series) == 0 {
		return Summary{}, ErrEmptySeries
	}

	first := series[0]
	last := series[len(series)-1]

	s := Summary{
		First:       first,
		Last:        last,
		FirstWeight: first.Weight,
		LastWeight:  last.Weight,
		Delta:       last.Weight - first.Weight,
	}

	if s.FirstWeight != 0 {
		s.DeltaPercent = roundOneDecimal(s.Delta / s.FirstWeight * 100)
		s.PercentComputable = true
	}

	if first.Date.Valid() && last.Date.Valid() {
		elapsed := last.Date.Time().Sub(first.Date.Time())
		s.ElapsedDays = int(math.Floor(elapsed.Hours() / 24))
		s.ElapsedKnown = true
	}

	return s, nil
}

func (s Summary) DeltaRounded() float64 {
	return roundOneDecimal(s.Delta)
}

// FormatDelta renders the delta with one decimal and an explicit "+" for gains.
func (s Summary) FormatDelta() string {
	return FormatSigned(s.Delta)
}

// FormatSigned renders v with one decimal; "+" is added only when the rounded value is positive.
func FormatSigned(v float64) string {
	rounded := roundOneDecimal(v)
	formatted := strconv.FormatFloat(rounded, 'f', 1, 64)
	if rounded > 0 {
		return "+" + formatted
	}
	return formatted
}

func roundOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
