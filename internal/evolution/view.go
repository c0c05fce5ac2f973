package evolution

import (
	"strconv"

	"github.com/personalplanner/planner/internal/students"
)

const (
	EmptyNoRecords = "Nenhuma evolução registrada ainda"
	EmptyNoWeights = "Nenhum peso registrado nas evoluções"

	axisPadding = 2.0
)

// ChartPoint is what the chart renderer plots; Label is dd/mm.
type ChartPoint struct {
	Label  string  `json:"label"`
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
}

type Axis struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// View is the evolution tab view-model: series, summary cards, goal banner and verdict.
type View struct {
	Points []ChartPoint `json:"points"`
	// EmptyMessage is set when there is nothing to plot.
	EmptyMessage string `json:"emptyMessage,omitempty"`

	Summary      *Summary `json:"summary,omitempty"`
	DeltaText    string   `json:"deltaText,omitempty"`
	PercentText  string   `json:"percentText,omitempty"`
	YAxis        Axis     `json:"yAxis"`
	GoalType     GoalType `json:"goalType"`
	GoalLabel    string   `json:"goalLabel,omitempty"`
	Verdict      Verdict  `json:"verdict"`
	VerdictLabel string   `json:"verdictLabel,omitempty"`
}

// BuildView runs the whole pipeline: normalize, summarize, classify the goal and evaluate progress.
func BuildView(records []students.EvolutionRecord, goal string) View {
	view := View{
		Points:   []ChartPoint{},
		GoalType: ClassifyGoal(goal),
		Verdict:  VerdictNotApplicable,
	}

	if len(records) == 0 {
		view.EmptyMessage = EmptyNoRecords
		return view
	}

	series := Normalize(records)
	summary, err := Summarize(series)
	if err != nil {
		view.EmptyMessage = EmptyNoWeights
		return view
	}

	view.Summary = &summary
	view.DeltaText = formatChartDelta(summary.Delta) + " kg"
	if summary.PercentComputable {
		view.PercentText = FormatPercent(summary.DeltaPercent)
	} else {
		view.PercentText = "n/d"
	}

	minWeight, maxWeight := series[0].Weight, series[0].Weight
	for _, p := range series {
		view.Points = append(view.Points, ChartPoint{
			Label:  p.Date.ShortFormat(),
			Date:   p.Date.String(),
			Weight: p.Weight,
		})
		minWeight = min(minWeight, p.Weight)
		maxWeight = max(maxWeight, p.Weight)
	}
	view.YAxis = Axis{
		Min: minWeight - axisPadding,
		Max: maxWeight + axisPadding,
	}

	view.Verdict = EvaluateProgress(view.GoalType, summary.Delta)
	switch view.GoalType {
	case GoalReduction:
		view.GoalLabel = "Meta: Redução de Peso"
		if view.Verdict == VerdictPositive {
			view.VerdictLabel = "Progresso positivo!"
		} else {
			view.VerdictLabel = "Peso aumentou"
		}
	case GoalGain:
		view.GoalLabel = "Meta: Ganho de Massa"
		if view.Verdict == VerdictPositive {
			view.VerdictLabel = "Progresso positivo!"
		} else {
			view.VerdictLabel = "Peso diminuiu"
		}
	}

	return view
}

// formatChartDelta takes the sign from the exact delta, so a gain of 0.04 kg
// reads "+0.0" on the chart. The report uses FormatSigned instead.
func formatChartDelta(delta float64) string {
	formatted := strconv.FormatFloat(roundOneDecimal(delta), 'f', 1, 64)
	if delta > 0 {
		return "+" + formatted
	}
	return formatted
}

func FormatPercent(p float64) string {
	return strconv.FormatFloat(roundOneDecimal(p), 'f', 1, 64) + "%"
}
