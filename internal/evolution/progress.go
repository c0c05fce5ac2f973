package evolution

type Verdict string

const (
	VerdictPositive      Verdict = "positive"
	VerdictNegative      Verdict = "negative"
	VerdictNotApplicable Verdict = "not_applicable"
)

func (v Verdict) String() string {
	return string(v)
}

// EvaluateProgress judges the weight delta against the goal direction.
// The comparisons are strict: no change is never a success.
func EvaluateProgress(goal GoalType, delta float64) Verdict {
	switch goal {
	case GoalReduction:
		if delta < 0 {
			return VerdictPositive
		}
		return VerdictNegative
	case GoalGain:
		if delta > 0 {
			return VerdictPositive
		}
		return VerdictNegative
	default:
		return VerdictNotApplicable
	}
}
