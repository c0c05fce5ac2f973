package evolution

import "strings"

// GoalType is the training objective inferred from the student's free-text goal.
type GoalType string

const (
	GoalReduction GoalType = "reduction"
	GoalGain      GoalType = "gain"
	GoalNone      GoalType = "none"
)

func (g GoalType) String() string {
	return string(g)
}

var (
	reductionKeywords = []string{"perda", "emagrec", "cut", "definir", "seca"}
	gainKeywords      = []string{"massa", "ganho", "bulk", "hipertrofia", "aument"}
)

// ClassifyGoal matches the goal against the keyword sets, case-insensitively.
// Reduction keywords are checked first: a goal matching both families is a reduction goal
// ("Perda de massa" -> reduction).
func ClassifyGoal(goal string) GoalType {
	goal = strings.ToLower(strings.TrimSpace(goal))
	if goal == "" {
		return GoalNone
	}
	if containsAny(goal, reductionKeywords) {
		return GoalReduction
	}
	if containsAny(goal, gainKeywords) {
		return GoalGain
	}
	return GoalNone
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
