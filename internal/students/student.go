package students

import "time"

// Student is owned by the authenticated trainer; the backend keeps its identity.
type Student struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Age           Count     `json:"age"`
	Goal          string    `json:"goal,omitempty"`
	InitialWeight Decimal   `json:"initial_weight"`
	Height        Decimal   `json:"height"`
	Observations  string    `json:"observations,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// EvolutionRecord is a dated snapshot of the student's weight, performance and notes.
// Insertion order has no meaning; chronological order is always derived from Date.
type EvolutionRecord struct {
	ID            string    `json:"id"`
	StudentID     string    `json:"student_id,omitempty"`
	Date          Day       `json:"date"`
	CurrentWeight Decimal   `json:"current_weight"`
	Performance   string    `json:"performance,omitempty"`
	Observations  string    `json:"observations,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// WorkoutSummary without a date is a template/plan, not a performed session.
type WorkoutSummary struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id,omitempty"`
	Name      string    `json:"name"`
	Date      Day       `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

type CardioSession struct {
	ID           string    `json:"id"`
	StudentID    string    `json:"student_id,omitempty"`
	Equipment    Equipment `json:"equipment"`
	Duration     Count     `json:"duration"`
	Intensity    Intensity `json:"intensity,omitempty"`
	Date         Day       `json:"date"`
	Observations string    `json:"observations,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
