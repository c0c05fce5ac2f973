package source

import (
	"context"
	"errors"

	"github.com/personalplanner/planner/internal/students"
)

var (
	ErrStudentNotFound = errors.New("student not found")
	ErrNoPrincipal     = errors.New("no authenticated trainer in context")
	ErrUnauthorized    = errors.New("data source rejected the trainer credentials")
)

// Collection names one of the record kinds fetched next to the student.
type Collection string

const (
	CollectionWorkouts   Collection = "workouts"
	CollectionCardio     Collection = "cardio"
	CollectionEvolutions Collection = "evolution"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=source_test

// Source reads a trainer's student records. The trainer is taken from the context (see auth.PrincipalFromContext).
type Source interface {
	Student(ctx context.Context, studentID string) (*students.Student, error)
	Workouts(ctx context.Context, studentID string) ([]students.WorkoutSummary, error)
	Cardio(ctx context.Context, studentID string) ([]students.CardioSession, error)
	Evolutions(ctx context.Context, studentID string) ([]students.EvolutionRecord, error)
}
