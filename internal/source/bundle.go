package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/personalplanner/planner/internal/report"
	"github.com/personalplanner/planner/internal/students"
	"github.com/personalplanner/planner/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
)

var ErrInvalidBundle = errors.New("invalid bundle: student name is required")

// Bundle is everything known about one student. Collections that could not be
// fetched are empty and listed in Missing.
type Bundle struct {
	Student    students.Student           `json:"student"`
	Workouts   []students.WorkoutSummary  `json:"workouts"`
	Cardio     []students.CardioSession   `json:"cardio"`
	Evolutions []students.EvolutionRecord `json:"evolutions"`
	Missing    []Collection               `json:"missing,omitempty"`

	missingErr error
}

// MissingErr combines the errors of the collections listed in Missing.
func (b *Bundle) MissingErr() error {
	return b.missingErr
}

func (b *Bundle) ReportInput() report.Input {
	return report.Input{
		Student:    b.Student,
		Workouts:   b.Workouts,
		Cardio:     b.Cardio,
		Evolutions: b.Evolutions,
	}
}

// FetchBundle loads the student and its three collections concurrently.
// Only the student is required: a failing collection is logged, reported in
// Bundle.Missing and degrades to an empty list.
func FetchBundle(ctx context.Context, src Source, studentID string) (_ *Bundle, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "source.fetchBundle")
	span.SetAttributes(attribute.String("student_id", studentID))
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var (
		wg         sync.WaitGroup
		student    *students.Student
		studentErr error
		bundle     = &Bundle{}
		errs       [3]error
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		student, studentErr = src.Student(ctx, studentID)
	}()
	go func() {
		defer wg.Done()
		bundle.Workouts, errs[0] = src.Workouts(ctx, studentID)
	}()
	go func() {
		defer wg.Done()
		bundle.Cardio, errs[1] = src.Cardio(ctx, studentID)
	}()
	go func() {
		defer wg.Done()
		bundle.Evolutions, errs[2] = src.Evolutions(ctx, studentID)
	}()
	wg.Wait()

	if studentErr != nil {
		return nil, fmt.Errorf("fetch student %s: %w", studentID, studentErr)
	}
	if student == nil {
		return nil, ErrStudentNotFound
	}
	bundle.Student = *student

	for i, c := range []Collection{CollectionWorkouts, CollectionCardio, CollectionEvolutions} {
		if errs[i] == nil {
			continue
		}
		bundle.missingErr = multierr.Append(bundle.missingErr, fmt.Errorf("fetch %s: %w", c, errs[i]))
		bundle.Missing = append(bundle.Missing, c)
	}
	if bundle.missingErr != nil {
		log.Warnf("student %s fetched with missing collections: %s", studentID, bundle.missingErr)
	}

	if bundle.Workouts == nil {
		bundle.Workouts = []students.WorkoutSummary{}
	}
	if bundle.Cardio == nil {
		bundle.Cardio = []students.CardioSession{}
	}
	if bundle.Evolutions == nil {
		bundle.Evolutions = []students.EvolutionRecord{}
	}

	return bundle, nil
}

// DecodeBundle reads a bundle from its JSON form, as exported by the backend.
func DecodeBundle(r io.Reader) (*Bundle, error) {
	bundle := &Bundle{}
	if err := json.NewDecoder(r).Decode(bundle); err != nil {
		return nil, fmt.Errorf("decode bundle: %w", err)
	}
	if strings.TrimSpace(bundle.Student.Name) == "" {
		return nil, ErrInvalidBundle
	}
	return bundle, nil
}
