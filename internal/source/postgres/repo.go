package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/personalplanner/planner/internal/auth"
	"github.com/personalplanner/planner/internal/source"
	"github.com/personalplanner/planner/internal/students"
	"github.com/personalplanner/planner/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var _ source.Source = (*Repo)(nil)

// Repo reads the product tables directly. Every query is scoped by the trainer's user_id.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Student(ctx context.Context, studentID string) (_ *students.Student, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.students.get")
	span.SetAttributes(attribute.String("student_id", studentID))
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	userID, err := trainerID(ctx)
	if err != nil {
		return nil, err
	}

	var (
		s              students.Student
		age            *int
		goal, obs      *string
		weight, height *float64
	)
	err = r.db.QueryRow(
		ctx,
		`SELECT id::text, name, age, goal, observations, initial_weight::float8, height::float8, created_at
		FROM students
		WHERE id::text = $1 AND user_id::text = $2;`,
		studentID, userID,
	).Scan(&s.ID, &s.Name, &age, &goal, &obs, &weight, &height, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, source.ErrStudentNotFound
		}
		return nil, fmt.Errorf("query student: %w", err)
	}

	s.Age = count(age)
	s.Goal = deref(goal)
	s.Observations = deref(obs)
	s.InitialWeight = decimal(weight)
	s.Height = decimal(height)

	return &s, nil
}

func (r *Repo) Workouts(ctx context.Context, studentID string) (_ []students.WorkoutSummary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	userID, err := trainerID(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT id::text, student_id::text, name, date::text, created_at
		FROM workouts
		WHERE student_id::text = $1 AND user_id::text = $2
		ORDER BY created_at DESC;`,
		studentID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query workouts: %w", err)
	}
	defer rows.Close()

	workouts := []students.WorkoutSummary{}
	for rows.Next() {
		var (
			w    students.WorkoutSummary
			date *string
		)
		if err := rows.Scan(&w.ID, &w.StudentID, &w.Name, &date, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		w.Date = day(date)
		workouts = append(workouts, w)
	}

	return workouts, rows.Err()
}

func (r *Repo) Cardio(ctx context.Context, studentID string) (_ []students.CardioSession, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.cardio.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	userID, err := trainerID(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT id::text, student_id::text, equipment, duration, intensity, observations, date::text, created_at
		FROM cardio
		WHERE student_id::text = $1 AND user_id::text = $2
		ORDER BY created_at DESC;`,
		studentID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query cardio: %w", err)
	}
	defer rows.Close()

	sessions := []students.CardioSession{}
	for rows.Next() {
		var (
			c                    students.CardioSession
			equipment            string
			duration             *int
			intensity, obs, date *string
		)
		if err := rows.Scan(&c.ID, &c.StudentID, &equipment, &duration, &intensity, &obs, &date, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		c.Equipment = students.ParseEquipment(equipment)
		c.Duration = count(duration)
		c.Intensity = students.ParseIntensity(deref(intensity))
		c.Observations = deref(obs)
		c.Date = day(date)
		sessions = append(sessions, c)
	}

	return sessions, rows.Err()
}

func (r *Repo) Evolutions(ctx context.Context, studentID string) (_ []students.EvolutionRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.evolution.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	userID, err := trainerID(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT id::text, student_id::text, date::text, current_weight::float8, performance, observations, created_at
		FROM evolution
		WHERE student_id::text = $1 AND user_id::text = $2
		ORDER BY date DESC;`,
		studentID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query evolution: %w", err)
	}
	defer rows.Close()

	records := []students.EvolutionRecord{}
	for rows.Next() {
		var (
			e               students.EvolutionRecord
			date            *string
			weight          *float64
			performance, ob *string
			createdAt       time.Time
		)
		if err := rows.Scan(&e.ID, &e.StudentID, &date, &weight, &performance, &ob, &createdAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		e.Date = day(date)
		e.CurrentWeight = decimal(weight)
		e.Performance = deref(performance)
		e.Observations = deref(ob)
		e.CreatedAt = createdAt
		records = append(records, e)
	}

	return records, rows.Err()
}

func trainerID(ctx context.Context) (string, error) {
	principal, ok := auth.PrincipalFromContext(ctx)
	if !ok || principal.UserID == "" {
		return "", source.ErrNoPrincipal
	}
	return principal.UserID, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func decimal(v *float64) students.Decimal {
	if v == nil {
		return students.Decimal{}
	}
	return students.NewDecimal(*v)
}

func count(v *int) students.Count {
	if v == nil {
		return students.Count{}
	}
	return students.NewCount(*v)
}

func day(s *string) students.Day {
	if s == nil {
		return students.Day{}
	}
	return students.ParseDay(*s)
}
