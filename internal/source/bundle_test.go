package source_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/personalplanner/planner/internal/source"
	"github.com/personalplanner/planner/internal/students"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
	"go.uber.org/multierr"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestFetchBundle(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := NewMockSource(ctrl)
	ctx := context.Background()

	src.EXPECT().Student(gomock.Any(), "s-1").Return(&students.Student{ID: "s-1", Name: "Ana"}, nil)
	src.EXPECT().Workouts(gomock.Any(), "s-1").Return([]students.WorkoutSummary{{ID: "w-1", Name: "A"}}, nil)
	src.EXPECT().Cardio(gomock.Any(), "s-1").Return([]students.CardioSession{{ID: "c-1"}}, nil)
	src.EXPECT().Evolutions(gomock.Any(), "s-1").Return([]students.EvolutionRecord{{ID: "e-1"}}, nil)

	bundle, err := source.FetchBundle(ctx, src, "s-1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", bundle.Student.Name)
	assert.Len(t, bundle.Workouts, 1)
	assert.Len(t, bundle.Cardio, 1)
	assert.Len(t, bundle.Evolutions, 1)
	assert.Empty(t, bundle.Missing)
	assert.NoError(t, bundle.MissingErr())

	in := bundle.ReportInput()
	assert.Equal(t, "Ana", in.Student.Name)
	assert.Equal(t, bundle.Workouts, in.Workouts)
}

func TestFetchBundle_CollectionFailuresAreIndependent(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := NewMockSource(ctrl)

	cardioErr := errors.New("cardio: 502 bad gateway")
	evoErr := errors.New("evolution: timeout")
	src.EXPECT().Student(gomock.Any(), "s-1").Return(&students.Student{ID: "s-1", Name: "Ana"}, nil)
	src.EXPECT().Workouts(gomock.Any(), "s-1").Return([]students.WorkoutSummary{{ID: "w-1"}}, nil)
	src.EXPECT().Cardio(gomock.Any(), "s-1").Return(nil, cardioErr)
	src.EXPECT().Evolutions(gomock.Any(), "s-1").Return(nil, evoErr)

	bundle, err := source.FetchBundle(context.Background(), src, "s-1")
	require.NoError(t, err)
	assert.Len(t, bundle.Workouts, 1)
	assert.NotNil(t, bundle.Cardio)
	assert.Empty(t, bundle.Cardio)
	assert.NotNil(t, bundle.Evolutions)
	assert.Empty(t, bundle.Evolutions)
	assert.Equal(t, []source.Collection{source.CollectionCardio, source.CollectionEvolutions}, bundle.Missing)

	errs := multierr.Errors(bundle.MissingErr())
	require.Len(t, errs, 2)
	assert.ErrorIs(t, errs[0], cardioErr)
	assert.ErrorIs(t, errs[1], evoErr)
}

func TestFetchBundle_StudentRequired(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := NewMockSource(ctrl)

	src.EXPECT().Student(gomock.Any(), "missing").Return(nil, source.ErrStudentNotFound)
	src.EXPECT().Workouts(gomock.Any(), "missing").Return(nil, nil)
	src.EXPECT().Cardio(gomock.Any(), "missing").Return(nil, nil)
	src.EXPECT().Evolutions(gomock.Any(), "missing").Return(nil, nil)

	bundle, err := source.FetchBundle(context.Background(), src, "missing")
	assert.Nil(t, bundle)
	assert.ErrorIs(t, err, source.ErrStudentNotFound)
}

func TestDecodeBundle(t *testing.T) {
	bundle, err := source.DecodeBundle(strings.NewReader(`{
		"student": {"id": "s-1", "name": "Ana", "initial_weight": "70,5", "age": 30},
		"workouts": [{"id": "w-1", "name": "Treino A", "date": "2024-02-01"}],
		"cardio": [{"id": "c-1", "equipment": "esteira", "duration": 30, "intensity": "leve", "date": null}],
		"evolutions": [{"id": "e-1", "date": "2024-01-01", "current_weight": 70}]
	}`))
	require.NoError(t, err)
	assert.Equal(t, "Ana", bundle.Student.Name)
	w, ok := bundle.Student.InitialWeight.Get()
	require.True(t, ok)
	assert.Equal(t, 70.5, w)
	require.Len(t, bundle.Cardio, 1)
	assert.True(t, bundle.Cardio[0].Date.IsZero())
	assert.Equal(t, students.EquipmentTreadmill, bundle.Cardio[0].Equipment)

	_, err = source.DecodeBundle(strings.NewReader(`{"student": {"name": "  "}}`))
	assert.ErrorIs(t, err, source.ErrInvalidBundle)

	_, err = source.DecodeBundle(strings.NewReader(`{`))
	assert.Error(t, err)
}

func TestDecodeBundle_MalformedOptionalFieldsAreOmitted(t *testing.T) {
	testCases := []struct {
		name            string
		input           string
		expectedAge     int
		expectAge       bool
		expectedMinutes int
		expectMinutes   bool
	}{
		{
			name:            "numeric strings",
			input:           `{"student": {"name": "Ana", "age": "31"}, "cardio": [{"id": "c-1", "equipment": "bike", "duration": "30"}]}`,
			expectedAge:     31,
			expectAge:       true,
			expectedMinutes: 30,
			expectMinutes:   true,
		},
		{
			name:  "non numeric",
			input: `{"student": {"name": "Ana", "age": "abc"}, "cardio": [{"id": "c-1", "equipment": "bike", "duration": "meia hora"}]}`,
		},
		{
			name:  "non positive",
			input: `{"student": {"name": "Ana", "age": 0}, "cardio": [{"id": "c-1", "equipment": "bike", "duration": -10}]}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			bundle, err := source.DecodeBundle(strings.NewReader(tc.input))
			require.NoError(t, err)

			age, ok := bundle.Student.Age.Get()
			assert.Equal(t, tc.expectAge, ok)
			assert.Equal(t, tc.expectedAge, age)

			require.Len(t, bundle.Cardio, 1)
			assert.Equal(t, students.EquipmentBike, bundle.Cardio[0].Equipment)
			minutes, ok := bundle.Cardio[0].Duration.Get()
			assert.Equal(t, tc.expectMinutes, ok)
			assert.Equal(t, tc.expectedMinutes, minutes)
		})
	}
}
