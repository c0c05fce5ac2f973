package postgres_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/personalplanner/planner/internal/auth"
	"github.com/personalplanner/planner/internal/source"
	"github.com/personalplanner/planner/internal/source/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/suite"
)

// RepoTestSuite runs the repo against a throwaway postgres container.
// Enable with PLANNER_INTEGRATION=1 (needs a docker daemon).
type RepoTestSuite struct {
	suite.Suite

	DB         *sql.DB
	pool       *pgxpool.Pool
	dockerPool *dockertest.Pool
	resource   *dockertest.Resource
	repo       *postgres.Repo
}

func TestRepoTestSuite(t *testing.T) {
	if os.Getenv("PLANNER_INTEGRATION") != "1" {
		t.Skip("set PLANNER_INTEGRATION=1 to run postgres integration tests")
	}
	suite.Run(t, new(RepoTestSuite))
}

func (s *RepoTestSuite) SetupSuite() {
	ctx := context.Background()

	var err error
	s.dockerPool, err = dockertest.NewPool("")
	s.Require().NoError(err, "could not create dockertest pool")
	s.Require().NoError(s.dockerPool.Client.Ping(), "could not ping docker")

	s.resource, err = s.dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "15",
		Env: []string{
			"POSTGRES_USER=postgres",
			"POSTGRES_DB=planner",
			"POSTGRES_HOST_AUTH_METHOD=trust",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{
			Name: "no",
		}
	})
	s.Require().NoError(err, "run postgres")

	dsn := fmt.Sprintf("postgres://postgres@localhost:%s/planner?sslmode=disable", s.resource.GetPort("5432/tcp"))
	s.Require().NoError(s.dockerPool.Retry(func() error {
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			return err
		}
		if err := db.Ping(); err != nil {
			_ = db.Close()
			return err
		}
		s.DB = db
		return nil
	}))

	_, err = s.DB.ExecContext(ctx, initSQL)
	s.Require().NoError(err, "run init script")

	s.pool, err = pgxpool.New(ctx, dsn)
	s.Require().NoError(err)
	s.repo = postgres.NewRepo(s.pool)
}

func (s *RepoTestSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.DB != nil {
		_ = s.DB.Close()
	}
	if s.resource != nil {
		if err := s.dockerPool.Purge(s.resource); err != nil {
			fmt.Printf("postgres teardown: %s\n", err)
		}
	}
}

func (s *RepoTestSuite) trainerCtx(userID string) context.Context {
	return auth.WithPrincipal(context.Background(), auth.Principal{UserID: userID, Token: "t"})
}

func (s *RepoTestSuite) TestStudent() {
	student, err := s.repo.Student(s.trainerCtx("trainer-1"), "s-1")
	s.Require().NoError(err)
	s.Equal("Ana Souza", student.Name)
	age, ok := student.Age.Get()
	s.Require().True(ok)
	s.Equal(31, age)
	s.Equal("Emagrecimento", student.Goal)
	w, ok := student.InitialWeight.Get()
	s.True(ok)
	s.Equal(70.0, w)
	s.False(student.Height.IsSet())
	s.Empty(student.Observations)

	// another trainer cannot see it
	_, err = s.repo.Student(s.trainerCtx("trainer-2"), "s-1")
	s.ErrorIs(err, source.ErrStudentNotFound)
}

func (s *RepoTestSuite) TestCollections() {
	ctx := s.trainerCtx("trainer-1")

	workouts, err := s.repo.Workouts(ctx, "s-1")
	s.Require().NoError(err)
	s.Require().Len(workouts, 2)
	s.Equal("Treino B", workouts[0].Name)
	s.True(workouts[0].Date.IsZero())
	s.Equal("05/02/2024", workouts[1].Date.Format())

	cardio, err := s.repo.Cardio(ctx, "s-1")
	s.Require().NoError(err)
	s.Require().Len(cardio, 1)
	s.Equal("esteira", cardio[0].Equipment.String())
	minutes, ok := cardio[0].Duration.Get()
	s.Require().True(ok)
	s.Equal(30, minutes)

	evolutions, err := s.repo.Evolutions(ctx, "s-1")
	s.Require().NoError(err)
	s.Require().Len(evolutions, 3)
	s.Equal("2024-03-01", evolutions[0].Date.String())
	s.False(evolutions[1].CurrentWeight.IsSet())

	bundle, err := source.FetchBundle(ctx, s.repo, "s-1")
	s.Require().NoError(err)
	s.Empty(bundle.Missing)
	s.WithinDuration(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), bundle.Student.CreatedAt, time.Second)
}

const initSQL = `
CREATE TABLE students
(
    id             VARCHAR PRIMARY KEY,
    user_id        VARCHAR     NOT NULL,
    name           VARCHAR     NOT NULL,
    age            INTEGER,
    goal           TEXT,
    observations   TEXT,
    initial_weight NUMERIC(5, 2),
    height         NUMERIC(5, 2),
    created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE workouts
(
    id         VARCHAR PRIMARY KEY,
    user_id    VARCHAR     NOT NULL,
    student_id VARCHAR     NOT NULL REFERENCES students (id),
    name       VARCHAR     NOT NULL,
    date       DATE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE cardio
(
    id           VARCHAR PRIMARY KEY,
    user_id      VARCHAR     NOT NULL,
    student_id   VARCHAR     NOT NULL REFERENCES students (id),
    equipment    VARCHAR     NOT NULL,
    duration     INTEGER,
    intensity    VARCHAR,
    observations TEXT,
    date         DATE,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE evolution
(
    id             VARCHAR PRIMARY KEY,
    user_id        VARCHAR     NOT NULL,
    student_id     VARCHAR     NOT NULL REFERENCES students (id),
    date           DATE        NOT NULL,
    current_weight NUMERIC(5, 2),
    performance    TEXT,
    observations   TEXT,
    created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

INSERT INTO students (id, user_id, name, age, goal, initial_weight, created_at)
VALUES ('s-1', 'trainer-1', 'Ana Souza', 31, 'Emagrecimento', 70, '2024-01-01 12:00:00+00');

INSERT INTO workouts (id, user_id, student_id, name, date, created_at)
VALUES ('w-1', 'trainer-1', 's-1', 'Treino A', '2024-02-05', '2024-02-05 10:00:00+00'),
       ('w-2', 'trainer-1', 's-1', 'Treino B', NULL, '2024-02-06 10:00:00+00');

INSERT INTO cardio (id, user_id, student_id, equipment, duration, intensity, date)
VALUES ('c-1', 'trainer-1', 's-1', 'esteira', 30, 'moderado', '2024-02-05');

INSERT INTO evolution (id, user_id, student_id, date, current_weight)
VALUES ('e-1', 'trainer-1', 's-1', '2024-01-01', 70),
       ('e-2', 'trainer-1', 's-1', '2024-02-01', NULL),
       ('e-3', 'trainer-1', 's-1', '2024-03-01', 66);
`
