package persistence

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/pybotlabs/pybot-api/internal/domain/profile"
	"github.com/pybotlabs/pybot-api/pkg/apperror"
	"github.com/pybotlabs/pybot-api/pkg/logger"
)

type ProfileRepoIntegrationTestSuite struct {
	suite.Suite
	dbPool      *pgxpool.Pool
	pgContainer *postgres.PostgresContainer
	profileRepo profile.Repository
}

func (s *ProfileRepoIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(1*time.Minute),
		),
	)
	if err != nil {
		s.T().Fatalf("Failed to start postgres container: %s", err)
	}
	s.pgContainer = pgContainer

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		s.T().Fatalf("Failed to get connection string: %s", err)
	}

	m, err := migrate.New("file://../../migrations", dsn)
	if err != nil {
		s.T().Fatalf("Failed to create migrate instance: %s", err)
	}
	if err := m.Up(); err != nil {
		s.T().Fatalf("Failed to run migrations: %s", err)
	}

	s.dbPool, err = pgxpool.New(ctx, dsn)
	if err != nil {
		s.T().Fatalf("Failed to connect pool: %s", err)
	}

	s.profileRepo = NewPostgresProfileRepo(s.dbPool, logger.NewNop())
}

func (s *ProfileRepoIntegrationTestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		s.pgContainer.Terminate(context.Background())
	}
}

func TestProfileRepoIntegration(t *testing.T) {
	if os.Getenv("INTEGRATION_TESTS") == "" {
		t.Skip("Skipping integration tests. Set INTEGRATION_TESTS=1 to run.")
	}
	suite.Run(t, new(ProfileRepoIntegrationTestSuite))
}

func (s *ProfileRepoIntegrationTestSuite) Test_GetBySubject_MissingRow_IsNotFound() {
	_, err := s.profileRepo.GetBySubject(context.Background(), uuid.New())
	s.Require().Error(err)
	s.Require().ErrorIs(err, apperror.ErrNotFound)
}

func (s *ProfileRepoIntegrationTestSuite) Test_Merge_CreatesRowWithDefaults() {
	ctx := context.Background()
	subjectID := uuid.New()
	name := "Ada"

	err := s.profileRepo.Merge(ctx, subjectID, profile.Patch{DisplayName: &name})
	s.Require().NoError(err)

	p, err := s.profileRepo.GetBySubject(ctx, subjectID)
	s.Require().NoError(err)
	s.Equal("Ada", p.DisplayName)
	s.Equal(1, p.CurrentLesson)
	s.Empty(p.CompletedQuizzes)
	s.Empty(p.QuizScores)
	s.Equal(profile.StyleFun, p.Preferences.Style)
	s.Equal(profile.PaceModerate, p.Preferences.Pace)
	s.False(p.UpdatedAt.IsZero())
}

func (s *ProfileRepoIntegrationTestSuite) Test_Merge_PartialUpdateLeavesOtherFields() {
	ctx := context.Background()
	subjectID := uuid.New()
	name := "Grace"
	lesson := 2

	s.Require().NoError(s.profileRepo.Merge(ctx, subjectID, profile.Patch{
		DisplayName:      &name,
		CurrentLesson:    &lesson,
		CompletedQuizzes: []string{"q1"},
		QuizScores:       map[string]float64{"q1": 90},
	}))

	lesson = 3
	s.Require().NoError(s.profileRepo.Merge(ctx, subjectID, profile.Patch{CurrentLesson: &lesson}))

	p, err := s.profileRepo.GetBySubject(ctx, subjectID)
	s.Require().NoError(err)
	s.Equal("Grace", p.DisplayName)
	s.Equal(3, p.CurrentLesson)
	s.Equal([]string{"q1"}, p.CompletedQuizzes)
	s.Equal(map[string]float64{"q1": 90}, p.QuizScores)
}

func (s *ProfileRepoIntegrationTestSuite) Test_Merge_StampsUpdatedAt() {
	ctx := context.Background()
	subjectID := uuid.New()
	lesson := 1

	s.Require().NoError(s.profileRepo.Merge(ctx, subjectID, profile.Patch{CurrentLesson: &lesson}))
	first, err := s.profileRepo.GetBySubject(ctx, subjectID)
	s.Require().NoError(err)

	time.Sleep(50 * time.Millisecond)
	lesson = 2
	s.Require().NoError(s.profileRepo.Merge(ctx, subjectID, profile.Patch{CurrentLesson: &lesson}))
	second, err := s.profileRepo.GetBySubject(ctx, subjectID)
	s.Require().NoError(err)

	s.True(second.UpdatedAt.After(first.UpdatedAt))
}
