package audit_test

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/rsavault/rsavault/internal/audit"
)

// LedgerSuite runs RunMigrations and Ledger against a real Postgres
// instance started via testcontainers.
type LedgerSuite struct {
	suite.Suite
	ctx               context.Context
	postgresContainer *postgres.PostgresContainer
	dsn               string
	ledger            *audit.Ledger
}

func (s *LedgerSuite) SetupSuite() {
	s.ctx = context.Background()

	dsn := os.Getenv("AUDIT_DB_ADDR")
	if dsn == "" {
		var err error
		s.postgresContainer, err = postgres.Run(s.ctx,
			"postgres:17-alpine",
			postgres.WithDatabase("rsavault_audit_test"),
			postgres.WithUsername("rsavault"),
			postgres.WithPassword("testpass"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2),
			),
		)
		if err != nil {
			s.T().Fatalf("failed to start postgres container: %v", err)
		}

		dsn, err = s.postgresContainer.ConnectionString(s.ctx, "sslmode=disable")
		if err != nil {
			s.T().Fatalf("failed to get connection string: %v", err)
		}
	}
	s.dsn = dsn

	if err := audit.RunMigrations(s.ctx, s.dsn); err != nil {
		s.T().Fatalf("failed to run migrations: %v", err)
	}

	ledger, err := audit.New(s.ctx, s.dsn)
	if err != nil {
		s.T().Fatalf("failed to connect to audit database: %v", err)
	}
	s.ledger = ledger
}

func (s *LedgerSuite) SetupTest() {
	pool, err := pgxpool.New(s.ctx, s.dsn)
	s.Require().NoError(err)
	defer pool.Close()
	_, err = pool.Exec(s.ctx, "DELETE FROM key_generations")
	s.Require().NoError(err)
}

func (s *LedgerSuite) TearDownSuite() {
	if s.ledger != nil {
		s.ledger.Close()
	}
	if s.postgresContainer != nil {
		if err := testcontainers.TerminateContainer(s.postgresContainer); err != nil {
			s.T().Logf("failed to terminate postgres container: %v", err)
		}
	}
}

func (s *LedgerSuite) TestRecordKeyGeneration_Succeeds() {
	keyID := uuid.New()
	var fingerprint [32]byte
	for i := range fingerprint {
		fingerprint[i] = byte(i)
	}

	err := s.ledger.RecordKeyGeneration(s.ctx, keyID, 2048, fingerprint)
	s.Require().NoError(err)
}

func (s *LedgerSuite) TestRecordKeyGeneration_DuplicateKeyIDFails() {
	keyID := uuid.New()
	var fingerprint [32]byte

	require.NoError(s.T(), s.ledger.RecordKeyGeneration(s.ctx, keyID, 1024, fingerprint))
	err := s.ledger.RecordKeyGeneration(s.ctx, keyID, 1024, fingerprint)
	s.Require().Error(err)
}

func TestLedgerSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(LedgerSuite))
}
