package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/phu/phu/internal/domain/cases"
	"github.com/phu/phu/internal/domain/patient"
	"github.com/phu/phu/internal/platform/db"
)

// testDB holds the shared database infrastructure for integration tests.
type testDB struct {
	Pool    *pgxpool.Pool
	ConnStr string
}

// globalDB is the package-level test database, initialized once in TestMain.
var globalDB *testDB

func TestMain(m *testing.M) {
	ctx := context.Background()

	if !dockerAvailable(ctx) {
		fmt.Fprintln(os.Stderr, "docker not available; skipping integration tests")
		os.Exit(0)
	}

	connStr, cleanup, err := startPostgresContainer(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start postgres container: %v\n", err)
		os.Exit(1)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		cleanup()
		fmt.Fprintf(os.Stderr, "failed to create pool: %v\n", err)
		os.Exit(1)
	}

	migrator := db.NewMigrator(pool, findMigrationsDir())
	if _, err := migrator.Up(ctx); err != nil {
		pool.Close()
		cleanup()
		fmt.Fprintf(os.Stderr, "failed to run migrations: %v\n", err)
		os.Exit(1)
	}

	globalDB = &testDB{Pool: pool, ConnStr: connStr}
	code := m.Run()
	pool.Close()
	cleanup()
	os.Exit(code)
}

// findMigrationsDir locates the migrations directory relative to this test file.
func findMigrationsDir() string {
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Dir(filename)
	// test/integration -> repo root
	return filepath.Join(dir, "..", "..", "migrations")
}

func ptrStr(s string) *string { return &s }
func ptrInt(v int) *int       { return &v }

// createTestPatient registers a patient directly through the repo.
func createTestPatient(t *testing.T, ctx context.Context, firstName, lastName string) *patient.Patient {
	t.Helper()
	repo := patient.NewPatientRepoPG(globalDB.Pool)
	dob := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	p := &patient.Patient{
		FirstName:    firstName,
		LastName:     lastName,
		Sex:          "female",
		DateOfBirth:  &dob,
		Village:      ptrStr("Masongbo"),
		GuardianName: ptrStr("Guardian " + lastName),
	}
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("create test patient: %v", err)
	}
	return p
}

// createTestCase opens a case for the given patient.
func createTestCase(t *testing.T, ctx context.Context, patientID uuid.UUID) *cases.Case {
	t.Helper()
	repo := cases.NewCaseRepoPG(globalDB.Pool)
	cs := &cases.Case{
		PatientID:      patientID,
		ChiefComplaint: "cough and fever",
		Status:         cases.StatusOpen,
	}
	if err := repo.Create(ctx, cs); err != nil {
		t.Fatalf("create test case: %v", err)
	}
	return cs
}
