package db

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// setupTestDB opens a private in-memory database for the calling test
func setupTestDB(t *testing.T) *Database {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	database, err := New(context.Background(), Config{
		Driver: DriverSQLite,
		DSN:    "file:" + name + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	return database
}

func intPtr(n int) *int          { return &n }
func strPtr(s string) *string    { return &s }
func equityPtr(s string) *Equity { e := Equity(s); return &e }

// seedTestData creates companies c1..c3, jobs J1..J4 and users u1, u2.
// u1 has applied to J1. It returns the ids of the jobs in creation order.
func seedTestData(t *testing.T, database *Database) []int64 {
	t.Helper()
	ctx := context.Background()

	companies := NewCompanyRepository(database)
	for i, handle := range []string{"c1", "c2", "c3"} {
		_, err := companies.Create(ctx, NewCompany{
			Handle:       handle,
			Name:         strings.ToUpper(handle),
			Description:  "Desc" + handle[1:],
			NumEmployees: intPtr(i + 1),
			LogoURL:      strPtr("http://" + handle + ".img"),
		})
		require.NoError(t, err)
	}

	jobs := NewJobRepository(database)
	seeds := []NewJob{
		{Title: "J1", Salary: intPtr(100), Equity: equityPtr("0.1"), CompanyHandle: "c1"},
		{Title: "J2", Salary: intPtr(200), Equity: equityPtr("0.2"), CompanyHandle: "c1"},
		{Title: "J3", Salary: intPtr(300), Equity: equityPtr("0"), CompanyHandle: "c1"},
		{Title: "J4", CompanyHandle: "c2"},
	}
	ids := make([]int64, 0, len(seeds))
	for _, nj := range seeds {
		job, err := jobs.Create(ctx, nj)
		require.NoError(t, err)
		ids = append(ids, job.ID)
	}

	users := NewUserRepository(database, bcrypt.MinCost)
	for _, u := range []string{"u1", "u2"} {
		_, err := users.Register(ctx, NewUser{
			Username:  u,
			Password:  "password-" + u,
			FirstName: "F" + u,
			LastName:  "L" + u,
			Email:     u + "@email.com",
		})
		require.NoError(t, err)
	}
	require.NoError(t, users.ApplyToJob(ctx, "u1", ids[0]))

	return ids
}
