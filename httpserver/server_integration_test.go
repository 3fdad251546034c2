package httpserver_test

import (
	"context"
	"net/http"
	"strconv"
	"testing"
	"time"

	"smdb/httpserver"
	"smdb/movie"
	"smdb/postgres"

	"github.com/docker/go-connections/nat"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

func MustCreateServer(t testing.TB, db *gorm.DB) *httpserver.Server {
	t.Helper()

	server := newTestServer(t)
	server.MovieService = movie.NewUsecase(postgres.NewMovieRepository(db))

	return server
}

// MustCreateTestDatabase starts a PostgreSQL container and returns a GORM connection to it
func MustCreateTestDatabase(t testing.TB) *gorm.DB {
	t.Helper()
	ctx := context.Background()
	dbName, dbUser, dbPass := "test_movies", "test", "testpass"
	postgre, err := pgcontainer.RunContainer(ctx,
		testcontainers.WithImage("docker.io/postgres:15.2-alpine"),
		pgcontainer.WithDatabase(dbName),
		pgcontainer.WithUsername(dbUser),
		pgcontainer.WithPassword(dbPass),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err, "failed to start postgres container")
	t.Cleanup(func() {
		err := postgre.Terminate(ctx)
		assert.NoError(t, err, "failed to terminate postgres container")
	})

	host, port := extractHostAndPort(t, ctx, postgre)
	db, err := postgres.NewConnection(postgres.Options{
		DBName:   dbName,
		DBUser:   dbUser,
		Password: dbPass,
		Host:     host,
		Port:     port.Port(),
	})
	require.NoError(t, err, "failed to connect to postgres database")

	return db
}

func extractHostAndPort(t testing.TB, ctx context.Context, postgre *pgcontainer.PostgresContainer) (string, nat.Port) {
	t.Helper()
	host, err := postgre.Host(ctx)
	require.NoError(t, err, "failed to get container host")

	port, err := postgre.MappedPort(ctx, "5432")
	require.NoError(t, err, "failed to get mapped port")
	return host, port
}

// MigrateTestDatabase runs all migration files against the test database
func MigrateTestDatabase(t testing.TB, db *gorm.DB, migrationPath string) {
	t.Helper()
	migrations := &migrate.FileMigrationSource{
		Dir: migrationPath,
	}

	sqlDB, err := db.DB()
	require.NoError(t, err, "failed to get sql.DB from gorm.DB")

	_, err = migrate.Exec(sqlDB, "postgres", migrations, migrate.Up)
	require.NoError(t, err, "failed to run database migrations")
}

func TestMovieAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := MustCreateTestDatabase(t)
	MigrateTestDatabase(t, db, "../migrations")
	server := MustCreateServer(t, db)

	rec := makeRequest(server, http.MethodGet, "/api/v1/movies", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Could not read movies for page 1 and size 9.", decodeAPIError(t, rec).Message)

	var ids []int
	for _, body := range []string{
		`{"title": "Alien", "year": 1979}`,
		`{"title": "Heat", "year": 1995, "description": "LA crime"}`,
		`{"title": "Arrival", "year": 2016}`,
	} {
		rec := makeRequestWithBody(server, http.MethodPost, "/api/v1/movies", body, nil)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		ids = append(ids, decodeJSON[movie.Movie](t, rec).ID)
	}

	rec = makeRequest(server, http.MethodGet, "/api/v1/movies?page=2&size=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	listed := decodeJSON[httpserver.PagedResponse[movie.Movie]](t, rec)
	assert.EqualValues(t, 3, listed.Total)
	assert.Equal(t, 2, listed.TotalPages)
	require.Len(t, listed.Items, 1)
	assert.Equal(t, "Arrival", listed.Items[0].Title)

	path := "/api/v1/movies/" + strconv.Itoa(ids[1])
	rec = makeRequestWithBody(server, http.MethodPut, path, `{"title": "Heat", "year": 1995, "description": "Remastered"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, movie.Movie{ID: ids[1], Title: "Heat", Year: 1995, Description: "Remastered"}, decodeJSON[movie.Movie](t, rec))

	rec = makeRequest(server, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = makeRequest(server, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Could not delete movie with id "+strconv.Itoa(ids[1])+".", decodeAPIError(t, rec).Message)
}
