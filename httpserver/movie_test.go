package httpserver_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"smdb/httpserver"
	"smdb/memory"
	"smdb/movie"
	"smdb/result"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMovieService struct {
	mock.Mock
}

func (m *MockMovieService) ReadMovies(ctx context.Context, page, size int) (result.Result[result.Paged[movie.Movie]], error) {
	args := m.Called(ctx, page, size)
	return args.Get(0).(result.Result[result.Paged[movie.Movie]]), args.Error(1)
}

func (m *MockMovieService) CreateMovie(ctx context.Context, mv *movie.Movie) (result.Result[movie.Movie], error) {
	args := m.Called(ctx, mv)
	return args.Get(0).(result.Result[movie.Movie]), args.Error(1)
}

func (m *MockMovieService) ReadMovie(ctx context.Context, id int) (result.Result[movie.Movie], error) {
	args := m.Called(ctx, id)
	return args.Get(0).(result.Result[movie.Movie]), args.Error(1)
}

func (m *MockMovieService) UpdateMovie(ctx context.Context, id int, mv *movie.Movie) (result.Result[movie.Movie], error) {
	args := m.Called(ctx, id, mv)
	return args.Get(0).(result.Result[movie.Movie]), args.Error(1)
}

func (m *MockMovieService) DeleteMovie(ctx context.Context, id int) (result.Result[movie.Movie], error) {
	args := m.Called(ctx, id)
	return args.Get(0).(result.Result[movie.Movie]), args.Error(1)
}

func newMockedServer(t *testing.T) (*httpserver.Server, *MockMovieService) {
	t.Helper()
	svc := new(MockMovieService)
	server := newTestServer(t)
	server.MovieService = svc
	return server, svc
}

func TestReadMoviesHandler(t *testing.T) {
	paged := result.NewPaged([]movie.Movie{{ID: 1, Title: "Alien", Year: 1979}}, 1, 9, 10)

	tests := []struct {
		name         string
		query        string
		expectedPage int
		expectedSize int
	}{
		{name: "defaults without query", query: "", expectedPage: 1, expectedSize: 9},
		{name: "explicit page and size", query: "?page=3&size=20", expectedPage: 3, expectedSize: 20},
		{name: "unparseable values fall back to defaults", query: "?page=abc&size=1.5", expectedPage: 1, expectedSize: 9},
		{name: "surrounding whitespace is ignored", query: "?page=%202%20&size=%204", expectedPage: 2, expectedSize: 4},
		{name: "out of range values reach the service", query: "?page=0&size=-1", expectedPage: 0, expectedSize: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, svc := newMockedServer(t)
			svc.On("ReadMovies", mock.Anything, tt.expectedPage, tt.expectedSize).
				Return(result.OK(paged, http.StatusOK), nil)

			rec := makeRequest(server, http.MethodGet, "/api/v1/movies"+tt.query, nil)

			assert.Equal(t, http.StatusOK, rec.Code)
			svc.AssertExpectations(t)
		})
	}

	t.Run("should write the paged envelope", func(t *testing.T) {
		server, svc := newMockedServer(t)
		svc.On("ReadMovies", mock.Anything, 1, 9).Return(result.OK(paged, http.StatusOK), nil)

		rec := makeRequest(server, http.MethodGet, "/api/v1/movies", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{
			"data": [{"id": 1, "title": "Alien", "year": 1979, "description": ""}],
			"page": 1,
			"size": 9,
			"total": 10,
			"total_pages": 2
		}`, rec.Body.String())
	})

	t.Run("should write a business failure", func(t *testing.T) {
		server, svc := newMockedServer(t)
		svc.On("ReadMovies", mock.Anything, 0, 9).
			Return(result.Fail[result.Paged[movie.Movie]]("Page must be >= 1.", http.StatusBadRequest), nil)

		rec := makeRequest(server, http.MethodGet, "/api/v1/movies?page=0", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeAPIError(t, rec)
		assert.Equal(t, httpserver.APIError{Code: "100010", Status: http.StatusBadRequest, Message: "Page must be >= 1."}, resp)
	})

	t.Run("should hide infrastructure errors", func(t *testing.T) {
		server, svc := newMockedServer(t)
		svc.On("ReadMovies", mock.Anything, 1, 9).
			Return(result.Result[result.Paged[movie.Movie]]{}, errors.New("connection reset"))

		rec := makeRequest(server, http.MethodGet, "/api/v1/movies", nil)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Internal server error", decodeAPIError(t, rec).Message)
	})
}

func TestCreateMovieHandler(t *testing.T) {
	t.Run("should pass the payload to the service", func(t *testing.T) {
		server, svc := newMockedServer(t)
		expected := &movie.Movie{Title: "Heat", Year: 1995, Description: "LA crime"}
		created := movie.Movie{ID: 4, Title: "Heat", Year: 1995, Description: "LA crime"}
		svc.On("CreateMovie", mock.Anything, expected).Return(result.OK(created, http.StatusCreated), nil)

		rec := makeRequestWithBody(server, http.MethodPost, "/api/v1/movies",
			`{"id": 99, "title": "Heat", "year": 1995, "description": "LA crime"}`, nil)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, created, decodeJSON[movie.Movie](t, rec))
		svc.AssertExpectations(t)
	})

	tests := []struct {
		name            string
		body            string
		expectedMessage string
	}{
		{name: "empty body", body: "", expectedMessage: "Empty request body"},
		{name: "blank body", body: "  \n ", expectedMessage: "Empty request body"},
		{name: "null payload", body: "null", expectedMessage: "Invalid movie payload"},
		{name: "malformed json", body: `{"title":`, expectedMessage: "unexpected end of JSON input"},
		{name: "wrong field type", body: `{"title": 7}`, expectedMessage: "json: cannot unmarshal number into Go struct field MovieRequest.title of type string"},
	}

	for _, tt := range tests {
		t.Run("should reject "+tt.name, func(t *testing.T) {
			server, svc := newMockedServer(t)

			rec := makeRequestWithBody(server, http.MethodPost, "/api/v1/movies", tt.body, nil)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.expectedMessage, decodeAPIError(t, rec).Message)
			svc.AssertNotCalled(t, "CreateMovie", mock.Anything, mock.Anything)
		})
	}
}

func TestMovieIDHandlers(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{name: "non numeric", id: "abc"},
		{name: "negative", id: "-1"},
		{name: "decimal", id: "1.5"},
		{name: "overflowing int32", id: "2147483648"},
	}

	for _, tt := range tests {
		for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
			t.Run(method+" rejects "+tt.name+" id", func(t *testing.T) {
				server, svc := newMockedServer(t)

				rec := makeRequestWithBody(server, method, "/api/v1/movies/"+tt.id, `{"title":"Heat","year":1995}`, nil)

				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Equal(t, "Invalid id parameter", decodeAPIError(t, rec).Message)
				assert.Empty(t, svc.Calls)
			})
		}
	}

	t.Run("should read a movie", func(t *testing.T) {
		server, svc := newMockedServer(t)
		found := movie.Movie{ID: 0, Title: "Metropolis", Year: 1927}
		svc.On("ReadMovie", mock.Anything, 0).Return(result.OK(found, http.StatusOK), nil)

		rec := makeRequest(server, http.MethodGet, "/api/v1/movies/0", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, found, decodeJSON[movie.Movie](t, rec))
	})

	t.Run("should write not found from the service", func(t *testing.T) {
		server, svc := newMockedServer(t)
		svc.On("DeleteMovie", mock.Anything, 7).
			Return(result.Fail[movie.Movie]("Could not delete movie with id 7.", http.StatusNotFound), nil)

		rec := makeRequest(server, http.MethodDelete, "/api/v1/movies/7", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, httpserver.APIError{Code: "100404", Status: http.StatusNotFound, Message: "Could not delete movie with id 7."}, decodeAPIError(t, rec))
	})

	t.Run("should reject an update without body", func(t *testing.T) {
		server, svc := newMockedServer(t)

		rec := makeRequest(server, http.MethodPut, "/api/v1/movies/3", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Empty request body", decodeAPIError(t, rec).Message)
		assert.Empty(t, svc.Calls)
	})
}

func TestMovieRoundTrip(t *testing.T) {
	server := newTestServer(t)
	server.MovieService = movie.NewUsecase(memory.NewMovieRepository())

	rec := makeRequestWithBody(server, http.MethodPost, "/api/v1/movies",
		`{"title": "Alien", "year": 1979, "description": "In space"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeJSON[movie.Movie](t, rec)
	assert.Equal(t, movie.Movie{ID: 1, Title: "Alien", Year: 1979, Description: "In space"}, created)

	rec = makeRequestWithBody(server, http.MethodPost, "/api/v1/movies", `{"title": "   ", "year": 1979}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Title is required and cannot be empty.", decodeAPIError(t, rec).Message)

	rec = makeRequest(server, http.MethodGet, "/api/v1/movies", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	listed := decodeJSON[httpserver.PagedResponse[movie.Movie]](t, rec)
	assert.Equal(t, []movie.Movie{created}, listed.Items)
	assert.EqualValues(t, 1, listed.Total)
	assert.Equal(t, 1, listed.TotalPages)

	rec = makeRequest(server, http.MethodGet, "/api/v1/movies?page=2", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Could not read movies for page 2 and size 9.", decodeAPIError(t, rec).Message)

	rec = makeRequestWithBody(server, http.MethodPut, "/api/v1/movies/1",
		`{"title": "Aliens", "year": 1986}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, movie.Movie{ID: 1, Title: "Aliens", Year: 1986}, decodeJSON[movie.Movie](t, rec))

	rec = makeRequestWithBody(server, http.MethodPut, "/api/v1/movies/2", `{"title": "Heat", "year": 1995}`, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Could not update movie with id 2.", decodeAPIError(t, rec).Message)

	rec = makeRequest(server, http.MethodDelete, "/api/v1/movies/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Aliens", decodeJSON[movie.Movie](t, rec).Title)

	rec = makeRequest(server, http.MethodGet, "/api/v1/movies/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Could not read movie with id 1.", decodeAPIError(t, rec).Message)

	rec = makeRequest(server, http.MethodGet, "/metrics", nil)
	assert.Contains(t, rec.Body.String(), `smdb_movie_operations_total{operation="create_movie",outcome="success"} 1`)
	assert.Contains(t, rec.Body.String(), `smdb_movie_operations_total{operation="read_movie",outcome="failure"} 1`)
}
