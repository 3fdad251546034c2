package httpserver

import (
	"encoding/json"
	"io"
	"smdb/errs"
	"smdb/movie"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	defaultPage     = 1
	defaultPageSize = 9
)

var (
	ErrEmptyBody           = errs.Errorf(errs.EINVALID, "Empty request body")
	ErrInvalidMoviePayload = errs.Errorf(errs.EINVALID, "Invalid movie payload")
	ErrMissingRouteParams  = errs.Errorf(errs.EINVALID, "Missing route parameters")
	ErrInvalidID           = errs.Errorf(errs.EINVALID, "Invalid id parameter")
)

// ListMoviesQuery holds the pagination query of a listing. Values that do
// not parse fall back to the defaults; range checks belong to the service.
type ListMoviesQuery struct {
	Page int `query:"page"`
	Size int `query:"size"`
}

func parseListMoviesQuery(c echo.Context) ListMoviesQuery {
	return ListMoviesQuery{
		Page: intOrDefault(c.QueryParam("page"), defaultPage),
		Size: intOrDefault(c.QueryParam("size"), defaultPageSize),
	}
}

func intOrDefault(raw string, def int) int {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 32)
	if err != nil {
		return def
	}
	return int(n)
}

type MovieIDParam struct {
	ID int `param:"id" validate:"gte=0"`
}

func (s *Server) parseMovieIDParam(c echo.Context) (MovieIDParam, error) {
	if len(c.ParamNames()) == 0 {
		return MovieIDParam{}, ErrMissingRouteParams
	}

	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 32)
	if err != nil {
		return MovieIDParam{}, ErrInvalidID
	}

	p := MovieIDParam{ID: int(id)}
	if err := c.Validate(&p); err != nil {
		return MovieIDParam{}, ErrInvalidID
	}
	return p, nil
}

// MovieRequest is the JSON payload of create and update. Any id in the body
// is ignored.
type MovieRequest struct {
	Title       string `json:"title"`
	Year        int    `json:"year"`
	Description string `json:"description"`
}

func (r *MovieRequest) ToMovie() *movie.Movie {
	return &movie.Movie{
		Title:       r.Title,
		Year:        r.Year,
		Description: r.Description,
	}
}

func parseMovieRequest(c echo.Context) (*MovieRequest, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(string(body)) == "" {
		return nil, ErrEmptyBody
	}

	var req *MovieRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, errs.Errorf(errs.EINVALID, "%s", err.Error())
	}
	if req == nil {
		return nil, ErrInvalidMoviePayload
	}
	return req, nil
}
