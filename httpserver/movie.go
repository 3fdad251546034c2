package httpserver

import (
	"smdb/errs"
	"smdb/result"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterMovieRoutes(g *echo.Group) {
	g.GET("/movies", s.handleReadMovies)
	g.POST("/movies", s.handleCreateMovie)
	g.GET("/movies/:id", s.handleReadMovie)
	g.PUT("/movies/:id", s.handleUpdateMovie)
	g.DELETE("/movies/:id", s.handleDeleteMovie)
}

var errMovieServiceMissing = errs.Errorf(errs.ENOTIMPLEMENTED, "Movie service is not configured")

// handleReadMovies godoc
// @Summary List Movies
// @Tags movies
// @Produce json
// @Param page query int false "Page number, default 1"
// @Param size query int false "Page size, default 9"
// @Success 200 {object} PagedResponse[movie.Movie]
// @Failure 400 {object} APIError
// @Failure 404 {object} APIError
// @Router /api/v1/movies [get]
func (s *Server) handleReadMovies(c echo.Context) error {
	if s.MovieService == nil {
		return errMovieServiceMissing
	}

	q := parseListMoviesQuery(c)
	res, err := s.MovieService.ReadMovies(c.Request().Context(), q.Page, q.Size)
	if err != nil {
		return err
	}

	s.Metrics.ObserveMovieOperation("read_movies", res.IsSuccess())
	return writePaged(c, res)
}

// handleCreateMovie godoc
// @Summary Create Movie
// @Tags movies
// @Accept json
// @Produce json
// @Param movie body MovieRequest true "Movie"
// @Success 201 {object} movie.Movie
// @Failure 400 {object} APIError
// @Router /api/v1/movies [post]
func (s *Server) handleCreateMovie(c echo.Context) error {
	if s.MovieService == nil {
		return errMovieServiceMissing
	}

	req, err := parseMovieRequest(c)
	if err != nil {
		return writeResult(c, result.FromError[any](err))
	}

	res, err := s.MovieService.CreateMovie(c.Request().Context(), req.ToMovie())
	if err != nil {
		return err
	}

	s.Metrics.ObserveMovieOperation("create_movie", res.IsSuccess())
	return writeResult(c, res)
}

// handleReadMovie godoc
// @Summary Get Movie
// @Tags movies
// @Produce json
// @Param id path int true "Movie ID"
// @Success 200 {object} movie.Movie
// @Failure 400 {object} APIError
// @Failure 404 {object} APIError
// @Router /api/v1/movies/{id} [get]
func (s *Server) handleReadMovie(c echo.Context) error {
	if s.MovieService == nil {
		return errMovieServiceMissing
	}

	p, err := s.parseMovieIDParam(c)
	if err != nil {
		return writeResult(c, result.FromError[any](err))
	}

	res, err := s.MovieService.ReadMovie(c.Request().Context(), p.ID)
	if err != nil {
		return err
	}

	s.Metrics.ObserveMovieOperation("read_movie", res.IsSuccess())
	return writeResult(c, res)
}

// handleUpdateMovie godoc
// @Summary Update Movie
// @Tags movies
// @Accept json
// @Produce json
// @Param id path int true "Movie ID"
// @Param movie body MovieRequest true "Movie"
// @Success 200 {object} movie.Movie
// @Failure 400 {object} APIError
// @Failure 404 {object} APIError
// @Router /api/v1/movies/{id} [put]
func (s *Server) handleUpdateMovie(c echo.Context) error {
	if s.MovieService == nil {
		return errMovieServiceMissing
	}

	p, err := s.parseMovieIDParam(c)
	if err != nil {
		return writeResult(c, result.FromError[any](err))
	}
	req, err := parseMovieRequest(c)
	if err != nil {
		return writeResult(c, result.FromError[any](err))
	}

	res, err := s.MovieService.UpdateMovie(c.Request().Context(), p.ID, req.ToMovie())
	if err != nil {
		return err
	}

	s.Metrics.ObserveMovieOperation("update_movie", res.IsSuccess())
	return writeResult(c, res)
}

// handleDeleteMovie godoc
// @Summary Delete Movie
// @Tags movies
// @Produce json
// @Param id path int true "Movie ID"
// @Success 200 {object} movie.Movie
// @Failure 400 {object} APIError
// @Failure 404 {object} APIError
// @Router /api/v1/movies/{id} [delete]
func (s *Server) handleDeleteMovie(c echo.Context) error {
	if s.MovieService == nil {
		return errMovieServiceMissing
	}

	p, err := s.parseMovieIDParam(c)
	if err != nil {
		return writeResult(c, result.FromError[any](err))
	}

	res, err := s.MovieService.DeleteMovie(c.Request().Context(), p.ID)
	if err != nil {
		return err
	}

	s.Metrics.ObserveMovieOperation("delete_movie", res.IsSuccess())
	return writeResult(c, res)
}
