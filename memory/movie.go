// Package memory provides in-process repositories for local runs and tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"smdb/movie"
	"smdb/result"
)

// MovieRepository implements movie.Repository on a map keyed by id.
type MovieRepository struct {
	mu     sync.RWMutex
	movies map[int]movie.Movie
	nextID int
}

func NewMovieRepository() *MovieRepository {
	return &MovieRepository{
		movies: make(map[int]movie.Movie),
		nextID: 1,
	}
}

// ReadMovies returns movies ordered by id, or nil when the page is empty.
func (r *MovieRepository) ReadMovies(_ context.Context, page, size int) (*result.Paged[movie.Movie], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	offset := (page - 1) * size
	if offset < 0 || offset >= len(r.movies) {
		return nil, nil
	}

	ids := make([]int, 0, len(r.movies))
	for id := range r.movies {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	end := min(offset+size, len(ids))
	items := make([]movie.Movie, 0, end-offset)
	for _, id := range ids[offset:end] {
		items = append(items, r.movies[id])
	}

	paged := result.NewPaged(items, page, size, int64(len(r.movies)))
	return &paged, nil
}

// CreateMovie stores m under a fresh id; any id on m is ignored.
func (r *MovieRepository) CreateMovie(_ context.Context, m movie.Movie) (*movie.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m.ID = r.nextID
	r.nextID++
	r.movies[m.ID] = m
	return &m, nil
}

func (r *MovieRepository) ReadMovie(_ context.Context, id int) (*movie.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.movies[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

// UpdateMovie replaces title, year and description, keeping the id.
func (r *MovieRepository) UpdateMovie(_ context.Context, id int, m movie.Movie) (*movie.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.movies[id]; !ok {
		return nil, nil
	}
	m.ID = id
	r.movies[id] = m
	return &m, nil
}

func (r *MovieRepository) DeleteMovie(_ context.Context, id int) (*movie.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.movies[id]
	if !ok {
		return nil, nil
	}
	delete(r.movies, id)
	return &m, nil
}
