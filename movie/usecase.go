package movie

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"smdb/result"
)

type Service interface {
	ReadMovies(ctx context.Context, page, size int) (result.Result[result.Paged[Movie]], error)
	CreateMovie(ctx context.Context, m *Movie) (result.Result[Movie], error)
	ReadMovie(ctx context.Context, id int) (result.Result[Movie], error)
	UpdateMovie(ctx context.Context, id int, m *Movie) (result.Result[Movie], error)
	DeleteMovie(ctx context.Context, id int) (result.Result[Movie], error)
}

// Repository persists movies. A nil value with a nil error means no
// matching or creatable record; errors are reserved for infrastructure
// failures. Implementations must be safe for concurrent use.
type Repository interface {
	ReadMovies(ctx context.Context, page, size int) (*result.Paged[Movie], error)
	CreateMovie(ctx context.Context, m Movie) (*Movie, error)
	ReadMovie(ctx context.Context, id int) (*Movie, error)
	UpdateMovie(ctx context.Context, id int, m Movie) (*Movie, error)
	// DeleteMovie returns the record as it was before deletion.
	DeleteMovie(ctx context.Context, id int) (*Movie, error)
}

type Option func(uc *Usecase)

// WithClock replaces the clock used to bound the release year.
func WithClock(now func() time.Time) Option {
	return func(uc *Usecase) {
		uc.now = now
	}
}

type Usecase struct {
	r   Repository
	now func() time.Time
}

func NewUsecase(r Repository, opts ...Option) *Usecase {
	uc := &Usecase{r: r, now: time.Now}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *Usecase) ReadMovies(ctx context.Context, page, size int) (result.Result[result.Paged[Movie]], error) {
	if page < 1 {
		return result.Fail[result.Paged[Movie]]("Page must be >= 1.", http.StatusBadRequest), nil
	}
	if size < 1 {
		return result.Fail[result.Paged[Movie]]("Page size must be >= 1.", http.StatusBadRequest), nil
	}

	paged, err := uc.r.ReadMovies(ctx, page, size)
	if err != nil {
		return result.Result[result.Paged[Movie]]{}, fmt.Errorf("movie: read page %d size %d: %w", page, size, err)
	}
	if paged == nil {
		return result.Fail[result.Paged[Movie]](
			fmt.Sprintf("Could not read movies for page %d and size %d.", page, size),
			http.StatusNotFound,
		), nil
	}

	return result.OK(*paged, http.StatusOK), nil
}

func (uc *Usecase) CreateMovie(ctx context.Context, m *Movie) (result.Result[Movie], error) {
	if err := m.Validate(uc.now()); err != nil {
		return result.FromError[Movie](err), nil
	}

	created, err := uc.r.CreateMovie(ctx, *m)
	if err != nil {
		return result.Result[Movie]{}, fmt.Errorf("movie: create %s: %w", m, err)
	}
	if created == nil {
		return result.Fail[Movie](fmt.Sprintf("Could not create movie %s.", m), http.StatusNotFound), nil
	}

	return result.OK(*created, http.StatusCreated), nil
}

func (uc *Usecase) ReadMovie(ctx context.Context, id int) (result.Result[Movie], error) {
	found, err := uc.r.ReadMovie(ctx, id)
	if err != nil {
		return result.Result[Movie]{}, fmt.Errorf("movie: read %d: %w", id, err)
	}
	if found == nil {
		return result.Fail[Movie](fmt.Sprintf("Could not read movie with id %d.", id), http.StatusNotFound), nil
	}

	return result.OK(*found, http.StatusOK), nil
}

func (uc *Usecase) UpdateMovie(ctx context.Context, id int, m *Movie) (result.Result[Movie], error) {
	if err := m.Validate(uc.now()); err != nil {
		return result.FromError[Movie](err), nil
	}

	updated, err := uc.r.UpdateMovie(ctx, id, *m)
	if err != nil {
		return result.Result[Movie]{}, fmt.Errorf("movie: update %d: %w", id, err)
	}
	if updated == nil {
		return result.Fail[Movie](fmt.Sprintf("Could not update movie with id %d.", id), http.StatusNotFound), nil
	}

	return result.OK(*updated, http.StatusOK), nil
}

func (uc *Usecase) DeleteMovie(ctx context.Context, id int) (result.Result[Movie], error) {
	deleted, err := uc.r.DeleteMovie(ctx, id)
	if err != nil {
		return result.Result[Movie]{}, fmt.Errorf("movie: delete %d: %w", id, err)
	}
	if deleted == nil {
		return result.Fail[Movie](fmt.Sprintf("Could not delete movie with id %d.", id), http.StatusNotFound), nil
	}

	return result.OK(*deleted, http.StatusOK), nil
}
