package postgres

import (
	"context"
	"errors"
	"smdb/movie"
	"smdb/result"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MovieModel represents the database model for movies
type MovieModel struct {
	ID          int       `gorm:"primaryKey"`
	Title       string    `gorm:"size:256;not null"`
	Year        int       `gorm:"not null"`
	Description string    `gorm:"not null;default:''"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (MovieModel) TableName() string {
	return "movies"
}

// MovieRepository implements movie.Repository interface
type MovieRepository struct {
	db *gorm.DB
}

// NewMovieRepository creates a new movie repository
func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// ReadMovies returns one page ordered by id. An empty page yields nil.
func (r *MovieRepository) ReadMovies(ctx context.Context, page, size int) (*result.Paged[movie.Movie], error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&MovieModel{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var models []MovieModel
	err := r.db.WithContext(ctx).
		Order("id").
		Offset((page - 1) * size).
		Limit(size).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, nil
	}

	movies := make([]movie.Movie, len(models))
	for i, model := range models {
		movies[i] = toDomainMovie(model)
	}

	paged := result.NewPaged(movies, page, size, total)
	return &paged, nil
}

// CreateMovie inserts m and returns it with the id assigned by the database.
func (r *MovieRepository) CreateMovie(ctx context.Context, m movie.Movie) (*movie.Movie, error) {
	model := toModelMovie(m)
	model.ID = 0
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return nil, err
	}

	created := toDomainMovie(model)
	return &created, nil
}

func (r *MovieRepository) ReadMovie(ctx context.Context, id int) (*movie.Movie, error) {
	var model MovieModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	found := toDomainMovie(model)
	return &found, nil
}

// UpdateMovie replaces title, year and description of the movie with id.
func (r *MovieRepository) UpdateMovie(ctx context.Context, id int, m movie.Movie) (*movie.Movie, error) {
	var model MovieModel
	res := r.db.WithContext(ctx).
		Model(&model).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"title":       m.Title,
			"year":        m.Year,
			"description": m.Description,
			"updated_at":  time.Now().UTC(),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}

	updated := toDomainMovie(model)
	return &updated, nil
}

// DeleteMovie removes the movie with id and returns the removed row.
func (r *MovieRepository) DeleteMovie(ctx context.Context, id int) (*movie.Movie, error) {
	var model MovieModel
	res := r.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Delete(&model)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}

	deleted := toDomainMovie(model)
	return &deleted, nil
}

func toDomainMovie(model MovieModel) movie.Movie {
	return movie.Movie{
		ID:          model.ID,
		Title:       model.Title,
		Year:        model.Year,
		Description: model.Description,
	}
}

func toModelMovie(m movie.Movie) MovieModel {
	return MovieModel{
		ID:          m.ID,
		Title:       m.Title,
		Year:        m.Year,
		Description: m.Description,
	}
}
